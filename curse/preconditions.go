package curse

// Minimum valid IDs per entity kind. Every operation that accepts an ID of a
// given kind validates it against these thresholds before touching any
// provider; smaller values are precondition violations, not lookup misses.
const (
	MinGameID            = 1
	MinCategorySectionID = 1
	MinCategoryID        = 1
	MinProjectID         = 10
	MinFileID            = 60018
	MinAttachmentID      = 76990
)

func checkID(id, min int, what, name string) error {
	if id < min {
		return preconditionf("%s (%s ID) should not be smaller than %d", name, what, min)
	}
	return nil
}

func checkGameID(id int, name string) error {
	return checkID(id, MinGameID, "game", name)
}

func checkCategorySectionID(id int, name string) error {
	return checkID(id, MinCategorySectionID, "category section", name)
}

func checkCategoryID(id int, name string) error {
	return checkID(id, MinCategoryID, "category", name)
}

func checkProjectID(id int, name string) error {
	return checkID(id, MinProjectID, "project", name)
}

func checkFileID(id int, name string) error {
	return checkID(id, MinFileID, "file", name)
}

func checkAttachmentID(id int, name string) error {
	return checkID(id, MinAttachmentID, "attachment", name)
}

func checkMaxLineLength(maxLineLength int) error {
	if maxLineLength <= 0 {
		return preconditionf("maxLineLength should be greater than 0")
	}
	return nil
}
