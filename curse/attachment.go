package curse

// PlaceholderLogo is the sentinel attachment returned by Project.Logo for
// projects without a real logo. Its ID is below MinAttachmentID, so it can
// never be returned by an ordinary attachment lookup.
var PlaceholderLogo = Attachment{
	ID:           0,
	Title:        "Placeholder project logo",
	URL:          "https://www.curseforge.com/Content/2-0-7263-28137/Skins/CurseForge/images/anvilBlack.png",
	ThumbnailURL: "https://www.curseforge.com/Content/2-0-7263-28137/Skins/CurseForge/images/anvilBlack.png",
}

// Attachment is a project attachment image. Identity is the attachment ID.
type Attachment struct {
	ID           int
	ProjectID    int
	Title        string
	Description  string
	URL          string
	ThumbnailURL string
}

// Equal reports whether both attachments have the same ID.
func (a Attachment) Equal(other Attachment) bool {
	return a.ID == other.ID
}

// IsPlaceholder reports whether this attachment is the placeholder logo.
func (a Attachment) IsPlaceholder() bool {
	return a.ID == PlaceholderLogo.ID
}
