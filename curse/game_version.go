package curse

import "cmp"

// GameVersion is a single version of a game, e.g. Minecraft 1.12.2. It
// belongs to exactly one game and to at most one version group; an empty
// GroupName means the version is ungrouped.
type GameVersion struct {
	GameID    int
	Version   string
	GroupName string
}

// Compare orders versions of the same game by version string.
func (v *GameVersion) Compare(other *GameVersion) int {
	return cmp.Compare(v.Version, other.Version)
}

// Grouped reports whether the version belongs to a version group.
func (v *GameVersion) Grouped() bool {
	return v.GroupName != ""
}

// GameVersionGroup is a group of related game versions, e.g. all 1.12.x
// versions of Minecraft.
type GameVersionGroup struct {
	GameID   int
	Name     string
	Versions []*GameVersion
}

// GameVersionGroups derives the version groups of the given versions.
// Versions without a group are excluded; each group appears once, in order of
// first appearance, holding its member versions in input order.
func GameVersionGroups(versions []*GameVersion) []*GameVersionGroup {
	type key struct {
		gameID int
		name   string
	}
	byKey := make(map[key]*GameVersionGroup)
	var groups []*GameVersionGroup
	for _, version := range versions {
		if version == nil || !version.Grouped() {
			continue
		}
		k := key{version.GameID, version.GroupName}
		group, ok := byKey[k]
		if !ok {
			group = &GameVersionGroup{GameID: version.GameID, Name: version.GroupName}
			byKey[k] = group
			groups = append(groups, group)
		}
		group.Versions = append(group.Versions, version)
	}
	return groups
}
