package models

import "strings"

// SearchField is the closed set of attributes a search may filter on.
type SearchField string

const (
	SearchByID          SearchField = "id"
	SearchByTitle       SearchField = "title"
	SearchByDescription SearchField = "description"
	SearchByDueDate     SearchField = "due_date"
	SearchByPriority    SearchField = "priority"
	SearchByDone        SearchField = "done"
)

var searchFields = map[string]SearchField{
	"id":          SearchByID,
	"title":       SearchByTitle,
	"description": SearchByDescription,
	"due_date":    SearchByDueDate,
	"priority":    SearchByPriority,
	"done":        SearchByDone,
}

// legacy form names (name/desc/date/pr) จาก form เวอร์ชันเก่า
var legacySearchAliases = map[string]SearchField{
	"name": SearchByTitle,
	"desc": SearchByDescription,
	"date": SearchByDueDate,
	"pr":   SearchByPriority,
}

// ParseSearchField resolves a field name. Legacy aliases are accepted only when
// allowLegacy is set.
func ParseSearchField(raw string, allowLegacy bool) (SearchField, bool) {
	raw = strings.TrimSpace(raw)
	if f, ok := searchFields[raw]; ok {
		return f, true
	}
	if allowLegacy {
		if f, ok := legacySearchAliases[raw]; ok {
			return f, true
		}
	}
	return "", false
}

// ParseDoneValue parses the textual forms a done flag arrives in.
func ParseDoneValue(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1", "on":
		return true, true
	case "false", "no", "0", "off":
		return false, true
	}
	return false, false
}

// FormatDoneLegacy renders done in the legacy "yes"/"no" convention.
func FormatDoneLegacy(done bool) string {
	if done {
		return "yes"
	}
	return "no"
}
