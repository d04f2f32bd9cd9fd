package domain

// DefaultTheme is applied when nothing valid is persisted.
const DefaultTheme = "default"

// Themes maps theme identifiers to their display names.
var Themes = map[string]string{
	"default":  "Ocean Blue (Default)",
	"sunset":   "Sunset Orange",
	"forest":   "Forest Green",
	"midnight": "Midnight Purple",
	"rose":     "Rose Pink",
}

// ValidTheme reports whether name is one of the enumerated themes.
func ValidTheme(name string) bool {
	_, ok := Themes[name]
	return ok
}
