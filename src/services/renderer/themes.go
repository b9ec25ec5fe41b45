package renderer

// ThemeID cosmetic style bundle of a rendered form.
type ThemeID string

const (
	ThemeClassic ThemeID = "classic"
	ThemeOcean   ThemeID = "ocean"
	ThemeSunset  ThemeID = "sunset"
)

// Theme colors used by the HTML renderer.
type Theme struct {
	ID          ThemeID `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	PageBg      string  `json:"pageBg"`
	Card        string  `json:"card"`
	Title       string  `json:"title"`
	Text        string  `json:"text"`
	Accent      string  `json:"accent"`
}

var themes = map[ThemeID]Theme{
	ThemeClassic: {
		ID: ThemeClassic, Label: "Classic", Description: "Clean and neutral",
		PageBg: "#fafafa", Card: "#ffffff", Title: "#18181b", Text: "#52525b", Accent: "#18181b",
	},
	ThemeOcean: {
		ID: ThemeOcean, Label: "Ocean", Description: "Soft blue accents",
		PageBg: "#ecfeff", Card: "#ffffff", Title: "#083344", Text: "#155e75", Accent: "#0891b2",
	},
	ThemeSunset: {
		ID: ThemeSunset, Label: "Sunset", Description: "Warm accents",
		PageBg: "#fffbeb", Card: "#ffffff", Title: "#451a03", Text: "#92400e", Accent: "#d97706",
	},
}

// ResolveTheme returns the theme for id, falling back to classic.
func ResolveTheme(id string) Theme {
	if t, ok := themes[ThemeID(id)]; ok {
		return t
	}
	return themes[ThemeClassic]
}

// Themes lists the available themes in a fixed order.
func Themes() []Theme {
	return []Theme{themes[ThemeClassic], themes[ThemeOcean], themes[ThemeSunset]}
}
