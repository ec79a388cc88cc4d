package models

type PaletteColor struct {
	Name  string
	Value string
}

// Palette lists the colour tokens an event may carry. A nil colour means
// "no color" and lets the list view derive one.
var Palette = []PaletteColor{
	{Name: "Lime Green", Value: "#32CD32"},
	{Name: "Sky Blue", Value: "#00BFFF"},
	{Name: "Magenta", Value: "#FF00FF"},
	{Name: "Turquoise", Value: "#40E0D0"},
	{Name: "Gold", Value: "#FFD700"},
	{Name: "Crimson", Value: "#DC143C"},
	{Name: "Forest Green", Value: "#228B22"},
	{Name: "Royal Blue", Value: "#4169E1"},
	{Name: "Pink", Value: "#FF69B4"},
}

func IsPaletteColor(v string) bool {
	for _, c := range Palette {
		if c.Value == v {
			return true
		}
	}
	return false
}
