package viz

import "github.com/charmbracelet/lipgloss"

// Palette assigns a color per particle type. Types beyond the palette
// length wrap around.
type Palette struct {
	Name   string
	Colors []lipgloss.Color
}

var (
	PaletteNeon = Palette{
		Name: "neon",
		Colors: []lipgloss.Color{
			"#ff00ff", "#00ffff", "#ffff00", "#00ff88", "#ff6b6b",
			"#88aaff", "#ff9ff3", "#feca57",
		},
	}

	PaletteRetro = Palette{
		Name: "retro",
		Colors: []lipgloss.Color{
			"#00ff00", "#88ff88", "#00cc00", "#ccffcc", "#44aa44",
			"#aaffaa", "#009900", "#66dd66",
		},
	}

	PaletteOcean = Palette{
		Name: "ocean",
		Colors: []lipgloss.Color{
			"#0077be", "#00a8cc", "#ffd700", "#e0f0ff", "#00ff88",
			"#4488aa", "#ffcc00", "#66ccee",
		},
	}

	PaletteSunset = Palette{
		Name: "sunset",
		Colors: []lipgloss.Color{
			"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068", "#ffc048",
			"#ff4757", "#fff5f5", "#8b6b8c",
		},
	}

	Palettes = []Palette{PaletteNeon, PaletteRetro, PaletteOcean, PaletteSunset}
)

func GetPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PaletteNeon
}

func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

// Styles materializes one lipgloss style per particle type.
func (p Palette) Styles(typeCount int) []lipgloss.Style {
	styles := make([]lipgloss.Style, typeCount)
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Foreground(p.Colors[i%len(p.Colors)])
	}
	return styles
}
