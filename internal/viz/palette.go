package viz

import "github.com/charmbracelet/lipgloss"

// Palette colours the three field bands: outside, glow and inside a blob.
type Palette struct {
	Name       string
	Background lipgloss.Color
	Glow       lipgloss.Color
	Blob       lipgloss.Color
}

var Palettes = []Palette{
	{Name: "classic", Background: lipgloss.Color("#7209b7"), Glow: lipgloss.Color("#f72585"), Blob: lipgloss.Color("#4cc9f0")},
	{Name: "ember", Background: lipgloss.Color("#370617"), Glow: lipgloss.Color("#e85d04"), Blob: lipgloss.Color("#ffba08")},
	{Name: "mono", Background: lipgloss.Color("#444444"), Glow: lipgloss.Color("#aaaaaa"), Blob: lipgloss.Color("#ffffff")},
}

func PaletteByName(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return Palettes[0]
}

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)
