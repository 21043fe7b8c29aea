package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	focusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#5B8DEF")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))

	selectedCardStyle = lipgloss.NewStyle().
				Bold(true).
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#5B8DEF")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1, 1, 1)

	deletedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999999")).
				Strikethrough(true)

	votedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7B801")).
			Bold(true)
)

// columnColors maps each board column to its header color, mirroring the
// green/amber/blue scheme of the product.
var columnColors = map[string]lipgloss.Color{
	"went_well":         lipgloss.Color("#4CAF50"),
	"needs_improvement": lipgloss.Color("#F7B801"),
	"kudos":             lipgloss.Color("#5B8DEF"),
}

func columnHeaderStyle(cardType string) lipgloss.Style {
	color, ok := columnColors[cardType]
	if !ok {
		color = lipgloss.Color("#CCCCCC")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
