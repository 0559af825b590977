package pretty

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette used for the run summary block printed
// after a generation run.
type Theme struct {
	Primary lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
}

func DefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.AdaptiveColor{Dark: "#82aaff", Light: "#2e7de9"},
		Success: lipgloss.AdaptiveColor{Dark: "#c3e88d", Light: "#587539"},
		Warning: lipgloss.AdaptiveColor{Dark: "#ffcb6b", Light: "#8c6c3e"},
		Error:   lipgloss.AdaptiveColor{Dark: "#ff5370", Light: "#f52a65"},
		Text:    lipgloss.AdaptiveColor{Dark: "#bfc7d5", Light: "#4c505e"},
		Muted:   lipgloss.AdaptiveColor{Dark: "#697098", Light: "#8990a3"},
		Border:  lipgloss.AdaptiveColor{Dark: "#5c6370", Light: "#c4c8da"},
	}
}

// Styles holds pre-computed lipgloss styles for summary rendering.
type Styles struct {
	Theme Theme
	Box   lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
}

func NewStyles() Styles {
	theme := DefaultTheme()
	return Styles{
		Theme: theme,
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Label: lipgloss.NewStyle().Foreground(theme.Muted).Width(18),
		Value: lipgloss.NewStyle().Foreground(theme.Text),
		Good:  lipgloss.NewStyle().Foreground(theme.Success),
		Warn:  lipgloss.NewStyle().Foreground(theme.Warning),
		Bad:   lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
	}
}

// SummaryBox renders a titled label/value block. Rows render in the
// given order; a nil styler falls back to the plain value style.
func SummaryBox(title string, rows []SummaryRow) string {
	styles := NewStyles()
	body := styles.Title.Render(title)
	for _, row := range rows {
		value := styles.Value
		switch row.Tone {
		case ToneGood:
			value = styles.Good
		case ToneWarn:
			value = styles.Warn
		case ToneBad:
			value = styles.Bad
		}
		body += "\n" + styles.Label.Render(row.Label) + value.Render(row.Value)
	}
	return styles.Box.Render(body)
}

type Tone int

const (
	TonePlain Tone = iota
	ToneGood
	ToneWarn
	ToneBad
)

type SummaryRow struct {
	Label string
	Value string
	Tone  Tone
}
