package term

import "github.com/charmbracelet/lipgloss"

// Theme provides the styles a list paints with.
type Theme struct {
	Header Style // section headers and footers
	Muted  Style // de-emphasized rows
	Flash  Style // background of rows lit by an animated batch
	Track  Style // scrollbar track
	Thumb  Style // scrollbar thumb
}

// ThemeDark is light text on a dark background.
var ThemeDark = Theme{
	Header: Style{FG: lipgloss.Color("213"), Bold: true},
	Muted:  Style{FG: lipgloss.Color("8")},
	Flash:  Style{BG: lipgloss.Color("62"), Bold: true},
	Track:  Style{FG: lipgloss.Color("8")},
	Thumb:  Style{FG: lipgloss.Color("15")},
}

// ThemeLight is dark text on a light background.
var ThemeLight = Theme{
	Header: Style{FG: lipgloss.Color("4"), Bold: true},
	Muted:  Style{FG: lipgloss.Color("8")},
	Flash:  Style{BG: lipgloss.Color("153"), Bold: true},
	Track:  Style{FG: lipgloss.Color("7")},
	Thumb:  Style{FG: lipgloss.Color("0")},
}

// ThemeMonochrome uses attributes only.
var ThemeMonochrome = Theme{
	Header: Style{Bold: true},
	Flash:  Style{Inverse: true},
	Track:  Style{},
	Thumb:  Style{Bold: true},
}

// flash lights s with the theme's flash style. Colors the flash leaves
// unset keep the row's own.
func (t Theme) flash(s Style) Style {
	if t.Flash.BG != "" {
		s = s.Background(t.Flash.BG)
	}
	if t.Flash.FG != "" {
		s = s.Foreground(t.Flash.FG)
	}
	if t.Flash.Bold {
		s = s.Emphasis()
	}
	if t.Flash.Inverse {
		s = s.Reverse()
	}
	return s
}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "dark":
		return ThemeDark, true
	case "light":
		return ThemeLight, true
	case "mono", "monochrome":
		return ThemeMonochrome, true
	}
	return Theme{}, false
}
