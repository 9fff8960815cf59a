package ui

import "github.com/charmbracelet/lipgloss"

// palette holds the raw colors for one theme.
type palette struct {
	text      lipgloss.Color
	muted     lipgloss.Color
	dim       lipgloss.Color
	primary   lipgloss.Color
	highlight lipgloss.Color
	accent    lipgloss.Color
	barBg     lipgloss.Color
}

var darkPalette = palette{
	text:      lipgloss.Color("#c9d1d9"),
	muted:     lipgloss.Color("#8b949e"),
	dim:       lipgloss.Color("#484f58"),
	primary:   lipgloss.Color("#58a6ff"),
	highlight: lipgloss.Color("#d2a8ff"),
	accent:    lipgloss.Color("#3fb950"),
	barBg:     lipgloss.Color("#21262d"),
}

var lightPalette = palette{
	text:      lipgloss.Color("#1f2328"),
	muted:     lipgloss.Color("#57606a"),
	dim:       lipgloss.Color("#8c959f"),
	primary:   lipgloss.Color("#0969da"),
	highlight: lipgloss.Color("#8250df"),
	accent:    lipgloss.Color("#1a7f37"),
	barBg:     lipgloss.Color("#eaeef2"),
}

// styleSet is the full set of render styles for one theme.
type styleSet struct {
	Header       lipgloss.Style
	HeaderMeta   lipgloss.Style
	SearchPrompt lipgloss.Style
	SearchText   lipgloss.Style
	FacetOn      lipgloss.Style
	FacetOff     lipgloss.Style
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style
	ItemMeta     lipgloss.Style
	LatestBadge  lipgloss.Style
	TagChip      lipgloss.Style
	LoadMore     lipgloss.Style
	Empty        lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusText   lipgloss.Style
	ShareLink    lipgloss.Style
	DetailTitle  lipgloss.Style
	DetailLabel  lipgloss.Style
	DetailBody   lipgloss.Style
}

// newStyles builds the style set for a theme name ("light" or
// "dark"); anything else gets the dark palette.
func newStyles(theme string) styleSet {
	p := darkPalette
	if theme == "light" {
		p = lightPalette
	}

	return styleSet{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		HeaderMeta:   lipgloss.NewStyle().Foreground(p.muted),
		SearchPrompt: lipgloss.NewStyle().Bold(true).Foreground(p.highlight),
		SearchText:   lipgloss.NewStyle().Foreground(p.text),
		FacetOn:      lipgloss.NewStyle().Foreground(p.barBg).Background(p.primary).Padding(0, 1),
		FacetOff:     lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		SelectedItem: lipgloss.NewStyle().Bold(true).Foreground(p.barBg).Background(p.primary).Padding(0, 1),
		NormalItem:   lipgloss.NewStyle().Foreground(p.text).Padding(0, 1),
		ItemMeta:     lipgloss.NewStyle().Foreground(p.dim),
		LatestBadge:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		TagChip:      lipgloss.NewStyle().Foreground(p.highlight),
		LoadMore:     lipgloss.NewStyle().Foreground(p.muted).Italic(true).Padding(0, 1),
		Empty:        lipgloss.NewStyle().Foreground(p.muted).Padding(1, 2),
		StatusBar:    lipgloss.NewStyle().Foreground(p.text).Background(p.barBg).Padding(0, 1),
		StatusKey:    lipgloss.NewStyle().Bold(true).Foreground(p.highlight),
		StatusText:   lipgloss.NewStyle().Foreground(p.muted),
		ShareLink:    lipgloss.NewStyle().Foreground(p.dim),
		DetailTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		DetailLabel:  lipgloss.NewStyle().Bold(true).Foreground(p.muted),
		DetailBody:   lipgloss.NewStyle().Foreground(p.text),
	}
}
