package ui

// Layout constants for viewport and panel sizing
const (
	ViewportHorizontalPadding = 2
	HeaderHeight              = 1

	// Split pane dimensions for a card: text and media side by side.
	SplitPaneLeftRatio = 0.6
	SplitPaneDivider   = 2

	// Card borders and padding
	PanelBorderWidth = 1
	PanelPaddingH    = 1

	// Activity card text panel
	CollapsedLines = 6  // description lines shown while collapsed
	ExpandedLines  = 16 // visible lines of the expanded panel
	TitleLines     = 2  // title clamp while collapsed

	// Schedule grid
	MinPeriodWidth = 8

	// Responsive breakpoints
	MinimumTerminalWidth = 40
	CompactModeWidth     = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	if width < MinimumTerminalWidth {
		width = MinimumTerminalWidth
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width for the page viewport
func (l LayoutConfig) ContentWidth() int {
	return l.TerminalWidth - ViewportHorizontalPadding
}

// ContentHeight returns the viewport height left after the header and
// footerLines of help.
func (l LayoutConfig) ContentHeight(footerLines int) int {
	h := l.TerminalHeight - HeaderHeight - footerLines
	if h < 1 {
		return 1
	}
	return h
}

// SplitPaneWidths calculates left and right pane widths for a split view
func SplitPaneWidths(totalWidth int) (leftWidth, rightWidth int) {
	leftWidth = int(float64(totalWidth) * SplitPaneLeftRatio)
	rightWidth = totalWidth - leftWidth - SplitPaneDivider
	return
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	w := panelWidth - (PanelBorderWidth * 2) - (PanelPaddingH * 2)
	if w < 1 {
		return 1
	}
	return w
}
