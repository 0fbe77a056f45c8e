package tui

// Color constants for the worktally TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	ColorPrimaryText   = "#E6EAF2" // Primary text
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorHelpText      = "240"     // Dark grey for help text

	ColorAccentMain   = "#7C3AED" // Accent elements
	ColorAccentBright = "#A78BFA" // Highlights, the running clock

	ColorSuccess = "#22C55E" // Clocked in
	ColorWarning = "#F59E0B" // Clocked out / behind target
)
