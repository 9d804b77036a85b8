package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorGold    = 0xF1C40F // Payouts and achievements
)

// Interactive session timeouts, in seconds on the Discord side.
const (
	BlackjackTimeoutSeconds = 120
	DiceDuelTimeoutSeconds  = 120
	HighLowTimeoutSeconds   = 60
	TriviaTimeoutSeconds    = 30
	PollDurationSeconds     = 1800
)

// UI constants
const (
	MaxButtonsPerRow = 5
	ShopPageSize     = 5
	LeaderboardSize  = 10
)
