package entities

import "time"

// Moderation bounds. The bulk-delete age limit is imposed by Discord: bulk
// deletion silently cannot touch messages older than 14 days.
const (
	MaxPurgeCount    = 1000
	BulkDeleteMaxAge = 14 * 24 * time.Hour
)

// AutoDeletePolicy configures automatic cleanup for one channel. Messages
// older than Interval are removed by the background sweep.
type AutoDeletePolicy struct {
	ChannelID int64         `json:"channel_id"`
	Interval  time.Duration `json:"interval"`
}
