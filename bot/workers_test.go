package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func agedMessage(id string, age time.Duration, now time.Time) *discordgo.Message {
	return &discordgo.Message{ID: id, Timestamp: now.Add(-age)}
}

func TestSplitSweepBatch(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-time.Hour)
	bulkBoundary := now.Add(-14 * 24 * time.Hour)

	messages := []*discordgo.Message{
		agedMessage("fresh", 10*time.Minute, now),
		agedMessage("expired", 2*time.Hour, now),
		agedMessage("dayold", 24*time.Hour, now),
		agedMessage("ancient", 20*24*time.Hour, now),
	}

	bulk, single := splitSweepBatch(messages, cutoff, bulkBoundary)

	// Fresh messages stay, expired young ones bulk-delete, and anything past
	// the platform's bulk boundary must go one by one.
	assert.Equal(t, []string{"expired", "dayold"}, bulk)
	assert.Equal(t, []string{"ancient"}, single)
}

func TestSplitSweepBatchNothingExpired(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-time.Hour)
	bulkBoundary := now.Add(-14 * 24 * time.Hour)

	messages := []*discordgo.Message{
		agedMessage("a", time.Minute, now),
		agedMessage("b", 59*time.Minute, now),
	}

	bulk, single := splitSweepBatch(messages, cutoff, bulkBoundary)
	assert.Empty(t, bulk)
	assert.Empty(t, single)
}
