package moderation

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func msgAgedDays(id string, days int, now time.Time) *discordgo.Message {
	return &discordgo.Message{ID: id, Timestamp: now.Add(-time.Duration(days) * 24 * time.Hour)}
}

func TestSplitPurgeBatchSkipsPastBulkBoundary(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-14 * 24 * time.Hour)

	messages := []*discordgo.Message{
		msgAgedDays("young", 1, now),
		msgAgedDays("twoweeks", 13, now),
		msgAgedDays("ancient", 15, now),
		msgAgedDays("older", 30, now),
	}

	batch, skipped := splitPurgeBatch(messages, cutoff)

	assert.Equal(t, []string{"young", "twoweeks"}, batch)
	assert.Equal(t, 2, skipped)
}

func TestSplitPurgeBatchAllYoung(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-14 * 24 * time.Hour)

	var messages []*discordgo.Message
	for i := 0; i < 5; i++ {
		messages = append(messages, msgAgedDays(fmt.Sprintf("m%d", i), 0, now))
	}

	batch, skipped := splitPurgeBatch(messages, cutoff)
	assert.Len(t, batch, 5)
	assert.Zero(t, skipped)
}

func TestSplitPurgeBatchEmpty(t *testing.T) {
	batch, skipped := splitPurgeBatch(nil, time.Now())
	assert.Empty(t, batch)
	assert.Zero(t, skipped)
}
