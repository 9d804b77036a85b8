package games

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barkeep/domain/entities"
)

func TestRegistryOneSessionPerKey(t *testing.T) {
	r := NewRegistry(nil)
	key := SessionKey{ChannelID: 10, UserID: 20}

	s, err := r.Start(key, "game", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, s)
	defer r.Close(s)

	_, err = r.Start(key, "another", time.Minute)
	assert.ErrorIs(t, err, entities.ErrSessionInProgress)

	// A different user in the same channel is a different key.
	other, err := r.Start(SessionKey{ChannelID: 10, UserID: 21}, "game", time.Minute)
	require.NoError(t, err)
	r.Close(other)
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(nil)
	key := SessionKey{ChannelID: 1, UserID: 2}

	s, err := r.Start(key, "game", time.Minute)
	require.NoError(t, err)

	assert.Same(t, s, r.Get(key))
	assert.Same(t, s, r.GetByID(s.ID))
	assert.Equal(t, 1, r.Active())

	require.True(t, r.Close(s))
	assert.Nil(t, r.Get(key))
	assert.Nil(t, r.GetByID(s.ID))
	assert.Equal(t, 0, r.Active())
}

func TestRegistryCloseIsExclusive(t *testing.T) {
	r := NewRegistry(nil)
	s, err := r.Start(SessionKey{ChannelID: 1, UserID: 2}, "game", time.Minute)
	require.NoError(t, err)

	assert.True(t, r.Close(s))
	assert.False(t, r.Close(s), "second close must report the session gone")
}

func TestRegistryExpiryFiresCallback(t *testing.T) {
	expired := make(chan *Session, 1)
	r := NewRegistry(func(s *Session) {
		expired <- s
	})

	key := SessionKey{ChannelID: 1, UserID: 2}
	s, err := r.Start(key, "game", 10*time.Millisecond)
	require.NoError(t, err)

	select {
	case got := <-expired:
		assert.Same(t, s, got)
	case <-time.After(time.Second):
		t.Fatal("expiry callback never fired")
	}

	// The slot frees up and an explicit close reports the session gone.
	assert.Nil(t, r.Get(key))
	assert.False(t, r.Close(s))

	_, err = r.Start(key, "game", time.Minute)
	assert.NoError(t, err)
}

func TestRegistryCloseBeatsExpiry(t *testing.T) {
	var mu sync.Mutex
	expirations := 0
	r := NewRegistry(func(*Session) {
		mu.Lock()
		expirations++
		mu.Unlock()
	})

	s, err := r.Start(SessionKey{ChannelID: 1, UserID: 2}, "game", 20*time.Millisecond)
	require.NoError(t, err)
	require.True(t, r.Close(s))

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 0, expirations, "a closed session must not also expire")
	mu.Unlock()
}

func TestRegistryTouchExtendsLifetime(t *testing.T) {
	expired := make(chan struct{}, 1)
	r := NewRegistry(func(*Session) {
		expired <- struct{}{}
	})

	s, err := r.Start(SessionKey{ChannelID: 1, UserID: 2}, "game", 40*time.Millisecond)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		r.Touch(s, 40*time.Millisecond)
	}

	select {
	case <-expired:
		t.Fatal("session expired despite being touched")
	default:
	}
	require.True(t, r.Close(s))
}
