package booking

import (
	"testing"
	"time"

	"hoardify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, s *Subscription) []models.EnrichedBooking {
	t.Helper()
	select {
	case snap, ok := <-s.C:
		require.True(t, ok, "subscription closed")
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return nil
	}
}

func TestView_ReplaceAndSnapshot(t *testing.T) {
	v := NewView()
	_, synced := v.Snapshot()
	assert.False(t, synced)

	v.Replace([]models.EnrichedBooking{enriched("b1", "u1", 10, models.BookingPending, time.Now())})

	list, synced := v.Snapshot()
	assert.True(t, synced)
	require.Len(t, list, 1)

	// snapshot is a copy
	list[0].Status = models.BookingRejected
	b, ok := v.Get("b1")
	require.True(t, ok)
	assert.Equal(t, models.BookingPending, b.Status)
}

func TestView_ApplyAndRevert(t *testing.T) {
	v := NewView()
	v.Replace([]models.EnrichedBooking{enriched("b1", "u1", 10, models.BookingPending, time.Now())})

	revert, ok := v.Apply("b1", func(b *models.EnrichedBooking) { b.Status = models.BookingApproved })
	require.True(t, ok)
	b, _ := v.Get("b1")
	assert.Equal(t, models.BookingApproved, b.Status)

	revert()
	b, _ = v.Get("b1")
	assert.Equal(t, models.BookingPending, b.Status)
}

func TestView_RevertSkipsWhenSuperseded(t *testing.T) {
	v := NewView()
	v.Replace([]models.EnrichedBooking{enriched("b1", "u1", 10, models.BookingPending, time.Now())})

	revert, _ := v.Apply("b1", func(b *models.EnrichedBooking) { b.Status = models.BookingApproved })
	// a remote snapshot lands before the write fails
	v.Replace([]models.EnrichedBooking{enriched("b1", "u1", 10, models.BookingRejected, time.Now())})

	revert()
	b, _ := v.Get("b1")
	assert.Equal(t, models.BookingRejected, b.Status)
}

func TestView_ApplyUnknownID(t *testing.T) {
	v := NewView()
	revert, ok := v.Apply("missing", func(b *models.EnrichedBooking) { b.Status = models.BookingApproved })
	assert.False(t, ok)
	assert.NotPanics(t, revert)
}

func TestView_SubscribeAndUnsubscribe(t *testing.T) {
	v := NewView()
	v.Replace([]models.EnrichedBooking{enriched("b1", "u1", 10, models.BookingPending, time.Now())})

	sub := v.Subscribe()
	assert.Equal(t, 1, v.Subscribers())
	assert.Len(t, receive(t, sub), 1)

	v.Replace([]models.EnrichedBooking{
		enriched("b1", "u1", 10, models.BookingPending, time.Now()),
		enriched("b2", "u2", 20, models.BookingPending, time.Now()),
	})
	assert.Len(t, receive(t, sub), 2)

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, v.Subscribers())

	v.Replace(nil)
	_, ok := <-sub.C
	assert.False(t, ok, "channel closed after unsubscribe")
}

func TestView_SlowSubscriberGetsLatest(t *testing.T) {
	v := NewView()
	sub := v.Subscribe()
	defer sub.Unsubscribe()

	for i := 1; i <= 3; i++ {
		list := make([]models.EnrichedBooking, i)
		for j := range list {
			list[j] = enriched(string(rune('a'+j)), "u", 1, models.BookingPending, time.Now())
		}
		v.Replace(list)
	}

	assert.Len(t, receive(t, sub), 3)
	select {
	case <-sub.C:
		t.Fatal("stale snapshot still queued")
	default:
	}
}
