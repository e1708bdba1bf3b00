package booking

import (
	"sync"

	"hoardify/models"
)

// View is the in-memory copy of the enriched booking list that admin screens read.
// A listener replaces it wholesale on every remote change; status writes patch it
// optimistically and roll back if the write fails.
type View struct {
	mu       sync.RWMutex
	bookings []models.EnrichedBooking
	index    map[string]int
	synced   bool

	subs   map[uint64]chan []models.EnrichedBooking
	nextID uint64
}

// NewView returns an empty, unsynced view.
func NewView() *View {
	return &View{
		index: make(map[string]int),
		subs:  make(map[uint64]chan []models.EnrichedBooking),
	}
}

// Replace swaps in a full snapshot and notifies subscribers.
func (v *View) Replace(bookings []models.EnrichedBooking) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.bookings = append(make([]models.EnrichedBooking, 0, len(bookings)), bookings...)
	v.index = make(map[string]int, len(bookings))
	for i, b := range v.bookings {
		v.index[b.ID] = i
	}
	v.synced = true
	v.publishLocked()
}

// Synced reports whether at least one snapshot has been received.
func (v *View) Synced() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.synced
}

// Snapshot returns a copy of the current list and whether the view is synced.
func (v *View) Snapshot() ([]models.EnrichedBooking, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.copyLocked(), v.synced
}

// Get returns one booking from the view.
func (v *View) Get(id string) (models.EnrichedBooking, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	i, ok := v.index[id]
	if !ok {
		return models.EnrichedBooking{}, false
	}
	return v.bookings[i], true
}

// Apply mutates one booking in place and publishes the result. The returned revert
// restores the previous value, unless a newer snapshot or write has replaced the entry
// in the meantime. When id is unknown Apply does nothing and returns a no-op revert.
func (v *View) Apply(id string, mutate func(*models.EnrichedBooking)) (revert func(), ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i, ok := v.index[id]
	if !ok {
		return func() {}, false
	}
	prev := v.bookings[i]
	mutate(&v.bookings[i])
	applied := v.bookings[i]
	v.publishLocked()

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		j, ok := v.index[id]
		if !ok || v.bookings[j] != applied {
			return
		}
		v.bookings[j] = prev
		v.publishLocked()
	}, true
}

// Subscription delivers the latest snapshot on C until Unsubscribe is called.
// Slow consumers only ever see the most recent snapshot. Delivered slices are shared
// between subscribers and must not be modified.
type Subscription struct {
	C <-chan []models.EnrichedBooking

	once   sync.Once
	cancel func()
}

// Unsubscribe stops delivery and closes C. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// Subscribe registers a consumer. A synced view sends its current snapshot immediately.
func (v *View) Subscribe() *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan []models.EnrichedBooking, 1)
	id := v.nextID
	v.nextID++
	v.subs[id] = ch
	if v.synced {
		ch <- v.copyLocked()
	}

	return &Subscription{
		C: ch,
		cancel: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if c, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(c)
			}
		},
	}
}

// Subscribers returns the number of live subscriptions.
func (v *View) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}

func (v *View) copyLocked() []models.EnrichedBooking {
	return append(make([]models.EnrichedBooking, 0, len(v.bookings)), v.bookings...)
}

func (v *View) publishLocked() {
	if len(v.subs) == 0 {
		return
	}
	snap := v.copyLocked()
	for _, ch := range v.subs {
		// drop the undelivered snapshot, if any, in favour of the new one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
