// Package notify provides synchronous typed notification topics.
//
// Publishing runs every subscriber in subscription order on the caller's
// goroutine before Publish returns. Topics are not safe for concurrent use;
// they belong to the single event loop that drives the player core.
package notify

import "github.com/google/uuid"

// Subscription identifies a registered handler
type Subscription struct {
	id    uuid.UUID
	unsub func(uuid.UUID)
}

// ID returns the subscription identifier.
func (s Subscription) ID() uuid.UUID {
	return s.id
}

// Unsubscribe removes the handler. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.unsub != nil {
		s.unsub(s.id)
	}
}

type handler[T any] struct {
	id uuid.UUID
	fn func(T)
}

// Topic fans a value out to its subscribers
type Topic[T any] struct {
	handlers []handler[T]
}

// Subscribe registers fn and returns a handle to remove it.
func (t *Topic[T]) Subscribe(fn func(T)) Subscription {
	id := uuid.New()
	t.handlers = append(t.handlers, handler[T]{id: id, fn: fn})
	return Subscription{id: id, unsub: t.remove}
}

// Publish delivers v to every subscriber.
func (t *Topic[T]) Publish(v T) {
	// snapshot so handlers may unsubscribe while being notified
	hs := make([]handler[T], len(t.handlers))
	copy(hs, t.handlers)
	for _, h := range hs {
		h.fn(v)
	}
}

// Len returns the number of subscribers.
func (t *Topic[T]) Len() int {
	return len(t.handlers)
}

func (t *Topic[T]) remove(id uuid.UUID) {
	for i, h := range t.handlers {
		if h.id == id {
			t.handlers = append(t.handlers[:i], t.handlers[i+1:]...)
			return
		}
	}
}
