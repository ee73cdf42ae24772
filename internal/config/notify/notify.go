// Package notify delivers settings changes to subscribed observers.
package notify

import (
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("adocmark.config")
}

// Change describes one setting whose value changed.
type Change struct {
	// Path is the dotted setting path, e.g. "highlight.codeBlock".
	Path string

	// OldValue is the previous value (may be nil).
	OldValue any

	// NewValue is the new value.
	NewValue any

	// Source identifies where the change came from ("file", "env", ...).
	Source string
}

// Observer is called when a setting changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	prefix   string
	observer Observer
}

// Notifier manages subscriptions. Observers run synchronously on the
// notifying goroutine, in subscription order.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]entry
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{observers: make(map[uint64]entry)}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at or below path.
// Subscribing to "highlight" receives changes to "highlight.delay".
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = entry{prefix: path, observer: observer}
	return &Subscription{id: id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

// Count returns the number of active subscriptions.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Notify delivers change to every observer whose path covers it. A
// panicking observer is logged and does not stop delivery.
func (n *Notifier) Notify(change Change) {
	for _, obs := range n.matching(change.Path) {
		deliver(obs, change)
	}
}

// NotifyAll delivers each change in order.
func (n *Notifier) NotifyAll(changes []Change) {
	for _, c := range changes {
		n.Notify(c)
	}
}

func (n *Notifier) matching(path string) []Observer {
	n.mu.RLock()
	defer n.mu.RUnlock()

	ids := make([]uint64, 0, len(n.observers))
	for id, e := range n.observers {
		if covers(e.prefix, path) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = n.observers[id].observer
	}
	return out
}

func covers(prefix, path string) bool {
	return prefix == "" || path == prefix || strings.HasPrefix(path, prefix+".")
}

func deliver(obs Observer, change Change) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("notify: observer for %s panicked: %v", change.Path, r)
		}
	}()
	obs(change)
}
