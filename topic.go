package pubsub

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// topicEntry is the set of live subscriptions registered for one topic
// identifier (exact or pattern). Membership changes are serialized per entry;
// dispatch works off snapshots so a publish never holds the entry lock while
// enqueueing.
type topicEntry[T any] struct {
	name string
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription[T]
}

func newTopicEntry[T any](name string) *topicEntry[T] {
	return &topicEntry[T]{
		name: name,
		subs: make(map[uuid.UUID]*Subscription[T]),
	}
}

func (e *topicEntry[T]) add(sub *Subscription[T]) {
	e.mu.Lock()
	e.subs[sub.id] = sub
	e.mu.Unlock()
}

func (e *topicEntry[T]) remove(id uuid.UUID) bool {
	e.mu.Lock()
	_, ok := e.subs[id]
	delete(e.subs, id)
	e.mu.Unlock()
	return ok
}

// snapshot returns the current membership. A subscription fully removed
// before the call is absent; one fully added before the call is present.
func (e *topicEntry[T]) snapshot() []*Subscription[T] {
	e.mu.RLock()
	defer e.mu.RUnlock()

	subs := make([]*Subscription[T], 0, len(e.subs))
	for _, sub := range e.subs {
		subs = append(subs, sub)
	}
	return subs
}

func (e *topicEntry[T]) len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}

// isPattern reports whether a topic identifier is a wildcard pattern.
func isPattern(topic string) bool {
	return strings.ContainsAny(topic, "*?")
}

// wildcardMatch matches name against pattern, where '*' matches any run of
// characters (including none) and '?' matches exactly one. No character
// classes and no escaping; matching is byte-wise and case-sensitive.
func wildcardMatch(pattern, name string) bool {
	var pi, ni int
	star, mark := -1, 0

	for ni < len(name) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == name[ni]):
			pi++
			ni++
		case pi < len(pattern) && pattern[pi] == '*':
			star, mark = pi, ni
			pi++
		case star >= 0:
			// Mismatch after a star: widen what the star consumed and retry.
			mark++
			pi = star + 1
			ni = mark
		default:
			return false
		}
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
