package notifications

import (
	"sync"

	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/logger"
)

// Merger combines the bulk-fetched notification list with live pushes
// from the session channel. Pushed notifications always render ahead of
// bulk entries, each id appears once, and on a duplicate the pushed
// copy wins. It satisfies the realtime router's notification sink.
type Merger struct {
	mu     sync.Mutex
	bulk   []api.Notification
	pushed []api.Notification
}

// NewMerger creates an empty merger
func NewMerger() *Merger {
	return &Merger{}
}

// SetBulk replaces the bulk list, typically after a fresh fetch.
// Pushed entries are kept; a push that has since shown up in the bulk
// response deduplicates in List.
func (m *Merger) SetBulk(list []api.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulk = append([]api.Notification(nil), list...)
}

// Push adds a live notification ahead of everything else. Reports
// whether the notification was new; redelivered ids are dropped.
func (m *Merger) Push(n api.Notification) bool {
	if n.ID == "" {
		logger.Debug("Dropping notification without id", "type", n.Type)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if containsNotification(m.pushed, n.ID) {
		return false
	}
	m.pushed = append([]api.Notification{n}, m.pushed...)

	// splice into the bulk list too, so a consumer that only reads
	// the bulk side still sees it
	if !containsNotification(m.bulk, n.ID) {
		m.bulk = append([]api.Notification{n}, m.bulk...)
	}
	return true
}

// List returns the merged view: pushed entries first, then bulk
// entries, first occurrence of each id wins.
func (m *Merger) List() []api.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool, len(m.pushed)+len(m.bulk))
	out := make([]api.Notification, 0, len(m.pushed)+len(m.bulk))
	for _, n := range m.pushed {
		if !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n)
		}
	}
	for _, n := range m.bulk {
		if !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount counts unread notifications in the merged view
func (m *Merger) UnreadCount() int {
	count := 0
	for _, n := range m.List() {
		if !n.Read {
			count++
		}
	}
	return count
}

// UnreadIDs returns the ids of every unread notification
func (m *Merger) UnreadIDs() []string {
	var ids []string
	for _, n := range m.List() {
		if !n.Read {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// MarkRead flips the read flag on both sides of the merge so the state
// survives regardless of which list a later reader consults
func (m *Merger) MarkRead(ids []string) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.pushed {
		if idSet[m.pushed[i].ID] {
			m.pushed[i].Read = true
		}
	}
	for i := range m.bulk {
		if idSet[m.bulk[i].ID] {
			m.bulk[i].Read = true
		}
	}
}

func containsNotification(list []api.Notification, id string) bool {
	for _, n := range list {
		if n.ID == id {
			return true
		}
	}
	return false
}
