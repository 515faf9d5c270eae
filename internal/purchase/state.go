package purchase

import "revenew/pkg/domain"

// State is the observable surface of the SDK. There are no ambient
// singletons: the Manager owns one State value behind its mutex and hands
// out snapshots.
type State struct {
	Products     []domain.Product
	IsLoading    bool
	// Error is a human-readable message from the purchase flow; the error
	// taxonomy of the log client never surfaces here.
	Error        string
	IsSubscribed bool
}

// State returns a snapshot of the current observable state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe returns a channel that receives a state snapshot after every
// change. Notifications are best-effort: a subscriber that does not keep up
// misses intermediate snapshots, never blocks the SDK.
func (m *Manager) Subscribe() <-chan State {
	ch := make(chan State, 8)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, ch)
	return ch
}

func (m *Manager) snapshotLocked() State {
	snapshot := m.state
	snapshot.Products = append([]domain.Product(nil), m.state.Products...)
	return snapshot
}

// setState applies a mutation under the lock and notifies subscribers with
// the resulting snapshot.
func (m *Manager) setState(mutate func(*State)) {
	m.mu.Lock()
	mutate(&m.state)
	snapshot := m.snapshotLocked()
	subscribers := m.subscribers
	m.mu.Unlock()

	for _, ch := range subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (m *Manager) setLoading(loading bool) {
	m.setState(func(s *State) { s.IsLoading = loading })
}

func (m *Manager) setError(message string) {
	m.setState(func(s *State) { s.Error = message })
}
