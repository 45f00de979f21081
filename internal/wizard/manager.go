package wizard

import (
	"context"
	"sync"
)

// Factory builds a wizard for an owner, restoring any persisted draft.
type Factory func(ctx context.Context, owner string) *Wizard

// Manager hands out one wizard per owner. The draft keys are single-writer:
// two sessions for the same owner share the same wizard instance here, and
// concurrent edits from elsewhere race with last-write-wins semantics.
type Manager struct {
	mu      sync.Mutex
	wizards map[string]*Wizard
	factory Factory
}

func NewManager(factory Factory) *Manager {
	return &Manager{
		wizards: make(map[string]*Wizard),
		factory: factory,
	}
}

func (m *Manager) Get(ctx context.Context, owner string) *Wizard {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wizards[owner]; ok {
		return w
	}
	w := m.factory(ctx, owner)
	m.wizards[owner] = w
	return w
}

// CloseAll flushes every active wizard. Called on shutdown so pending edits
// reach the store before the process exits.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wizards {
		_ = w.Close(ctx)
	}
}
