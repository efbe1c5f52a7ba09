package store

import "sync"

type MemStore[T Entity[T]] struct {
	mu    sync.RWMutex
	items []T
}

func NewMemStore[T Entity[T]]() *MemStore[T] {
	return &MemStore[T]{items: make([]T, 0)}
}

func (m *MemStore[T]) List() ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemStore[T]) Get(id int) (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i], true, nil
	}
	var zero T
	return zero, false, nil
}

func (m *MemStore[T]) Filter(pred func(T) bool) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0)
	for _, item := range m.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemStore[T]) Create(t T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t = t.WithID(m.nextID())
	m.items = append(m.items, t)
	return t, nil
}

func (m *MemStore[T]) Update(id int, fn func(T) (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	i := m.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	updated, err := fn(m.items[i])
	if err != nil {
		return zero, err
	}
	m.items[i] = updated.WithID(id)
	return m.items[i], nil
}

func (m *MemStore[T]) Delete(id int) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	removed := m.items[i]
	m.items = append(m.items[:i], m.items[i+1:]...)
	return removed, nil
}

// caller must hold mu
func (m *MemStore[T]) indexOf(id int) int {
	for i, item := range m.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

// caller must hold mu
func (m *MemStore[T]) nextID() int {
	if len(m.items) == 0 {
		return 1
	}
	highest := m.items[0].EntityID()
	for _, item := range m.items[1:] {
		highest = max(highest, item.EntityID())
	}
	return highest + 1
}
