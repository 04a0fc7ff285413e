package kvstore

import (
	"sort"
	"sync"

	"go.uber.org/atomic"
)

type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	dirty atomic.Bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.dirty.Store(true)
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		delete(m.data, key)
		m.dirty.Store(true)
	}
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	m.dirty.Store(true)
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

// Restore replaces the whole content. The store is clean afterwards.
func (m *Memory) Restore(data map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string, len(data))
	for k, v := range data {
		m.data[k] = v
	}
	m.dirty.Store(false)
}

func (m *Memory) TakeDirty() bool {
	return m.dirty.Swap(false)
}

func (m *Memory) MarkDirty() {
	m.dirty.Store(true)
}
