package testutil

import (
	"context"
	"sync"
)

// MemorySlot is an in-memory notes.Slot with injectable failures.
type MemorySlot struct {
	mu      sync.Mutex
	values  map[string][]byte
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemorySlot creates an empty slot store.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

// Load implements notes.Slot.
func (slot *MemorySlot) Load(_ context.Context, key string) ([]byte, error) {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.LoadErr != nil {
		return nil, slot.LoadErr
	}
	value, ok := slot.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

// Save implements notes.Slot.
func (slot *MemorySlot) Save(_ context.Context, key string, data []byte) error {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.SaveErr != nil {
		return slot.SaveErr
	}
	slot.values[key] = append([]byte(nil), data...)
	slot.saves++
	return nil
}

// Put seeds a raw value.
func (slot *MemorySlot) Put(key string, data []byte) {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	slot.values[key] = append([]byte(nil), data...)
}

// Saves returns the number of successful writes.
func (slot *MemorySlot) Saves() int {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.saves
}
