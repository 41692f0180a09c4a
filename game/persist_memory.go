package game

import (
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// MemoryTableTracker keeps table snapshots in process memory. Snapshots
// are stored serialized so Save/Load round-trips behave the same as the
// redis tracker.
type MemoryTableTracker struct {
	mu        sync.Mutex
	snapshots map[string][]byte
}

func NewMemoryTableTracker() *MemoryTableTracker {
	return &MemoryTableTracker{
		snapshots: make(map[string][]byte),
	}
}

func (m *MemoryTableTracker) Save(tableID string, snapshot *TableSnapshot) error {
	data, err := jsoniter.Marshal(snapshot)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[tableID] = data
	return nil
}

func (m *MemoryTableTracker) Load(tableID string) (*TableSnapshot, error) {
	m.mu.Lock()
	data, ok := m.snapshots[tableID]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("Table state for table %s is not found", tableID)
	}
	snapshot := &TableSnapshot{}
	if err := jsoniter.Unmarshal(data, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (m *MemoryTableTracker) Remove(tableID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, tableID)
	return nil
}
