package behavior

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// DefaultHistorySize is used when a memory is created with a non-positive
// capacity.
const DefaultHistorySize = 256

// ringMemory keeps the most recent decision records, up to size, with binary
// (gob) persistence.
type ringMemory struct {
	mu   sync.RWMutex
	size int
	list []DecisionRecord
}

// NewMemory creates a memory holding at most capacity records.
func NewMemory(capacity int) Memory {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &ringMemory{size: capacity, list: make([]DecisionRecord, 0, capacity)}
}

func (m *ringMemory) AppendDecision(rec DecisionRecord) {
	m.mu.Lock()
	if len(m.list) == m.size {
		copy(m.list, m.list[1:])
		m.list = m.list[:len(m.list)-1]
	}
	m.list = append(m.list, rec)
	m.mu.Unlock()
}

func (m *ringMemory) History() []DecisionRecord {
	m.mu.RLock()
	cp := make([]DecisionRecord, len(m.list))
	copy(cp, m.list)
	m.mu.RUnlock()
	return cp
}

func (m *ringMemory) Reset() {
	m.mu.Lock()
	m.list = m.list[:0]
	m.mu.Unlock()
}

func (m *ringMemory) Save() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.list); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load replaces the history. Records beyond capacity are dropped from the
// oldest end.
func (m *ringMemory) Load(b []byte) error {
	var list []DecisionRecord
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&list); err != nil {
		return err
	}
	if len(list) > m.size {
		list = list[len(list)-m.size:]
	}
	m.mu.Lock()
	m.list = append(m.list[:0], list...)
	m.mu.Unlock()
	return nil
}

// LoadMemoryFile creates a memory of the given capacity and restores it from
// path. A missing file yields an empty memory.
func LoadMemoryFile(path string, capacity int) (Memory, error) {
	m := NewMemory(capacity)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	if err := m.Load(b); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", path, err)
	}
	return m, nil
}

// SaveMemoryFile writes m to path, replacing it atomically.
func SaveMemoryFile(m Memory, path string) error {
	b, err := m.Save()
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
