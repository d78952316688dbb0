package saves

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// slot pairs a snapshot with its identity.
type slot struct {
	id       uuid.UUID
	snapshot Snapshot
	savedAt  time.Time
}

// SlotInfo provides read-only info about a save slot.
type SlotInfo struct {
	Index       int
	ID          uuid.UUID
	Description string
	Version     uint64
	CreatedAt   time.Time
	Current     bool
}

// SaveManager manages bounded save slots and a checkpoint stack for one
// subject. Slots are ordered oldest-first; when the capacity is exceeded the
// oldest slot is evicted. Checkpoints are independent of the slot list.
type SaveManager struct {
	mu sync.Mutex

	slots       []slot
	checkpoints []Snapshot
	current     int

	maxSlots       int
	maxCheckpoints int // 0 means unbounded
}

// NewSaveManager creates a save manager holding at most maxSlots slots.
func NewSaveManager(maxSlots int) *SaveManager {
	if maxSlots <= 0 {
		maxSlots = 10 // Default
	}
	return &SaveManager{
		maxSlots: maxSlots,
		current:  -1,
	}
}

// SetMaxCheckpoints bounds the checkpoint stack. Zero means unbounded.
// If the stack is larger, oldest checkpoints are dropped.
func (m *SaveManager) SetMaxCheckpoints(max int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.maxCheckpoints = max
	if max > 0 && len(m.checkpoints) > max {
		excess := len(m.checkpoints) - max
		m.checkpoints = m.checkpoints[excess:]
	}
}

// Save captures the subject and appends a new slot, evicting the oldest
// slot when the capacity is exceeded. Returns the new slot's index, which
// becomes the current slot.
func (m *SaveManager) Save(o Originator) int {
	snap := o.Capture()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots = append(m.slots, slot{
		id:       uuid.New(),
		snapshot: snap,
		savedAt:  time.Now(),
	})

	if len(m.slots) > m.maxSlots {
		excess := len(m.slots) - m.maxSlots
		m.slots = m.slots[excess:]
	}

	m.current = len(m.slots) - 1
	return m.current
}

// Load restores the subject from the slot at index and makes it current.
// An index of -1 loads the current slot. Fails with ErrInvalidSlot when the
// index is out of bounds, or ErrNoSaves when no slots exist.
func (m *SaveManager) Load(o Originator, index int) error {
	m.mu.Lock()
	if len(m.slots) == 0 {
		m.mu.Unlock()
		return ErrNoSaves
	}

	if index == -1 {
		index = m.current
	}
	if index < 0 || index >= len(m.slots) {
		m.mu.Unlock()
		return ErrInvalidSlot
	}

	snap := m.slots[index].snapshot
	m.mu.Unlock()

	// Restore without holding the lock
	if err := o.Restore(snap); err != nil {
		return err
	}

	m.mu.Lock()
	if index < len(m.slots) {
		m.current = index
	}
	m.mu.Unlock()
	return nil
}

// Delete removes the slot at index. Fails with ErrInvalidSlot when the
// index is out of range. The current index is clamped to the new end when
// it pointed past it.
func (m *SaveManager) Delete(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.slots) {
		return ErrInvalidSlot
	}

	m.slots = append(m.slots[:index], m.slots[index+1:]...)

	if m.current >= len(m.slots) {
		m.current = len(m.slots) - 1
	}
	return nil
}

// List returns read-only info for all slots, oldest first.
func (m *SaveManager) List() []SlotInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]SlotInfo, len(m.slots))
	for i, s := range m.slots {
		result[i] = SlotInfo{
			Index:       i,
			ID:          s.id,
			Description: s.snapshot.Description(),
			Version:     s.snapshot.Version(),
			CreatedAt:   s.snapshot.CreatedAt(),
			Current:     i == m.current,
		}
	}
	return result
}

// Count returns the number of save slots.
func (m *SaveManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// Current returns the current slot index, or -1 when no slots exist.
func (m *SaveManager) Current() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// MaxSlots returns the slot capacity.
func (m *SaveManager) MaxSlots() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxSlots
}

// Checkpoint captures the subject onto the checkpoint stack.
func (m *SaveManager) Checkpoint(o Originator) {
	snap := o.Capture()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkpoints = append(m.checkpoints, snap)

	if m.maxCheckpoints > 0 && len(m.checkpoints) > m.maxCheckpoints {
		excess := len(m.checkpoints) - m.maxCheckpoints
		m.checkpoints = m.checkpoints[excess:]
	}
}

// RestoreCheckpoint restores the subject from the most recent checkpoint.
// The checkpoint stays on the stack so it can be restored again. Fails with
// ErrNoCheckpoint when no checkpoint exists.
func (m *SaveManager) RestoreCheckpoint(o Originator) error {
	m.mu.Lock()
	if len(m.checkpoints) == 0 {
		m.mu.Unlock()
		return ErrNoCheckpoint
	}
	snap := m.checkpoints[len(m.checkpoints)-1]
	m.mu.Unlock()

	return o.Restore(snap)
}

// CheckpointCount returns the number of checkpoints on the stack.
func (m *SaveManager) CheckpointCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.checkpoints)
}

// ClearCheckpoints drops all checkpoints.
func (m *SaveManager) ClearCheckpoints() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkpoints = nil
}
