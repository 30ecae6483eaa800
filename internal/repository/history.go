package repository

import "gorm.io/gorm"

// Compensation re-applies the inverse of a destructive operation.
type Compensation func(tx *gorm.DB) error

// History is a bounded stack of compensating actions. Pushing past capacity
// discards the oldest entry, so with capacity 1 only the most recent delete
// is recoverable.
type History struct {
	capacity int
	entries  []Compensation
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{capacity: capacity}
}

func (h *History) Push(c Compensation) {
	h.entries = append(h.entries, c)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

func (h *History) Pop() (Compensation, bool) {
	if len(h.entries) == 0 {
		return nil, false
	}
	c := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return c, true
}

func (h *History) Len() int { return len(h.entries) }
