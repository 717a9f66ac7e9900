package store

import "fmt"

// Memory is a map-backed Medium. Quota, when positive, caps the total
// number of bytes held across all values.
type Memory struct {
	Quota    int
	items    map[string]string
	disabled bool
}

// NewMemory returns an empty in-process medium.
func NewMemory() *Memory {
	return &Memory{items: map[string]string{}}
}

// Disable makes every subsequent call fail with ErrDisabled.
func (m *Memory) Disable() { m.disabled = true }

func (m *Memory) GetItem(key string) (string, bool, error) {
	if m.disabled {
		return "", false, ErrDisabled
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(key, value string) error {
	if m.disabled {
		return ErrDisabled
	}
	if m.Quota > 0 {
		used := len(value)
		for k, v := range m.items {
			if k != key {
				used += len(v)
			}
		}
		if used > m.Quota {
			return fmt.Errorf("set %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
		}
	}
	if m.items == nil {
		m.items = map[string]string{}
	}
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(key string) error {
	if m.disabled {
		return ErrDisabled
	}
	delete(m.items, key)
	return nil
}
