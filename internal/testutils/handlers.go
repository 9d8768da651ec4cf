// Package testutils provides recording handler doubles shared by tests across
// the module.
package testutils

import (
	"sync"

	"github.com/aretw0/hooksett/pkg/domain"
)

// LoadCall records one Load invocation.
type LoadCall struct {
	Name string
	Role domain.Role
}

// ValidateCall records one Validate invocation.
type ValidateCall struct {
	Name  string
	Value any
	Role  domain.Role
}

// SaveCall records one Save invocation.
type SaveCall struct {
	Name  string
	Value any
	Role  domain.Role
}

// RecordingInput is an input handler that serves values from a fixed map and
// records every call. Validate passes values through unchanged.
type RecordingInput struct {
	mu            sync.Mutex
	Values        map[string]any
	LoadCalls     []LoadCall
	ValidateCalls []ValidateCall
}

// NewRecordingInput returns a handler serving the given values. A nil map
// yields a handler that never has a value (a pure validator).
func NewRecordingInput(values map[string]any) *RecordingInput {
	return &RecordingInput{Values: values}
}

func (h *RecordingInput) Load(name string, role domain.Role) (any, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LoadCalls = append(h.LoadCalls, LoadCall{Name: name, Role: role})
	v, ok := h.Values[name]
	return v, ok, nil
}

func (h *RecordingInput) Validate(name string, value any, role domain.Role) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ValidateCalls = append(h.ValidateCalls, ValidateCall{Name: name, Value: value, Role: role})
	return value, nil
}

// RecordingOutput records every Save call.
type RecordingOutput struct {
	mu        sync.Mutex
	SaveCalls []SaveCall
	Err       error // returned by Save when non-nil
}

func (h *RecordingOutput) Save(name string, value any, role domain.Role) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.SaveCalls = append(h.SaveCalls, SaveCall{Name: name, Value: value, Role: role})
	return h.Err
}

// Saved returns the recorded Save calls for name.
func (h *RecordingOutput) Saved(name string) []SaveCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []SaveCall
	for _, c := range h.SaveCalls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
