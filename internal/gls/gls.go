// Package gls provides a per-goroutine slot stack. The local binding tracker
// uses it as its active-observer slot: a capture frame is pushed when a
// tracked invocation starts and popped on exit, and nested invocations on the
// same goroutine stack naturally (inner push shadows, inner pop restores).
//
// Frames are never shared across goroutines, so one slot per goroutine is the
// whole concurrency model; the map below is only guarded because unrelated
// goroutines touch it concurrently.
package gls

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var (
	mu     sync.Mutex
	stacks = make(map[uint64][]any)
)

var goroutinePrefix = []byte("goroutine ")

// ID returns the current goroutine's id, parsed from the stack header.
// This is the standard trick (runtime.Stack begins "goroutine N [state]:");
// it is slow, which is acceptable here: it runs once per tracked invocation
// and once per tracked declaration, never per assignment.
func ID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Push installs v as the current goroutine's active slot value, shadowing any
// previous one.
func Push(v any) {
	id := ID()
	mu.Lock()
	defer mu.Unlock()
	stacks[id] = append(stacks[id], v)
}

// Pop removes the most recent slot value for the current goroutine and
// restores the previous one. Returns nil if the stack is empty.
func Pop() any {
	id := ID()
	mu.Lock()
	defer mu.Unlock()
	st := stacks[id]
	if len(st) == 0 {
		return nil
	}
	top := st[len(st)-1]
	if len(st) == 1 {
		delete(stacks, id)
	} else {
		stacks[id] = st[:len(st)-1]
	}
	return top
}

// Top returns the current goroutine's active slot value without removing it,
// or nil when nothing is installed.
func Top() any {
	id := ID()
	mu.Lock()
	defer mu.Unlock()
	st := stacks[id]
	if len(st) == 0 {
		return nil
	}
	return st[len(st)-1]
}
