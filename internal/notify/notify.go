// Package notify shows the transient status of a submission to the user:
// a pending toast that later resolves to success or failure.
package notify

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// ID identifies a toast so that its pending state can be resolved later.
type ID uint64

// Kind is the state a toast is in.
type Kind string

const (
	KindPending Kind = "pending"
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
)

// Toast is a single notification.
type Toast struct {
	ID          ID
	Kind        Kind
	Title       string
	Description string
}

// Notifier displays transient status to the user.
type Notifier interface {
	// Pending shows a loading toast and returns its ID.
	Pending(message string) ID
	// Success resolves the toast id as successful.
	Success(id ID, title, description string)
	// Failure resolves the toast id as failed.
	Failure(id ID, title, description string)
}

// ForFile returns a Terminal notifier when f is a terminal and a Plain one otherwise.
func ForFile(f *os.File) Notifier {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewTerminal(f)
	}
	return NewPlain(f)
}

// ids hands out toast IDs shared by all notifiers in the process.
var ids atomic.Uint64

func nextID() ID {
	return ID(ids.Add(1))
}

// Nop discards every toast.
type Nop struct{}

func (Nop) Pending(string) ID          { return nextID() }
func (Nop) Success(ID, string, string) {}
func (Nop) Failure(ID, string, string) {}

// Recorder keeps every toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Pending(message string) ID {
	id := nextID()
	r.add(Toast{ID: id, Kind: KindPending, Title: message})
	return id
}

func (r *Recorder) Success(id ID, title, description string) {
	r.add(Toast{ID: id, Kind: KindSuccess, Title: title, Description: description})
}

func (r *Recorder) Failure(id ID, title, description string) {
	r.add(Toast{ID: id, Kind: KindFailure, Title: title, Description: description})
}

func (r *Recorder) add(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns a copy of everything recorded so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Chan delivers toasts on a channel. The receiver must keep reading, a
// full channel blocks the submitting goroutine.
type Chan struct {
	C chan Toast
}

// NewChan creates a Chan with the given buffer size.
func NewChan(buffer int) *Chan {
	return &Chan{C: make(chan Toast, buffer)}
}

func (c *Chan) Pending(message string) ID {
	id := nextID()
	c.C <- Toast{ID: id, Kind: KindPending, Title: message}
	return id
}

func (c *Chan) Success(id ID, title, description string) {
	c.C <- Toast{ID: id, Kind: KindSuccess, Title: title, Description: description}
}

func (c *Chan) Failure(id ID, title, description string) {
	c.C <- Toast{ID: id, Kind: KindFailure, Title: title, Description: description}
}

// Multi fans every toast out to several notifiers.
type Multi struct {
	notifiers []Notifier

	mu  sync.Mutex
	ids map[ID][]ID
}

// NewMulti creates a Multi over ns.
func NewMulti(ns ...Notifier) *Multi {
	return &Multi{notifiers: ns, ids: make(map[ID][]ID)}
}

func (m *Multi) Pending(message string) ID {
	id := nextID()
	inner := make([]ID, len(m.notifiers))
	for i, n := range m.notifiers {
		inner[i] = n.Pending(message)
	}
	m.mu.Lock()
	m.ids[id] = inner
	m.mu.Unlock()
	return id
}

func (m *Multi) Success(id ID, title, description string) {
	for i, inner := range m.take(id) {
		m.notifiers[i].Success(inner, title, description)
	}
}

func (m *Multi) Failure(id ID, title, description string) {
	for i, inner := range m.take(id) {
		m.notifiers[i].Failure(inner, title, description)
	}
}

// take returns the per-notifier IDs of id and forgets them. An unknown id
// is passed through unchanged.
func (m *Multi) take(id ID) []ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	inner, ok := m.ids[id]
	if !ok {
		inner = make([]ID, len(m.notifiers))
		for i := range inner {
			inner[i] = id
		}
		return inner
	}
	delete(m.ids, id)
	return inner
}
