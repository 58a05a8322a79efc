package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Terminal shows a spinner while a toast is pending and prints a styled
// line once it resolves.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	spinners map[ID]*spinner.Spinner

	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	descStyle    lipgloss.Style
}

// NewTerminal creates a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		out:          out,
		spinners:     make(map[ID]*spinner.Spinner),
		successStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		failureStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		descStyle:    r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (t *Terminal) Pending(message string) ID {
	id := nextID()

	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(t.out))
	s.Suffix = " " + message
	s.Start()

	t.mu.Lock()
	t.spinners[id] = s
	t.mu.Unlock()
	return id
}

func (t *Terminal) Success(id ID, title, description string) {
	t.resolve(id, t.successStyle.Render("✓ "+title), description)
}

func (t *Terminal) Failure(id ID, title, description string) {
	t.resolve(id, t.failureStyle.Render("✗ "+title), description)
}

func (t *Terminal) resolve(id ID, headline, description string) {
	t.mu.Lock()
	s, ok := t.spinners[id]
	delete(t.spinners, id)
	t.mu.Unlock()

	if ok {
		s.Stop()
	}

	line := headline
	if description != "" {
		line += " " + t.descStyle.Render(description)
	}
	fmt.Fprintln(t.out, line)
}

// Plain prints one unstyled line per toast state change.
type Plain struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPlain creates a Plain notifier writing to out.
func NewPlain(out io.Writer) *Plain {
	return &Plain{out: out}
}

func (p *Plain) Pending(message string) ID {
	p.println(message)
	return nextID()
}

func (p *Plain) Success(_ ID, title, description string) {
	p.println(join(title, description))
}

func (p *Plain) Failure(_ ID, title, description string) {
	p.println(join(title, description))
}

func (p *Plain) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

func join(title, description string) string {
	if description == "" {
		return title
	}
	return title + " " + description
}
