// Package tui is the interactive contact form.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/form"
	"github.com/osa911/folio/internal/notify"
)

// focus positions, in tab order
const (
	focusName = iota
	focusEmail
	focusMessage
	focusButton
	focusCount
)

// submitResultMsg carries the outcome of form.Submit
type submitResultMsg struct {
	err error
}

// toastMsg is a toast received from the notifier channel
type toastMsg notify.Toast

// Model is the bubbletea model of the contact form
type Model struct {
	ctx      context.Context
	form     *form.Form
	toasts   <-chan notify.Toast
	name     textinput.Model
	email    textinput.Model
	message  textarea.Model
	spinner  spinner.Model
	focus    int
	pending  bool
	toast    *notify.Toast
	errors   contact.FieldErrors
	quitting bool
}

// New creates the model. toasts must be the channel of the notify.Chan the
// form was built with.
func New(ctx context.Context, f *form.Form, toasts <-chan notify.Toast) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.Width = 50
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Width = 50

	message := textarea.New()
	message.Placeholder = "How can I help?"
	message.ShowLineNumbers = false
	message.MaxHeight = 0
	message.SetWidth(52)
	message.SetHeight(6)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = pendingToastStyle

	values := f.Values()
	name.SetValue(values.Name)
	email.SetValue(values.Email)
	message.SetValue(values.Message)

	return Model{
		ctx:     ctx,
		form:    f,
		toasts:  toasts,
		name:    name,
		email:   email,
		message: message,
		spinner: s,
	}
}

// Init starts listening for toasts
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForToast(m.toasts))
}

func waitForToast(ch <-chan notify.Toast) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg(t)
	}
}

func submit(ctx context.Context, f *form.Form) tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg{err: f.Submit(ctx)}
	}
}

// Update handles key presses, submission results and toasts
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			return m, m.setFocus((m.focus + 1) % focusCount)
		case key.Matches(msg, keys.Prev):
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		case key.Matches(msg, keys.Submit):
			return m.startSubmit()
		case key.Matches(msg, keys.Press) && m.focus == focusButton:
			return m.startSubmit()
		}

	case submitResultMsg:
		return m.finishSubmit(msg.err), nil

	case toastMsg:
		t := notify.Toast(msg)
		m.toast = &t
		return m, waitForToast(m.toasts)

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateFocused(msg)
}

// startSubmit copies the inputs into the form and validates them. Invalid
// input is annotated inline and never dispatched.
func (m Model) startSubmit() (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}

	m.form.SetValues(m.values())
	if errs := m.form.Validate(); errs != nil {
		m.errors = errs
		return m, nil
	}

	m.errors = nil
	m.pending = true
	return m, tea.Batch(submit(m.ctx, m.form), m.spinner.Tick)
}

func (m Model) finishSubmit(err error) Model {
	m.pending = false

	var validationErr *contact.ValidationError
	switch {
	case err == nil:
		m.name.Reset()
		m.email.Reset()
		m.message.Reset()
		m.errors = nil
	case errors.As(err, &validationErr):
		m.errors = validationErr.Fields
	}
	// Submission failures keep the entered values
	return m
}

func (m Model) values() contact.Submission {
	return contact.Submission{
		Name:    m.name.Value(),
		Email:   m.email.Value(),
		Message: m.message.Value(),
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()

	switch i {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	case focusMessage:
		return m.message.Focus()
	}
	return nil
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	if m.pending {
		return nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return cmd
}

// View renders the form
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Get in touch"))
	b.WriteString("\n")

	m.field(&b, contact.FieldName, m.name.View())
	m.field(&b, contact.FieldEmail, m.email.View())
	m.field(&b, contact.FieldMessage, m.message.View())

	b.WriteString(m.button())
	b.WriteString("\n")

	if line := m.toastLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab move • ctrl+s send • esc quit"))
	return b.String()
}

func (m Model) field(b *strings.Builder, f contact.Field, input string) {
	b.WriteString(labelStyle.Render(f.Label()))
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n")
	if msg := m.errors.Get(f); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m Model) button() string {
	switch {
	case m.pending:
		return disabledButtonStyle.Render(m.spinner.View() + " Sending...")
	case m.focus == focusButton:
		return focusedButtonStyle.Render("Send Message")
	default:
		return buttonStyle.Render("Send Message")
	}
}

func (m Model) toastLine() string {
	if m.toast == nil {
		return ""
	}

	text := m.toast.Title
	if m.toast.Description != "" {
		text += " " + m.toast.Description
	}

	switch m.toast.Kind {
	case notify.KindSuccess:
		return successToastStyle.Render("✓ " + text)
	case notify.KindFailure:
		return failureToastStyle.Render("✗ " + text)
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.spinner.View(), " ", pendingToastStyle.Render(text))
	}
}
