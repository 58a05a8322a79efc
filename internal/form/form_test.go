package form

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/osa911/folio/internal/client"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var alice = contact.Submission{Name: "Alice", Email: "alice@example.com", Message: "Hello, I'd like to chat."}

func quietLogger() *logging.Logger {
	return logging.NewWriterLogger(io.Discard, logging.LevelDebug)
}

// countingSubmitter records every call and returns err.
type countingSubmitter struct {
	calls int32
	last  contact.Submission
	err   error
}

func (c *countingSubmitter) Submit(_ context.Context, s contact.Submission) error {
	atomic.AddInt32(&c.calls, 1)
	c.last = s
	return c.err
}

func TestSubmit_InvalidInputMakesNoRequest(t *testing.T) {
	tests := []struct {
		name   string
		values contact.Submission
		want   []contact.Field
	}{
		{"short message only", contact.Submission{Name: "Al", Email: "a@b.com", Message: "Hi"}, []contact.Field{contact.FieldMessage}},
		{"empty form", contact.Submission{}, []contact.Field{contact.FieldName, contact.FieldEmail, contact.FieldMessage}},
		{"bad email", contact.Submission{Name: "Alice", Email: "alice", Message: "Hello, I'd like to chat."}, []contact.Field{contact.FieldEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &countingSubmitter{}
			rec := notify.NewRecorder()
			f := New(sub, rec, WithValues(tt.values), WithLogger(quietLogger()))

			err := f.Submit(context.Background())

			var vErr *contact.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.want, vErr.Fields.Fields())
			assert.Equal(t, tt.want, f.Errors().Fields())
			assert.Equal(t, int32(0), atomic.LoadInt32(&sub.calls))
			assert.Empty(t, rec.Toasts(), "no notification for validation errors")
			assert.Equal(t, tt.values, f.Values())
			assert.False(t, f.Pending())
		})
	}
}

func TestSubmit_LongValuesAreSent(t *testing.T) {
	sub := &countingSubmitter{}
	long := contact.Submission{
		Name:    strings.Repeat("n", 101),
		Email:   "alice@example.com",
		Message: strings.Repeat("m", 5001),
	}
	f := New(sub, nil, WithValues(long), WithLogger(quietLogger()))

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&sub.calls))
	assert.Equal(t, long, sub.last)
}

func TestSubmit_SuccessClearsFields(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	rec := notify.NewRecorder()
	f := New(client.New(srv.URL), rec, WithLogger(quietLogger()))
	f.SetValues(alice)

	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.True(t, f.Values().IsZero())
	assert.Nil(t, f.Errors())
	assert.False(t, f.Pending())

	toasts := rec.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, notify.KindPending, toasts[0].Kind)
	assert.Equal(t, PendingMessage, toasts[0].Title)
	assert.Equal(t, notify.Toast{ID: toasts[0].ID, Kind: notify.KindSuccess, Title: SuccessTitle, Description: SuccessDescription}, toasts[1])
}

func TestSubmit_FailureKeepsFields(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"success":false}`},
		{"success false", http.StatusOK, `{"success":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&requests, 1)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			rec := notify.NewRecorder()
			f := New(client.New(srv.URL), rec, WithLogger(quietLogger()))
			f.SetValues(alice)

			err := f.Submit(context.Background())
			assert.True(t, errors.Is(err, contact.ErrSubmission))

			assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
			assert.Equal(t, alice, f.Values())
			assert.Nil(t, f.Errors())
			assert.False(t, f.Pending())

			last, ok := rec.Last()
			require.True(t, ok)
			assert.Equal(t, notify.KindFailure, last.Kind)
			assert.Equal(t, FailureTitle, last.Title)
			assert.Equal(t, FailureDescription, last.Description)
		})
	}
}

func TestSubmit_ValidationErrorsReplacedOnNextAttempt(t *testing.T) {
	sub := &countingSubmitter{err: errors.New("boom")}
	f := New(sub, nil, WithLogger(quietLogger()))

	f.SetValues(contact.Submission{Name: "A", Email: "alice@example.com", Message: "Hello, I'd like to chat."})
	require.Error(t, f.Submit(context.Background()))
	assert.True(t, f.Errors().Has(contact.FieldName))

	f.Set(contact.FieldName, "Alice")
	err := f.Submit(context.Background())

	var subErr *contact.SubmissionError
	require.True(t, errors.As(err, &subErr), "plain submitter errors are wrapped")
	assert.Equal(t, "submitter failed", subErr.Reason)
	assert.Nil(t, f.Errors())
	assert.Equal(t, "Alice", f.Values().Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&sub.calls))
}

func TestSubmit_ResubmissionBlockedWhilePending(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	sub := SubmitterFunc(func(ctx context.Context, s contact.Submission) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	})

	f := New(sub, notify.NewRecorder(), WithValues(alice), WithLogger(quietLogger()))

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = f.Submit(context.Background())
	}()

	<-started
	assert.True(t, f.Pending())
	assert.ErrorIs(t, f.Submit(context.Background()), contact.ErrInFlight)
	assert.ErrorIs(t, f.Submit(context.Background()), contact.ErrInFlight)

	close(release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one request per submit action")
	assert.False(t, f.Pending())
}

func TestSubmit_PanickingSubmitterReleasesForm(t *testing.T) {
	var calls int32
	sub := SubmitterFunc(func(context.Context, contact.Submission) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("submitter blew up")
		}
		return nil
	})
	f := New(sub, notify.NewRecorder(), WithValues(alice), WithLogger(quietLogger()))

	assert.Panics(t, func() { _ = f.Submit(context.Background()) })
	assert.False(t, f.Pending())
	assert.Equal(t, alice, f.Values(), "values survive a panic")

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.True(t, f.Values().IsZero())
}

func TestSubmit_OneRequestPerAction(t *testing.T) {
	sub := &countingSubmitter{}
	f := New(sub, nil, WithLogger(quietLogger()))

	for i := 0; i < 3; i++ {
		f.SetValues(alice)
		require.NoError(t, f.Submit(context.Background()))
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&sub.calls))
	assert.Equal(t, alice, sub.last)
}

func TestValidateAndReset(t *testing.T) {
	f := New(&countingSubmitter{}, nil, WithValidator(contact.NewValidator()), WithLogger(quietLogger()))
	f.Set(contact.FieldEmail, "nope")

	errs := f.Validate()
	assert.True(t, errs.Has(contact.FieldEmail))
	assert.True(t, f.Errors().Has(contact.FieldName))

	f.Reset()
	assert.True(t, f.Values().IsZero())
	assert.Nil(t, f.Errors())
}
