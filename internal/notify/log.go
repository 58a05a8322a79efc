package notify

import "github.com/osa911/folio/internal/logging"

// Log writes toasts to the application log.
type Log struct {
	logger *logging.Logger
}

// NewLog creates a Log notifier.
func NewLog(logger *logging.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Pending(message string) ID {
	id := nextID()
	l.logger.Info("[toast %d] %s", id, message)
	return id
}

func (l *Log) Success(id ID, title, description string) {
	l.logger.Info("[toast %d] %s", id, join(title, description))
}

func (l *Log) Failure(id ID, title, description string) {
	l.logger.Warn("[toast %d] %s", id, join(title, description))
}
