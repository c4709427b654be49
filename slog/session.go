// Package slog provides logging decorators for wikidoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikidoc"
)

// Ensure LoggingSession implements wikidoc.Session.
var _ wikidoc.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with logging of logins and page fetches.
type LoggingSession struct {
	next   wikidoc.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next wikidoc.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Login delegates to the wrapped session. The password is never logged.
func (s *LoggingSession) Login(ctx context.Context, password string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("login",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Login(ctx, password)
}

// Fetch delegates to the wrapped session and logs at debug level.
func (s *LoggingSession) Fetch(ctx context.Context, id string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("fetch",
			"id", id,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, id)
}
