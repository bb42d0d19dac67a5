package services

import (
	"time"

	"parlour-api/pkg/logger"
	"parlour-api/pkg/metrics"
)

// Option configures an AttendanceService.
type Option func(*AttendanceService)

// WithNotifier adds a sink that receives every recorded punch, in ledger order per employee.
func WithNotifier(n Notifier) Option {
	return func(s *AttendanceService) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

// WithClock replaces time.Now as the source of punch and createdAt times.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxClockSkew bounds how far into the future a client supplied timestamp may lie.
func WithMaxClockSkew(d time.Duration) Option {
	return func(s *AttendanceService) {
		if d >= 0 {
			s.maxClockSkew = d
		}
	}
}

// WithStatusConcurrency limits parallel latest-entry lookups when listing statuses.
func WithStatusConcurrency(n int) Option {
	return func(s *AttendanceService) {
		if n > 0 {
			s.statusConcurrency = n
		}
	}
}

// WithLocation sets the timezone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *AttendanceService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets the service logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(s *AttendanceService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records punch outcomes. A nil manager disables recording.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *AttendanceService) {
		s.metrics = m
	}
}
