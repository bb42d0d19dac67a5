// Package notify forwards recorded punches to out-of-band channels.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"parlour-api/models"
	"parlour-api/pkg/logger"
	"parlour-api/pkg/metrics"
)

const (
	sinkTelegram     = "telegram"
	defaultQueueSize = 64
)

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts a line per punch to one chat. NotifyAttendance only enqueues,
// Run performs the sends. A full queue drops the update.
type TelegramNotifier struct {
	sender   Sender
	chatID   int64
	location *time.Location
	queue    chan models.AttendanceUpdate

	closeOnce sync.Once
	log       logger.Logger
	metrics   *metrics.Manager
}

type TelegramOption func(*TelegramNotifier)

func WithQueueSize(n int) TelegramOption {
	return func(t *TelegramNotifier) {
		if n > 0 {
			t.queue = make(chan models.AttendanceUpdate, n)
		}
	}
}

func WithLocation(loc *time.Location) TelegramOption {
	return func(t *TelegramNotifier) {
		if loc != nil {
			t.location = loc
		}
	}
}

func WithMetrics(m *metrics.Manager) TelegramOption {
	return func(t *TelegramNotifier) {
		t.metrics = m
	}
}

func NewTelegramNotifier(sender Sender, chatID int64, opts ...TelegramOption) *TelegramNotifier {
	t := &TelegramNotifier{
		sender:   sender,
		chatID:   chatID,
		location: time.UTC,
		queue:    make(chan models.AttendanceUpdate, defaultQueueSize),
		log:      logger.Named("telegram"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTelegramBot authenticates token against the Bot API.
func NewTelegramBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return bot, nil
}

func (t *TelegramNotifier) NotifyAttendance(ctx context.Context, update models.AttendanceUpdate) {
	select {
	case t.queue <- update:
	default:
		t.metrics.RecordNotifierFailure(sinkTelegram)
		t.log.Warn(ctx, "telegram queue full, dropping update",
			logger.String("employee", update.Attendance.EmployeeID.Hex()))
	}
}

// Run sends queued updates until ctx is cancelled or Close is called.
func (t *TelegramNotifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-t.queue:
			if !ok {
				return
			}
			t.send(ctx, update)
		}
	}
}

// Close stops Run once the queued updates have been sent. NotifyAttendance must not be called afterwards.
func (t *TelegramNotifier) Close() {
	t.closeOnce.Do(func() { close(t.queue) })
}

func (t *TelegramNotifier) send(ctx context.Context, update models.AttendanceUpdate) {
	msg := tgbotapi.NewMessage(t.chatID, FormatAttendanceMessage(update, t.location))
	if _, err := t.sender.Send(msg); err != nil {
		t.metrics.RecordNotifierFailure(sinkTelegram)
		t.log.Error(ctx, "failed to send telegram message", logger.Error(err))
	}
}

// FormatAttendanceMessage renders update as a single chat line.
func FormatAttendanceMessage(update models.AttendanceUpdate, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	verb := "punched in"
	if update.Attendance.Action == models.ActionPunchOut {
		verb = "punched out"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s at %s", update.Employee.Name, verb,
		update.Attendance.Timestamp.In(loc).Format("2006-01-02 15:04"))
	if update.Attendance.Location != "" {
		fmt.Fprintf(&b, " (%s)", update.Attendance.Location)
	}
	if update.Attendance.Notes != "" {
		fmt.Fprintf(&b, "\n%s", update.Attendance.Notes)
	}
	return b.String()
}
