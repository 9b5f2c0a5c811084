package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SashaSaw/Habitat-sub000/internal/constants"
	"github.com/SashaSaw/Habitat-sub000/internal/engine"
	"github.com/SashaSaw/Habitat-sub000/internal/logger"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// Sink receives reminder text. The CLI wires a stdout sink; tests capture.
type Sink interface {
	Notify(text string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(text string) error

func (f SinkFunc) Notify(text string) error { return f(text) }

// Scheduler fires the morning must-do digest, the evening summary, and
// per-habit reminders on a cron schedule derived from settings.
type Scheduler struct {
	engine   *engine.Engine
	sink     Sink
	settings models.Settings
	cron     *cron.Cron
	now      func() time.Time

	// Reload, when set, refreshes the engine snapshot from storage before
	// each digest so a long-running daemon sees edits made by other runs.
	Reload func() error
}

func New(eng *engine.Engine, sink Sink, settings models.Settings) (*Scheduler, error) {
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	return &Scheduler{
		engine:   eng,
		sink:     sink,
		settings: settings,
		cron:     cron.New(cron.WithLocation(loc)),
		now:      time.Now,
	}, nil
}

// Start registers the cron jobs and begins firing them. It returns without
// blocking; use Run to block until a context is cancelled.
func (s *Scheduler) Start() error {
	morning, err := cronSpec(s.settings.MorningReminder)
	if err != nil {
		return fmt.Errorf("invalid morning reminder time: %w", err)
	}
	evening, err := cronSpec(s.settings.EveningSummary)
	if err != nil {
		return fmt.Errorf("invalid evening summary time: %w", err)
	}

	if _, err := s.cron.AddFunc(morning, func() { s.fire(s.MorningDigest()) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(evening, func() { s.fire(s.EveningSummary()) }); err != nil {
		return err
	}

	for _, h := range s.engine.Habits(false) {
		if h.ReminderTime == "" {
			continue
		}
		spec, err := cronSpec(h.ReminderTime)
		if err != nil {
			logger.Warn("skipping habit reminder", "habit", h.Name, "time", h.ReminderTime, "error", err)
			continue
		}
		id := h.ID
		if _, err := s.cron.AddFunc(spec, func() { s.fire(s.habitReminder(id)) }); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Run starts the scheduler and blocks until the context is cancelled, then
// waits for any in-flight job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return ctx.Err()
}

func (s *Scheduler) fire(text string) {
	if text == "" {
		return
	}
	if err := s.sink.Notify(text); err != nil {
		logger.Error("failed to deliver reminder", "error", err)
	}
}

func (s *Scheduler) refresh() {
	if s.Reload == nil {
		return
	}
	if err := s.Reload(); err != nil {
		logger.Error("failed to refresh habit data", "error", err)
	}
}

// MorningDigest lists every must-do obligation still open for today.
func (s *Scheduler) MorningDigest() string {
	s.refresh()
	due := s.engine.UndoneMustDos(s.now())

	if len(due.Habits) == 0 && len(due.Groups) == 0 {
		return "Good morning! No must-dos left for today."
	}

	var b strings.Builder
	b.WriteString("Good morning! Today's must-dos:\n")
	for _, h := range due.Habits {
		b.WriteString("  - " + h.Name)
		if h.SuccessCriteria != "" {
			b.WriteString(" (" + h.SuccessCriteria + ")")
		}
		b.WriteString("\n")
	}
	for _, g := range due.Groups {
		fmt.Fprintf(&b, "  - %s: %d of %d done\n", g.Group.Name, g.CompletedCount, g.Group.RequireCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

// EveningSummary reports the good-day verdict and anything still open.
func (s *Scheduler) EveningSummary() string {
	s.refresh()
	now := s.now()

	var b strings.Builder
	if s.engine.IsGoodDay(now) {
		fmt.Fprintf(&b, "Good day! Streak: %s.", FormatStreak(s.engine.CurrentGoodDayStreak()))
		return b.String()
	}

	due := s.engine.UndoneMustDos(now)
	b.WriteString("Not a good day yet.")
	for _, h := range due.Habits {
		b.WriteString("\n  still open: " + h.Name)
	}
	for _, g := range due.Groups {
		fmt.Fprintf(&b, "\n  still open: %s (%d of %d)", g.Group.Name, g.CompletedCount, g.Group.RequireCount)
	}
	for _, h := range due.Slipped {
		b.WriteString("\n  slipped: " + h.Name)
	}
	return b.String()
}

// habitReminder nudges a single habit, but only while it is still due.
func (s *Scheduler) habitReminder(habitID string) string {
	s.refresh()
	now := s.now()

	h, err := s.engine.Habit(habitID)
	if err != nil || !h.Active() {
		return ""
	}
	applicable, err := s.engine.IsApplicable(habitID, now)
	if err != nil || !applicable || s.engine.IsCompleted(habitID, now) {
		return ""
	}

	text := "Reminder: " + h.Name
	if h.SuccessCriteria != "" {
		text += " (" + h.SuccessCriteria + ")"
	}
	return text
}

// FormatStreak renders a streak count, marking values at the scan horizon
// as a floor rather than an exact figure.
func FormatStreak(n int) string {
	if n >= constants.GoodDayScanCap {
		return fmt.Sprintf("%d+ days", n)
	}
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func cronSpec(clock string) (string, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
