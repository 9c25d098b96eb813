package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/maternalcare/sms-reminders/internal/model"
	"github.com/maternalcare/sms-reminders/internal/service"
	"github.com/robfig/cron/v3"
)

// Dispatcher is the slice of the reminder service the scheduler needs.
type Dispatcher interface {
	DispatchReminders(ctx context.Context) (*model.DispatchReport, error)
}

// Scheduler owns the two recurring jobs: the daily reminder dispatch and the
// weekly educational-content pull. Specs are evaluated in UTC. Jobs call the
// dispatcher in-process; there is no HTTP hop back into the service. Fires
// are not serialized against each other, a slow run can overlap the next.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher Dispatcher

	running atomic.Bool
}

func New(reminderSpec, educationSpec string, dispatcher Dispatcher) (*Scheduler, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher must not be nil")
	}

	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		dispatcher: dispatcher,
	}

	if _, err := s.cron.AddFunc(reminderSpec, func() {
		s.safeRun("reminders", s.runReminders)
	}); err != nil {
		return nil, fmt.Errorf("invalid reminder cron spec %q: %w", reminderSpec, err)
	}

	if _, err := s.cron.AddFunc(educationSpec, func() {
		s.safeRun("education", s.runEducation)
	}); err != nil {
		return nil, fmt.Errorf("invalid education cron spec %q: %w", educationSpec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() bool {
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	s.cron.Start()
	slog.Info("scheduler started")
	return true
}

func (s *Scheduler) Stop() bool {
	if !s.running.CompareAndSwap(true, false) {
		return false
	}
	// Wait for any in-flight job before reporting stopped.
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
	return true
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) runReminders() {
	report, err := s.dispatcher.DispatchReminders(context.Background())
	if err != nil {
		// No retry before the next scheduled fire.
		slog.Error("scheduled reminder dispatch failed", "error", err)
		return
	}

	sent, failed := 0, 0
	for _, outcome := range report.Results {
		if outcome.Status == model.OutcomeSent {
			sent++
		} else {
			failed++
		}
	}
	slog.Info("scheduled reminders dispatched",
		"total_users", report.TotalUsers,
		"sent", sent,
		"failed", failed,
	)
}

func (s *Scheduler) runEducation() {
	catalog := service.EducationalContent()

	tips := 0
	for _, category := range catalog {
		tips += len(category.Tips)
	}
	// Delivering the catalog over SMS is an extension point; for now the
	// weekly fire only confirms the content is available.
	slog.Info("weekly educational content retrieved",
		"categories", len(catalog),
		"tips", tips,
	)
}

func (s *Scheduler) safeRun(job string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduled job panic recovered", "job", job, "panic", r)
		}
	}()

	start := time.Now()
	fn()
	slog.Info("scheduled job completed", "job", job, "duration_ms", time.Since(start).Milliseconds())
}
