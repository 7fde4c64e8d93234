package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type ReminderRunner interface {
	RunOnce(now time.Time) error
}

// Scheduler drives the recurring bookkeeping jobs, currently just the daily
// overdue-credit reminder round.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	reminders ReminderRunner
}

func New(spec string, reminders ReminderRunner) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		spec:      spec,
		reminders: reminders,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runReminders); err != nil {
		return fmt.Errorf("add reminder job: %w", err)
	}
	s.cron.Start()
	log.Printf("Scheduler started (reminders: %q)", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) runReminders() {
	if err := s.reminders.RunOnce(time.Now()); err != nil {
		log.Printf("Reminder job failed: %v", err)
	}
}
