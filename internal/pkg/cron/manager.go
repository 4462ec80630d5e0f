package cron

import (
	"axis6/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	dailyRollupJob *job.DailyRollupJob
	reminderJob    *job.ReminderJob
}

func NewCronManager(dailyRollupJob *job.DailyRollupJob, reminderJob *job.ReminderJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		dailyRollupJob: dailyRollupJob,
		reminderJob:    reminderJob,
	}
}

func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.dailyRollupJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.reminderJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopped")
	s.engine.Stop()
}
