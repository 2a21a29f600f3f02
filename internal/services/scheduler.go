package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/courtsim/internal/models"
	"github.com/jstittsworth/courtsim/internal/providers"
	"github.com/jstittsworth/courtsim/internal/sim"
	"github.com/jstittsworth/courtsim/pkg/database"
)

// SimScheduler runs queued simulations in the background on a cron schedule.
type SimScheduler struct {
	db        *database.DB
	provider  providers.RosterProvider
	hub       *LiveHub
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	mu        sync.Mutex
	isRunning bool
}

func NewSimScheduler(db *database.DB, provider providers.RosterProvider, hub *LiveHub, logger *logrus.Logger, schedule string) *SimScheduler {
	return &SimScheduler{
		db:       db,
		provider: provider,
		hub:      hub,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start begins picking up pending scheduled matches.
func (s *SimScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if _, err := s.cron.AddFunc(s.schedule, s.runPending); err != nil {
		return fmt.Errorf("failed to schedule simulations: %w", err)
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("simulation scheduler started (%s)", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *SimScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("simulation scheduler stopped")
}

func (s *SimScheduler) runPending() {
	var pending []models.ScheduledMatch
	if err := s.db.Where("status = ?", models.ScheduleStatusPending).Order("id").Find(&pending).Error; err != nil {
		s.logger.Errorf("failed to load scheduled matches: %v", err)
		return
	}
	for _, sm := range pending {
		if err := s.runOne(sm); err != nil {
			s.logger.WithField("scheduled_match", sm.ID).Errorf("scheduled simulation failed: %v", err)
			s.db.Model(&models.ScheduledMatch{}).Where("id = ?", sm.ID).
				Update("status", models.ScheduleStatusFailed)
		}
	}
}

func (s *SimScheduler) runOne(sm models.ScheduledMatch) error {
	ctx := context.Background()

	home, err := s.provider.Roster(ctx, sm.HomeTeam)
	if err != nil {
		return fmt.Errorf("home roster: %w", err)
	}
	away, err := s.provider.Roster(ctx, sm.AwayTeam)
	if err != nil {
		return fmt.Errorf("away roster: %w", err)
	}

	match, err := sim.NewMatch(
		sim.TeamConfig{Key: sm.HomeTeam, Name: sm.HomeTeam, Roster: home},
		sim.TeamConfig{Key: sm.AwayTeam, Name: sm.AwayTeam, Roster: away},
		sim.Options{Seed: sm.Seed},
	)
	if err != nil {
		return err
	}
	match.OnUpdate(s.hub.BroadcastUpdate)

	result, err := match.Run()
	if err != nil {
		return err
	}

	record, err := BuildMatchRecord(uuid.NewString(), sm.Seed, "", result)
	if err != nil {
		return err
	}
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to persist match: %w", err)
	}

	return s.db.Model(&models.ScheduledMatch{}).Where("id = ?", sm.ID).
		Updates(map[string]interface{}{
			"status":   models.ScheduleStatusCompleted,
			"match_id": record.ID,
		}).Error
}

// BuildMatchRecord folds a sim result into its persisted form.
func BuildMatchRecord(id string, seed int64, pace string, result *sim.Result) (*models.Match, error) {
	events, err := json.Marshal(result.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal events: %w", err)
	}
	box, err := json.Marshal(map[string]interface{}{
		"home":     result.Home,
		"away":     result.Away,
		"quarters": result.Quarters,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal box score: %w", err)
	}
	return &models.Match{
		ID:        id,
		HomeTeam:  result.Home.Key,
		AwayTeam:  result.Away.Key,
		HomeScore: result.Home.Score,
		AwayScore: result.Away.Score,
		Seed:      seed,
		Pace:      pace,
		Events:    events,
		BoxScore:  box,
	}, nil
}
