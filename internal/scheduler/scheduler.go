package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// TokenCleaner removes stale refresh tokens.
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	tokens TokenCleaner
}

// New creates a scheduler with the token cleanup job registered.
func New(tokens TokenCleaner) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		tokens: tokens,
	}
}

// Start registers and starts the cron jobs. Token cleanup runs nightly.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", s.cleanupTokens)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Scheduler started")
	return nil
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) cleanupTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.tokens.CleanupExpiredTokens(ctx); err != nil {
		logger.Error().Err(err).Msg("Token cleanup job failed")
	}
}
