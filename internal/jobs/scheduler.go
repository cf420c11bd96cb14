package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/session"
	"bersekolah/gateway/internal/social"
)

// Scheduler runs the gateway's housekeeping: keeping the public social-link
// cache warm and sweeping session keys already past the 24h rule. The sweep
// reclaims storage only; lazy expiry on read stays the authority.
type Scheduler struct {
	cron     *cron.Cron
	sessions *session.Store
	social   *social.Cache
	schedule string
	log      zerolog.Logger
}

func NewScheduler(sessions *session.Store, socialCache *social.Cache, refreshSchedule string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sessions: sessions,
		social:   socialCache,
		schedule: refreshSchedule,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.refreshSocial); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.sweepSessions); err != nil { // nightly
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for in-flight jobs, up to a grace period.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) refreshSocial() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.social.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("social cache refresh failed")
	}
}

func (s *Scheduler) sweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	swept, err := s.sessions.SweepExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if swept > 0 {
		s.log.Info().Int("sessions", swept).Msg("expired sessions swept")
	}
}
