package prefs

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/cache"
)

const (
	stateKeyPrefix = "bersekolah_sidebar_state:"
	hintKeyPrefix  = "bersekolah_sidebar_hint:"

	// hintTTL covers a single page transition. The hint exists so the very
	// next load sees the latest value even if the durable write raced it;
	// it is a soft-landing heuristic, not a correctness requirement.
	hintTTL = 30 * time.Second
)

// Sidebar tracks the open/closed dashboard sidebar flag per session:
// a durable key plus a short-lived navigation hint preferred when present.
type Sidebar struct {
	kv  cache.KV
	log zerolog.Logger
}

func NewSidebar(kv cache.KV, log zerolog.Logger) *Sidebar {
	return &Sidebar{kv: kv, log: log}
}

// Read returns the flag for sid. Missing state defaults to open.
func (s *Sidebar) Read(ctx context.Context, sid string) bool {
	if raw, err := s.kv.Get(ctx, hintKeyPrefix+sid); err == nil {
		return raw == "1"
	}

	raw, err := s.kv.Get(ctx, stateKeyPrefix+sid)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			s.log.Warn().Err(err).Msg("sidebar state read failed")
		}
		return true
	}
	return raw == "1"
}

func (s *Sidebar) Toggle(ctx context.Context, sid string) (bool, error) {
	next := !s.Read(ctx, sid)
	return next, s.write(ctx, sid, next)
}

func (s *Sidebar) Open(ctx context.Context, sid string) error {
	return s.write(ctx, sid, true)
}

func (s *Sidebar) Close(ctx context.Context, sid string) error {
	return s.write(ctx, sid, false)
}

func (s *Sidebar) write(ctx context.Context, sid string, open bool) error {
	value := "0"
	if open {
		value = "1"
	}

	if err := s.kv.Set(ctx, stateKeyPrefix+sid, value, 0); err != nil {
		return err
	}
	// Best effort: the durable key above is already authoritative.
	if err := s.kv.Set(ctx, hintKeyPrefix+sid, value, hintTTL); err != nil {
		s.log.Debug().Err(err).Msg("sidebar hint write failed")
	}
	return nil
}
