package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/cache"
	"bersekolah/gateway/internal/models"
)

const (
	keyToken   = "bersekolah_auth_token:"
	keyUser    = "bersekolah_user:"
	keyLoginTS = "bersekolah_login_ts:"
)

// Store keeps the session triple (token, user, login timestamp) in the
// shared key-value store. The triple is all-or-nothing: a partial session is
// treated as corrupt and cleared on the next read. Expiry is lazy, enforced
// by Read; keys carry no TTL so the 24h rule stays observable.
type Store struct {
	kv       cache.KV
	notifier *Notifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewStore(kv cache.KV, log zerolog.Logger) *Store {
	return &Store{
		kv:       kv,
		notifier: NewNotifier(),
		log:      log,
		now:      time.Now,
	}
}

// Read returns the session for sid, or nil when there is none worth keeping:
// missing or partial triple, unparseable user record, or login older than
// 24h. All of those clear the stored keys as a side effect.
func (s *Store) Read(ctx context.Context, sid string) (*models.Session, error) {
	token, errToken := s.kv.Get(ctx, keyToken+sid)
	userRaw, errUser := s.kv.Get(ctx, keyUser+sid)
	tsRaw, errTS := s.kv.Get(ctx, keyLoginTS+sid)

	missing := 0
	for _, err := range []error{errToken, errUser, errTS} {
		if errors.Is(err, cache.ErrKeyNotFound) {
			missing++
		} else if err != nil {
			return nil, fmt.Errorf("read session: %w", err)
		}
	}
	if missing == 3 {
		return nil, nil
	}
	if missing > 0 {
		s.log.Warn().Str("session_id", sid).Msg("partial session cleared")
		return nil, s.Clear(ctx, sid)
	}

	millis, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		s.log.Warn().Str("session_id", sid).Msg("corrupt login timestamp cleared")
		return nil, s.Clear(ctx, sid)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		s.log.Warn().Str("session_id", sid).Msg("corrupt user record cleared")
		return nil, s.Clear(ctx, sid)
	}

	sess := models.Session{
		Token:          token,
		User:           user,
		LoginTimestamp: time.UnixMilli(millis),
	}
	if sess.ExpiredAt(s.now()) {
		s.log.Debug().Str("session_id", sid).Msg("expired session cleared")
		return nil, s.Clear(ctx, sid)
	}

	return &sess, nil
}

// Write stores the triple as three sequential sets. There is no partial
// write recovery: if storage fails mid-sequence the session is left however
// far the writes got, and the next Read treats it as corrupt.
func (s *Store) Write(ctx context.Context, sid string, sess models.Session) error {
	userRaw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := s.kv.Set(ctx, keyToken+sid, sess.Token, 0); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := s.kv.Set(ctx, keyUser+sid, string(userRaw), 0); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	ts := strconv.FormatInt(sess.LoginTimestamp.UnixMilli(), 10)
	if err := s.kv.Set(ctx, keyLoginTS+sid, ts, 0); err != nil {
		return fmt.Errorf("store login timestamp: %w", err)
	}

	s.notifier.Notify(ChangeEvent{SessionID: sid, Kind: ChangeLogin, User: &sess.User})
	return nil
}

func (s *Store) Clear(ctx context.Context, sid string) error {
	err := s.kv.Del(ctx, keyToken+sid, keyUser+sid, keyLoginTS+sid)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.notifier.Notify(ChangeEvent{SessionID: sid, Kind: ChangeLogout})
	return nil
}

// OnChange registers an observer for session lifecycle events.
func (s *Store) OnChange(fn func(ChangeEvent)) {
	s.notifier.Subscribe(fn)
}

// SweepExpired deletes triples whose login timestamp is already past the 24h
// rule. Storage reclamation only; Read stays the authority on expiry.
func (s *Store) SweepExpired(ctx context.Context) (int, error) {
	keys, err := s.kv.Keys(ctx, keyLoginTS+"*")
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	swept := 0
	for _, key := range keys {
		tsRaw, err := s.kv.Get(ctx, key)
		if errors.Is(err, cache.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return swept, err
		}

		millis, err := strconv.ParseInt(tsRaw, 10, 64)
		stale := err != nil || s.now().Sub(time.UnixMilli(millis)) > models.SessionTTL
		if !stale {
			continue
		}

		sid := key[len(keyLoginTS):]
		if err := s.kv.Del(ctx, keyToken+sid, keyUser+sid, keyLoginTS+sid); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}
