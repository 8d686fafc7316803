// Package service implements the feed: the fetch-decode-map pipeline that
// owns the refresh lifecycle and publishes atomic snapshots
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"peloton/internal/codec"
	"peloton/internal/core/domain"
	"peloton/internal/core/mapper"
	"peloton/internal/platform/logger"
	feeddom "peloton/internal/services/feed/domain"
)

// Config for the feed service
type Config struct {
	// Key is the well-known parameter holding the payload
	Key string `validate:"required"`

	// MinFetchInterval throttles remote fetches; a manual refresh inside
	// the window reuses the already fetched document
	MinFetchInterval time.Duration `validate:"gte=0"`

	// RefreshEvery is the scheduled refresh cadence
	RefreshEvery time.Duration `validate:"gte=1m"`
}

// Defaults
const (
	DefaultKey              = "cycling_data"
	DefaultMinFetchInterval = 30 * time.Minute
	DefaultRefreshEvery     = time.Hour
)

// Service is the data repository: it drives refreshes against the remote
// config channel and exposes the current snapshot on a replay-1 bus.
// Construct explicitly and pass by reference; there is no package-level
// instance.
type Service struct {
	remote feeddom.RemoteConfig
	bus    *Bus
	cfg    Config
	log    logger.Logger
	status atomic.Int32
}

// New constructs a feed service; zero Config fields take the defaults
func New(remote feeddom.RemoteConfig, cfg Config) (*Service, error) {
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.MinFetchInterval == 0 {
		cfg.MinFetchInterval = DefaultMinFetchInterval
	}
	if cfg.RefreshEvery == 0 {
		cfg.RefreshEvery = DefaultRefreshEvery
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return &Service{
		remote: remote,
		bus:    NewBus(),
		cfg:    cfg,
		log:    *logger.Named("feed"),
	}, nil
}

// Status returns the current lifecycle state
func (s *Service) Status() feeddom.Status {
	return feeddom.Status(s.status.Load())
}

// Subscribe returns the replay-1 snapshot channel and an unsubscribe func
func (s *Service) Subscribe() (<-chan *domain.Snapshot, func()) {
	return s.bus.Subscribe()
}

// Latest returns the most recent snapshot for one-shot readers
func (s *Service) Latest() (*domain.Snapshot, bool) {
	return s.bus.Latest()
}

// Run emits any cached payload, then refreshes immediately and on every
// cfg.RefreshEvery tick until ctx is cancelled. Cancellation leaves the
// bus intact: late subscribers still get the last good snapshot.
func (s *Service) Run(ctx context.Context) error {
	s.emitCached()
	s.Refresh(ctx)

	t := time.NewTicker(s.cfg.RefreshEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh runs one fetch-activate-decode-map-publish cycle and reports
// success. Every failure kind, remote or decode or mapping, is swallowed
// here: the previous snapshot stays live and the cycle reports false.
func (s *Service) Refresh(ctx context.Context) bool {
	cycle := uuid.NewString()
	s.status.Store(int32(feeddom.StatusFetching))

	if err := s.remote.Fetch(ctx, s.cfg.MinFetchInterval); err != nil {
		return s.fail(cycle, "fetch", err)
	}
	changed, err := s.remote.Activate(ctx)
	if err != nil {
		return s.fail(cycle, "activate", err)
	}
	if !changed {
		if _, ok := s.bus.Latest(); ok {
			// nothing new and a snapshot is already live
			s.status.Store(int32(feeddom.StatusReady))
			return true
		}
		// nothing published yet (e.g. first run against a cached
		// document); fall through and decode what is active
	}

	snap, err := s.decodeCurrent()
	if err != nil {
		return s.fail(cycle, "decode", err)
	}
	s.bus.Publish(snap)
	s.status.Store(int32(feeddom.StatusReady))
	s.log.Info().Str("cycle", cycle).
		Int("teams", len(snap.Teams)).Int("riders", len(snap.Riders)).Int("races", len(snap.Races)).
		Msg("snapshot published")
	return true
}

// emitCached publishes the payload already activated by the remote layer
// (restored from its local cache), if there is one
func (s *Service) emitCached() {
	snap, err := s.decodeCurrent()
	if err != nil {
		s.log.Debug().Err(err).Msg("no cached payload to emit")
		return
	}
	s.bus.Publish(snap)
	s.status.Store(int32(feeddom.StatusReady))
	s.log.Info().Int("races", len(snap.Races)).Msg("cached snapshot published")
}

func (s *Service) decodeCurrent() (*domain.Snapshot, error) {
	b64, err := s.remote.Value(s.cfg.Key)
	if err != nil {
		return nil, err
	}
	dto, err := codec.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	return mapper.Snapshot(dto)
}

func (s *Service) fail(cycle, op string, err error) bool {
	s.status.Store(int32(feeddom.StatusFetchFailed))
	s.log.Warn().Str("cycle", cycle).Str("op", op).Err(err).Msg("refresh failed, keeping previous snapshot")
	return false
}
