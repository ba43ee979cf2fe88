package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/juvoapp/juvo-backend/pkg/config"
	"github.com/juvoapp/juvo-backend/pkg/logger"
	"github.com/juvoapp/juvo-backend/pkg/redis"
)

const (
	settingDispatchEnabled      = "dispatch_enabled"
	settingDispatchDelaySeconds = "dispatch_delay_seconds"
)

// RuntimeSettings resolves dispatch tunables per invocation. Operators can
// flip them at runtime through Redis; absent keys fall back to config.
type RuntimeSettings struct {
	store redis.SettingsStore
	cfg   config.DispatchConfig
	logg  *logger.Logger
}

// NewRuntimeSettings wires the settings reader. The store may be nil, in
// which case config values are authoritative.
func NewRuntimeSettings(store redis.SettingsStore, cfg config.DispatchConfig, logg *logger.Logger) (*RuntimeSettings, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &RuntimeSettings{store: store, cfg: cfg, logg: logg}, nil
}

// DispatchEnabled reports whether the assignment workflow should run.
func (s *RuntimeSettings) DispatchEnabled(ctx context.Context) bool {
	raw, ok := s.lookup(ctx, settingDispatchEnabled)
	if !ok {
		return s.cfg.Enabled
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "setting", settingDispatchEnabled), "unparseable settings override, using config value")
		return s.cfg.Enabled
	}
	return enabled
}

// AcceptanceDelay returns the pause between successive driver notifications.
func (s *RuntimeSettings) AcceptanceDelay(ctx context.Context) time.Duration {
	raw, ok := s.lookup(ctx, settingDispatchDelaySeconds)
	if !ok {
		return s.cfg.AcceptanceDelay()
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		s.logg.Warn(s.logg.WithField(ctx, "setting", settingDispatchDelaySeconds), "unparseable settings override, using config value")
		return s.cfg.AcceptanceDelay()
	}
	return time.Duration(seconds) * time.Second
}

func (s *RuntimeSettings) lookup(ctx context.Context, name string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	raw, err := s.store.Get(ctx, s.store.SettingsKey(name))
	if err != nil {
		if !redis.IsNil(err) {
			s.logg.Warn(s.logg.WithField(ctx, "setting", name), "settings store unavailable, using config value")
		}
		return "", false
	}
	return raw, true
}
