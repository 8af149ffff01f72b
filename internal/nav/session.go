package nav

import (
	"context"

	"go.uber.org/zap"

	"github.com/glabrego/pulse-cli/internal/social"
)

type Status int

const (
	Anonymous Status = iota
	Authenticated
)

func (s Status) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Prober is the read-only session probe.
type Prober interface {
	Profile(ctx context.Context) (social.Profile, error)
}

// SessionGate classifies the session with a fresh probe on every call. Negative
// results are never cached so a transient failure costs the user one click.
type SessionGate struct {
	prober Prober
	logger *zap.Logger
}

func NewSessionGate(prober Prober, logger *zap.Logger) *SessionGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionGate{prober: prober, logger: logger}
}

func (g *SessionGate) Check(ctx context.Context) Status {
	if g == nil || g.prober == nil {
		return Anonymous
	}
	if _, err := g.prober.Profile(ctx); err != nil {
		g.logger.Debug("session probe failed", zap.Error(err))
		return Anonymous
	}
	return Authenticated
}
