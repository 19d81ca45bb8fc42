package supervisor

import (
	"context"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/logging"
)

// Periodic runs fn every interval until canceled. Errors from fn are logged
// and the loop continues.
type Periodic struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
}

func NewPeriodic(name string, interval time.Duration, fn func(ctx context.Context) error) *Periodic {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Periodic{name: name, interval: interval, fn: fn}
}

func (p *Periodic) String() string {
	return p.name
}

func (p *Periodic) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.run(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

func (p *Periodic) run(ctx context.Context) {
	start := time.Now()
	if err := p.fn(ctx); err != nil {
		logging.Error().Err(err).Str("job", p.name).Msg("[SUPERVISOR] Periodic job failed")
		return
	}
	logging.Debug().Str("job", p.name).Dur("took", time.Since(start)).Msg("[SUPERVISOR] Periodic job done")
}
