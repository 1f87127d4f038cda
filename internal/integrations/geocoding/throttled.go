package geocoding

import (
	"context"

	"github.com/pkg/errors"
)

type MinuteLimiter interface {
	WaitMinute(ctx context.Context, name string, perMinute int64) error
}

// Throttled держит общий для всех реплик лимит запросов к провайдеру в минуту.
type Throttled struct {
	next      Geocoder
	rl        MinuteLimiter
	name      string
	perMinute int64
}

func NewThrottled(next Geocoder, rl MinuteLimiter, name string, perMinute int64) *Throttled {
	return &Throttled{next: next, rl: rl, name: name, perMinute: perMinute}
}

func (g *Throttled) Search(ctx context.Context, address string) ([]Candidate, error) {
	if g.rl != nil && g.perMinute > 0 {
		if err := g.rl.WaitMinute(ctx, "geocoder:"+g.name, g.perMinute); err != nil {
			return nil, errors.Wrap(err, "geocoder rate limit")
		}
	}
	return g.next.Search(ctx, address)
}
