package quotes

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/internal/models"
	"github.com/BearBump/LogiCalc/internal/services/calculator"
)

var ErrValidation = errors.New("validation failed")

const (
	scheduleDateLayout = "2006-01-02"
	scheduleTimeLayout = "15:04"
)

func ValidateInput(in models.QuoteInput) error {
	if strings.TrimSpace(in.RequesterName) == "" {
		return errors.Wrap(ErrValidation, "requester name is required")
	}
	if in.IsScheduled {
		if _, err := time.Parse(scheduleDateLayout, in.ScheduledDate); err != nil {
			return errors.Wrapf(ErrValidation, "scheduled date %q must be YYYY-MM-DD", in.ScheduledDate)
		}
		if _, err := time.Parse(scheduleTimeLayout, in.ScheduledTime); err != nil {
			return errors.Wrapf(ErrValidation, "scheduled time %q must be HH:MM", in.ScheduledTime)
		}
	}
	return ValidateStops(in.Stops)
}

// ValidateStops проверяет точки с адресом: их минимум две, id у каждой непустой и
// уникальный, иначе OptimizedOrder не сопоставить с точками.
func ValidateStops(stops []models.Stop) error {
	valid := calculator.ValidStops(stops)
	if len(valid) < 2 {
		return calculator.ErrInsufficientStops
	}
	seen := make(map[string]struct{}, len(valid))
	for i, st := range valid {
		id := strings.TrimSpace(st.ID)
		if id == "" {
			return errors.Wrapf(ErrValidation, "stop #%d (%q) has no id", i, st.Address)
		}
		if _, ok := seen[id]; ok {
			return errors.Wrapf(ErrValidation, "duplicate stop id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// SwapPickupDropoff меняет местами адрес и примечание у точек 0 и 1; id остаются на месте.
func SwapPickupDropoff(stops []models.Stop) []models.Stop {
	out := append([]models.Stop(nil), stops...)
	if len(out) < 2 {
		return out
	}
	out[0].Address, out[1].Address = out[1].Address, out[0].Address
	out[0].Observation, out[1].Observation = out[1].Observation, out[0].Observation
	return out
}

// ErrorKind — короткий машинный код ошибки для событий и ответов API.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, calculator.ErrInsufficientStops):
		return "insufficient_stops"
	case errors.Is(err, calculator.ErrAddressNotFound):
		return "address_not_found"
	case errors.Is(err, calculator.ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, calculator.ErrRouteUnavailable):
		return "route_unavailable"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

// IsTerminal — повтор с тем же вводом даст тот же результат.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrValidation) || calculator.IsUserError(err)
}
