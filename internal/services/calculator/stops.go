package calculator

import (
	"strings"

	"github.com/BearBump/LogiCalc/internal/models"
)

// ValidStops оставляет точки с непустым (после trim) адресом, порядок сохраняется.
func ValidStops(stops []models.Stop) []models.Stop {
	out := make([]models.Stop, 0, len(stops))
	for _, s := range stops {
		if strings.TrimSpace(s.Address) != "" {
			out = append(out, s)
		}
	}
	return out
}
