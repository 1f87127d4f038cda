package calculator

import (
	"fmt"
	"math"
)

// PricingPolicy — тариф. Порядок применения важен: надбавка только на стоимость
// пробега, минимум — на итоговую сумму.
type PricingPolicy struct {
	TierThresholdKm   float64
	BaseRatePerKm     float64
	ExtendedRatePerKm float64
	SurchargeFactor   float64
	IncludedStops     int
	ExtraStopFee      float64
	MinimumPrice      float64
}

func DefaultPricing() PricingPolicy {
	return PricingPolicy{
		TierThresholdKm:   10,
		BaseRatePerKm:     1.20,
		ExtendedRatePerKm: 1.00,
		SurchargeFactor:   1.40,
		IncludedStops:     2,
		ExtraStopFee:      2.00,
		MinimumPrice:      7.00,
	}
}

// Price — чистая функция. Отрицательное расстояние или меньше двух точек — ошибка
// программиста, а не пользователя, поэтому panic.
func (p PricingPolicy) Price(distanceKm float64, validStops int) float64 {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		panic(fmt.Sprintf("pricing: invalid distance %v", distanceKm))
	}
	if validStops < 2 {
		panic(fmt.Sprintf("pricing: invalid stop count %d", validStops))
	}

	var cost float64
	if distanceKm <= p.TierThresholdKm {
		cost = distanceKm * p.BaseRatePerKm
	} else {
		cost = p.TierThresholdKm*p.BaseRatePerKm + (distanceKm-p.TierThresholdKm)*p.ExtendedRatePerKm
	}

	total := cost * p.SurchargeFactor

	extra := validStops - p.IncludedStops
	if extra > 0 {
		total += float64(extra) * p.ExtraStopFee
	}

	if total < p.MinimumPrice {
		total = p.MinimumPrice
	}
	return round2(total)
}
