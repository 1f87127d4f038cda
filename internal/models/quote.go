package models

import (
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// Stop — точка маршрута в порядке ввода: 0 — забор, 1 — доставка, дальше дополнительные.
type Stop struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	Observation string `json:"observation,omitempty"`
}

type GeoPoint struct {
	ID        string  `json:"id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

type RouteCalculationResult struct {
	TotalDistanceKm  float64  `json:"totalDistanceKm"`
	TotalDurationMin int      `json:"totalDurationMin"`
	EstimatedPrice   float64  `json:"estimatedPrice"`
	MapURL           string   `json:"mapUrl"`
	OptimizedOrder   []string `json:"optimizedOrder,omitempty"`
}

type QuoteInput struct {
	RequesterName     string `json:"requesterName"`
	Stops             []Stop `json:"stops"`
	ReturnToStart     bool   `json:"returnToStart"`
	OptimizeRoute     bool   `json:"optimizeRoute"`
	IsScheduled       bool   `json:"isScheduled"`
	ScheduledDate     string `json:"scheduledDate,omitempty"`
	ScheduledTime     string `json:"scheduledTime,omitempty"`
	SwapPickupDropoff bool   `json:"swapPickupDropoff,omitempty"`
}

// DeliveryRequest — сохранённая котировка. После вставки в историю не меняется.
type DeliveryRequest struct {
	ID            string                  `json:"id"`
	RequesterName string                  `json:"requesterName"`
	Stops         []Stop                  `json:"stops"`
	ReturnToStart bool                    `json:"returnToStart"`
	OptimizeRoute bool                    `json:"optimizeRoute"`
	IsScheduled   bool                    `json:"isScheduled"`
	ScheduledDate string                  `json:"scheduledDate,omitempty"`
	ScheduledTime string                  `json:"scheduledTime,omitempty"`
	Result        *RouteCalculationResult `json:"result"`
	CreatedAt     time.Time               `json:"createdAt"`
}
