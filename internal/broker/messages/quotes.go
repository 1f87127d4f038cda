package messages

import "time"

type Stop struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	Observation string `json:"observation,omitempty"`
}

// QuoteRequested — заявка на асинхронный расчёт. RequestID станет id котировки в истории,
// поэтому повторная доставка сообщения не создаёт дубликат.
type QuoteRequested struct {
	RequestID   string    `json:"request_id"`
	RequestedAt time.Time `json:"requested_at"`

	RequesterName     string `json:"requester_name"`
	Stops             []Stop `json:"stops"`
	ReturnToStart     bool   `json:"return_to_start"`
	OptimizeRoute     bool   `json:"optimize_route"`
	IsScheduled       bool   `json:"is_scheduled"`
	ScheduledDate     string `json:"scheduled_date,omitempty"`
	ScheduledTime     string `json:"scheduled_time,omitempty"`
	SwapPickupDropoff bool   `json:"swap_pickup_dropoff,omitempty"`
}

type QuoteCalculated struct {
	RequestID     string    `json:"request_id"`
	CalculatedAt  time.Time `json:"calculated_at"`
	RequesterName string    `json:"requester_name"`

	TotalDistanceKm  float64  `json:"total_distance_km,omitempty"`
	TotalDurationMin int      `json:"total_duration_min,omitempty"`
	EstimatedPrice   float64  `json:"estimated_price,omitempty"`
	MapURL           string   `json:"map_url,omitempty"`
	OptimizedOrder   []string `json:"optimized_order,omitempty"`

	// Error и ErrorKind заполнены, только если расчёт не удался.
	Error     *string `json:"error,omitempty"`
	ErrorKind string  `json:"error_kind,omitempty"`
}
