package geocoding

import "context"

// Candidate — один результат поиска адреса. Провайдер отдаёт их по убыванию релевантности.
type Candidate struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName,omitempty"`
}

// Geocoder ищет адрес. Пустой список без ошибки означает "адрес не найден".
type Geocoder interface {
	Search(ctx context.Context, address string) ([]Candidate, error)
}
