package pgquotes

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/internal/models"
)

// InsertRequest — запись одноразовая: повторная вставка с тем же id ничего не меняет.
// Возвращает false, если запись уже была.
func (s *Storage) InsertRequest(ctx context.Context, req *models.DeliveryRequest) (bool, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return false, errors.Wrap(err, "marshal delivery request")
	}

	tag, err := s.db.Exec(ctx, `
INSERT INTO delivery_requests (id, requester_name, data, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING
`, req.ID, req.RequesterName, data, req.CreatedAt.UTC())
	if err != nil {
		return false, errors.Wrap(err, "insert delivery request")
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Storage) ListRequests(ctx context.Context, limit, offset int) ([]*models.DeliveryRequest, error) {
	rows, err := s.db.Query(ctx, `
SELECT data
FROM delivery_requests
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "select delivery requests")
	}
	defer rows.Close()

	out := make([]*models.DeliveryRequest, 0, limit)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrap(err, "scan delivery request")
		}
		var r models.DeliveryRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, errors.Wrap(err, "unmarshal delivery request")
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows")
	}
	return out, nil
}

func (s *Storage) GetRequest(ctx context.Context, id string) (*models.DeliveryRequest, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM delivery_requests WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select delivery request")
	}

	var r models.DeliveryRequest
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "unmarshal delivery request")
	}
	return &r, nil
}

func (s *Storage) DeleteRequest(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM delivery_requests WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete delivery request")
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
