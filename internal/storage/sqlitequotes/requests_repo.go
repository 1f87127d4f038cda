package sqlitequotes

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/internal/models"
)

func (s *Storage) InsertRequest(ctx context.Context, req *models.DeliveryRequest) (bool, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return false, errors.Wrap(err, "marshal delivery request")
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO delivery_requests (id, requester_name, data, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING
`, req.ID, req.RequesterName, string(data), req.CreatedAt.UTC().UnixMilli())
	if err != nil {
		return false, errors.Wrap(err, "insert delivery request")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return n == 1, nil
}

func (s *Storage) ListRequests(ctx context.Context, limit, offset int) ([]*models.DeliveryRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT data
FROM delivery_requests
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "select delivery requests")
	}
	defer rows.Close()

	out := make([]*models.DeliveryRequest, 0, limit)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrap(err, "scan delivery request")
		}
		var r models.DeliveryRequest
		if err := json.Unmarshal([]byte(data), &r); err != nil {
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
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM delivery_requests WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select delivery request")
	}

	var r models.DeliveryRequest
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, errors.Wrap(err, "unmarshal delivery request")
	}
	return &r, nil
}

func (s *Storage) DeleteRequest(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM delivery_requests WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete delivery request")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
