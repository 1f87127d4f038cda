package quotes

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/internal/broker/messages"
	"github.com/BearBump/LogiCalc/internal/cache"
	"github.com/BearBump/LogiCalc/internal/models"
	"github.com/BearBump/LogiCalc/internal/services/calculator"
)

type Calculator interface {
	Calculate(ctx context.Context, stops []models.Stop, returnToStart, optimize bool) (*models.RouteCalculationResult, error)
}

type Repository interface {
	InsertRequest(ctx context.Context, req *models.DeliveryRequest) (bool, error)
	ListRequests(ctx context.Context, limit, offset int) ([]*models.DeliveryRequest, error)
	GetRequest(ctx context.Context, id string) (*models.DeliveryRequest, error)
	DeleteRequest(ctx context.Context, id string) error
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	calc Calculator
	repo Repository

	producer        Producer
	requestedTopic  string
	calculatedTopic string

	cache    cache.BytesCache
	cacheTTL time.Duration

	now   func() time.Time
	newID func() string
}

func New(calc Calculator, repo Repository) *Service {
	return &Service{
		calc:  calc,
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: newRequestID,
	}
}

func (s *Service) WithEvents(p Producer, requestedTopic, calculatedTopic string) *Service {
	s.producer = p
	s.requestedTopic = requestedTopic
	s.calculatedTopic = calculatedTopic
	return s
}

func (s *Service) WithCache(c cache.BytesCache, ttl time.Duration) *Service {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// Calculate — предпросмотр без сохранения в историю.
func (s *Service) Calculate(ctx context.Context, stops []models.Stop, returnToStart, optimize bool) (*models.RouteCalculationResult, error) {
	if err := ValidateStops(stops); err != nil {
		return nil, err
	}
	return s.calc.Calculate(ctx, stops, returnToStart, optimize)
}

// Quote считает маршрут и сохраняет снимок. Вставка в историю — точка фиксации:
// событие QuoteCalculated публикуется после неё и только "лучшим усилием".
func (s *Service) Quote(ctx context.Context, in models.QuoteInput) (*models.DeliveryRequest, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	req, _, err := s.quote(ctx, s.newID(), in)
	if err != nil {
		return nil, err
	}
	s.publishCalculated(ctx, req)
	return req, nil
}

func (s *Service) quote(ctx context.Context, id string, in models.QuoteInput) (*models.DeliveryRequest, bool, error) {
	stops := append([]models.Stop(nil), in.Stops...)
	if in.SwapPickupDropoff {
		stops = SwapPickupDropoff(stops)
	}

	res, err := s.calc.Calculate(ctx, stops, in.ReturnToStart, in.OptimizeRoute)
	if err != nil {
		return nil, false, err
	}

	req := &models.DeliveryRequest{
		ID:            id,
		RequesterName: in.RequesterName,
		Stops:         stops,
		ReturnToStart: in.ReturnToStart,
		OptimizeRoute: in.OptimizeRoute,
		IsScheduled:   in.IsScheduled,
		Result:        res,
		CreatedAt:     s.now(),
	}
	if in.IsScheduled {
		req.ScheduledDate = in.ScheduledDate
		req.ScheduledTime = in.ScheduledTime
	}

	inserted, err := s.repo.InsertRequest(ctx, req)
	if err != nil {
		return nil, false, errors.Wrap(err, "save quote")
	}
	return req, inserted, nil
}

func (s *Service) History(ctx context.Context, limit, offset int) ([]*models.DeliveryRequest, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListRequests(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id string) (*models.DeliveryRequest, error) {
	if id == "" {
		return nil, errors.Wrap(ErrValidation, "id is required")
	}

	// Котировки неизменяемы, поэтому кэш не нужно обновлять — только удалять.
	if s.cache != nil && s.cacheTTL > 0 {
		if b, ok, err := s.cache.Get(ctx, quoteKey(id)); err == nil && ok {
			var r models.DeliveryRequest
			if json.Unmarshal(b, &r) == nil {
				return &r, nil
			}
		}
	}

	r, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && s.cacheTTL > 0 {
		if b, err := json.Marshal(r); err == nil {
			_ = s.cache.Set(ctx, quoteKey(id), b, s.cacheTTL)
		}
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.Wrap(ErrValidation, "id is required")
	}
	if err := s.repo.DeleteRequest(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, quoteKey(id)); err != nil {
			slog.Warn("quote cache delete", "id", id, "error", err.Error())
		}
	}
	return nil
}

// Enqueue ставит расчёт в очередь воркеру и сразу возвращает id будущей котировки.
func (s *Service) Enqueue(ctx context.Context, in models.QuoteInput) (string, error) {
	if s.producer == nil || s.requestedTopic == "" {
		return "", errors.New("async quotes are not configured")
	}
	if err := ValidateInput(in); err != nil {
		return "", err
	}

	id := s.newID()
	msg := messages.QuoteRequested{
		RequestID:         id,
		RequestedAt:       s.now(),
		RequesterName:     in.RequesterName,
		ReturnToStart:     in.ReturnToStart,
		OptimizeRoute:     in.OptimizeRoute,
		IsScheduled:       in.IsScheduled,
		ScheduledDate:     in.ScheduledDate,
		ScheduledTime:     in.ScheduledTime,
		SwapPickupDropoff: in.SwapPickupDropoff,
	}
	for _, st := range in.Stops {
		msg.Stops = append(msg.Stops, messages.Stop{ID: st.ID, Address: st.Address, Observation: st.Observation})
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return "", errors.Wrap(err, "marshal quote requested")
	}
	if err := s.producer.Publish(ctx, s.requestedTopic, []byte(id), b); err != nil {
		return "", err
	}
	return id, nil
}

// ApplyQuoteRequested — обработка заявки воркером. id берётся из сообщения, поэтому
// повторная доставка не создаёт вторую котировку.
func (s *Service) ApplyQuoteRequested(ctx context.Context, msg messages.QuoteRequested) error {
	if msg.RequestID == "" {
		return errors.Wrap(ErrValidation, "request_id is required")
	}

	existing, err := s.repo.GetRequest(ctx, msg.RequestID)
	if err == nil {
		s.publishCalculated(ctx, existing)
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return errors.Wrap(err, "load quote")
	}

	in := models.QuoteInput{
		RequesterName:     msg.RequesterName,
		ReturnToStart:     msg.ReturnToStart,
		OptimizeRoute:     msg.OptimizeRoute,
		IsScheduled:       msg.IsScheduled,
		ScheduledDate:     msg.ScheduledDate,
		ScheduledTime:     msg.ScheduledTime,
		SwapPickupDropoff: msg.SwapPickupDropoff,
	}
	for _, st := range msg.Stops {
		in.Stops = append(in.Stops, models.Stop{ID: st.ID, Address: st.Address, Observation: st.Observation})
	}

	if err := ValidateInput(in); err != nil {
		s.publishFailed(ctx, msg.RequestID, in.RequesterName, err)
		return err
	}

	req, inserted, err := s.quote(ctx, msg.RequestID, in)
	if err != nil {
		if calculator.IsUserError(err) || calculator.IsUnavailable(err) {
			s.publishFailed(ctx, msg.RequestID, in.RequesterName, err)
		}
		return err
	}
	if !inserted {
		// параллельная доставка того же сообщения успела раньше
		slog.Info("quote already stored", "id", msg.RequestID)
		if stored, err := s.repo.GetRequest(ctx, msg.RequestID); err == nil {
			req = stored
		}
	}
	s.publishCalculated(ctx, req)
	return nil
}

func (s *Service) publishCalculated(ctx context.Context, req *models.DeliveryRequest) {
	m := messages.QuoteCalculated{
		RequestID:     req.ID,
		CalculatedAt:  req.CreatedAt,
		RequesterName: req.RequesterName,
	}
	if r := req.Result; r != nil {
		m.TotalDistanceKm = r.TotalDistanceKm
		m.TotalDurationMin = r.TotalDurationMin
		m.EstimatedPrice = r.EstimatedPrice
		m.MapURL = r.MapURL
		m.OptimizedOrder = r.OptimizedOrder
	}
	s.publish(ctx, req.ID, m)
}

func (s *Service) publishFailed(ctx context.Context, id, requester string, cause error) {
	e := cause.Error()
	s.publish(ctx, id, messages.QuoteCalculated{
		RequestID:     id,
		CalculatedAt:  s.now(),
		RequesterName: requester,
		Error:         &e,
		ErrorKind:     ErrorKind(cause),
	})
}

func (s *Service) publish(ctx context.Context, id string, m messages.QuoteCalculated) {
	if s.producer == nil || s.calculatedTopic == "" {
		return
	}
	b, err := json.Marshal(m)
	if err != nil {
		slog.Error("marshal quote calculated", "id", id, "error", err.Error())
		return
	}
	if err := s.producer.Publish(ctx, s.calculatedTopic, []byte(id), b); err != nil {
		slog.Warn("publish quote calculated", "id", id, "error", err.Error())
	}
}

func quoteKey(id string) string {
	return "quote:" + id
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
