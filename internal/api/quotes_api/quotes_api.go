package quotes_api

import (
	"context"

	"github.com/BearBump/LogiCalc/internal/models"
)

type Service interface {
	Calculate(ctx context.Context, stops []models.Stop, returnToStart, optimize bool) (*models.RouteCalculationResult, error)
	Quote(ctx context.Context, in models.QuoteInput) (*models.DeliveryRequest, error)
	Enqueue(ctx context.Context, in models.QuoteInput) (string, error)
	History(ctx context.Context, limit, offset int) ([]*models.DeliveryRequest, error)
	Get(ctx context.Context, id string) (*models.DeliveryRequest, error)
	Delete(ctx context.Context, id string) error
}

type CalculateRouteRequest struct {
	Stops         []models.Stop `json:"stops"`
	ReturnToStart bool          `json:"returnToStart"`
	OptimizeRoute bool          `json:"optimizeRoute"`
}

type EnqueueQuoteResponse struct {
	RequestID string `json:"requestId"`
}

type ListQuotesRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListQuotesResponse struct {
	Quotes []*models.DeliveryRequest `json:"quotes"`
}

type QuoteIDRequest struct {
	ID string `json:"id"`
}

type Empty struct{}

// QuotesAPI — общий слой для gRPC и HTTP. Возвращает доменные ошибки как есть,
// перевод в коды делает транспорт.
type QuotesAPI struct {
	svc Service
}

func New(svc Service) *QuotesAPI {
	return &QuotesAPI{svc: svc}
}

func (a *QuotesAPI) CalculateRoute(ctx context.Context, req *CalculateRouteRequest) (*models.RouteCalculationResult, error) {
	return a.svc.Calculate(ctx, req.Stops, req.ReturnToStart, req.OptimizeRoute)
}

func (a *QuotesAPI) CreateQuote(ctx context.Context, req *models.QuoteInput) (*models.DeliveryRequest, error) {
	return a.svc.Quote(ctx, *req)
}

func (a *QuotesAPI) EnqueueQuote(ctx context.Context, req *models.QuoteInput) (*EnqueueQuoteResponse, error) {
	id, err := a.svc.Enqueue(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &EnqueueQuoteResponse{RequestID: id}, nil
}

func (a *QuotesAPI) ListQuotes(ctx context.Context, req *ListQuotesRequest) (*ListQuotesResponse, error) {
	qs, err := a.svc.History(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if qs == nil {
		qs = []*models.DeliveryRequest{}
	}
	return &ListQuotesResponse{Quotes: qs}, nil
}

func (a *QuotesAPI) GetQuote(ctx context.Context, req *QuoteIDRequest) (*models.DeliveryRequest, error) {
	return a.svc.Get(ctx, req.ID)
}

func (a *QuotesAPI) DeleteQuote(ctx context.Context, req *QuoteIDRequest) (*Empty, error) {
	if err := a.svc.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}
