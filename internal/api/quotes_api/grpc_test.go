package quotes_api

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	apimocks "github.com/BearBump/LogiCalc/internal/api/quotes_api/mocks"
	"github.com/BearBump/LogiCalc/internal/models"
	"github.com/BearBump/LogiCalc/internal/services/calculator"
)

func newGRPCClient(t *testing.T, svc Service) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(UnaryErrorInterceptor))
	RegisterQuotesServiceServer(s, New(svc))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })
	return NewClient(cc)
}

func TestGRPC_Flow(t *testing.T) {
	svc := &apimocks.Service{}
	in := models.QuoteInput{RequesterName: "Maria", Stops: []models.Stop{{ID: "1", Address: "Rua A"}, {ID: "2", Address: "Rua B"}}}
	svc.On("Quote", mock.Anything, in).Return(&models.DeliveryRequest{
		ID:     "q-1",
		Stops:  in.Stops,
		Result: &models.RouteCalculationResult{EstimatedPrice: 7},
	}, nil).Once()
	svc.On("Enqueue", mock.Anything, in).Return("q-2", nil).Once()
	svc.On("History", mock.Anything, 5, 0).Return([]*models.DeliveryRequest{{ID: "q-1"}}, nil).Once()
	svc.On("Get", mock.Anything, "q-1").Return(&models.DeliveryRequest{ID: "q-1"}, nil).Once()
	svc.On("Delete", mock.Anything, "q-1").Return(nil).Once()
	svc.On("Calculate", mock.Anything, in.Stops, true, false).Return(&models.RouteCalculationResult{TotalDurationMin: 9}, nil).Once()

	c := newGRPCClient(t, svc)
	ctx := context.Background()

	q, err := c.CreateQuote(ctx, &in)
	require.NoError(t, err)
	require.Equal(t, "q-1", q.ID)
	require.Equal(t, 7.0, q.Result.EstimatedPrice)

	enq, err := c.EnqueueQuote(ctx, &in)
	require.NoError(t, err)
	require.Equal(t, "q-2", enq.RequestID)

	list, err := c.ListQuotes(ctx, &ListQuotesRequest{Limit: 5})
	require.NoError(t, err)
	require.Len(t, list.Quotes, 1)

	got, err := c.GetQuote(ctx, &QuoteIDRequest{ID: "q-1"})
	require.NoError(t, err)
	require.Equal(t, "q-1", got.ID)

	_, err = c.DeleteQuote(ctx, &QuoteIDRequest{ID: "q-1"})
	require.NoError(t, err)

	res, err := c.CalculateRoute(ctx, &CalculateRouteRequest{Stops: in.Stops, ReturnToStart: true})
	require.NoError(t, err)
	require.Equal(t, 9, res.TotalDurationMin)

	svc.AssertExpectations(t)
}

func TestGRPC_StatusCodes(t *testing.T) {
	svc := &apimocks.Service{}
	svc.On("Get", mock.Anything, "nope").Return(nil, models.ErrNotFound).Once()
	svc.On("Calculate", mock.Anything, mock.Anything, false, false).
		Return(nil, &calculator.AddressNotFoundError{StopID: "2", Address: "Rua X"}).Once()
	svc.On("Calculate", mock.Anything, mock.Anything, true, false).
		Return(nil, &calculator.ProviderError{Kind: calculator.ErrRouteUnavailable, Op: "route", Err: errors.New("NoRoute")}).Once()
	svc.On("Calculate", mock.Anything, mock.Anything, false, true).Return(nil, calculator.ErrInsufficientStops).Once()
	svc.On("Delete", mock.Anything, "boom").Return(errors.New("db down")).Once()

	c := newGRPCClient(t, svc)
	ctx := context.Background()

	_, err := c.GetQuote(ctx, &QuoteIDRequest{ID: "nope"})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.CalculateRoute(ctx, &CalculateRouteRequest{})
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
	require.Contains(t, status.Convert(err).Message(), "Rua X")

	_, err = c.CalculateRoute(ctx, &CalculateRouteRequest{ReturnToStart: true})
	require.Equal(t, codes.Unavailable, status.Code(err))

	_, err = c.CalculateRoute(ctx, &CalculateRouteRequest{OptimizeRoute: true})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.DeleteQuote(ctx, &QuoteIDRequest{ID: "boom"})
	require.Equal(t, codes.Internal, status.Code(err))
	require.Equal(t, "internal error", status.Convert(err).Message())
}

func TestToStatus_KeepsExistingStatus(t *testing.T) {
	require.NoError(t, ToStatus(nil))
	st := status.Error(codes.ResourceExhausted, "slow down")
	require.Equal(t, st, ToStatus(st))
}
