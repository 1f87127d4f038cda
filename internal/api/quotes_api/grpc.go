package quotes_api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"github.com/BearBump/LogiCalc/internal/models"
	"github.com/BearBump/LogiCalc/internal/services/calculator"
	"github.com/BearBump/LogiCalc/internal/services/quotes"
)

// Codec — имя content-subtype. Сообщения ходят в JSON, поэтому protoc-стабы не нужны.
const Codec = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return Codec }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

const (
	serviceName = "logicalc.quotes.v1.QuotesService"

	QuotesService_CalculateRoute_FullMethodName = "/" + serviceName + "/CalculateRoute"
	QuotesService_CreateQuote_FullMethodName    = "/" + serviceName + "/CreateQuote"
	QuotesService_EnqueueQuote_FullMethodName   = "/" + serviceName + "/EnqueueQuote"
	QuotesService_ListQuotes_FullMethodName     = "/" + serviceName + "/ListQuotes"
	QuotesService_GetQuote_FullMethodName       = "/" + serviceName + "/GetQuote"
	QuotesService_DeleteQuote_FullMethodName    = "/" + serviceName + "/DeleteQuote"
)

type QuotesServiceServer interface {
	CalculateRoute(context.Context, *CalculateRouteRequest) (*models.RouteCalculationResult, error)
	CreateQuote(context.Context, *models.QuoteInput) (*models.DeliveryRequest, error)
	EnqueueQuote(context.Context, *models.QuoteInput) (*EnqueueQuoteResponse, error)
	ListQuotes(context.Context, *ListQuotesRequest) (*ListQuotesResponse, error)
	GetQuote(context.Context, *QuoteIDRequest) (*models.DeliveryRequest, error)
	DeleteQuote(context.Context, *QuoteIDRequest) (*Empty, error)
}

var _ QuotesServiceServer = (*QuotesAPI)(nil)

func RegisterQuotesServiceServer(s grpc.ServiceRegistrar, srv QuotesServiceServer) {
	s.RegisterService(&QuotesService_ServiceDesc, srv)
}

// unary собирает MethodHandler в том виде, в каком его генерирует protoc-gen-go-grpc.
func unary[Req any, Resp any](fullMethod string, call func(QuotesServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(QuotesServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(QuotesServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var QuotesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*QuotesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CalculateRoute", Handler: unary(QuotesService_CalculateRoute_FullMethodName, QuotesServiceServer.CalculateRoute)},
		{MethodName: "CreateQuote", Handler: unary(QuotesService_CreateQuote_FullMethodName, QuotesServiceServer.CreateQuote)},
		{MethodName: "EnqueueQuote", Handler: unary(QuotesService_EnqueueQuote_FullMethodName, QuotesServiceServer.EnqueueQuote)},
		{MethodName: "ListQuotes", Handler: unary(QuotesService_ListQuotes_FullMethodName, QuotesServiceServer.ListQuotes)},
		{MethodName: "GetQuote", Handler: unary(QuotesService_GetQuote_FullMethodName, QuotesServiceServer.GetQuote)},
		{MethodName: "DeleteQuote", Handler: unary(QuotesService_DeleteQuote_FullMethodName, QuotesServiceServer.DeleteQuote)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "logicalc/quotes/v1/quotes.proto",
}

// UnaryErrorInterceptor переводит доменные ошибки в gRPC-статусы.
func UnaryErrorInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return nil, ToStatus(err)
	}
	return resp, nil
}

func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, quotes.ErrValidation), errors.Is(err, calculator.ErrInsufficientStops):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, calculator.ErrAddressNotFound):
		return status.Error(codes.FailedPrecondition, err.Error())
	case calculator.IsUnavailable(err):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		slog.Error("grpc internal error", "error", err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}

// Client — клиент к QuotesService поверх JSON-кодека.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CalculateRoute(ctx context.Context, in *CalculateRouteRequest, opts ...grpc.CallOption) (*models.RouteCalculationResult, error) {
	return invoke[models.RouteCalculationResult](ctx, c.cc, QuotesService_CalculateRoute_FullMethodName, in, opts)
}

func (c *Client) CreateQuote(ctx context.Context, in *models.QuoteInput, opts ...grpc.CallOption) (*models.DeliveryRequest, error) {
	return invoke[models.DeliveryRequest](ctx, c.cc, QuotesService_CreateQuote_FullMethodName, in, opts)
}

func (c *Client) EnqueueQuote(ctx context.Context, in *models.QuoteInput, opts ...grpc.CallOption) (*EnqueueQuoteResponse, error) {
	return invoke[EnqueueQuoteResponse](ctx, c.cc, QuotesService_EnqueueQuote_FullMethodName, in, opts)
}

func (c *Client) ListQuotes(ctx context.Context, in *ListQuotesRequest, opts ...grpc.CallOption) (*ListQuotesResponse, error) {
	return invoke[ListQuotesResponse](ctx, c.cc, QuotesService_ListQuotes_FullMethodName, in, opts)
}

func (c *Client) GetQuote(ctx context.Context, in *QuoteIDRequest, opts ...grpc.CallOption) (*models.DeliveryRequest, error) {
	return invoke[models.DeliveryRequest](ctx, c.cc, QuotesService_GetQuote_FullMethodName, in, opts)
}

func (c *Client) DeleteQuote(ctx context.Context, in *QuoteIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, QuotesService_DeleteQuote_FullMethodName, in, opts)
}
