package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/LogiCalc/internal/broker/messages"
)

type QuoteApplier struct {
	mock.Mock
}

func (m *QuoteApplier) ApplyQuoteRequested(ctx context.Context, msg messages.QuoteRequested) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
