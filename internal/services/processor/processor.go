package processor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BearBump/LogiCalc/internal/broker/messages"
	"github.com/BearBump/LogiCalc/internal/services/calculator"
	"github.com/BearBump/LogiCalc/internal/services/quotes"
)

type Consumer interface {
	Consume(ctx context.Context, handler func(key, value []byte) error) error
}

type QuoteApplier interface {
	ApplyQuoteRequested(ctx context.Context, msg messages.QuoteRequested) error
}

// Processor читает заявки QuoteRequested по одной. Параллелизма нет: геокодер
// принимает не больше одного запроса в секунду, а пауза между адресами уже есть в калькуляторе.
type Processor struct {
	consumer Consumer
	applier  QuoteApplier

	startedAtUnixNano int64
	lastMessageNano   atomic.Int64
	totalProcessed    atomic.Int64
	totalFailed       atomic.Int64
	totalDropped      atomic.Int64
	lastErrorMu       sync.Mutex
	lastError         string
}

func New(consumer Consumer, applier QuoteApplier) *Processor {
	return &Processor{
		consumer:          consumer,
		applier:           applier,
		startedAtUnixNano: time.Now().UTC().UnixNano(),
	}
}

type Stats struct {
	StartedAt     time.Time  `json:"startedAt"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	Processed     int64      `json:"processed"`
	Failed        int64      `json:"failed"`
	Dropped       int64      `json:"dropped"`
	LastError     string     `json:"lastError,omitempty"`
}

func (p *Processor) Stats() Stats {
	st := Stats{
		StartedAt: time.Unix(0, p.startedAtUnixNano).UTC(),
		Processed: p.totalProcessed.Load(),
		Failed:    p.totalFailed.Load(),
		Dropped:   p.totalDropped.Load(),
	}
	if n := p.lastMessageNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastMessageAt = &t
	}
	p.lastErrorMu.Lock()
	st.LastError = p.lastError
	p.lastErrorMu.Unlock()
	return st
}

func (p *Processor) Run(ctx context.Context) error {
	err := p.consumer.Consume(ctx, func(key, value []byte) error {
		return p.Handle(ctx, key, value)
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Handle возвращает ошибку только когда сообщение стоит перечитать
// (хранилище недоступно и т.п.). Ошибки ввода и провайдеров уже отражены
// в событии QuoteCalculated, такое сообщение коммитится.
func (p *Processor) Handle(ctx context.Context, key, value []byte) error {
	p.lastMessageNano.Store(time.Now().UTC().UnixNano())

	var msg messages.QuoteRequested
	if err := json.Unmarshal(value, &msg); err != nil {
		p.totalDropped.Add(1)
		p.setLastError(err)
		slog.Error("bad quote request payload", "key", string(key), "error", err.Error())
		return nil
	}
	if msg.RequestID == "" {
		msg.RequestID = string(key)
	}

	err := p.applier.ApplyQuoteRequested(ctx, msg)
	switch {
	case err == nil:
		p.totalProcessed.Add(1)
		return nil
	case quotes.IsTerminal(err), calculator.IsUnavailable(err):
		p.totalFailed.Add(1)
		p.setLastError(err)
		slog.Warn("quote request failed", "request_id", msg.RequestID, "kind", quotes.ErrorKind(err), "error", err.Error())
		return nil
	default:
		p.setLastError(err)
		return err
	}
}

func (p *Processor) setLastError(err error) {
	p.lastErrorMu.Lock()
	p.lastError = err.Error()
	p.lastErrorMu.Unlock()
}
