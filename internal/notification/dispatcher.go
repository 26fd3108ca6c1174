package notification

import (
	"context"
	"maps"
	"sync"

	"petshop-be/internal/logger"
	"petshop-be/internal/metrics"
	"petshop-be/internal/order"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Channel delivers an order confirmation. Detail is a channel specific
// handle such as the recipient address or a link.
type Channel interface {
	Name() string
	Send(ctx context.Context, o *order.Order, params map[string]string) (detail string, err error)
}

type Result struct {
	Channel string `json:"channel"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

type Dispatcher struct {
	channels []Channel
	shop     ShopInfo
	metrics  *metrics.Recorder
	tracer   trace.Tracer
}

func NewDispatcher(shop ShopInfo, m *metrics.Recorder, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		shop:     shop,
		metrics:  m,
		tracer:   otel.Tracer("petshop-be/internal/notification"),
	}
}

// Dispatch attempts every channel once. Channels run concurrently and a
// failing channel does not affect the others. Results follow channel order.
func (d *Dispatcher) Dispatch(ctx context.Context, o *order.Order) []Result {
	params := Params(o, d.shop)
	results := make([]Result, len(d.channels))

	var wg sync.WaitGroup
	for i, ch := range d.channels {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = d.send(ctx, ch, o, maps.Clone(params))
		}()
	}
	wg.Wait()
	return results
}

func (d *Dispatcher) send(ctx context.Context, ch Channel, o *order.Order, params map[string]string) Result {
	ctx, span := d.tracer.Start(ctx, "notification."+ch.Name(), trace.WithAttributes(
		attribute.String("order.number", o.OrderNumber),
	))
	defer span.End()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "notification"),
		zap.String("channel", ch.Name()),
		zap.String("order_number", o.OrderNumber),
	)

	res := Result{Channel: ch.Name()}
	detail, err := ch.Send(ctx, o, params)
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, "notification failed")
		log.Warn("notification failed", zap.Error(err))
	} else {
		res.OK = true
		res.Detail = detail
		log.Info("notification sent")
	}

	d.metrics.Notification(ch.Name(), res.OK)
	return res
}
