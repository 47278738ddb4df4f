package syncer

import (
	"time"

	"github.com/google/uuid"
	"github.com/webmall/storesync/internal/notify"
	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
	sink   *notify.Sink
	now    func() time.Time
	newID  func() string
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSink routes notifications to a caller-owned sink, e.g. one shared
// between the cart and the wishlist.
func WithSink(sink *notify.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithClock fixes the timestamp source; tests use it to pin addedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides how line-item IDs are generated. IDs only need
// to be unique within one list.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func applyOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		sink:   notify.NewSink(0),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
