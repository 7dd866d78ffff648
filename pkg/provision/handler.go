package provision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getmockd/phonexml/pkg/logging"
	"github.com/getmockd/phonexml/pkg/phonexml"
)

// Builder builds the document for a resolved operation.
type Builder interface {
	Dispatch(op Operation, req *Request) (phonexml.Document, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(op Operation, req *Request) (phonexml.Document, error)

// Dispatch implements Builder.
func (f BuilderFunc) Dispatch(op Operation, req *Request) (phonexml.Document, error) {
	return f(op, req)
}

// Observer receives one measurement per handled request.
type Observer interface {
	ObserveRequest(operation string, failed bool, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, bool, time.Duration) {}

// Handler resolves, dispatches and renders requests. It holds no per-request
// state and is safe for concurrent use.
type Handler struct {
	builder  Builder
	logger   *slog.Logger
	observer Observer
}

// Option configures a Handler.
type Option func(*Handler)

// WithBuilder replaces the default Dispatcher.
func WithBuilder(b Builder) Option {
	return func(h *Handler) {
		if b != nil {
			h.builder = b
		}
	}
}

// WithSchemePolicy sets the self URL scheme policy of the default Dispatcher.
func WithSchemePolicy(p SchemePolicy) Option {
	return func(h *Handler) {
		h.builder = Dispatcher{Scheme: p}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l == nil {
			l = logging.Nop()
		}
		h.logger = l
	}
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(h *Handler) {
		if o != nil {
			h.observer = o
		}
	}
}

// NewHandler creates a Handler. Without options it uses a Dispatcher with
// SchemePlain, no logging and no metrics.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		builder:  Dispatcher{Scheme: SchemePlain},
		logger:   logging.Nop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle produces the response for req. It never fails: errors returned and
// panics raised while building the document are rendered with Failure.
func (h *Handler) Handle(ctx context.Context, req *Request) (resp Response) {
	if req == nil {
		req = &Request{}
	}
	start := time.Now()
	op := ResolveOperation(req)
	failed := false

	defer func() {
		if v := recover(); v != nil {
			err, ok := v.(error)
			if !ok {
				err = fmt.Errorf("%v", v)
			}
			resp = h.fail(ctx, req, op, err)
			failed = true
		}

		d := time.Since(start)
		h.observer.ObserveRequest(op.String(), failed, d)
		h.logger.DebugContext(ctx, "handled request",
			"operation", op.String(),
			"requestId", req.RequestContext.RequestID,
			"failed", failed,
			"duration", d,
		)
	}()

	doc, err := h.builder.Dispatch(op, req)
	if err != nil {
		failed = true
		return h.fail(ctx, req, op, err)
	}
	return Success(doc)
}

func (h *Handler) fail(ctx context.Context, req *Request, op Operation, err error) Response {
	h.logger.WarnContext(ctx, "rendering error screen",
		"operation", op.String(),
		"requestId", req.RequestContext.RequestID,
		"error", err,
	)
	return Failure(err)
}
