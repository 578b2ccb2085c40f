// internal/service/catalog/engine.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/catalog"
	xerrors "carmarket-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Reader is the read contract shared by the database and the fallback source.
type Reader interface {
	ListAll(ctx context.Context) ([]catalog.ListingView, error)
	ListFiltered(ctx context.Context, f catalog.Filter) ([]catalog.ListingView, error)
	GetByID(ctx context.Context, id int64) (*catalog.ListingView, error)
}

// Primary is the database side, which can also see inactive listings.
type Primary interface {
	Reader
	GetAnyByID(ctx context.Context, id int64) (*catalog.ListingView, error)
}

type Engine struct {
	primary  Primary
	fallback Reader
	latch    *Latch
	logger   *zap.Logger
}

// NewEngine wires the catalog. A nil fallback disables failover: connectivity
// errors then surface as xerrors.ErrUnavailable.
func NewEngine(primary Primary, fallback Reader, logger *zap.Logger) *Engine {
	return &Engine{
		primary:  primary,
		fallback: fallback,
		latch:    &Latch{},
		logger:   logger,
	}
}

// ListAll returns every active listing, newest first.
func (e *Engine) ListAll(ctx context.Context) ([]catalog.ListingView, error) {
	return read(ctx, e, "list all",
		func(r Reader) ([]catalog.ListingView, error) { return r.ListAll(ctx) })
}

// ListFiltered applies every set criterion. An empty filter is ListAll.
func (e *Engine) ListFiltered(ctx context.Context, f catalog.Filter) ([]catalog.ListingView, error) {
	if f.IsEmpty() {
		return e.ListAll(ctx)
	}
	return read(ctx, e, "list filtered",
		func(r Reader) ([]catalog.ListingView, error) { return r.ListFiltered(ctx, f) })
}

// GetByID returns an active listing or xerrors.ErrNotFound.
func (e *Engine) GetByID(ctx context.Context, id int64) (*catalog.ListingView, error) {
	return read(ctx, e, "get by id",
		func(r Reader) (*catalog.ListingView, error) { return r.GetByID(ctx, id) })
}

// GetForViewer is GetByID that also lets the owner or an admin see an
// inactive listing.
func (e *Engine) GetForViewer(ctx context.Context, id int64, viewer *auth.Viewer) (*catalog.ListingView, error) {
	l, err := e.GetByID(ctx, id)
	if viewer == nil || !errors.Is(err, xerrors.ErrNotFound) || e.latch.Tripped() {
		return l, err
	}

	hidden, err := e.primary.GetAnyByID(ctx, id)
	if err != nil {
		return nil, db.AsUnavailable(err)
	}
	if !viewer.CanManage(hidden.Owner) {
		return nil, xerrors.ErrNotFound
	}
	return hidden, nil
}

// FallbackActive reports whether reads are being served from the fallback.
func (e *Engine) FallbackActive() bool {
	return e.latch.Tripped()
}

// FallbackEnabled reports whether failover is configured.
func (e *Engine) FallbackEnabled() bool {
	return e.fallback != nil
}

// ResetFallback sends reads back to the database.
func (e *Engine) ResetFallback() {
	if e.latch.Tripped() {
		e.logger.Info("catalog fallback reset, reads go to the database again")
	}
	e.latch.Reset()
}

func (e *Engine) Status() catalog.FallbackStatus {
	return catalog.FallbackStatus{
		FallbackActive:  e.FallbackActive(),
		FallbackEnabled: e.FallbackEnabled(),
	}
}

// read runs op against the primary unless the latch is tripped. A
// connectivity failure trips the latch and the same call is answered by the
// fallback.
func read[T any](ctx context.Context, e *Engine, op string, run func(Reader) (T, error)) (T, error) {
	if e.fallback != nil && e.latch.Tripped() {
		return run(e.fallback)
	}

	out, err := run(e.primary)
	if err == nil || !db.IsConnection(err) {
		return out, err
	}

	if e.fallback == nil {
		e.logger.Error("catalog database unreachable", zap.String("op", op), zap.Error(err))
		var zero T
		return zero, fmt.Errorf("catalog %s: %w: %w", op, xerrors.ErrUnavailable, err)
	}

	if e.latch.Trip() {
		e.logger.Warn("catalog database unreachable, serving fallback data until reset",
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return run(e.fallback)
}
