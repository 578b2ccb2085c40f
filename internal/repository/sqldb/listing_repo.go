// internal/repository/sqldb/listing_repo.go
package sqldb

import (
	"context"
	"errors"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/catalog"
	xerrors "carmarket-service/internal/pkg/errors"
)

// listingViewSelect joins a listing against every lookup table. Inner joins
// drop listings whose references do not resolve.
const listingViewSelect = `
	SELECT a.idads, cb.idcb, cb.carbrand, m.idmodels, m.modelname, a.prodyear, a.engvol,
	       a.price, a.milage, a.active, a.new, a.owner, et.enginetype, bt.bodytype,
	       gb.gb, tm.drivetype, c.color, a.date_added
	FROM ads a
	JOIN models m ON a.model = m.idmodels
	JOIN carbrands cb ON m.modelbrand = cb.idcb
	JOIN enginetypes et ON a.engtype = et.idet
	JOIN bodytypes bt ON a.body = bt.idbt
	JOIN gearboxes gb ON a.gearbox = gb.idgb
	JOIN transmissions tm ON a.transmission = tm.idtm
	JOIN colors c ON a.color = c.idc`

const activeOnly = "a.active = TRUE"

var _ catalog.Repository = (*ListingRepository)(nil)

type ListingRepository struct {
	db db.Executor
}

func NewListingRepository(exec db.Executor) *ListingRepository {
	return &ListingRepository{db: exec}
}

// ListAll returns every active listing, newest id first.
func (r *ListingRepository) ListAll(ctx context.Context) ([]catalog.ListingView, error) {
	return r.queryViews(ctx, db.NewWhere(activeOnly))
}

// ListFiltered ANDs one predicate per set criterion onto the active-only base.
func (r *ListingRepository) ListFiltered(ctx context.Context, f catalog.Filter) ([]catalog.ListingView, error) {
	return r.queryViews(ctx, filterWhere(f))
}

func filterWhere(f catalog.Filter) *db.Where {
	return db.NewWhere(activeOnly).
		AddIf(f.Brand != nil, "cb.idcb = ?", f.Brand).
		AddIf(f.Model != nil, "m.idmodels = ?", f.Model).
		AddIf(f.PriceFrom != nil, "a.price >= ?", f.PriceFrom).
		AddIf(f.PriceTo != nil, "a.price <= ?", f.PriceTo).
		AddIf(f.YearFrom != nil, "a.prodyear >= ?", f.YearFrom).
		AddIf(f.YearTo != nil, "a.prodyear <= ?", f.YearTo).
		AddIf(f.EngineType != nil, "a.engtype = ?", f.EngineType).
		AddIf(f.BodyType != nil, "a.body = ?", f.BodyType).
		AddIf(f.GearBox != nil, "a.gearbox = ?", f.GearBox).
		AddIf(f.DriveType != nil, "a.transmission = ?", f.DriveType)
}

// GetByID returns an active listing or xerrors.ErrNotFound.
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*catalog.ListingView, error) {
	return r.getOne(ctx, db.NewWhere(activeOnly).Add("a.idads = ?", id))
}

// GetAnyByID ignores the active flag.
func (r *ListingRepository) GetAnyByID(ctx context.Context, id int64) (*catalog.ListingView, error) {
	return r.getOne(ctx, db.NewWhere().Add("a.idads = ?", id))
}

// ListByOwner returns all of the owner's listings regardless of status.
func (r *ListingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]catalog.ListingView, error) {
	return r.queryViews(ctx, db.NewWhere().Add("a.owner = ?", ownerID))
}

func (r *ListingRepository) getOne(ctx context.Context, w *db.Where) (*catalog.ListingView, error) {
	query := listingViewSelect + " WHERE " + w.SQL()

	v, err := scanListingView(r.db.QueryRow(ctx, query, w.Args()...))
	if errors.Is(err, db.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &v, nil
}

func (r *ListingRepository) queryViews(ctx context.Context, w *db.Where) ([]catalog.ListingView, error) {
	query := listingViewSelect + " WHERE " + w.SQL() + " ORDER BY a.idads DESC"

	rows, err := r.db.Query(ctx, query, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	views := make([]catalog.ListingView, 0)
	for rows.Next() {
		v, err := scanListingView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}
	return views, nil
}

// Create inserts the listing and returns its new id.
func (r *ListingRepository) Create(ctx context.Context, l *catalog.Listing) (int64, error) {
	query := `
		INSERT INTO ads (
			model, prodyear, engvol, price, milage, active, new, owner,
			engtype, body, gearbox, transmission, color, made
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.Insert(ctx, query, "idads",
		l.Model, l.ProdYear, l.EngVol, l.Price, l.Mileage, l.Active, l.New, l.Owner,
		l.EngType, l.Body, l.GearBox, l.Transmission, l.Color, l.Made,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create listing: %w", err)
	}
	l.ID = id
	return id, nil
}

// SoftDelete deactivates an active listing. False means it was missing or
// already inactive.
func (r *ListingRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	n, err := r.db.Exec(ctx, `UPDATE ads SET active = ? WHERE idads = ? AND active = ?`, false, id, true)
	if err != nil {
		return false, fmt.Errorf("failed to delete listing %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *ListingRepository) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	n, err := r.db.Exec(ctx, `UPDATE ads SET active = ? WHERE idads = ?`, active, id)
	if err != nil {
		return false, fmt.Errorf("failed to update listing %d: %w", id, err)
	}
	return n > 0, nil
}

// SetActiveForOwner flips every listing of the owner and returns the count.
func (r *ListingRepository) SetActiveForOwner(ctx context.Context, ownerID int64, active bool) (int64, error) {
	n, err := r.db.Exec(ctx, `UPDATE ads SET active = ? WHERE owner = ?`, active, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to update listings of owner %d: %w", ownerID, err)
	}
	return n, nil
}

// OwnerOf returns the owner of any listing, active or not.
func (r *ListingRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.db.QueryRow(ctx, `SELECT owner FROM ads WHERE idads = ?`, id).Scan(&owner)
	if errors.Is(err, db.ErrNoRows) {
		return 0, xerrors.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find listing %d: %w", id, err)
	}
	return owner, nil
}
