// internal/repository/sqldb/scan.go
package sqldb

import (
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/catalog"
	xerrors "carmarket-service/internal/pkg/errors"
)

type scanner interface {
	Scan(dest ...any) error
}

// scanListingView maps one row of listingViewSelect.
func scanListingView(s scanner, extra ...any) (catalog.ListingView, error) {
	var v catalog.ListingView
	var added db.Time

	dest := append(extra,
		&v.ID, &v.BrandID, &v.Brand, &v.ModelID, &v.ModelName, &v.ProdYear, &v.EngVol,
		&v.Price, &v.Mileage, &v.Active, &v.New, &v.Owner, &v.EngineType, &v.BodyType,
		&v.GearBox, &v.DriveType, &v.Color, &added,
	)
	if err := s.Scan(dest...); err != nil {
		return catalog.ListingView{}, err
	}
	v.DateAdded = added.Time
	return v, nil
}

// conflict tags unique violations with xerrors.ErrConflict.
func conflict(err error, what string) error {
	if db.IsDuplicate(err) {
		return fmt.Errorf("%s: %w: %w", what, xerrors.ErrConflict, err)
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}
