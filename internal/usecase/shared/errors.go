package shared

import (
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
)

// MapRepoErr turns a missing row into notFound and marks any other
// repository failure as a storage failure.
func MapRepoErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrStorage)
}
