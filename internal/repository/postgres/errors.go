package postgres

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/lib/pq"

	"devevent/internal/domain"
)

// classify converts a driver error into a *domain.StoreError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505":
			return domain.NewStoreError(domain.StoreDuplicate, constraintField(pqErr), err)
		case pqErr.Code == "23502", pqErr.Code == "23514", pqErr.Code == "22001":
			return domain.NewStoreError(domain.StoreValidation, pqErr.Column, err)
		case pqErr.Code == "22P02":
			return domain.NewStoreError(domain.StoreMalformed, pqErr.Column, err)
		case pqErr.Code.Class() == "08", pqErr.Code == "57P01", pqErr.Code == "57P03":
			return domain.NewStoreError(domain.StoreConnectivity, "", err)
		}
		return domain.NewStoreError(domain.StoreOther, "", err)
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, syscall.ECONNREFUSED) || errors.As(err, &netErr) {
		return domain.NewStoreError(domain.StoreConnectivity, "", err)
	}
	return domain.NewStoreError(domain.StoreOther, "", err)
}

// constraintField maps a unique constraint such as "events_slug_key" to "slug".
func constraintField(e *pq.Error) string {
	if e.Column != "" {
		return e.Column
	}
	name := strings.TrimSuffix(e.Constraint, "_key")
	if i := strings.Index(name, "_"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
