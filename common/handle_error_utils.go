package common

import (
	"errors"

	"ecom-admin/domain"
)

// IsRecordNotFound reports whether a repository error means the row is
// absent rather than the query failing.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, domain.ErrRecordNotFound)
}

// IsDetailError unwraps err to the DetailedError carrying its http
// mapping, if there is one.
func IsDetailError(err error) (*domain.DetailedError, bool) {
	var de *domain.DetailedError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
