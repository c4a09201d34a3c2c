package resource

import (
	"errors"
	"net/http"

	"artmarket/internal/api/merge"
	"artmarket/internal/api/pagination"
	"artmarket/internal/domain/entity"
	"artmarket/internal/platform/apierr"
	"artmarket/internal/repository"

	"gorm.io/gorm"
)

// Translate maps err onto the API error taxonomy. Anything unrecognized is
// an internal error.
func Translate(entityName string, err error) *apierr.Error {
	if apiErr, ok := apierr.As(err); ok {
		if apiErr.Entity == "" {
			apiErr.Entity = entityName
		}
		return apiErr
	}
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apierr.NotFound(entityName)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierr.New(http.StatusBadRequest, apierr.KeyDuplicate, entityName, err)
	case errors.Is(err, entity.ErrMissingReference):
		return apierr.New(http.StatusBadRequest, apierr.KeyBadReference, entityName, err)
	case errors.Is(err, pagination.ErrBadSort):
		return apierr.New(http.StatusBadRequest, apierr.KeyBadSort, entityName, err)
	case errors.Is(err, merge.ErrNotObject):
		return apierr.Malformed(entityName, err)
	default:
		return apierr.Internal(entityName, err)
	}
}
