package resource

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"artmarket/internal/api/pagination"
	"artmarket/internal/domain/entity"
	"artmarket/internal/platform/apierr"
	"artmarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		key    string
	}{
		{"api error passes through", apierr.IDNull("art"), http.StatusBadRequest, apierr.KeyIDNull},
		{"not found", repository.ErrNotFound, http.StatusNotFound, apierr.KeyNotFound},
		{"gorm not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound, apierr.KeyNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, http.StatusBadRequest, apierr.KeyDuplicate},
		{"missing reference", fmt.Errorf("%w: collections [9]", entity.ErrMissingReference), http.StatusBadRequest, apierr.KeyBadReference},
		{"bad sort", fmt.Errorf("%w: x", pagination.ErrBadSort), http.StatusBadRequest, apierr.KeyBadSort},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, apierr.KeyInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate("art", tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.key, got.Key)
			assert.Equal(t, "art", got.Entity)
		})
	}
}

func TestParseID(t *testing.T) {
	for in, want := range map[string]bool{"1": true, "42": true, "0": false, "-1": false, "x": false, "": false} {
		_, ok := ParseID(in)
		assert.Equal(t, want, ok, in)
	}
}
