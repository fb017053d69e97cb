package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookfinder/bookfinder-server/internal/errors"
)

type sampleRequest struct {
	Strategy string `json:"strategy" validate:"required,oneof=graph shelf collaborative hybrid"`
	Limit    int    `json:"limit"    validate:"gte=1,lte=100"`
	Query    string `json:"query,omitempty" validate:"omitempty,min=2"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Strategy: "hybrid", Limit: 10})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Strategy: "", Limit: 0})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["strategy"])
	assert.Equal(t, "must be greater than or equal to 1", details["limit"])
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Strategy: "bogus", Limit: 10, Query: "x"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "strategy")
	assert.Contains(t, details, "query")
	assert.Equal(t, "must be one of: graph shelf collaborative hybrid", details["strategy"])
}
