package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
)

type sampleRecord struct {
	Name string `json:"name_en" validate:"required"`
	Year int    `json:"date_inscribed" validate:"required,gte=1000,lte=2100"`
}

func TestValidatePasses(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(sampleRecord{Name: "Mount Athos", Year: 1988}))
}

func TestValidateUsesJSONTagNames(t *testing.T) {
	v := New()

	err := v.Validate(sampleRecord{Year: 3000})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	fields := FieldErrors(err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "name_en")
	assert.Contains(t, fields, "date_inscribed")
	assert.Equal(t, "is required", fields["name_en"])
	assert.Equal(t, "must be less than or equal to 2100", fields["date_inscribed"])
}

func TestFieldErrorsOnForeignError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}
