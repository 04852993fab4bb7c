package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

func TestValidateQuery(t *testing.T) {
	v := NewValidator()

	t.Run("missing query", func(t *testing.T) {
		err := v.ValidateQuery(&entity.QueryRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrMissingField)
	})

	t.Run("query too long", func(t *testing.T) {
		err := v.ValidateQuery(&entity.QueryRequest{Query: strings.Repeat("a", 4001)})
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	})

	t.Run("defaults language to english", func(t *testing.T) {
		req := &entity.QueryRequest{Query: "what is theft"}
		require.NoError(t, v.ValidateQuery(req))
		assert.Equal(t, entity.LanguageEnglish, req.Language)
	})

	t.Run("rejects unknown language", func(t *testing.T) {
		err := v.ValidateQuery(&entity.QueryRequest{Query: "q", Language: "fr"})
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	})

	t.Run("accepts hindi", func(t *testing.T) {
		require.NoError(t, v.ValidateQuery(&entity.QueryRequest{Query: "q", Language: entity.LanguageHindi}))
	})
}

func TestValidateExportFormat(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.ValidateExportFormat(entity.FormatPDF))
	require.NoError(t, v.ValidateExportFormat(entity.FormatDOCX))
	require.NoError(t, v.ValidateExportFormat(entity.FormatMarkdown))

	err := v.ValidateExportFormat("csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}
