package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

func TestFactory(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format      entity.ExportFormat
		contentType string
		extension   string
	}{
		{entity.FormatMarkdown, "text/markdown; charset=utf-8", ".md"},
		{entity.FormatPDF, "application/pdf", ".pdf"},
		{entity.FormatDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := factory.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, f.ContentType())
			assert.Equal(t, tt.extension, f.FileExtension())
		})
	}

	_, err := factory.Create("csv")
	assert.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdownFormatter()

	out, err := f.Format("Case Summary", "body text")
	require.NoError(t, err)
	assert.Equal(t, "# Case Summary\n\nbody text\n", string(out))
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	f := NewPDFFormatter()

	out, err := f.Format("Case Summary", "body text")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
