// Package validator checks inbound API payloads before they reach the
// usecases.
package validator

import (
	"fmt"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

const maxQueryLength = 4000

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateQuery(req *entity.QueryRequest) error {
	if req.Query == "" {
		return fmt.Errorf("%w: query", entity.ErrMissingField)
	}
	if len(req.Query) > maxQueryLength {
		return fmt.Errorf("%w: query exceeds %d characters", entity.ErrInvalidParameter, maxQueryLength)
	}
	if req.Language == "" {
		req.Language = entity.LanguageEnglish
	}
	if err := req.Language.Validate(); err != nil {
		return fmt.Errorf("%w: language %q", entity.ErrInvalidParameter, req.Language)
	}
	return nil
}

func (v *Validator) ValidateExportFormat(format entity.ExportFormat) error {
	if err := format.Validate(); err != nil {
		return fmt.Errorf("%w: %q (allowed: md, pdf, docx)", entity.ErrUnsupportedFormat, format)
	}
	return nil
}
