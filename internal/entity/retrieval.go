package entity

// Hit metadata keys populated by the ingestion pipeline. The section number
// may live under a generic key or a scheme-specific one depending on corpus
// vintage; consumers try them in order.
const (
	MetaKeySource     = "source"
	MetaKeyType       = "type"
	MetaKeyTitle      = "title"
	MetaKeySection    = "section"
	MetaKeyBNSSection = "bns_section"
	MetaKeyIPCSection = "ipc_section"
	MetaKeyCaseID     = "case_id"
	MetaKeyURL        = "url"
)

// Document types stored in hit metadata.
const (
	DocTypeStatute  = "statute"
	DocTypeJudgment = "judgment"
)

// UnknownTitle is the placeholder the ingestion pipeline writes when a
// judgment title could not be determined.
const UnknownTitle = "Unknown Case"

// RetrievalHit is one candidate document returned by the vector store.
// Distance is non-negative; smaller means more relevant.
type RetrievalHit struct {
	Document string
	Metadata map[string]string
	Distance float64
}

// Source returns the hit's source label, or "Unknown" when absent.
func (h RetrievalHit) Source() string {
	if s := h.Metadata[MetaKeySource]; s != "" {
		return s
	}
	return "Unknown"
}

// Type returns the document type stored in metadata.
func (h RetrievalHit) Type() string {
	return h.Metadata[MetaKeyType]
}
