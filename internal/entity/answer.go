package entity

// Disclaimer is attached to every structured answer.
const Disclaimer = "AI-generated response. For informational purposes only. Consult a qualified lawyer."

// Citation points at a statute or judgment backing an answer.
type Citation struct {
	Source  string `json:"source"`
	Section string `json:"section,omitempty"`
	Excerpt string `json:"text"`
	URL     string `json:"url,omitempty"`
}

// RelatedJudgment is a case-law reference derived from a judgment hit.
type RelatedJudgment struct {
	Title   string `json:"title"`
	Excerpt string `json:"text"`
	CaseID  string `json:"case_id,omitempty"`
}

// Arguments holds the balanced for/against lists parsed from generator output.
type Arguments struct {
	For     []string `json:"for"`
	Against []string `json:"against"`
}

// NeutralAnalysis holds the factors/interpretations lists parsed from
// generator output.
type NeutralAnalysis struct {
	Factors         []string `json:"factors"`
	Interpretations []string `json:"interpretations"`
}

// StructuredAnswer is the final result of the query pipeline.
// Arguments and NeutralAnalysis are nil unless the corresponding mode was
// requested and the generator emitted parseable tagged content.
type StructuredAnswer struct {
	Answer           string            `json:"answer"`
	Citations        []Citation        `json:"citations"`
	RelatedJudgments []RelatedJudgment `json:"related_judgments"`
	Arguments        *Arguments        `json:"arguments"`
	NeutralAnalysis  *NeutralAnalysis  `json:"neutral_analysis"`
	Disclaimer       string            `json:"disclaimer"`
}
