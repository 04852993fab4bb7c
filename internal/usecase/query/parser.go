package query

import (
	"regexp"
	"strings"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

const (
	placeholderFactors         = "Analysis pending"
	placeholderInterpretations = "Further research required"
	placeholderArgument        = "N/A"
)

var (
	leftoverTagPattern = regexp.MustCompile(`(?i)\[/?(FACTORS|INTERPRETATIONS|FOR|AGAINST|ARGUMENTS FOR|ARGUMENTS AGAINST)\]`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

// extractTag pulls the bullet items between [TAG] and [/TAG], case
// insensitively, tolerating missing "- " bullet prefixes.
func extractTag(raw, tag string) []string {
	pattern := regexp.MustCompile(`(?is)\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	var items []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// visibleAnswer strips tagged blocks out of the raw completion: everything
// from the first start marker on is cut, then stray tag tokens are removed
// and blank runs collapsed.
func visibleAnswer(raw string) string {
	lower := strings.ToLower(raw)
	cut := len(raw)
	for _, tag := range []string{"[factors]", "[interpretations]", "[for]", "[against]", "[arguments for]", "[arguments against]"} {
		if idx := strings.Index(lower, tag); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	out := raw[:cut]
	out = leftoverTagPattern.ReplaceAllString(out, "")
	out = blankRunPattern.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// ParseCompletion converts a raw LLM completion into a structured answer,
// extracting optional analysis and argument blocks per the requested modes.
func ParseCompletion(raw string, analysisMode, argumentsMode bool) entity.StructuredAnswer {
	ans := entity.StructuredAnswer{
		Answer:     visibleAnswer(raw),
		Disclaimer: entity.Disclaimer,
	}

	if analysisMode {
		factors := extractTag(raw, "FACTORS")
		interpretations := extractTag(raw, "INTERPRETATIONS")
		if len(factors) > 0 || len(interpretations) > 0 {
			if len(factors) == 0 {
				factors = []string{placeholderFactors}
			}
			if len(interpretations) == 0 {
				interpretations = []string{placeholderInterpretations}
			}
			ans.NeutralAnalysis = &entity.NeutralAnalysis{
				Factors:         factors,
				Interpretations: interpretations,
			}
		}
	}

	if argumentsMode {
		forItems := extractTag(raw, "FOR")
		if forItems == nil {
			forItems = extractTag(raw, "ARGUMENTS FOR")
		}
		againstItems := extractTag(raw, "AGAINST")
		if againstItems == nil {
			againstItems = extractTag(raw, "ARGUMENTS AGAINST")
		}
		if len(forItems) > 0 || len(againstItems) > 0 {
			if len(forItems) == 0 {
				forItems = []string{placeholderArgument}
			}
			if len(againstItems) == 0 {
				againstItems = []string{placeholderArgument}
			}
			ans.Arguments = &entity.Arguments{
				For:     forItems,
				Against: againstItems,
			}
		}
	}

	return ans
}
