package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

func TestParseCompletion_AnalysisBlocks(t *testing.T) {
	raw := "Answer here. [FACTORS]\n- intention\n- premeditation\n[/FACTORS]\n[INTERPRETATIONS]\n- strict reading\n[/INTERPRETATIONS]"

	got := ParseCompletion(raw, true, false)

	assert.Equal(t, "Answer here.", got.Answer)
	require.NotNil(t, got.NeutralAnalysis)
	assert.Equal(t, []string{"intention", "premeditation"}, got.NeutralAnalysis.Factors)
	assert.Equal(t, []string{"strict reading"}, got.NeutralAnalysis.Interpretations)
	assert.Nil(t, got.Arguments)
	assert.Equal(t, entity.Disclaimer, got.Disclaimer)
}

func TestParseCompletion_ArgumentBlocks(t *testing.T) {
	raw := "The position is contested.\n[FOR]\n- precedent supports it\n[/FOR]\n[AGAINST]\n- statute is silent\n[/AGAINST]"

	got := ParseCompletion(raw, false, true)

	assert.Equal(t, "The position is contested.", got.Answer)
	require.NotNil(t, got.Arguments)
	assert.Equal(t, []string{"precedent supports it"}, got.Arguments.For)
	assert.Equal(t, []string{"statute is silent"}, got.Arguments.Against)
	assert.Nil(t, got.NeutralAnalysis)
}

func TestParseCompletion_AlternateArgumentTags(t *testing.T) {
	raw := "Answer.\n[ARGUMENTS FOR]\n- point a\n[/ARGUMENTS FOR]\n[ARGUMENTS AGAINST]\n- point b\n[/ARGUMENTS AGAINST]"

	got := ParseCompletion(raw, false, true)

	require.NotNil(t, got.Arguments)
	assert.Equal(t, []string{"point a"}, got.Arguments.For)
	assert.Equal(t, []string{"point b"}, got.Arguments.Against)
}

func TestParseCompletion_MissingHalfGetsPlaceholder(t *testing.T) {
	raw := "Answer.\n[FOR]\n- only one side\n[/FOR]"

	got := ParseCompletion(raw, false, true)

	require.NotNil(t, got.Arguments)
	assert.Equal(t, []string{"only one side"}, got.Arguments.For)
	assert.Equal(t, []string{"N/A"}, got.Arguments.Against)
}

func TestParseCompletion_AnalysisPlaceholders(t *testing.T) {
	raw := "Answer.\n[FACTORS]\n- motive\n[/FACTORS]"

	got := ParseCompletion(raw, true, false)

	require.NotNil(t, got.NeutralAnalysis)
	assert.Equal(t, []string{"motive"}, got.NeutralAnalysis.Factors)
	assert.Equal(t, []string{"Further research required"}, got.NeutralAnalysis.Interpretations)
}

func TestParseCompletion_NoBlocksYieldsNilModes(t *testing.T) {
	raw := "A plain answer without any tags."

	got := ParseCompletion(raw, true, true)

	assert.Equal(t, raw, got.Answer)
	assert.Nil(t, got.NeutralAnalysis)
	assert.Nil(t, got.Arguments)
}

func TestParseCompletion_ModesOffIgnoreBlocks(t *testing.T) {
	raw := "Answer. [FACTORS]\n- ignored\n[/FACTORS]"

	got := ParseCompletion(raw, false, false)

	assert.Equal(t, "Answer.", got.Answer)
	assert.Nil(t, got.NeutralAnalysis)
}

func TestParseCompletion_CaseInsensitiveAndBulletVariants(t *testing.T) {
	raw := "Answer.\n[factors]\n* lower case tag\nno bullet prefix\n[/factors]\n[interpretations]\n- ok\n[/interpretations]"

	got := ParseCompletion(raw, true, false)

	require.NotNil(t, got.NeutralAnalysis)
	assert.Equal(t, []string{"lower case tag", "no bullet prefix"}, got.NeutralAnalysis.Factors)
}

func TestVisibleAnswer_StripsStrayTokensAndBlankRuns(t *testing.T) {
	raw := "First line.\n[/FOR]\n\n\n\nSecond line."

	got := visibleAnswer(raw)

	assert.Equal(t, "First line.\n\nSecond line.", got)
}
