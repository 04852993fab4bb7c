package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"greeting", "hello", IntentSimple},
		{"greeting with punctuation", "Hi, there", IntentSimple},
		{"namaste", "namaste", IntentSimple},
		{"thanks", "thank you", IntentSimple},
		{"capability question", "what can you do", IntentSimple},
		{"statute question", "What is the punishment under IPC section 302", IntentLegal},
		{"bail question", "how do I apply for bail", IntentLegal},
		{"divorce question", "grounds for divorce in India", IntentLegal},
		{"unrecognized text defaults to legal", "xyz random text", IntentLegal},
		{"empty defaults to legal", "", IntentLegal},
		{"greeting embedded in a word stays legal", "which act applies to theft", IntentLegal},
		{"greeting mid-sentence stays legal", "please say hello to the court registry", IntentLegal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}
