package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"compare messi and ronaldo", IntentCompare},
		{"messi vs ronaldo", IntentCompare},
		{"top 5 strikers", IntentRank},
		{"rank the defenders", IntentRank},
		{"player rankings please", IntentRank},
		{"who ranks highest for assists", IntentRank},
		{"strikers ranked by goals", IntentRank},
		{"compare the top 5 strikers", IntentCompare},
		{"why is messi so good", IntentExplain},
		{"is messi better than pele", IntentExplain},
		{"players like de bruyne", IntentSimilar},
		{"who is similar to mbappe", IntentSimilar},
		{"frank lampard stats", IntentFact},
		{"top scorer", IntentFact},
		{"", IntentFact},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(Normalize(tt.input)))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "who is the top scorer?", Normalize("  Who is the TOP scorer?\n"))
}
