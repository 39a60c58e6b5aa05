package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "kylian mbappe", Fold("Kylian Mbappé"))
	assert.Equal(t, "luka modric", Fold("Luka Modrić"))
	assert.Equal(t, "plain", Fold("PLAIN"))
}

func TestMentions(t *testing.T) {
	idx := newNameIndex(append(chatFixture(),
		models.NewPlayerCard(7, "Ronaldo", "Real Madrid", "CF", "epic", 26, 300, 240, 50),
		models.NewPlayerCard(8, "Neymar Jr", "Santos", "LWF", "epic", 32, 500, 300, 200),
	))

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"full names in order", "Cristiano Ronaldo or Lionel Messi", []string{"Cristiano Ronaldo", "Lionel Messi"}},
		{"surname only", "messi vs mbappe", []string{"Lionel Messi", "Kylian Mbappé"}},
		{"nested name dropped", "cristiano ronaldo stats", []string{"Cristiano Ronaldo"}},
		{"single word name", "ronaldo", []string{"Ronaldo"}},
		{"short suffix ignored", "jr", []string{}},
		{"first word when surname is a suffix", "compare neymar and messi", []string{"Neymar Jr", "Lionel Messi"}},
		{"repeated name counted once", "messi messi", []string{"Lionel Messi"}},
		{"no match", "who is the best", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Mentions(tt.input))
		})
	}
}

func TestFind(t *testing.T) {
	idx := newNameIndex(chatFixture())

	name, ok := idx.Find("tell me about Kevin De Bruyne and van Dijk")
	assert.True(t, ok)
	assert.Equal(t, "Kevin De Bruyne", name)

	name, ok = idx.Find("bruy")
	assert.True(t, ok)
	assert.Equal(t, "Kevin De Bruyne", name)

	_, ok = idx.Find("xy")
	assert.False(t, ok)
}

func TestBestAndCards(t *testing.T) {
	idx := newNameIndex(chatFixture())

	best, ok := idx.Best("Lionel Messi")
	assert.True(t, ok)
	assert.Equal(t, uint(3), best.ID)
	assert.Len(t, idx.Cards("Lionel Messi"), 2)

	_, ok = idx.Best("Nobody")
	assert.False(t, ok)
}
