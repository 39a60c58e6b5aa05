package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedSeed(t *testing.T) {
	cards, err := LoadSeed("")
	require.NoError(t, err)
	require.NotEmpty(t, cards)

	names := map[string]bool{}
	for _, c := range cards {
		names[c.Name] = true
		assert.Equal(t, c.Goal+c.Assists, c.GPlusA, c.Name)
		assert.Equal(t, "seed", c.Source)
	}
	assert.True(t, names["Lionel Messi"])
	assert.True(t, names["Cristiano Ronaldo"])
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {id: 7, name: Test, position: CF, apps: 4, goal: 2, assists: 2}\n"), 0o600))

	cards, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, uint(7), cards[0].ID)
	assert.InDelta(t, 1.0, cards[0].GAPm, 1e-9)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSeedRejectsBadRows(t *testing.T) {
	tests := map[string]string{
		"missing id":    "- {name: A, apps: 1}\n",
		"duplicate id":  "- {id: 1, name: A}\n- {id: 1, name: B}\n",
		"missing name":  "- {id: 1}\n",
		"negative":      "- {id: 1, name: A, goal: -1}\n",
		"not yaml list": "id: 1\n",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(raw))
			assert.Error(t, err)
		})
	}
}
