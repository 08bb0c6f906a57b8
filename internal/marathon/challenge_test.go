package marathon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadChallenges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "challenges.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"label": "Six majors", "completed": false},
		{"label": "100 km", "completed": true},
		{"label": "Sub-4", "completed": true}
	]`), 0644))

	challenges, err := LoadChallenges(path)
	require.NoError(t, err)
	require.Len(t, challenges, 3)
	assert.Equal(t, Challenge{"Six majors", false}, challenges[0])

	done, total := Progress(challenges)
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

func TestProgressEmpty(t *testing.T) {
	done, total := Progress(nil)
	assert.Zero(t, done)
	assert.Zero(t, total)
}
