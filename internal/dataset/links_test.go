package dataset

import (
	"context"
	"testing"

	"reprise/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoLinks_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Workout_Links.csv", `Workout,Links
 Bench Press ,https://videos.example/bench
Squat,
,https://videos.example/orphan
Chest Flyes, https://videos.example/flyes
`)

	links := NewVideoLinks(storage.NewLocalStore(dir), "Workout_Links.csv", nil, nil)
	idx, err := links.Index(context.Background())
	require.NoError(t, err)

	assert.Len(t, idx, 2, "rows without a name or URL are dropped")
	url, ok := idx.Lookup("BENCH PRESS  ")
	assert.True(t, ok)
	assert.Equal(t, "https://videos.example/bench", url)
	url, ok = idx.Lookup("chest flyes")
	assert.True(t, ok)
	assert.Equal(t, "https://videos.example/flyes", url)

	_, ok = idx.Lookup("Squat")
	assert.False(t, ok)
	_, ok = idx.Lookup("")
	assert.False(t, ok)
}

func TestVideoLinks_MissingFileIsSoft(t *testing.T) {
	links := NewVideoLinks(storage.NewLocalStore(t.TempDir()), "Workout_Links.csv", nil, nil)

	idx, err := links.Index(context.Background())
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestVideoLinks_ReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	links := NewVideoLinks(storage.NewLocalStore(dir), "Workout_Links.csv", nil, nil)
	ctx := context.Background()

	idx, err := links.Index(ctx)
	require.NoError(t, err)
	assert.Empty(t, idx)

	writeFile(t, dir, "Workout_Links.csv", "Workout,Links\nSquat,https://videos.example/squat\n")
	idx, err = links.Index(ctx)
	require.NoError(t, err)
	assert.Empty(t, idx, "empty index stays cached")

	require.NoError(t, links.Reload(ctx))
	idx, err = links.Index(ctx)
	require.NoError(t, err)
	_, ok := idx.Lookup("squat")
	assert.True(t, ok)
}

func TestStaticVideoLinks(t *testing.T) {
	links := NewStaticVideoLinks(map[string]string{"Push Up": " https://videos.example/push ", "Nothing": ""})

	idx, err := links.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LinkIndex{"push up": "https://videos.example/push"}, idx)
}
