package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleCapture(video string, frames ...int) *entity.RawCapture {
	c := &entity.RawCapture{VideoName: video}
	for _, f := range frames {
		c.Frames = append(c.Frames, entity.FrameRecord{
			Frame: f,
			Landmarks: []entity.Landmark{
				{ID: 0, Name: "NOSE", X: 0.5, Y: 0.4, Z: -0.1, Visibility: 0.98},
			},
		})
	}
	return c
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, zap.NewNop())
	require.NoError(t, err)

	capture := sampleCapture("walk.mp4", 0, 2)
	path, err := store.Save(context.Background(), capture)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "walk.mp4.json"), path)

	loaded, err := store.Load(context.Background(), "walk.mp4")
	require.NoError(t, err)
	assert.Equal(t, capture, loaded)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), sampleCapture("walk.mp4", 0))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "walk.mp4.json", entries[0].Name())
}

func TestSaveReplacesPriorArtifact(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), sampleCapture("walk.mp4", 0, 1, 2))
	require.NoError(t, err)

	_, err = store.Save(context.Background(), sampleCapture("walk.mp4", 5))
	require.NoError(t, err)

	loaded, err := store.Load(context.Background(), "walk.mp4")
	require.NoError(t, err)
	require.Len(t, loaded.Frames, 1)
	assert.Equal(t, 5, loaded.Frames[0].Frame)
}

func TestArtifactWireFormat(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, zap.NewNop())
	require.NoError(t, err)

	path, err := store.Save(context.Background(), sampleCapture("walk.mp4", 3))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	frames, ok := doc["frames"].([]any)
	require.True(t, ok)
	require.Len(t, frames, 1)

	frame := frames[0].(map[string]any)
	assert.Equal(t, float64(3), frame["frame"])

	landmark := frame["landmarks"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "nome", "x", "y", "z", "visibility"} {
		assert.Contains(t, landmark, key)
	}
	assert.Equal(t, "NOSE", landmark["nome"])
}

func TestLoadMissingArtifact(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "absent.mp4")
	assert.Error(t, err)
}

type failingMirror struct{}

func (failingMirror) Upload(context.Context, string, []byte) error {
	return errors.New("bucket offline")
}

func TestMirrorFailureDoesNotFailSave(t *testing.T) {
	store, err := NewStore(t.TempDir(), failingMirror{}, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), sampleCapture("walk.mp4", 0))
	assert.NoError(t, err, "mirroring is best effort; the local write already succeeded")
}
