package icon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ravem-box/pkg/logger"
)

func TestIconSetGet(t *testing.T) {
	camera := filepath.Join(t.TempDir(), "camera.png")
	require.NoError(t, os.WriteFile(camera, []byte("png"), 0o600))

	s := NewIconSet(&Config{Paths: map[string]string{
		"icon-camera":  camera,
		"icon-warning": filepath.Join(t.TempDir(), "missing.png"),
		"icon-spinner": "",
	}}, logger.NewNopZerolog())

	path, err := s.Get("icon-camera")
	require.NoError(t, err)
	assert.Equal(t, camera, path)

	path, err = s.Get("icon-spinner")
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = s.Get("icon-no-camera")
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = s.Get("icon-warning")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
