package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedImage(t *testing.T) {
	assert.True(t, AllowedImage("photo.png"))
	assert.True(t, AllowedImage("photo.JPG"))
	assert.True(t, AllowedImage("archive.tar.jpeg"))
	assert.False(t, AllowedImage("video.mp4"))
	assert.False(t, AllowedImage("noextension"))
	assert.False(t, AllowedImage("script.php"))
}

func TestSecureFilename(t *testing.T) {
	assert.Equal(t, "my_photo.png", SecureFilename("my photo.png"))
	assert.Equal(t, "passwd", SecureFilename("../../etc/passwd"))
	assert.Equal(t, "file", SecureFilename("صورة"))
	assert.Equal(t, "a-b_c.1.jpg", SecureFilename("a-b_c.1.jpg"))
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveAvoidsCollision(t *testing.T) {
	dir := t.TempDir()

	name1, err := Save(makeFileHeader(t, "photo.png", "first"), dir)
	require.NoError(t, err)
	assert.Equal(t, "photo.png", name1)

	name2, err := Save(makeFileHeader(t, "photo.png", "second"), dir)
	require.NoError(t, err)
	assert.NotEqual(t, name1, name2)
	assert.Contains(t, name2, "photo.png")

	data, err := os.ReadFile(filepath.Join(dir, name1))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	data, err = os.ReadFile(filepath.Join(dir, name2))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestRemoveMissingFileIsQuiet(t *testing.T) {
	// Не должно паниковать и не должно трогать что-либо на диске.
	Remove(t.TempDir(), "nope.png")
	Remove(t.TempDir(), "")
}
