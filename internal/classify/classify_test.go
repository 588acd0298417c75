package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_VideoAlwaysWins(t *testing.T) {
	// Every supported video extension must classify as Video regardless
	// of what mime guessing would say.
	for _, name := range []string{
		"clip.mp4", "clip.avi", "clip.mov", "clip.mkv",
		"clip.webm", "clip.flv", "clip.wmv", "clip.m4v",
		"CLIP.MP4", "dir/nested/demo.MoV",
	} {
		assert.Equal(t, Video, Classify(name), "path %s", name)
	}
}

func TestClassify_Categories(t *testing.T) {
	cases := []struct {
		path string
		want Category
	}{
		{"main.go", TextLike},
		{"notes.txt", TextLike},
		{"index.html", TextLike},
		{"config.yaml", TextLike},
		{"query.sql", TextLike},
		{"photo.jpg", Image},
		{"photo.JPEG", Image},
		{"icon.png", Image},
		{"anim.gif", Image},
		{"archive.zip", Opaque},
		{"binary", Opaque},
		{"lib.so", Opaque},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.path), "path %s", tc.path)
	}
}

func TestVideoMimeType(t *testing.T) {
	assert.Equal(t, "video/mp4", VideoMimeType("a.mp4"))
	assert.Equal(t, "video/mp4", VideoMimeType("a.m4v"))
	assert.Equal(t, "video/x-matroska", VideoMimeType("a.mkv"))
	assert.Equal(t, "video/quicktime", VideoMimeType("a.MOV"))
	assert.Equal(t, "", VideoMimeType("a.txt"))
	assert.True(t, IsVideo("b.webm"))
	assert.False(t, IsVideo("b.wav"))
}

func TestGuessMimeType(t *testing.T) {
	assert.Equal(t, "image/png", GuessMimeType("a.png"))
	assert.Equal(t, "application/octet-stream", GuessMimeType("a.bin"))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "video", Video.String())
	assert.Equal(t, "text", TextLike.String())
	assert.Equal(t, "image", Image.String())
	assert.Equal(t, "opaque", Opaque.String())
}
