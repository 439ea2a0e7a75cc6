package gatehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want MediaType
	}{
		{"photo.png", MediaTypeImage},
		{"photo.PNG", MediaTypeImage},
		{"animation.webp", MediaTypeImage},
		{"pic.jpg", MediaTypeImage},
		{"pic.jpeg", MediaTypeImage},
		{"anim.gif", MediaTypeImage},
		{"logo.svg", MediaTypeImage},
		{"favicon.ico", MediaTypeImage},

		{"song.mp3", MediaTypeAudio},
		{"song.ogg", MediaTypeAudio},
		{"song.oga", MediaTypeAudio},
		{"voice.opus", MediaTypeAudio},
		{"take.wav", MediaTypeAudio},
		{"book.m4a", MediaTypeAudio},
		{"book.m4b", MediaTypeAudio},
		{"ring.m4r", MediaTypeAudio},
		{"stream.aac", MediaTypeAudio},
		{"master.flac", MediaTypeAudio},

		{"clip.mov", MediaTypeVideo},
		{"clip.mp4", MediaTypeVideo},
		{"clip.webm", MediaTypeVideo},
		{"clip.m4v", MediaTypeVideo},
		{"clip.3gp", MediaTypeVideo},
		{"clip.ogv", MediaTypeVideo},
		{"clip.avi", MediaTypeVideo},
		{"clip.MPEG", MediaTypeVideo},

		{"report.pdf", MediaTypeAttachment},
		{"archive.zip", MediaTypeAttachment},
		{"data.csv", MediaTypeAttachment},
		{"noextension", MediaTypeAttachment},
		{"", MediaTypeAttachment},
		{"tricky.png.exe", MediaTypeAttachment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

// TestClassifyOggPrecedence pins the audio-before-video evaluation order for
// the ogg container family: .ogg and .oga always classify as Audio even when
// the container holds video, while .ogv classifies as Video. Changing this
// changes rendered markdown and size-limit selection for existing uploads,
// so it must be a deliberate decision.
func TestClassifyOggPrecedence(t *testing.T) {
	assert.Equal(t, MediaTypeAudio, Classify("theora-video.ogg"))
	assert.Equal(t, MediaTypeAudio, Classify("theora-video.oga"))
	assert.Equal(t, MediaTypeVideo, Classify("theora-video.ogv"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("a.webp"))
	assert.True(t, IsImage("a.JPG"))
	assert.False(t, IsImage("a.heic")) // classifier table, not the policy pattern
	assert.False(t, IsImage("a.pdf"))
}
