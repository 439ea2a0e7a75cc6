package gatehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownImage(t *testing.T) {
	rec := &UploadRecord{
		OriginalFilename: "cat.jpg",
		ThumbnailWidth:   100,
		ThumbnailHeight:  80,
		ShortURL:         "u",
	}
	assert.Equal(t, "![cat|100x80](u)", RenderMarkdown(rec, MarkdownOptions{}))
}

func TestRenderMarkdownImageFallsBackToURL(t *testing.T) {
	rec := &UploadRecord{
		OriginalFilename: "cat.png",
		ThumbnailWidth:   10,
		ThumbnailHeight:  20,
		URL:              "https://cdn.example.com/cat.png",
	}
	assert.Equal(t, "![cat|10x20](https://cdn.example.com/cat.png)", RenderMarkdown(rec, MarkdownOptions{}))
}

func TestRenderMarkdownImageStripsMarkdownCharacters(t *testing.T) {
	rec := &UploadRecord{
		OriginalFilename: "we[ird]|name.png",
		ThumbnailWidth:   1,
		ThumbnailHeight:  2,
		ShortURL:         "u",
	}
	assert.Equal(t, "![weirdname|1x2](u)", RenderMarkdown(rec, MarkdownOptions{}))
}

func TestRenderMarkdownGUIDPlaceholder(t *testing.T) {
	rec := &UploadRecord{
		OriginalFilename: "4CC126FD-4DCA-4857-B193-1A7D0E322435.jpeg",
		ThumbnailWidth:   640,
		ThumbnailHeight:  480,
		ShortURL:         "u",
	}

	// Heuristic disabled: the literal name survives.
	assert.Equal(t,
		"![4CC126FD-4DCA-4857-B193-1A7D0E322435|640x480](u)",
		RenderMarkdown(rec, MarkdownOptions{}))

	// Heuristic enabled: placeholder replaces the opaque identifier.
	assert.Equal(t,
		"![screenshot|640x480](u)",
		RenderMarkdown(rec, MarkdownOptions{ReplaceGUIDNames: true, GeneratedAltText: "screenshot"}))

	// Default placeholder.
	assert.Equal(t,
		"![image|640x480](u)",
		RenderMarkdown(rec, MarkdownOptions{ReplaceGUIDNames: true}))

	// Non-GUID names are never replaced.
	named := &UploadRecord{OriginalFilename: "holiday.jpg", ThumbnailWidth: 1, ThumbnailHeight: 1, ShortURL: "u"}
	assert.Equal(t, "![holiday|1x1](u)", RenderMarkdown(named, MarkdownOptions{ReplaceGUIDNames: true}))
}

func TestRenderMarkdownAudio(t *testing.T) {
	rec := &UploadRecord{OriginalFilename: "podcast.mp3", ShortURL: "upload://abc.mp3"}
	assert.Equal(t, "![podcast|audio](upload://abc.mp3)", RenderMarkdown(rec, MarkdownOptions{}))
}

func TestRenderMarkdownVideo(t *testing.T) {
	rec := &UploadRecord{OriginalFilename: "demo.mp4", ShortURL: "upload://abc.mp4"}
	assert.Equal(t, "![demo|video](upload://abc.mp4)", RenderMarkdown(rec, MarkdownOptions{}))
}

func TestRenderMarkdownAttachment(t *testing.T) {
	rec := &UploadRecord{
		OriginalFilename: "report.pdf",
		ShortURL:         "upload://abc.pdf",
		Filesize:         2048,
	}
	assert.Equal(t, "[report.pdf|attachment](upload://abc.pdf) (2.0 kB)", RenderMarkdown(rec, MarkdownOptions{}))
}

func TestRenderMarkdownIdempotent(t *testing.T) {
	rec := &UploadRecord{
		OriginalFilename: "cat.jpg",
		ThumbnailWidth:   100,
		ThumbnailHeight:  80,
		ShortURL:         "u",
	}
	first := RenderMarkdown(rec, MarkdownOptions{})
	second := RenderMarkdown(rec, MarkdownOptions{})
	assert.Equal(t, first, second)
}
