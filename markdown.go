package gatehouse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// guidRe matches opaque generated identifiers (8-4-4-4-12 hex groups) that
// camera and screenshot pipelines substitute for human-chosen filenames.
var guidRe = regexp.MustCompile(`^[0-9a-f]{8}-(?:[0-9a-f]{4}-){3}[0-9a-f]{12}$`)

// MarkdownOptions tunes the canonical markdown rendering of an upload.
type MarkdownOptions struct {
	// ReplaceGUIDNames enables the generated-name heuristic: on platforms
	// known to replace screenshot names with opaque identifiers, GUID-shaped
	// image names are rendered with GeneratedAltText instead.
	ReplaceGUIDNames bool

	// GeneratedAltText is the localized placeholder substituted for
	// GUID-shaped names. Defaults to "image" when empty.
	GeneratedAltText string
}

// RenderMarkdown renders a completed upload into its canonical markdown
// snippet. Rendering is deterministic and total for any well-formed record.
func RenderMarkdown(rec *UploadRecord, opts MarkdownOptions) string {
	url := rec.ShortURL
	if url == "" {
		url = rec.URL
	}

	switch Classify(rec.OriginalFilename) {
	case MediaTypeImage:
		name := imageAltText(rec.OriginalFilename, opts)
		return fmt.Sprintf("![%s|%dx%d](%s)", name, rec.ThumbnailWidth, rec.ThumbnailHeight, url)
	case MediaTypeAudio:
		return fmt.Sprintf("![%s|audio](%s)", trimExtension(rec.OriginalFilename), rec.ShortURL)
	case MediaTypeVideo:
		return fmt.Sprintf("![%s|video](%s)", trimExtension(rec.OriginalFilename), rec.ShortURL)
	default:
		size := humanize.Bytes(uint64(rec.Filesize))
		return fmt.Sprintf("[%s|attachment](%s) (%s)", rec.OriginalFilename, rec.ShortURL, size)
	}
}

// imageAltText derives the alt text for an image upload: the filename without
// its extension, with markdown-breaking characters stripped, optionally
// replaced by a placeholder when it is an opaque generated identifier.
func imageAltText(filename string, opts MarkdownOptions) string {
	name := trimExtension(filename)
	name = strings.NewReplacer("[", "", "]", "", "|", "").Replace(name)

	if opts.ReplaceGUIDNames && guidRe.MatchString(strings.ToLower(name)) {
		if opts.GeneratedAltText != "" {
			return opts.GeneratedAltText
		}
		return "image"
	}
	return name
}

func trimExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		return filename[:i]
	}
	return filename
}
