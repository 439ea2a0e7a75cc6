package gatehouse

import "regexp"

// MediaType classifies an upload by the kind of media its filename suffix
// indicates. Classification is total: every filename maps to exactly one
// type, with Attachment as the default.
type MediaType string

const (
	MediaTypeImage      MediaType = "image"
	MediaTypeVideo      MediaType = "video"
	MediaTypeAudio      MediaType = "audio"
	MediaTypeAttachment MediaType = "attachment"
)

// Suffix tables, compiled once at init. The evaluation order in Classify is
// significant: image > audio > video > attachment. The ogg container family
// is split across the audio (ogg, oga) and video (ogv) tables; because audio
// is checked before video, ogg/oga always classify as Audio even when the
// container holds video. Changing that is a behavioral decision, not a
// cleanup (see TestClassifyOggPrecedence).
var (
	imageSuffixRe = regexp.MustCompile(`(?i)\.(png|webp|jpe?g|gif|svg|ico)$`)
	audioSuffixRe = regexp.MustCompile(`(?i)\.(mp3|og[ga]|opus|wav|m4[abpr]|aac|flac)$`)
	videoSuffixRe = regexp.MustCompile(`(?i)\.(mov|mp4|webm|m4v|3gp|ogv|avi|mpeg)$`)
)

// Classify maps a filename to its media type by suffix.
func Classify(name string) MediaType {
	switch {
	case imageSuffixRe.MatchString(name):
		return MediaTypeImage
	case audioSuffixRe.MatchString(name):
		return MediaTypeAudio
	case videoSuffixRe.MatchString(name):
		return MediaTypeVideo
	default:
		return MediaTypeAttachment
	}
}

// IsImage reports whether the filename classifies as an image.
func IsImage(name string) bool {
	return imageSuffixRe.MatchString(name)
}
