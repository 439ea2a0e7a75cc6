package gatehouse

// SiteUploadSettings is the site-configured upload policy. It is loaded once
// by the caller (environment, admin panel, ...) and treated as an immutable
// snapshot for its lifetime; everything in this package reads it, nothing
// mutates it.
type SiteUploadSettings struct {
	// AuthorizedExtensions is a |-delimited list of extensions every user
	// may upload. The token "*" authorizes all extensions.
	AuthorizedExtensions string `json:"authorized_extensions"`

	// AuthorizedExtensionsForStaff is a |-delimited list of extensions
	// additionally authorized for staff. Strictly additive: the effective
	// staff set is always a superset of the non-staff set.
	AuthorizedExtensionsForStaff string `json:"authorized_extensions_for_staff"`

	// Per-type maximum sizes, in kilobytes.
	MaxImageSizeKB      int `json:"max_image_size_kb"`
	MaxVideoSizeKB      int `json:"max_video_size_kb"`
	MaxAudioSizeKB      int `json:"max_audio_size_kb"`
	MaxAttachmentSizeKB int `json:"max_attachment_size_kb"`

	// New-user restrictions: whether trust level 0 users may upload
	// embedded media (images, video, audio) and plain attachments.
	NewUserCanEmbedMedia  bool `json:"new_user_can_embed_media"`
	NewUserCanAttachFiles bool `json:"new_user_can_attach_files"`
}

// MaxSizeKB returns the configured size limit for a media type, in KB.
// Zero means no limit is configured.
func (s *SiteUploadSettings) MaxSizeKB(t MediaType) int {
	switch t {
	case MediaTypeImage:
		return s.MaxImageSizeKB
	case MediaTypeVideo:
		return s.MaxVideoSizeKB
	case MediaTypeAudio:
		return s.MaxAudioSizeKB
	default:
		return s.MaxAttachmentSizeKB
	}
}
