package http

import (
	"github.com/kestrelworks/gatehouse"
	"github.com/labstack/echo/v4"
)

// UploadSettingsResponse exposes the effective upload policy for the
// requesting user, for client UI like file pickers.
type UploadSettingsResponse struct {
	AuthorizesAllExtensions bool     `json:"authorizes_all_extensions"`
	AuthorizesAnyExtension  bool     `json:"authorizes_any_extension"`
	AllowedExtensions       []string `json:"allowed_extensions"`
	AllowedImageExtensions  []string `json:"allowed_image_extensions"`
	MaxImageSizeKB          int      `json:"max_image_size_kb"`
	MaxVideoSizeKB          int      `json:"max_video_size_kb"`
	MaxAudioSizeKB          int      `json:"max_audio_size_kb"`
	MaxAttachmentSizeKB     int      `json:"max_attachment_size_kb"`
}

func (s *Server) handleUploadSettings(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	policy := gatehouse.PolicyFor(s.settings)
	staff := user.Staff

	return RespondOK(c, UploadSettingsResponse{
		AuthorizesAllExtensions: policy.AuthorizesAllExtensions(staff),
		AuthorizesAnyExtension:  policy.AuthorizesAnyExtension(staff),
		AllowedExtensions:       policy.AllowedExtensions(staff),
		AllowedImageExtensions:  policy.AllowedImageExtensions(staff),
		MaxImageSizeKB:          s.settings.MaxImageSizeKB,
		MaxVideoSizeKB:          s.settings.MaxVideoSizeKB,
		MaxAudioSizeKB:          s.settings.MaxAudioSizeKB,
		MaxAttachmentSizeKB:     s.settings.MaxAttachmentSizeKB,
	})
}
