package http

import (
	"context"
	"encoding/base64"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/gatehouse"
	imw "github.com/kestrelworks/gatehouse/internal/middleware"
	"github.com/labstack/echo/v4"
)

// uploadTimeout bounds the whole store-and-record flow. Storage backends
// can be slow, so this is longer than the default handler timeout.
const uploadTimeout = 30 * time.Second

// UploadResponse is the payload returned for an accepted upload.
type UploadResponse struct {
	Upload   *gatehouse.UploadRecord `json:"upload"`
	Markdown string                  `json:"markdown"`
}

// RejectionResponse is the payload returned when validation rejects an
// upload. Clients read "message" when present and fall back to joining
// "errors".
type RejectionResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (s *Server) handleCreateUpload(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), uploadTimeout)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return gatehouse.Invalid("Multipart form data is required")
	}

	files := form.File["files"]
	isPM := c.FormValue("is_private_message") == "true"
	pasted := c.FormValue("pasted") == "true"
	uploadType := c.FormValue("upload_type")

	candidates := make([]gatehouse.UploadCandidate, 0, len(files))
	for _, fh := range files {
		name := fh.Filename
		if name == "blob" {
			// Browsers name pasted clipboard data "blob".
			name = ""
		}
		candidates = append(candidates, gatehouse.UploadCandidate{
			Name:                name,
			ContentType:         fh.Header.Get("Content-Type"),
			IsPrivateMessage:    isPM,
			IsPastedWithoutName: pasted && name == "",
		})
	}

	requester := gatehouse.UploadPrivileges{User: user, Settings: s.settings}
	mode := s.validationMode(uploadType)

	outcome := gatehouse.Validate(candidates, requester, s.settings, mode)
	imw.RecordUploadValidation(outcome)

	if !outcome.Accepted {
		msg := gatehouse.RejectionMessage(s.messages, outcome)
		s.log(c).Info("upload rejected",
			slog.String("reason", string(outcome.Reason)),
			slog.String("user_id", user.ID.String()),
		)
		return c.JSON(http.StatusUnprocessableEntity, RejectionResponse{
			Message: msg,
			Errors:  []string{msg},
		})
	}

	fh := files[0]
	name := candidates[0].EffectiveName()
	mediaType := gatehouse.Classify(name)

	if maxKB := s.settings.MaxSizeKB(mediaType); maxKB > 0 && fh.Size > int64(maxKB)*1024 {
		msg := s.messages.Lookup(gatehouse.MsgTooLarge, map[string]any{"max_size_kb": maxKB})
		return c.JSON(http.StatusRequestEntityTooLarge, RejectionResponse{
			Message: msg,
			Errors:  []string{msg},
		})
	}

	rec, err := s.storeUpload(ctx, c, user, fh, name, mediaType)
	if err != nil {
		return err
	}

	imw.RecordUploadStored(mediaType, rec.Filesize)
	s.log(c).Info("upload stored",
		slog.String("upload_id", rec.ID.String()),
		slog.String("user_id", user.ID.String()),
		slog.String("type", string(mediaType)),
		slog.Int64("size", rec.Filesize),
	)

	return RespondCreated(c, UploadResponse{
		Upload:   rec,
		Markdown: gatehouse.RenderMarkdown(rec, gatehouse.MarkdownOptions{ReplaceGUIDNames: true}),
	})
}

// storeUpload writes the file to storage and records it. The stored object
// is removed again if the record cannot be created.
func (s *Server) storeUpload(ctx context.Context, c echo.Context, user *gatehouse.User, fh *multipart.FileHeader, name string, mediaType gatehouse.MediaType) (*gatehouse.UploadRecord, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, gatehouse.Internal("Failed to read uploaded file", err)
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadID := uuid.New()
	ext := strings.ToLower(path.Ext(name))
	key := "uploads/" + user.ID.String() + "/" + uploadID.String() + ext

	url, err := s.fileStorage.Upload(ctx, key, src, contentType)
	if err != nil {
		s.log(c).Error("failed to store upload", slog.String("error", err.Error()))
		return nil, gatehouse.Internal("Failed to store upload", err)
	}

	rec := &gatehouse.UploadRecord{
		ID:               uploadID,
		UserID:           user.ID,
		OriginalFilename: name,
		URL:              url,
		ShortURL:         shortURL(uploadID, ext),
		Filesize:         fh.Size,
		Type:             mediaType,
	}

	if err := s.uploadService.CreateUpload(ctx, rec); err != nil {
		// Clean up the stored object on error
		_ = s.fileStorage.Delete(ctx, key)
		return nil, err
	}
	return rec, nil
}

// validationMode maps the client-declared upload type onto validation
// switches. Unknown types get the general composer rules.
func (s *Server) validationMode(uploadType string) gatehouse.ValidationMode {
	switch uploadType {
	case "avatar":
		return gatehouse.ValidationMode{
			ImagesOnly:               true,
			BypassNewUserRestriction: true,
		}
	case "csv":
		return gatehouse.ValidationMode{CSVOnly: true}
	default:
		return gatehouse.ValidationMode{
			AllowStaffToUploadAnyFileInPM: s.allowStaffAnyFileInPM,
		}
	}
}

// shortURL builds the compact upload:// reference used in markdown.
func shortURL(id uuid.UUID, ext string) string {
	token := base64.RawURLEncoding.EncodeToString(id[:])
	return "upload://" + token + ext
}

func (s *Server) handleGetUpload(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := s.uploadService.FindUploadByID(ctx, id)
	if err != nil {
		return err
	}

	return RespondOK(c, rec)
}

func (s *Server) handleListUploads(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	filter := gatehouse.UploadFilter{
		UserID: &user.ID,
		Limit:  100,
	}

	uploads, total, err := s.uploadService.FindUploads(ctx, filter)
	if err != nil {
		return err
	}

	return RespondList(c, uploads, total, filter.Offset, filter.Limit)
}

func (s *Server) handleDeleteUpload(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	rec, err := s.uploadService.FindUploadByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.UserID != user.ID && !user.Staff {
		return gatehouse.Forbidden("You cannot delete this upload")
	}

	if err := s.uploadService.DeleteUpload(ctx, id); err != nil {
		return err
	}

	// Delete from storage (best effort)
	key := storageKey(rec)
	if err := s.fileStorage.Delete(ctx, key); err != nil {
		s.log(c).Error("failed to delete stored object",
			slog.String("upload_id", id.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log(c).Info("upload deleted", slog.String("upload_id", id.String()))

	return RespondNoContent(c)
}

// storageKey reconstructs the storage key for a recorded upload.
func storageKey(rec *gatehouse.UploadRecord) string {
	ext := strings.ToLower(path.Ext(rec.OriginalFilename))
	return "uploads/" + rec.UserID.String() + "/" + rec.ID.String() + ext
}
