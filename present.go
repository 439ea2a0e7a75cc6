package gatehouse

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// TransportResult is the failure shape handed back by the upload transport.
// It is either a received HTTP response (HasResponse true, Status and Body
// set) or a bare client-side error list.
type TransportResult struct {
	// Status is the HTTP status of the failed request. Zero means the
	// request produced no response at all.
	Status int

	// HasResponse distinguishes a transport attempt that reached the server
	// from a bare error list.
	HasResponse bool

	// Body is the raw response body, when one was received. Probed for the
	// optional "message" and "errors" fields; anything else is ignored.
	Body []byte

	// Errors is a client-side error list, used when no response exists.
	Errors []string

	// AttemptedFileName is the name of the file whose upload failed.
	AttemptedFileName string
}

// Display is the external presentation sink. Present pushes exactly one
// message per failed operation into it.
type Display interface {
	ShowError(message string)
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(message string)

func (f DisplayFunc) ShowError(message string) { f(message) }

// Message catalog keys.
const (
	MsgUploadFailed           = "upload.failed"
	MsgTooLarge               = "upload.too_large"
	MsgNoFile                 = "upload.no_file"
	MsgTooManyUploads         = "upload.too_many_uploads"
	MsgNoExtensionsAuthorized = "upload.no_extensions_authorized"
	MsgNotAuthorizedImage     = "upload.not_authorized_image"
	MsgNotAuthorizedFile      = "upload.not_authorized_file"
	MsgCSVOnly                = "upload.csv_only"
	MsgNewUserRestricted      = "upload.new_user_restricted"
)

// Messages looks up user-facing message templates by key. Localization is
// the caller's concern; EnglishMessages is the built-in default catalog.
type Messages interface {
	Lookup(key string, args map[string]any) string
}

// EnglishMessages is the default English message catalog. Placeholders of
// the form {name} are replaced with the corresponding argument.
type EnglishMessages struct{}

var englishTemplates = map[string]string{
	MsgUploadFailed:           "Sorry, there was an error uploading that file. Please try again.",
	MsgTooLarge:               "Sorry, the file you are trying to upload is too big (maximum size is {max_size_kb} KB).",
	MsgNoFile:                 "No file was selected.",
	MsgTooManyUploads:         "Sorry, you can only upload one file at a time.",
	MsgNoExtensionsAuthorized: "Sorry, you are not allowed to upload files.",
	MsgNotAuthorizedImage:     "Sorry, the image you are trying to upload is not authorized (authorized extensions: {extensions}).",
	MsgNotAuthorizedFile:      "Sorry, the file you are trying to upload is not authorized (authorized extensions: {extensions}).",
	MsgCSVOnly:                "Sorry, the file you are trying to upload must be a CSV file.",
	MsgNewUserRestricted:      "Sorry, new users are not allowed to upload {media_type} files.",
}

func (EnglishMessages) Lookup(key string, args map[string]any) string {
	tmpl, ok := englishTemplates[key]
	if !ok {
		return key
	}
	for name, value := range args {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", fmt.Sprint(value))
	}
	return tmpl
}

// RejectionMessage renders a validation rejection into its user-facing
// message.
func RejectionMessage(m Messages, out ValidationOutcome) string {
	switch out.Reason {
	case RejectNoFile:
		return m.Lookup(MsgNoFile, nil)
	case RejectTooManyUploads:
		return m.Lookup(MsgTooManyUploads, nil)
	case RejectNoExtensionsAuthorized:
		return m.Lookup(MsgNoExtensionsAuthorized, nil)
	case RejectNotAuthorizedImage:
		return m.Lookup(MsgNotAuthorizedImage, map[string]any{"extensions": strings.Join(out.AllowedExtensions, ", ")})
	case RejectNotAuthorizedFile:
		return m.Lookup(MsgNotAuthorizedFile, map[string]any{"extensions": strings.Join(out.AllowedExtensions, ", ")})
	case RejectCSVOnly:
		return m.Lookup(MsgCSVOnly, nil)
	case RejectNewUserRestricted:
		return m.Lookup(MsgNewUserRestricted, map[string]any{"media_type": string(out.MediaType)})
	default:
		return m.Lookup(MsgUploadFailed, nil)
	}
}

// Presenter translates a transport failure into exactly one displayed
// message. It never leaves a failure unreported: when no bucket matches, the
// generic upload-failed message is shown.
type Presenter struct {
	Settings *SiteUploadSettings
	Messages Messages
	Display  Display
}

// Present pushes the message for the given transport failure into the
// display sink.
func (p *Presenter) Present(res TransportResult) {
	p.Display.ShowError(p.message(res))
}

func (p *Presenter) message(res TransportResult) string {
	if res.HasResponse {
		switch res.Status {
		case 0:
			// Request went out, nothing came back.
			return p.Messages.Lookup(MsgUploadFailed, nil)
		case http.StatusRequestEntityTooLarge:
			t := Classify(res.AttemptedFileName)
			return p.Messages.Lookup(MsgTooLarge, map[string]any{"max_size_kb": p.Settings.MaxSizeKB(t)})
		case http.StatusUnprocessableEntity:
			if msg := gjson.GetBytes(res.Body, "message"); msg.Exists() && msg.String() != "" {
				return msg.String()
			}
			if list := serverErrors(res.Body); len(list) > 0 {
				return strings.Join(list, "\n")
			}
		}
	}

	if len(res.Errors) > 0 {
		return strings.Join(res.Errors, "\n")
	}
	return p.Messages.Lookup(MsgUploadFailed, nil)
}

func serverErrors(body []byte) []string {
	result := gjson.GetBytes(body, "errors")
	if !result.IsArray() {
		return nil
	}
	var list []string
	for _, e := range result.Array() {
		list = append(list, e.String())
	}
	return list
}
