package gatehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureDisplay records every message pushed into it.
type captureDisplay struct {
	messages []string
}

func (d *captureDisplay) ShowError(message string) {
	d.messages = append(d.messages, message)
}

func newTestPresenter(settings *SiteUploadSettings) (*Presenter, *captureDisplay) {
	display := &captureDisplay{}
	return &Presenter{
		Settings: settings,
		Messages: EnglishMessages{},
		Display:  display,
	}, display
}

func TestPresentNoResponse(t *testing.T) {
	p, display := newTestPresenter(&SiteUploadSettings{})

	p.Present(TransportResult{HasResponse: true, Status: 0})

	require.Len(t, display.messages, 1)
	assert.Equal(t, EnglishMessages{}.Lookup(MsgUploadFailed, nil), display.messages[0])
}

func TestPresentTooLarge(t *testing.T) {
	settings := &SiteUploadSettings{MaxImageSizeKB: 500, MaxAttachmentSizeKB: 4096}
	p, display := newTestPresenter(settings)

	p.Present(TransportResult{HasResponse: true, Status: 413, AttemptedFileName: "big.png"})
	require.Len(t, display.messages, 1)
	assert.Contains(t, display.messages[0], "500 KB")

	// Size limit follows the classified type of the attempted file.
	p.Present(TransportResult{HasResponse: true, Status: 413, AttemptedFileName: "big.zip"})
	require.Len(t, display.messages, 2)
	assert.Contains(t, display.messages[1], "4096 KB")
}

func TestPresentServerMessage(t *testing.T) {
	p, display := newTestPresenter(&SiteUploadSettings{})

	body := []byte(`{"message":"Sorry, that file is not authorized.","errors":["ignored"]}`)
	p.Present(TransportResult{HasResponse: true, Status: 422, Body: body})

	require.Len(t, display.messages, 1)
	assert.Equal(t, "Sorry, that file is not authorized.", display.messages[0])
}

func TestPresentServerErrorList(t *testing.T) {
	p, display := newTestPresenter(&SiteUploadSettings{})

	body := []byte(`{"errors":["first problem","second problem"]}`)
	p.Present(TransportResult{HasResponse: true, Status: 422, Body: body})

	require.Len(t, display.messages, 1)
	assert.Equal(t, "first problem\nsecond problem", display.messages[0])
}

func TestPresentBareErrorList(t *testing.T) {
	p, display := newTestPresenter(&SiteUploadSettings{})

	p.Present(TransportResult{Errors: []string{"disk full", "try later"}})

	require.Len(t, display.messages, 1)
	assert.Equal(t, "disk full\ntry later", display.messages[0])
}

func TestPresentFallback(t *testing.T) {
	p, display := newTestPresenter(&SiteUploadSettings{})

	// Unknown status with an unusable body still reports exactly one message.
	p.Present(TransportResult{HasResponse: true, Status: 500, Body: []byte(`{"oops":true}`)})
	p.Present(TransportResult{})
	p.Present(TransportResult{HasResponse: true, Status: 422, Body: []byte(`{}`)})

	require.Len(t, display.messages, 3)
	generic := EnglishMessages{}.Lookup(MsgUploadFailed, nil)
	for _, msg := range display.messages {
		assert.Equal(t, generic, msg)
	}
}

func TestRejectionMessage(t *testing.T) {
	m := EnglishMessages{}

	tests := []struct {
		name    string
		outcome ValidationOutcome
		want    string
	}{
		{
			"too many uploads",
			ValidationOutcome{Reason: RejectTooManyUploads},
			"Sorry, you can only upload one file at a time.",
		},
		{
			"not authorized file",
			ValidationOutcome{Reason: RejectNotAuthorizedFile, AllowedExtensions: []string{"jpg", "png"}},
			"Sorry, the file you are trying to upload is not authorized (authorized extensions: jpg, png).",
		},
		{
			"not authorized image",
			ValidationOutcome{Reason: RejectNotAuthorizedImage, AllowedExtensions: []string{"png"}},
			"Sorry, the image you are trying to upload is not authorized (authorized extensions: png).",
		},
		{
			"csv only",
			ValidationOutcome{Reason: RejectCSVOnly},
			"Sorry, the file you are trying to upload must be a CSV file.",
		},
		{
			"new user restricted",
			ValidationOutcome{Reason: RejectNewUserRestricted, MediaType: MediaTypeImage},
			"Sorry, new users are not allowed to upload image files.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RejectionMessage(m, tt.outcome))
		})
	}
}

func TestDisplayFunc(t *testing.T) {
	var got string
	DisplayFunc(func(message string) { got = message }).ShowError("boom")
	assert.Equal(t, "boom", got)
}
