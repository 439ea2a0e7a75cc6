package gatehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRequester is a test double for Requester.
type stubRequester struct {
	staff      bool
	restricted map[MediaType]bool
}

func (r *stubRequester) IsStaff() bool              { return r.staff }
func (r *stubRequester) CanUpload(t MediaType) bool { return !r.restricted[t] }

func openSettings() *SiteUploadSettings {
	return &SiteUploadSettings{AuthorizedExtensions: "jpg|png"}
}

func TestValidateNoFile(t *testing.T) {
	out := Validate(nil, nil, openSettings(), ValidationMode{})
	assert.False(t, out.Accepted)
	assert.Equal(t, RejectNoFile, out.Reason)

	out = Validate([]UploadCandidate{}, nil, openSettings(), ValidationMode{})
	assert.Equal(t, RejectNoFile, out.Reason)
}

func TestValidateTooManyUploads(t *testing.T) {
	candidates := []UploadCandidate{{Name: "a.jpg"}, {Name: "b.jpg"}}

	// Rejected regardless of any other configuration, even skip-validation.
	for _, mode := range []ValidationMode{
		{},
		{SkipValidation: true},
		{ImagesOnly: true},
	} {
		out := Validate(candidates, &stubRequester{staff: true}, openSettings(), mode)
		assert.False(t, out.Accepted)
		assert.Equal(t, RejectTooManyUploads, out.Reason)
	}
}

func TestValidateSkipValidation(t *testing.T) {
	out := Validate([]UploadCandidate{{Name: "malware.exe"}}, nil, &SiteUploadSettings{}, ValidationMode{SkipValidation: true})
	assert.True(t, out.Accepted)
}

func TestValidateNoExtensionsAuthorized(t *testing.T) {
	out := Validate([]UploadCandidate{{Name: "a.jpg"}}, nil, &SiteUploadSettings{}, ValidationMode{})
	assert.False(t, out.Accepted)
	assert.Equal(t, RejectNoExtensionsAuthorized, out.Reason)

	// Staff-only tokens alone do not open uploads.
	settings := &SiteUploadSettings{AuthorizedExtensionsForStaff: "pdf"}
	out = Validate([]UploadCandidate{{Name: "a.pdf"}}, &stubRequester{staff: true}, settings, ValidationMode{})
	assert.Equal(t, RejectNoExtensionsAuthorized, out.Reason)
}

func TestValidateStaffPMBypass(t *testing.T) {
	mode := ValidationMode{AllowStaffToUploadAnyFileInPM: true}
	candidate := UploadCandidate{Name: "anything.xyz", IsPrivateMessage: true}

	out := Validate([]UploadCandidate{candidate}, &stubRequester{staff: true}, openSettings(), mode)
	assert.True(t, out.Accepted)

	// Not staff: falls through to the extension check.
	out = Validate([]UploadCandidate{candidate}, &stubRequester{}, openSettings(), mode)
	assert.Equal(t, RejectNotAuthorizedFile, out.Reason)

	// Staff but not a private message: no bypass.
	out = Validate([]UploadCandidate{{Name: "anything.xyz"}}, &stubRequester{staff: true}, openSettings(), mode)
	assert.Equal(t, RejectNotAuthorizedFile, out.Reason)
}

func TestValidateImagesOnly(t *testing.T) {
	mode := ValidationMode{ImagesOnly: true}
	settings := &SiteUploadSettings{AuthorizedExtensions: "jpg|heic|zip"}

	// Classifier image suffix passes even without a policy image token.
	out := Validate([]UploadCandidate{{Name: "shot.webp"}}, nil, settings, mode)
	assert.True(t, out.Accepted)

	// Authorized image extension outside the classifier table passes too.
	out = Validate([]UploadCandidate{{Name: "shot.heic"}}, nil, settings, mode)
	assert.True(t, out.Accepted)

	// Authorized but not an image: rejected with the image list.
	out = Validate([]UploadCandidate{{Name: "archive.zip"}}, nil, settings, mode)
	require.False(t, out.Accepted)
	assert.Equal(t, RejectNotAuthorizedImage, out.Reason)
	assert.Equal(t, []string{"jpg", "heic"}, out.AllowedExtensions)
}

func TestValidateImagesOnlyWildcardList(t *testing.T) {
	out := Validate(
		[]UploadCandidate{{Name: "report.pdf"}},
		nil,
		&SiteUploadSettings{AuthorizedExtensions: "*"},
		ValidationMode{ImagesOnly: true},
	)
	require.False(t, out.Accepted)
	assert.Equal(t, RejectNotAuthorizedImage, out.Reason)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "gif", "svg", "ico", "heic", "heif"}, out.AllowedExtensions)
}

func TestValidateCSVOnly(t *testing.T) {
	mode := ValidationMode{CSVOnly: true}

	out := Validate([]UploadCandidate{{Name: "data.csv"}}, nil, openSettings(), mode)
	assert.True(t, out.Accepted)

	out = Validate([]UploadCandidate{{Name: "DATA.CSV"}}, nil, openSettings(), mode)
	assert.True(t, out.Accepted)

	out = Validate([]UploadCandidate{{Name: "data.txt"}}, nil, openSettings(), mode)
	assert.False(t, out.Accepted)
	assert.Equal(t, RejectCSVOnly, out.Reason)
}

func TestValidateExtensionCheck(t *testing.T) {
	// Scenario from the drawing board: jpg|png, regular user, "photo.PNG".
	out := Validate([]UploadCandidate{{Name: "photo.PNG"}}, &stubRequester{}, openSettings(), ValidationMode{})
	assert.True(t, out.Accepted)

	out = Validate([]UploadCandidate{{Name: "archive.zip"}}, &stubRequester{}, openSettings(), ValidationMode{})
	require.False(t, out.Accepted)
	assert.Equal(t, RejectNotAuthorizedFile, out.Reason)
	assert.Equal(t, []string{"jpg", "png"}, out.AllowedExtensions)
}

func TestValidateWildcardAcceptsEverything(t *testing.T) {
	settings := &SiteUploadSettings{AuthorizedExtensions: "*"}
	out := Validate([]UploadCandidate{{Name: "archive.zip"}}, nil, settings, ValidationMode{})
	assert.True(t, out.Accepted)
}

func TestValidateStaffExtensions(t *testing.T) {
	settings := &SiteUploadSettings{
		AuthorizedExtensions:         "jpg",
		AuthorizedExtensionsForStaff: "pdf",
	}

	out := Validate([]UploadCandidate{{Name: "doc.pdf"}}, &stubRequester{staff: true}, settings, ValidationMode{})
	assert.True(t, out.Accepted)

	out = Validate([]UploadCandidate{{Name: "doc.pdf"}}, &stubRequester{}, settings, ValidationMode{})
	require.False(t, out.Accepted)
	assert.Equal(t, RejectNotAuthorizedFile, out.Reason)
	assert.Equal(t, []string{"jpg"}, out.AllowedExtensions)
}

func TestValidateNewUserRestriction(t *testing.T) {
	req := &stubRequester{restricted: map[MediaType]bool{MediaTypeImage: true}}

	out := Validate([]UploadCandidate{{Name: "photo.jpg"}}, req, openSettings(), ValidationMode{})
	require.False(t, out.Accepted)
	assert.Equal(t, RejectNewUserRestricted, out.Reason)
	assert.Equal(t, MediaTypeImage, out.MediaType)

	// Bypass flag skips the check.
	out = Validate([]UploadCandidate{{Name: "photo.jpg"}}, req, openSettings(), ValidationMode{BypassNewUserRestriction: true})
	assert.True(t, out.Accepted)

	// Anonymous submissions are exempt.
	out = Validate([]UploadCandidate{{Name: "photo.jpg"}}, nil, openSettings(), ValidationMode{})
	assert.True(t, out.Accepted)
}

func TestValidatePastedWithoutName(t *testing.T) {
	// Pasted clipboard content with no filename is treated as an image.
	candidate := UploadCandidate{IsPastedWithoutName: true}
	out := Validate([]UploadCandidate{candidate}, nil, &SiteUploadSettings{AuthorizedExtensions: "png"}, ValidationMode{})
	assert.True(t, out.Accepted)

	out = Validate([]UploadCandidate{candidate}, nil, &SiteUploadSettings{AuthorizedExtensions: "pdf"}, ValidationMode{})
	assert.Equal(t, RejectNotAuthorizedFile, out.Reason)
}

func TestUploadPrivileges(t *testing.T) {
	settings := &SiteUploadSettings{NewUserCanEmbedMedia: false, NewUserCanAttachFiles: true}

	newUser := UploadPrivileges{User: &User{TrustLevel: 0}, Settings: settings}
	assert.False(t, newUser.IsStaff())
	assert.False(t, newUser.CanUpload(MediaTypeImage))
	assert.False(t, newUser.CanUpload(MediaTypeVideo))
	assert.True(t, newUser.CanUpload(MediaTypeAttachment))

	member := UploadPrivileges{User: &User{TrustLevel: 1}, Settings: settings}
	assert.True(t, member.CanUpload(MediaTypeImage))

	staff := UploadPrivileges{User: &User{Staff: true}, Settings: settings}
	assert.True(t, staff.IsStaff())
	assert.True(t, staff.CanUpload(MediaTypeImage))
}
