package gatehouse

import "strings"

// ValidationMode configures which checks apply to a submission. The zero
// value is the normal, fully-checked mode.
type ValidationMode struct {
	// SkipValidation bypasses every check.
	SkipValidation bool

	// ImagesOnly restricts the submission to image files.
	ImagesOnly bool

	// CSVOnly restricts the submission to .csv files.
	CSVOnly bool

	// AllowStaffToUploadAnyFileInPM lets staff bypass extension checks for
	// private message uploads.
	AllowStaffToUploadAnyFileInPM bool

	// BypassNewUserRestriction skips the new-user capability check.
	BypassNewUserRestriction bool
}

// RejectReason identifies why a submission was rejected.
type RejectReason string

const (
	RejectNoFile                 RejectReason = "no_file"
	RejectTooManyUploads         RejectReason = "too_many_uploads"
	RejectNoExtensionsAuthorized RejectReason = "no_extensions_authorized"
	RejectNotAuthorizedImage     RejectReason = "not_authorized_image"
	RejectNotAuthorizedFile      RejectReason = "not_authorized_file"
	RejectCSVOnly                RejectReason = "csv_only"
	RejectNewUserRestricted      RejectReason = "new_user_restricted"
)

// ValidationOutcome is the result of validating a submission. Rejections are
// values, never errors: the caller turns the reason and its payload into a
// user-facing message.
type ValidationOutcome struct {
	Accepted bool `json:"accepted"`

	// Reason is set when Accepted is false.
	Reason RejectReason `json:"reason,omitempty"`

	// AllowedExtensions carries the authorized extension list for
	// RejectNotAuthorizedFile and RejectNotAuthorizedImage.
	AllowedExtensions []string `json:"allowed_extensions,omitempty"`

	// MediaType carries the restricted type for RejectNewUserRestricted.
	MediaType MediaType `json:"media_type,omitempty"`
}

func accepted() ValidationOutcome {
	return ValidationOutcome{Accepted: true}
}

func rejected(reason RejectReason) ValidationOutcome {
	return ValidationOutcome{Reason: reason}
}

// Validate decides whether a submission is permitted, applying the layered
// authorization policy as an ordered chain: the first matching rule wins.
// Only single-file submissions are ever accepted.
func Validate(candidates []UploadCandidate, req Requester, settings *SiteUploadSettings, mode ValidationMode) ValidationOutcome {
	if len(candidates) == 0 {
		return rejected(RejectNoFile)
	}
	if len(candidates) > 1 {
		return rejected(RejectTooManyUploads)
	}
	if mode.SkipValidation {
		return accepted()
	}

	candidate := candidates[0]
	name := candidate.EffectiveName()
	staff := req != nil && req.IsStaff()
	policy := PolicyFor(settings)

	if !policy.AuthorizesAnyExtension(staff) {
		return rejected(RejectNoExtensionsAuthorized)
	}

	if mode.AllowStaffToUploadAnyFileInPM && candidate.IsPrivateMessage && staff {
		return accepted()
	}

	switch {
	case mode.ImagesOnly:
		if !IsImage(name) && !policy.IsAuthorizedImage(name, staff) {
			out := rejected(RejectNotAuthorizedImage)
			out.AllowedExtensions = policy.AllowedImageExtensions(staff)
			return out
		}
	case mode.CSVOnly:
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			return rejected(RejectCSVOnly)
		}
	default:
		if !policy.AuthorizesAllExtensions(staff) && !policy.IsAuthorizedFile(name, staff) {
			out := rejected(RejectNotAuthorizedFile)
			out.AllowedExtensions = policy.AllowedExtensions(staff)
			return out
		}
	}

	if !mode.BypassNewUserRestriction && req != nil {
		if t := Classify(name); !req.CanUpload(t) {
			out := rejected(RejectNewUserRestricted)
			out.MediaType = t
			return out
		}
	}

	return accepted()
}
