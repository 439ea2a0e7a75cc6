package gatehouse

import (
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// imageExtensionRe is the fixed pattern deciding which authorized extension
// tokens count as image extensions. Note this is intentionally not the same
// table Classify uses (webp classifies as an image but is not part of this
// policy pattern; heic/heif are the reverse).
var imageExtensionRe = regexp.MustCompile(`(?i)^(png|jpe?g|gif|svg|ico|heic|heif)$`)

// fullImageExtensionList is the display list used when a wildcard authorizes
// every extension and a caller still needs an image list to show.
var fullImageExtensionList = []string{"png", "jpg", "jpeg", "gif", "svg", "ico", "heic", "heif"}

const wildcardExtension = "*"

// ExtensionPolicy is a compiled snapshot of the configured extension
// allowlists. Normalization happens once in CompileExtensionPolicy; the
// snapshot is immutable afterwards and safe for concurrent use.
type ExtensionPolicy struct {
	global   []string
	staff    []string // staff-only additions, global tokens excluded
	lookup   map[string]bool
	staffSet map[string]bool

	globalAll bool
	staffAll  bool
}

// normalizeExtensions splits a |-delimited extension list into lowercase
// tokens, trimmed of whitespace and leading dots. Wildcard tokens are
// excluded from the returned set and reported separately.
func normalizeExtensions(raw string) (tokens []string, wildcard bool) {
	for _, tok := range strings.Split(raw, "|") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		tok = strings.TrimLeft(tok, ".")
		switch tok {
		case "":
		case wildcardExtension:
			wildcard = true
		default:
			tokens = append(tokens, tok)
		}
	}
	return tokens, wildcard
}

// CompileExtensionPolicy normalizes both configured lists into an immutable
// snapshot. Callers that hold a settings object for many validations should
// compile once and reuse; PolicyFor does that automatically.
func CompileExtensionPolicy(settings *SiteUploadSettings) *ExtensionPolicy {
	p := &ExtensionPolicy{
		lookup:   make(map[string]bool),
		staffSet: make(map[string]bool),
	}

	global, globalAll := normalizeExtensions(settings.AuthorizedExtensions)
	p.globalAll = globalAll
	for _, ext := range global {
		if !p.lookup[ext] {
			p.lookup[ext] = true
			p.global = append(p.global, ext)
		}
	}

	staff, staffAll := normalizeExtensions(settings.AuthorizedExtensionsForStaff)
	p.staffAll = staffAll
	for _, ext := range staff {
		if !p.lookup[ext] && !p.staffSet[ext] {
			p.staffSet[ext] = true
			p.staff = append(p.staff, ext)
		}
	}

	return p
}

// policyCache memoizes compiled snapshots per settings pair so repeated
// validations against one configuration never re-normalize the lists.
var policyCache = cache.New(30*time.Minute, 10*time.Minute)

// PolicyFor returns the compiled policy for the given settings, compiling
// and caching it on first use.
func PolicyFor(settings *SiteUploadSettings) *ExtensionPolicy {
	key := settings.AuthorizedExtensions + "\x00" + settings.AuthorizedExtensionsForStaff
	if cached, ok := policyCache.Get(key); ok {
		return cached.(*ExtensionPolicy)
	}
	p := CompileExtensionPolicy(settings)
	policyCache.Set(key, p, cache.DefaultExpiration)
	return p
}

// AuthorizesAllExtensions reports whether a wildcard authorizes every
// extension for the given privilege level.
func (p *ExtensionPolicy) AuthorizesAllExtensions(staff bool) bool {
	return p.globalAll || (staff && p.staffAll)
}

// AuthorizesAnyExtension reports whether uploads are possible at all: a
// wildcard, or at least one token in the global list. Staff-only tokens
// alone do not enable uploads.
func (p *ExtensionPolicy) AuthorizesAnyExtension(staff bool) bool {
	return p.AuthorizesAllExtensions(staff) || len(p.global) > 0
}

// AllowedExtensions returns the ordered, deduplicated authorized extension
// list for display: global tokens first, staff-only additions after when
// staff is true.
func (p *ExtensionPolicy) AllowedExtensions(staff bool) []string {
	out := make([]string, 0, len(p.global)+len(p.staff))
	out = append(out, p.global...)
	if staff {
		out = append(out, p.staff...)
	}
	return out
}

// AllowedImageExtensions returns the authorized extensions filtered to the
// fixed image pattern. When a wildcard authorizes everything, the full fixed
// image list is returned instead.
func (p *ExtensionPolicy) AllowedImageExtensions(staff bool) []string {
	if p.AuthorizesAllExtensions(staff) {
		out := make([]string, len(fullImageExtensionList))
		copy(out, fullImageExtensionList)
		return out
	}
	var out []string
	for _, ext := range p.AllowedExtensions(staff) {
		if imageExtensionRe.MatchString(ext) {
			out = append(out, ext)
		}
	}
	return out
}

// IsAuthorizedFile reports whether the filename's suffix matches an
// authorized extension for the privilege level. Wildcards are deliberately
// not consulted here; callers combine this with AuthorizesAllExtensions.
func (p *ExtensionPolicy) IsAuthorizedFile(name string, staff bool) bool {
	return p.suffixAuthorized(name, staff, nil)
}

// IsAuthorizedImage is IsAuthorizedFile restricted to tokens matching the
// fixed image-extension pattern.
func (p *ExtensionPolicy) IsAuthorizedImage(name string, staff bool) bool {
	return p.suffixAuthorized(name, staff, imageExtensionRe)
}

func (p *ExtensionPolicy) suffixAuthorized(name string, staff bool, filter *regexp.Regexp) bool {
	lower := strings.ToLower(name)
	for _, ext := range p.global {
		if filter != nil && !filter.MatchString(ext) {
			continue
		}
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	if !staff {
		return false
	}
	for _, ext := range p.staff {
		if filter != nil && !filter.MatchString(ext) {
			continue
		}
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}
