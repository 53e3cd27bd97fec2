// internal/domain/inquiry/redact.go
package inquiry

import "regexp"

// Contact masking patterns. The email keeps the first two characters of the
// local part ("ab***@domain.com"); the phone keeps the first three and last
// four digits of an 11-digit number ("138****5678"). Values the patterns do
// not match are passed through unchanged.
var (
	emailMask = regexp.MustCompile(`(.{2}).*(@.*)`)
	phoneMask = regexp.MustCompile(`(\d{3})\d{4}(\d{4})`)
)

// Viewer identifies the principal reading an inquiry.
type Viewer struct {
	UserID string
	Admin  bool
}

// Redact returns a copy of the inquiry with contact details masked when the
// viewer is neither the current assignee nor an admin. Unassigned rows are
// never masked. The input is not mutated; masking is a read-time concern
// only.
func Redact(i CustomerInquiry, v Viewer) CustomerInquiry {
	if i.AssignedTo == nil || *i.AssignedTo == v.UserID || v.Admin {
		return i
	}
	i.CustomerEmail = emailMask.ReplaceAllString(i.CustomerEmail, "$1***$2")
	i.CustomerPhone = phoneMask.ReplaceAllString(i.CustomerPhone, "$1****$2")
	return i
}

// RedactAll applies Redact to a slice, returning a new slice.
func RedactAll(items []CustomerInquiry, v Viewer) []CustomerInquiry {
	out := make([]CustomerInquiry, len(items))
	for n, it := range items {
		out[n] = Redact(it, v)
	}
	return out
}
