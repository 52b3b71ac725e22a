package services

import (
	"fmt"
	"strings"

	"devevent/internal/domain"
)

// NormalizeSlug trims and lower-cases slug. Any character set passes through.
func NormalizeSlug(slug string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(slug))
	if s == "" {
		return "", fmt.Errorf("%w: slug cannot be empty after sanitization", domain.ErrInvalidInput)
	}
	return s, nil
}

// Slugify derives a URL-safe slug from a title: lower-cased, every run of
// characters outside [a-z0-9] collapsed to a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
