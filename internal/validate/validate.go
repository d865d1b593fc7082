package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reUsername = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{2,29}$`)
	reSlug     = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,49}$`)
	rePhone    = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,19}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reUsername.MatchString(s)
}

// Slug validates a storefront slug: lowercase, digits, hyphens.
func Slug(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reSlug.MatchString(s)
}

// Phone accepts a WhatsApp-style number with loose punctuation.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Name validates a displayable name (store, category, product).
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// Qty clamps an item quantity to a sane window.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	}
	return n
}

// Price accepts non-negative prices only.
func Price(p float64) bool { return p >= 0 }
