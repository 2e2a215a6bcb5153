package domain

import (
	"regexp"
	"strings"
)

// emailPattern is the WHATWG "valid e-mail address" production used by
// browsers for <input type=email>.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Blank reports whether s is empty once surrounding whitespace is removed.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Normalize trims every field.
func (c CustomerInfo) Normalize() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}
