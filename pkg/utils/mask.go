package utils

import "strings"

// MaskEmail hides the local part of an address so it can appear in
// logs. abcd@domain.com becomes a***@domain.com.
func MaskEmail(email *string) string {
	if email == nil || *email == "" {
		return ""
	}
	at := strings.IndexByte(*email, '@')
	if at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + (*email)[at:]
	}
	return (*email)[:1] + "***" + (*email)[at:]
}
