package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the input and replaces every run of non-alphanumeric
// characters with a single hyphen.
func Slugify(name string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// DedupeSlug suffixes the current timestamp, so two racing creates with the
// same derived slug both succeed instead of the second one failing.
func DedupeSlug(slug string) string {
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
}
