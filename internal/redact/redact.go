// Package redact removes sensitive fragments from strings before they are
// logged. Store errors can echo connection strings, SQL text and the email
// addresses being written; none of that belongs in a log line.
package redact

import (
	"net/url"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules are applied in order; credentials go first so that the user:password
// part of a URL is never mistaken for an email address.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)\b(postgres|postgresql|sqlite|file|mysql)://[^@\s/]+@`),
		"$1://" + RedactedCredentialPlaceholder + "@",
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s]+`),
		"$1$2" + RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\w,*()$?=.]+\b(FROM|INTO|SET|WHERE)\b[\s\w,*()$?='".]*`),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// DSN masks the password of a URL-style connection string, keeping scheme,
// user, host and database visible for diagnostics. Strings that do not parse
// as a URL with a host (plain SQLite paths, for instance) are returned as is.
func DSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" || u.User == nil {
		return dsn
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
