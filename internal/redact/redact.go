// Package redact removes credentials and personal data from strings before
// they are logged. Graph and identity-provider errors routinely echo bearer
// tokens, authorization codes and user principal names; none of them may
// reach the logs verbatim.
package redact

import "regexp"

// Placeholders written in place of redacted content.
const (
	RedactionPlaceholder = "[REDACTED]"
	RedactedJWT          = "[REDACTED_JWT]"
	RedactedToken        = "[REDACTED_TOKEN]"
	RedactedEmail        = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order. JWTs go first so a bearer header carrying a
// JWT keeps the more specific placeholder.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]*`),
		replacement: RedactedJWT,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`),
		replacement: "Bearer " + RedactedToken,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(code|client_secret|refresh_token|access_token|id_token|password)=[^&\s"']+`),
		replacement: "${1}=" + RedactionPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmail,
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
