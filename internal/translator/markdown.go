package translator

import "strings"

const (
	fenceSQL  = "```sql"
	fenceBare = "```"
)

// StripFences removes markdown code-fence delimiters from a model response.
// The language-tagged opening marker is checked before the bare one so a
// "```sql" prefix is never stripped twice. Stripping is idempotent: running
// it on an already-stripped string is a no-op.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, fenceSQL) {
		s = s[len(fenceSQL):]
	} else if strings.HasPrefix(s, fenceBare) {
		s = s[len(fenceBare):]
	}

	if strings.HasSuffix(s, fenceBare) {
		s = s[:len(s)-len(fenceBare)]
	}

	return strings.TrimSpace(s)
}
