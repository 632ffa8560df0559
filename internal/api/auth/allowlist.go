package auth

import "strings"

// Allowlist is the fixed set of email addresses permitted to complete
// sign-in, compared case-insensitively. An empty list rejects everyone.
type Allowlist []string

// NewAllowlist parses a comma-separated email list, trimming whitespace and
// lowercasing each entry. Blank entries are dropped.
func NewAllowlist(csv string) Allowlist {
	var list Allowlist
	for _, entry := range strings.Split(csv, ",") {
		email := strings.ToLower(strings.TrimSpace(entry))
		if email == "" {
			continue
		}
		list = append(list, email)
	}
	return list
}

func (a Allowlist) Contains(email string) bool {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return false
	}
	for _, allowed := range a {
		if allowed == needle {
			return true
		}
	}
	return false
}
