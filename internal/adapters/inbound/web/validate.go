package web

import "regexp"

var (
	// Label-dot-label with a final label of at least two characters.
	domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{1,61}[a-zA-Z0-9]\.[a-zA-Z]{2,}$`)
	// 3-20 alphanumeric or underscore characters.
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

const minPasswordLength = 8

func validDomain(domain string) bool {
	return domainPattern.MatchString(domain)
}

func validUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

func validPassword(password string) bool {
	return len(password) >= minPasswordLength
}
