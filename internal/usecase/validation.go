package usecase

import "regexp"

// Deliberately permissive: local@domain.tld shape, nothing more.
// "a@b" fails (no dot after the @), "a@b.co" passes. Full RFC 5321
// validation is not the goal here, the inbox is the real validator.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validLanguages = map[string]bool{
	"en": true,
	"fr": true,
	"es": true,
	"de": true,
	"it": true,
}

var validSources = map[string]bool{
	"website":      true,
	"landing_page": true,
	"referral":     true,
	"social":       true,
	"email":        true,
	"other":        true,
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidLanguage(language string) bool {
	return validLanguages[language]
}

func IsValidSource(source string) bool {
	return validSources[source]
}
