package flows

import "regexp"

// emailPattern is the usual "something@something.tld" gate. The server
// validates properly; this only stops obviously malformed input from
// spending a round trip.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Registration is the user input of the first registration step.
type Registration struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Bio       string
}

// Validate checks the registration input field by field. A non-empty result
// blocks submission; no network call is made.
func (r Registration) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Username == "" {
		errs["username"] = "username is required"
	}
	if !ValidEmail(r.Email) {
		errs["email"] = "enter a valid email address"
	}
	if len(r.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	if r.Password != r.Password2 {
		errs["password2"] = "passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
