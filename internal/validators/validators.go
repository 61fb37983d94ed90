package validators

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	mobileRe = regexp.MustCompile(`^[0-9]{11}$`)
	clockRe  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func IsEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && validate.Var(email, "email") == nil
}

// IsMobileNumber accepts exactly 11 digits, e.g. 03001234567.
func IsMobileNumber(s string) bool {
	return mobileRe.MatchString(s)
}

// IsClock accepts a 24h HH:MM time.
func IsClock(s string) bool {
	return clockRe.MatchString(s)
}
