package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/peerpods-dev/peerpods/shared/errors"
)

// Strict policy strips all markup; user text is stored plain.
var sanitizePolicy = bluemonday.StrictPolicy()

func Sanitize(s string) string {
	return strings.TrimSpace(sanitizePolicy.Sanitize(s))
}

func isUsernameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

type UserValidator struct{}

func (v *UserValidator) Username(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 3 {
		return &errors.ErrorWithStatusCode{Message: "Username is too short", StatusCode: 400}
	}
	if n > 32 {
		return &errors.ErrorWithStatusCode{Message: "Username is too long", StatusCode: 400}
	}
	for _, r := range name {
		if !isUsernameRune(r) {
			return &errors.ErrorWithStatusCode{Message: "Username should contain only letters, digits or underscores", StatusCode: 400}
		}
	}
	return nil
}

func (v *UserValidator) Password(password string) error {
	if len(password) < 8 {
		return &errors.ErrorWithStatusCode{Message: "Password is too short", StatusCode: 400}
	}
	if len(password) > 72 { // bcrypt input limit
		return &errors.ErrorWithStatusCode{Message: "Password is too long", StatusCode: 400}
	}
	return nil
}

func (v *UserValidator) Bio(bio string) error {
	if utf8.RuneCountInString(bio) > 1000 {
		return &errors.ErrorWithStatusCode{Message: "Bio is too long", StatusCode: 400}
	}
	return nil
}

type PodValidator struct{}

func (v *PodValidator) Title(title string) error {
	if len(title) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Title is too short", StatusCode: 400}
	}
	if utf8.RuneCountInString(title) > 120 {
		return &errors.ErrorWithStatusCode{Message: "Title is too long", StatusCode: 400}
	}
	return nil
}

func (v *PodValidator) Description(description string) error {
	if utf8.RuneCountInString(description) > 2000 {
		return &errors.ErrorWithStatusCode{Message: "Description is too long", StatusCode: 400}
	}
	return nil
}

type MessageValidator struct{}

func (v *MessageValidator) Text(text string) error {
	if len(text) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Text is too short", StatusCode: 400}
	}
	if utf8.RuneCountInString(text) > 10_000 {
		return &errors.ErrorWithStatusCode{Message: "Text is too long", StatusCode: 400}
	}
	return nil
}

func (v *MessageValidator) VoiceReference(ref string) error {
	if len(ref) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Voice reference is empty", StatusCode: 400}
	}
	if len(ref) > 512 {
		return &errors.ErrorWithStatusCode{Message: "Voice reference is too long", StatusCode: 400}
	}
	return nil
}
