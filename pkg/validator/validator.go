package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxProjectNameLen = 255
	maxFileNameLen    = 255
	maxDescriptionLen = 2048
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errProjectNameEmptyFmt     = "project name cannot be empty"
	errProjectNameMaxLengthFmt = "project name must not exceed %d characters"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errDescriptionMaxLenFmt    = "description must not exceed %d characters"
	errFileSizeNegativeFmt     = "file size cannot be negative"
	errExpirationPastFmt       = "expiration date must be in the future"
	errMaxUsesPositiveFmt      = "max uses must be positive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func ProjectName(name string) error {
	if name == "" {
		return fmt.Errorf(errProjectNameEmptyFmt)
	}

	if len(name) > maxProjectNameLen {
		return fmt.Errorf(errProjectNameMaxLengthFmt, maxProjectNameLen)
	}

	return nil
}

func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}

	return nil
}

func Description(description string) error {
	if len(description) > maxDescriptionLen {
		return fmt.Errorf(errDescriptionMaxLenFmt, maxDescriptionLen)
	}
	return nil
}

func FileSize(size int64) error {
	if size < 0 {
		return fmt.Errorf(errFileSizeNegativeFmt)
	}
	return nil
}

// Expiration rejects expiration timestamps that are already in the past.
// A nil expiration means the resource never expires and is always valid.
func Expiration(expiresAt *time.Time) error {
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return fmt.Errorf(errExpirationPastFmt)
	}
	return nil
}

func MaxUses(maxUses *int) error {
	if maxUses != nil && *maxUses <= 0 {
		return fmt.Errorf(errMaxUsesPositiveFmt)
	}
	return nil
}
