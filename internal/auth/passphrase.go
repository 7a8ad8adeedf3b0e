// Package auth checks the local display passphrase.
//
// The passphrase only decides whether sensitive fields are shown unmasked.
// Its bcrypt hash lives in the config file; the passphrase itself is never
// stored.
package auth

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassphrase     = errors.New("passphrase must be at least 4 characters")
	ErrPassphraseMismatch = errors.New("passphrase does not match")
	ErrNoPassphraseHash   = errors.New("no passphrase hash configured")
)

// MinPassphraseLength is the shortest accepted passphrase, in characters.
const MinPassphraseLength = 4

// ValidatePassphrase checks if the passphrase meets minimum requirements.
func ValidatePassphrase(passphrase string) error {
	if utf8.RuneCountInString(passphrase) < MinPassphraseLength {
		return ErrWeakPassphrase
	}
	return nil
}

// HashPassphrase returns a bcrypt hash suitable for the config file.
func HashPassphrase(passphrase string) (string, error) {
	if err := ValidatePassphrase(passphrase); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hash), nil
}

// VerifyPassphrase checks passphrase against a stored bcrypt hash.
func VerifyPassphrase(hash, passphrase string) error {
	if hash == "" {
		return ErrNoPassphraseHash
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPassphraseMismatch
		}
		return fmt.Errorf("invalid passphrase hash: %w", err)
	}
	return nil
}
