package service

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

// PasswordScheme controls how passwords are stored at registration and
// checked at login.
//
// The plain scheme stores and compares passwords as given, which is how the
// existing user data was written. Switching to bcrypt makes every plain value
// already in the directory fail to match, so it is opt-in.
type PasswordScheme interface {
	Encode(password string) (string, error)
	Matches(stored, password string) bool
}

// NewPasswordScheme returns the scheme registered under name.
func NewPasswordScheme(name string) (PasswordScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PasswordSchemePlain:
		return PlainPasswords{}, nil
	case PasswordSchemeBcrypt:
		return BcryptPasswords{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}

type PlainPasswords struct{}

func (PlainPasswords) Encode(password string) (string, error) {
	return password, nil
}

func (PlainPasswords) Matches(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Encode(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptPasswords) Matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
