package domain

import (
	"errors"
	"fmt"
)

// Validation
var (
	ErrEmptyContent  = errors.New("comment content cannot be empty")
	ErrEmptyNickname = errors.New("nickname cannot be empty")
)

// Lookup
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Authentication and authorization
var (
	ErrNotLoggedIn        = errors.New("user not logged in")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("access denied")
	// ErrSelfDeletion wraps ErrForbidden: an admin may not delete the account
	// recorded in their own session.
	ErrSelfDeletion = fmt.Errorf("%w: cannot delete your own account", ErrForbidden)
)

var ErrUsernameConflict = errors.New("username already exists")
