package utils

import (
	"time"
)

// Session time constants
const (
	// SessionTimeout is the default lifetime of a login session (24 hours)
	SessionTimeout = 24 * time.Hour

	// SessionTokenBytes is the entropy of an opaque session token before encoding
	SessionTokenBytes = 32
)

// Password policy constants
const (
	// PasswordMinLength is the minimum accepted raw password length
	PasswordMinLength = 8

	// PasswordMaxLength matches the bcrypt input limit
	PasswordMaxLength = 72
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Listing constants
const (
	// DefaultPageSize bounds unpaged admin listings
	DefaultPageSize = 50

	// MaxPageSize is the largest limit a caller may request
	MaxPageSize = 200
)
