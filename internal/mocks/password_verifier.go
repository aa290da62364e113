package mocks

import (
	"errors"
	"strings"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// By default it accepts hashes produced by MockUserStore
// ("hashed:" + plaintext); ShouldSucceed forces the outcome either way.
type MockPasswordVerifier struct {
	CompareFn     func(hashedPassword, password string) error
	ShouldSucceed bool
	ForceOutcome  bool

	CompareCalls int
}

// ErrMockPasswordMismatch is returned on a failed comparison.
var ErrMockPasswordMismatch = errors.New("password mismatch")

// Compare implements the auth.PasswordVerifier interface.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalls++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.ForceOutcome {
		if m.ShouldSucceed {
			return nil
		}
		return ErrMockPasswordMismatch
	}

	if strings.TrimPrefix(hashedPassword, "hashed:") == password {
		return nil
	}
	return ErrMockPasswordMismatch
}
