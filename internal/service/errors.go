package service

import "errors"

// ErrInvalidCredentials is returned by Authenticate for both a missing
// account and a wrong password. Keeping the two cases indistinguishable
// to the caller avoids confirming which emails are registered.
var ErrInvalidCredentials = errors.New("invalid email or password")
