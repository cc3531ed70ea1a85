package service

import "errors"

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// The two cases are deliberately indistinguishable so a login response never
// reveals whether an email is registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountDisabled is returned when the account exists and the password
// may even be right, but the account's active flag is off.
var ErrAccountDisabled = errors.New("account disabled")

// ErrSecretTooShort is the service-level re-check of the minimum password
// length.  Handlers validate request bodies too; this guard holds even if a
// caller bypasses them.
var ErrSecretTooShort = errors.New("password must be at least 6 characters")
