package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/otp-vault/otp"
)

var (
	ErrInvalidName           = errors.New("invalid name")
	ErrDuplicateName         = errors.New("secret already exists")
	ErrNotFound              = errors.New("secret not found")
	ErrBackendUnavailable    = errors.New("keyring backend unavailable")
	ErrPossiblyWritten       = errors.New("change may have been saved, check 'otp-vault list' before retrying")
	ErrInvalidSecret         = otp.ErrInvalidSecret
	ErrUnsupportedParameters = otp.ErrUnsupportedParameters
)

// EntryError ties a failure to the secret it happened on.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("secret %q: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

func backendError(op string, err error) error {
	if err == nil || errors.Is(err, ErrBackendUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, op, err)
}

// uncertainWrite reports a write that timed out, so it may still land in the
// backend after the caller has given up on it.
func uncertainWrite(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPossiblyWritten, op, err)
}

func timedOut(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
