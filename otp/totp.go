// Package otp derives time-based one-time passwords (RFC 6238) from shared
// secrets using HMAC-SHA1 dynamic truncation (RFC 4226).
package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const (
	// AlgorithmSHA1 is the only supported HMAC algorithm.
	AlgorithmSHA1 = "SHA1"

	// DefaultDigits is the code length used when none is configured.
	DefaultDigits = 6
	// DefaultPeriod is the time step in seconds used when none is configured.
	DefaultPeriod = 30

	// MinDigits and MaxDigits bound the code length.
	MinDigits = 6
	MaxDigits = 8
)

var (
	// ErrInvalidSecret means a secret is not valid base32 or is empty.
	ErrInvalidSecret = errors.New("invalid secret")
	// ErrUnsupportedParameters means an algorithm, digit count or period is out of range.
	ErrUnsupportedParameters = errors.New("unsupported parameters")
)

var powersOfTen = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000}

// Params are the settings needed to reproduce a code from a secret.
type Params struct {
	Algorithm string
	Digits    int
	Period    int
}

// DefaultParams returns SHA1, 6 digits and a 30 second period.
func DefaultParams() Params {
	return Params{
		Algorithm: AlgorithmSHA1,
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
	}
}

// Validate returns ErrUnsupportedParameters unless p uses SHA1, 6 to 8
// digits and a positive period.
func (p Params) Validate() error {
	if !strings.EqualFold(p.Algorithm, AlgorithmSHA1) {
		return fmt.Errorf("%w: algorithm %q, only %s is supported", ErrUnsupportedParameters, p.Algorithm, AlgorithmSHA1)
	}
	return checkParams(p.Period, p.Digits)
}

func checkParams(period, digits int) error {
	if digits < MinDigits || digits > MaxDigits {
		return fmt.Errorf("%w: %d digits, must be between %d and %d", ErrUnsupportedParameters, digits, MinDigits, MaxDigits)
	}
	if period <= 0 {
		return fmt.Errorf("%w: period of %d seconds, must be positive", ErrUnsupportedParameters, period)
	}
	return nil
}

// Counter returns the number of whole periods elapsed at unixTime.
func Counter(unixTime int64, period int) uint64 {
	return uint64(unixTime) / uint64(period)
}

// SecondsRemaining returns how long the code for unixTime stays valid.
func SecondsRemaining(unixTime int64, period int) int {
	return period - int(unixTime%int64(period))
}

// GenerateCode computes the code for key at unixTime. The result is always
// exactly digits characters long, zero padded.
func GenerateCode(key []byte, unixTime int64, period, digits int) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("%w: empty key", ErrInvalidSecret)
	}
	if err := checkParams(period, digits); err != nil {
		return "", err
	}
	if unixTime < 0 {
		return "", fmt.Errorf("%w: negative time %d", ErrUnsupportedParameters, unixTime)
	}

	return hotp(key, Counter(unixTime, period), digits), nil
}

func hotp(key []byte, counter uint64, digits int) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// RFC 4226 section 5.4
	offset := sum[len(sum)-1] & 0x0f
	p := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", digits, p%powersOfTen[digits])
}
