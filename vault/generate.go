package vault

import (
	"time"

	"github.com/99designs/otp-vault/otp"
)

// Clock returns the current time. time.Now is the usual one.
type Clock func() time.Time

// GeneratedCode is the outcome for one secret. Err is set, and Code empty,
// when that secret could not produce a code.
type GeneratedCode struct {
	Name             string
	Code             string
	SecondsRemaining int
	Err              error
}

// GenerateAll computes the current code of every secret in store, in list
// order. A secret that fails is reported in its GeneratedCode and doesn't
// stop the others; only failing to list the store returns an error.
func GenerateAll(store SecretStore, clock Clock) ([]GeneratedCode, error) {
	entries, err := store.List()
	if err != nil {
		return nil, err
	}

	now := clock().Unix()
	codes := make([]GeneratedCode, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, generate(e, now))
	}
	return codes, nil
}

// GenerateOne computes the current code of the named secret.
func GenerateOne(store SecretStore, name string, clock Clock) (GeneratedCode, error) {
	e, err := store.Get(name)
	if err != nil {
		return GeneratedCode{Name: name}, err
	}
	gc := generate(e, clock().Unix())
	return gc, gc.Err
}

func generate(e SecretEntry, now int64) GeneratedCode {
	gc := GeneratedCode{Name: e.Name}

	params := e.Params()
	if err := params.Validate(); err != nil {
		gc.Err = &EntryError{Name: e.Name, Err: err}
		return gc
	}

	key, err := otp.DecodeSecret(e.Secret)
	if err != nil {
		gc.Err = &EntryError{Name: e.Name, Err: err}
		return gc
	}

	code, err := otp.GenerateCode(key, now, params.Period, params.Digits)
	if err != nil {
		gc.Err = &EntryError{Name: e.Name, Err: err}
		return gc
	}

	gc.Code = code
	gc.SecondsRemaining = otp.SecondsRemaining(now, params.Period)
	return gc
}
