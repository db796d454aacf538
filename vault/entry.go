package vault

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/99designs/otp-vault/otp"
	pqotp "github.com/pquerna/otp"
)

// SecretEntry is a named TOTP secret along with the parameters needed to
// reproduce its codes.
type SecretEntry struct {
	Name      string
	Secret    string
	Algorithm string
	Digits    int
	Period    int
	Issuer    string
	AddedAt   time.Time
}

// secretPayload is what gets stored in the keyring item, the name being the
// item key.
type secretPayload struct {
	Secret    string
	Algorithm string
	Digits    int
	Period    int
	Issuer    string    `json:",omitempty"`
	AddedAt   time.Time `json:",omitempty"`
}

// NewSecretEntry validates name and secret and returns an entry with the
// default parameters.
func NewSecretEntry(name, secret string) (SecretEntry, error) {
	e := SecretEntry{Name: name, Secret: secret}
	e.setParams(otp.DefaultParams())
	if err := e.Validate(); err != nil {
		return SecretEntry{}, err
	}
	e.Secret, _ = otp.NormalizeSecret(e.Secret)
	return e, nil
}

// NewSecretEntryFromURL builds an entry from an otpauth://totp/ key URI as
// shown in provisioning QR codes. If name is empty the URI's account name is
// used.
func NewSecretEntryFromURL(name, uri string) (SecretEntry, error) {
	key, err := pqotp.NewKeyFromURL(uri)
	if err != nil {
		return SecretEntry{}, fmt.Errorf("%w: parsing key URI: %v", ErrInvalidSecret, err)
	}
	if key.Type() != "totp" {
		return SecretEntry{}, fmt.Errorf("%w: key type %q, only totp is supported", ErrUnsupportedParameters, key.Type())
	}
	if name == "" {
		name = key.AccountName()
	}

	e := SecretEntry{
		Name:      name,
		Secret:    key.Secret(),
		Algorithm: key.Algorithm().String(),
		Digits:    int(key.Digits()),
		Period:    int(key.Period()),
		Issuer:    key.Issuer(),
	}
	if err = e.Validate(); err != nil {
		return SecretEntry{}, err
	}
	e.Secret, _ = otp.NormalizeSecret(e.Secret)
	return e, nil
}

func (e SecretEntry) Params() otp.Params {
	return otp.Params{
		Algorithm: e.Algorithm,
		Digits:    e.Digits,
		Period:    e.Period,
	}
}

func (e *SecretEntry) setParams(p otp.Params) {
	e.Algorithm = p.Algorithm
	e.Digits = p.Digits
	e.Period = p.Period
}

// Validate checks everything needed to generate codes from the entry.
func (e SecretEntry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if _, err := otp.DecodeSecret(e.Secret); err != nil {
		return &EntryError{Name: e.Name, Err: err}
	}
	if err := e.Params().Validate(); err != nil {
		return &EntryError{Name: e.Name, Err: err}
	}
	return nil
}

func (e SecretEntry) marshal() ([]byte, error) {
	return json.Marshal(secretPayload{
		Secret:    e.Secret,
		Algorithm: strings.ToUpper(e.Algorithm),
		Digits:    e.Digits,
		Period:    e.Period,
		Issuer:    e.Issuer,
		AddedAt:   e.AddedAt,
	})
}

// unmarshalEntry reads an item payload. Data that isn't a JSON object is
// taken as a bare base32 secret with the default parameters. Missing
// parameters also get defaults.
func unmarshalEntry(name string, data []byte) SecretEntry {
	e := SecretEntry{Name: name}
	e.setParams(otp.DefaultParams())

	var p secretPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Secret == "" {
		e.Secret = strings.TrimSpace(string(data))
		return e
	}

	e.Secret = p.Secret
	e.Issuer = p.Issuer
	e.AddedAt = p.AddedAt
	if p.Algorithm != "" {
		e.Algorithm = p.Algorithm
	}
	if p.Digits != 0 {
		e.Digits = p.Digits
	}
	if p.Period != 0 {
		e.Period = p.Period
	}
	return e
}
