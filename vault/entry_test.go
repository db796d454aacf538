package vault_test

import (
	"errors"
	"testing"

	"github.com/99designs/otp-vault/vault"
	"github.com/google/go-cmp/cmp"
)

func TestNewSecretEntryFromURL(t *testing.T) {
	e, err := vault.NewSecretEntryFromURL("", "otpauth://totp/ACME%20Co:john@example.com?secret=jbswy3dpehpk3pxp&issuer=ACME%20Co&digits=8&period=60")
	if err != nil {
		t.Fatal(err)
	}

	expected := vault.SecretEntry{
		Name:      "john@example.com",
		Secret:    "JBSWY3DPEHPK3PXP",
		Algorithm: "SHA1",
		Digits:    8,
		Period:    60,
		Issuer:    "ACME Co",
	}
	if diff := cmp.Diff(expected, e); diff != "" {
		t.Fatalf("Unexpected entry (-want +got):\n%s", diff)
	}
}

func TestNewSecretEntryFromURLKeepsGivenName(t *testing.T) {
	e, err := vault.NewSecretEntryFromURL("work", "otpauth://totp/john@example.com?secret=JBSWY3DPEHPK3PXP")
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "work" || e.Digits != 6 || e.Period != 30 {
		t.Fatalf("Unexpected entry %+v", e)
	}
}

func TestNewSecretEntryFromURLRejectsUnsupportedKeys(t *testing.T) {
	var testCases = []struct {
		URI string
		Err error
	}{
		{"otpauth://hotp/john?secret=JBSWY3DPEHPK3PXP&counter=1", vault.ErrUnsupportedParameters},
		{"otpauth://totp/john?secret=JBSWY3DPEHPK3PXP&algorithm=SHA256", vault.ErrUnsupportedParameters},
		{"otpauth://totp/john?secret=JBSW1", vault.ErrInvalidSecret},
		{"::not a url", vault.ErrInvalidSecret},
	}

	for _, tc := range testCases {
		if _, err := vault.NewSecretEntryFromURL("", tc.URI); !errors.Is(err, tc.Err) {
			t.Fatalf("%s: expected %v, got %v", tc.URI, tc.Err, err)
		}
	}
}

func TestNewSecretEntryRejectsEmptyName(t *testing.T) {
	if _, err := vault.NewSecretEntry(" ", "JBSWY3DPEHPK3PXP"); !errors.Is(err, vault.ErrInvalidName) {
		t.Fatalf("Expected ErrInvalidName, got %v", err)
	}
}
