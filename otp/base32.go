package otp

import (
	"encoding/base32"
	"fmt"
	"strings"
)

var unpadded = base32.StdEncoding.WithPadding(base32.NoPadding)

// validTailLengths are the data symbol counts an RFC 4648 base32 quantum can
// end with; 1, 3 and 6 symbols cannot carry a whole number of bytes.
var validTailLengths = map[int]bool{0: true, 2: true, 4: true, 5: true, 7: true}

// DecodeSecret decodes base32 text as typed by a user into raw key bytes.
// Lower case is accepted and trailing '=' padding is optional.
func DecodeSecret(text string) ([]byte, error) {
	data, err := canonical(text)
	if err != nil {
		return nil, err
	}
	key, err := unpadded.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return key, nil
}

// EncodeSecret encodes key bytes as upper case, padded base32.
func EncodeSecret(key []byte) string {
	return base32.StdEncoding.EncodeToString(key)
}

// NormalizeSecret validates text and returns its canonical form, the way it
// is persisted.
func NormalizeSecret(text string) (string, error) {
	key, err := DecodeSecret(text)
	if err != nil {
		return "", err
	}
	return EncodeSecret(key), nil
}

// canonical upper cases text, strips padding and checks the alphabet and
// the length of the final quantum. Folding is ASCII only so that letters
// such as U+017F do not turn into alphabet symbols.
func canonical(text string) (string, error) {
	data := strings.TrimRight(text, "=")
	if data == "" {
		return "", fmt.Errorf("%w: empty secret", ErrInvalidSecret)
	}

	var b strings.Builder
	b.Grow(len(data))
	for i, r := range data {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '2' && r <= '7':
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: illegal character %q at offset %d", ErrInvalidSecret, r, i)
		}
	}

	if tail := len(data) % 8; !validTailLengths[tail] {
		return "", fmt.Errorf("%w: final group of %d characters in %q, must be 2, 4, 5, 7 or 8", ErrInvalidSecret, tail, text)
	}

	return b.String(), nil
}
