package vault

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/99designs/keyring"
)

// SecretStore holds named TOTP secrets.
type SecretStore interface {
	Add(entry SecretEntry) error
	List() ([]SecretEntry, error)
	Get(name string) (SecretEntry, error)
	Remove(name string) error
}

// SecretKeyring is a SecretStore backed by a keyring, one item per secret.
type SecretKeyring struct {
	Keyring keyring.Keyring
}

// Keys returns the names of all stored secrets, in backend order.
func (sk *SecretKeyring) Keys() ([]string, error) {
	keys, err := sk.Keyring.Keys()
	if err != nil {
		return nil, backendError("listing keys", err)
	}
	return keys, nil
}

// Has reports whether a secret called name is stored.
func (sk *SecretKeyring) Has(name string) (bool, error) {
	allKeys, err := sk.Keys()
	if err != nil {
		return false, err
	}
	for _, keyName := range allKeys {
		if keyName == name {
			return true, nil
		}
	}
	return false, nil
}

// Add stores a new secret with a single backend write. When that write
// times out the store is checked again; if the secret is still missing the
// error wraps ErrPossiblyWritten, since the write may yet complete.
func (sk *SecretKeyring) Add(entry SecretEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	exists, err := sk.Has(entry.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, entry.Name)
	}

	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	bytes, err := entry.marshal()
	if err != nil {
		return err
	}

	op := fmt.Sprintf("storing %q", entry.Name)
	log.Printf("Storing secret %q", entry.Name)
	err = sk.Keyring.Set(keyring.Item{
		Key:         entry.Name,
		Label:       fmt.Sprintf("otp-vault (%s)", entry.Name),
		Description: "otp-vault secret",
		Data:        bytes,

		// specific Keychain settings
		KeychainNotTrustApplication: true,
	})
	if timedOut(err) {
		if item, getErr := sk.Keyring.Get(entry.Name); getErr == nil && string(item.Data) == string(bytes) {
			log.Printf("Secret %q was stored after the timeout", entry.Name)
			return nil
		}
		return uncertainWrite(op, backendError(op, err))
	}
	return backendError(op, err)
}

func (sk *SecretKeyring) Get(name string) (SecretEntry, error) {
	item, err := sk.Keyring.Get(name)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return SecretEntry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	} else if err != nil {
		return SecretEntry{}, backendError(fmt.Sprintf("reading %q", name), err)
	}
	return unmarshalEntry(name, item.Data), nil
}

// List returns every stored secret, oldest first. Secrets are not decoded,
// a corrupt one is only detected when generating its code.
func (sk *SecretKeyring) List() ([]SecretEntry, error) {
	allKeys, err := sk.Keys()
	if err != nil {
		return nil, err
	}

	entries := make([]SecretEntry, 0, len(allKeys))
	for _, name := range allKeys {
		e, err := sk.Get(name)
		if errors.Is(err, ErrNotFound) {
			log.Printf("Secret %q disappeared while listing", name)
			continue
		} else if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func (sk *SecretKeyring) Remove(name string) error {
	exists, err := sk.Has(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	op := fmt.Sprintf("removing %q", name)
	log.Printf("Removing secret %q", name)
	err = sk.Keyring.Remove(name)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if timedOut(err) {
		if _, getErr := sk.Keyring.Get(name); errors.Is(getErr, keyring.ErrKeyNotFound) {
			log.Printf("Secret %q was removed after the timeout", name)
			return nil
		}
		return uncertainWrite(op, backendError(op, err))
	}
	return backendError(op, err)
}
