package vault

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/99designs/keyring"
)

// DefaultBackendTimeout bounds a single keyring call when nothing else is configured.
const DefaultBackendTimeout = 10 * time.Second

// TimeoutKeyring bounds every call to the wrapped keyring, so that an
// unresponsive secret service surfaces as ErrBackendUnavailable instead of
// hanging. A zero Timeout disables the bound.
//
// A call that times out keeps running in the background and may still
// complete. While Interactive reports true the deadline is pushed back by
// another Timeout, so a user typing a passphrase is never cut off.
type TimeoutKeyring struct {
	Keyring     keyring.Keyring
	Timeout     time.Duration
	Interactive func() bool
}

type result[T any] struct {
	val T
	err error
}

func withTimeout[T any](tk *TimeoutKeyring, op string, fn func() (T, error)) (T, error) {
	if tk.Timeout <= 0 {
		return fn()
	}

	done := make(chan result[T], 1)
	go func() {
		v, err := fn()
		done <- result[T]{v, err}
	}()

	timer := time.NewTimer(tk.Timeout)
	defer timer.Stop()

	for {
		select {
		case r := <-done:
			return r.val, r.err
		case <-timer.C:
			if tk.Interactive != nil && tk.Interactive() {
				log.Printf("Keyring %s is waiting for user input", op)
				timer.Reset(tk.Timeout)
				continue
			}
			log.Printf("Keyring %s timed out after %s", op, tk.Timeout)
			var zero T
			return zero, fmt.Errorf("%w: %s timed out after %s: %w", ErrBackendUnavailable, op, tk.Timeout, context.DeadlineExceeded)
		}
	}
}

func (tk *TimeoutKeyring) Get(key string) (keyring.Item, error) {
	return withTimeout(tk, "get", func() (keyring.Item, error) {
		return tk.Keyring.Get(key)
	})
}

func (tk *TimeoutKeyring) GetMetadata(key string) (keyring.Metadata, error) {
	return withTimeout(tk, "get metadata", func() (keyring.Metadata, error) {
		return tk.Keyring.GetMetadata(key)
	})
}

func (tk *TimeoutKeyring) Set(item keyring.Item) error {
	_, err := withTimeout(tk, "set", func() (struct{}, error) {
		return struct{}{}, tk.Keyring.Set(item)
	})
	return err
}

func (tk *TimeoutKeyring) Remove(key string) error {
	_, err := withTimeout(tk, "remove", func() (struct{}, error) {
		return struct{}{}, tk.Keyring.Remove(key)
	})
	return err
}

func (tk *TimeoutKeyring) Keys() ([]string, error) {
	return withTimeout(tk, "keys", tk.Keyring.Keys)
}
