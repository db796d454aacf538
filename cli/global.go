package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/99designs/keyring"
	"github.com/99designs/otp-vault/prompt"
	"github.com/99designs/otp-vault/vault"
	"github.com/alecthomas/kingpin"
	"golang.org/x/term"
)

var keyringConfigDefaults = keyring.Config{
	ServiceName:              "otp-vault",
	LibSecretCollectionName:  "otpvault",
	KWalletAppID:             "otp-vault",
	KWalletFolder:            "otp-vault",
	KeychainTrustApplication: true,
	WinCredPrefix:            "otp-vault",
}

type OtpVault struct {
	Debug          bool
	KeyringConfig  keyring.Config
	KeyringBackend string
	PromptDriver   string
	Timeout        time.Duration
	Clock          vault.Clock

	keyringImpl keyring.Keyring
	config      *vault.Config
	passphrase  *passphraseCache
}

// Config returns the settings from the config file, loading it on first use.
func (a *OtpVault) Config() (*vault.Config, error) {
	if a.config == nil {
		var err error
		a.config, err = vault.LoadConfigFromEnv()
		if err != nil {
			return nil, err
		}
	}
	return a.config, nil
}

// Keyring opens the selected backend once per process.
func (a *OtpVault) Keyring() (keyring.Keyring, error) {
	if a.keyringImpl == nil {
		config, err := a.Config()
		if err != nil {
			return nil, err
		}

		backend := a.KeyringBackend
		if backend == "" {
			backend = config.Backend
		}
		if backend != "" {
			a.KeyringConfig.AllowedBackends = []keyring.BackendType{keyring.BackendType(backend)}
		}

		// Unlock before any backend call is put under a timeout.
		if backend == string(keyring.FileBackend) {
			if _, err = a.passphrase.Get(fmt.Sprintf("Enter passphrase to unlock %q", a.KeyringConfig.FileDir)); err != nil {
				return nil, err
			}
		}

		log.Printf("Opening keyring with backends %v", a.KeyringConfig.AllowedBackends)
		a.keyringImpl, err = keyring.Open(a.KeyringConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", vault.ErrBackendUnavailable, err)
		}
	}

	return a.keyringImpl, nil
}

// SecretStore returns the keyring with every backend call bounded by the
// configured timeout. The bound is suspended while the user is typing the
// file backend passphrase.
func (a *OtpVault) SecretStore() (*vault.SecretKeyring, error) {
	k, err := a.Keyring()
	if err != nil {
		return nil, err
	}
	config, err := a.Config()
	if err != nil {
		return nil, err
	}

	timeout := a.Timeout
	if timeout == 0 {
		timeout = config.Timeout
	}

	return &vault.SecretKeyring{
		Keyring: &vault.TimeoutKeyring{
			Keyring:     k,
			Timeout:     timeout,
			Interactive: a.passphrase.Prompting,
		},
	}, nil
}

// Prompt returns the prompt driver selected by flag, environment or config.
func (a *OtpVault) Prompt() (prompt.PromptFunc, error) {
	driver := a.PromptDriver
	if driver == "" {
		config, err := a.Config()
		if err != nil {
			return nil, err
		}
		driver = config.Prompt
	}
	if driver == "" {
		driver = "terminal"
	}
	if _, ok := prompt.Methods[driver]; !ok {
		return nil, fmt.Errorf("prompt driver %q isn't available, use one of %v", driver, prompt.Available())
	}
	return prompt.Method(driver), nil
}

func ConfigureGlobals(app *kingpin.Application) *OtpVault {
	a := &OtpVault{
		KeyringConfig: keyringConfigDefaults,
		Clock:         time.Now,
		passphrase:    &passphraseCache{Prompt: fileKeyringPassphrasePrompt},
	}
	a.KeyringConfig.FilePasswordFunc = a.passphrase.Get

	backendsAvailable := []string{}
	for _, backendType := range keyring.AvailableBackends() {
		backendsAvailable = append(backendsAvailable, string(backendType))
	}

	promptsAvailable := prompt.Available()

	app.Flag("debug", "Show debugging output").
		BoolVar(&a.Debug)

	app.Flag("backend", fmt.Sprintf("Secret backend to use %v", backendsAvailable)).
		Envar("OTP_VAULT_BACKEND").
		EnumVar(&a.KeyringBackend, backendsAvailable...)

	app.Flag("prompt", fmt.Sprintf("Prompt driver to use %v", promptsAvailable)).
		Envar("OTP_VAULT_PROMPT").
		EnumVar(&a.PromptDriver, promptsAvailable...)

	app.Flag("timeout", "Maximum time to wait for the secret backend").
		Envar("OTP_VAULT_TIMEOUT").
		DurationVar(&a.Timeout)

	app.Flag("keychain", "Name of macOS keychain to use, if it doesn't exist it will be created").
		Default("otp-vault").
		Envar("OTP_VAULT_KEYCHAIN_NAME").
		StringVar(&a.KeyringConfig.KeychainName)

	app.Flag("secret-service-collection", "Name of secret-service collection to use, if it doesn't exist it will be created").
		Default("otpvault").
		Envar("OTP_VAULT_SECRET_SERVICE_COLLECTION").
		StringVar(&a.KeyringConfig.LibSecretCollectionName)

	app.Flag("pass-dir", "Pass password store directory").
		Envar("OTP_VAULT_PASS_PASSWORD_STORE_DIR").
		StringVar(&a.KeyringConfig.PassDir)

	app.Flag("pass-cmd", "Name of the pass executable").
		Envar("OTP_VAULT_PASS_CMD").
		StringVar(&a.KeyringConfig.PassCmd)

	app.Flag("pass-prefix", "Prefix to prepend to the item path stored in pass").
		Envar("OTP_VAULT_PASS_PREFIX").
		StringVar(&a.KeyringConfig.PassPrefix)

	app.Flag("file-dir", "Directory for the \"file\" password store").
		Default("~/.otp-vault/keys/").
		Envar("OTP_VAULT_FILE_DIR").
		StringVar(&a.KeyringConfig.FileDir)

	app.PreAction(func(c *kingpin.ParseContext) error {
		if !a.Debug {
			log.SetOutput(io.Discard)
		}
		keyring.Debug = a.Debug
		log.Printf("otp-vault %s", app.Model().Version)
		return nil
	})

	return a
}

func fileKeyringPassphrasePrompt(prompt string) (string, error) {
	if password, ok := os.LookupEnv("OTP_VAULT_FILE_PASSPHRASE"); ok {
		return password, nil
	}

	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(b)), nil
}

// MustGetSecretNames is used for shell completion of secret names.
func (a *OtpVault) MustGetSecretNames() []string {
	store, err := a.SecretStore()
	if err != nil {
		log.Fatalf("Error opening keyring: %s", err.Error())
	}
	names, err := store.Keys()
	if err != nil {
		log.Fatalf("Error listing secrets: %s", err.Error())
	}
	return names
}
