package cli

import (
	"fmt"

	"github.com/99designs/otp-vault/vault"
	"github.com/alecthomas/kingpin"
)

type AddCommandInput struct {
	Name   string
	Secret string
	URI    string
	Digits int
	Period int
}

func ConfigureAddCommand(app *kingpin.Application, a *OtpVault) {
	input := AddCommandInput{}

	cmd := app.Command("add", "Add a TOTP secret to the secure keystore, prompts if none provided")

	cmd.Arg("name", "Name of the secret").
		Required().
		StringVar(&input.Name)

	cmd.Arg("secret", "Base32 encoded secret").
		StringVar(&input.Secret)

	cmd.Flag("uri", "Import an otpauth://totp/ key URI, as encoded in provisioning QR codes").
		StringVar(&input.URI)

	cmd.Flag("digits", "Number of digits in generated codes").
		IntVar(&input.Digits)

	cmd.Flag("period", "Seconds each code stays valid").
		IntVar(&input.Period)

	cmd.Action(func(c *kingpin.ParseContext) (err error) {
		store, err := a.SecretStore()
		if err != nil {
			return err
		}
		config, err := a.Config()
		if err != nil {
			return err
		}
		if input.Secret == "" && input.URI == "" {
			p, err := a.Prompt()
			if err != nil {
				return err
			}
			input.Secret, err = p(fmt.Sprintf("Enter Base32 secret for %q: ", input.Name))
			if err != nil {
				return err
			}
		}
		err = AddCommand(input, config, store)
		app.FatalIfError(err, "add")
		return nil
	})
}

func AddCommand(input AddCommandInput, config *vault.Config, store vault.SecretStore) error {
	var entry vault.SecretEntry
	var err error

	if input.URI != "" {
		if input.Secret != "" {
			return fmt.Errorf("a secret and --uri can't be given together")
		}
		entry, err = vault.NewSecretEntryFromURL(input.Name, input.URI)
	} else {
		entry, err = vault.NewSecretEntry(input.Name, input.Secret)
		if err == nil {
			entry.Digits = config.Digits
			entry.Period = config.Period
		}
	}
	if err != nil {
		return err
	}

	if input.Digits != 0 {
		entry.Digits = input.Digits
	}
	if input.Period != 0 {
		entry.Period = input.Period
	}

	if err = store.Add(entry); err != nil {
		return err
	}

	fmt.Printf("Added secret %q to vault\n", entry.Name)
	return nil
}
