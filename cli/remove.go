package cli

import (
	"fmt"
	"strings"

	"github.com/99designs/otp-vault/prompt"
	"github.com/99designs/otp-vault/vault"
	"github.com/alecthomas/kingpin"
)

type RemoveCommandInput struct {
	Name  string
	Force bool
}

func ConfigureRemoveCommand(app *kingpin.Application, a *OtpVault) {
	input := RemoveCommandInput{}

	cmd := app.Command("remove", "Remove a secret from the secure keystore.")
	cmd.Alias("rm")
	cmd.Alias("del")

	cmd.Arg("name", "Name of the secret").
		Required().
		HintAction(a.MustGetSecretNames).
		StringVar(&input.Name)

	cmd.Flag("force", "Force-remove the secret without a prompt").
		Short('f').
		BoolVar(&input.Force)

	cmd.Action(func(c *kingpin.ParseContext) error {
		store, err := a.SecretStore()
		if err != nil {
			return err
		}
		err = RemoveCommand(input, store)
		app.FatalIfError(err, "remove")
		return nil
	})
}

func RemoveCommand(input RemoveCommandInput, store vault.SecretStore) error {
	if !input.Force {
		r, err := prompt.TerminalPrompt(fmt.Sprintf("Delete secret %q? (y|N) ", input.Name))
		if err != nil {
			return err
		}

		if !strings.EqualFold(r, "y") && !strings.EqualFold(r, "yes") {
			return nil
		}
	}

	if err := store.Remove(input.Name); err != nil {
		return err
	}
	fmt.Printf("Deleted secret %q.\n", input.Name)

	return nil
}
