package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/99designs/otp-vault/vault"
	"github.com/alecthomas/kingpin"
)

type ListCommandInput struct {
	OnlyNames bool
}

func ConfigureListCommand(app *kingpin.Application, a *OtpVault) {
	input := ListCommandInput{}

	cmd := app.Command("list", "List stored secrets, along with their code settings")
	cmd.Alias("ls")

	cmd.Flag("names", "Show only the secret names").
		BoolVar(&input.OnlyNames)

	cmd.Action(func(c *kingpin.ParseContext) (err error) {
		store, err := a.SecretStore()
		if err != nil {
			return err
		}
		err = ListCommand(input, store)
		app.FatalIfError(err, "list")
		return nil
	})
}

func ListCommand(input ListCommandInput, store vault.SecretStore) error {
	entries, err := store.List()
	if err != nil {
		return err
	}

	if input.OnlyNames {
		for _, e := range entries {
			fmt.Println(e.Name)
		}
		return nil
	}

	if len(entries) == 0 {
		return fmt.Errorf("No secrets found, use 'otp-vault add' to add one")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "Name\tDigits\tPeriod\tIssuer")
	fmt.Fprintln(w, "====\t======\t======\t======")

	for _, e := range entries {
		issuer := e.Issuer
		if issuer == "" {
			issuer = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%ds\t%s\n", e.Name, e.Digits, e.Period, issuer)
	}

	return w.Flush()
}
