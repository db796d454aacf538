package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/99designs/otp-vault/vault"
	"github.com/alecthomas/kingpin"
	"github.com/fatih/color"
)

// codes about to expire are highlighted
const expiringSoon = 5

type GenerateCommandInput struct {
	Name    string
	NoColor bool
}

func ConfigureGenerateCommand(app *kingpin.Application, a *OtpVault) {
	input := GenerateCommandInput{}

	cmd := app.Command("generate", "Generate the current TOTP codes of stored secrets")
	cmd.Alias("gen")

	cmd.Arg("name", "Name of a secret, all secrets when omitted").
		HintAction(a.MustGetSecretNames).
		StringVar(&input.Name)

	cmd.Flag("no-color", "Disable colored output").
		BoolVar(&input.NoColor)

	cmd.Action(func(c *kingpin.ParseContext) error {
		store, err := a.SecretStore()
		if err != nil {
			return err
		}
		err = GenerateCommand(input, store, a.Clock)
		app.FatalIfError(err, "generate")
		return nil
	})
}

func GenerateCommand(input GenerateCommandInput, store vault.SecretStore, clock vault.Clock) error {
	if input.NoColor {
		color.NoColor = true
	}

	if input.Name != "" {
		gc, err := vault.GenerateOne(store, input.Name, clock)
		if err != nil {
			return err
		}
		fmt.Println(gc.Code)
		return nil
	}

	codes, err := vault.GenerateAll(store, clock)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		fmt.Println("No secrets found, use 'otp-vault add' to add one")
		return nil
	}

	codeColor := color.New(color.FgGreen, color.Bold)
	expiringColor := color.New(color.FgYellow)
	errorColor := color.New(color.FgRed)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	failed := 0
	for _, gc := range codes {
		if gc.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\t%s\n", gc.Name, errorColor.Sprintf("error: %v", gc.Err))
			continue
		}

		validity := fmt.Sprintf("(Validity: %ds)", gc.SecondsRemaining)
		if gc.SecondsRemaining <= expiringSoon {
			validity = expiringColor.Sprint(validity)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", gc.Name, codeColor.Sprint(gc.Code), validity)
	}

	if err = w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d secrets failed to generate a code", failed, len(codes))
	}
	return nil
}
