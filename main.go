package main

import (
	"os"

	"github.com/99designs/otp-vault/cli"
	"github.com/alecthomas/kingpin"
)

// Version is provided at compile time
var Version = "dev"

func main() {
	app := kingpin.New("otp-vault", "A vault for securely storing TOTP secrets and generating one-time passwords from them.")
	app.Version(Version)

	a := cli.ConfigureGlobals(app)
	cli.ConfigureAddCommand(app, a)
	cli.ConfigureListCommand(app, a)
	cli.ConfigureGenerateCommand(app, a)
	cli.ConfigureRemoveCommand(app, a)
	cli.ConfigureCompletionCommand(app)

	kingpin.MustParse(app.Parse(os.Args[1:]))
}
