package cli

import (
	"time"

	"github.com/99designs/keyring"
	"github.com/99designs/otp-vault/vault"
	"github.com/alecthomas/kingpin"
)

// GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ is the RFC 6238 test key
var testItems = []keyring.Item{
	{Key: "github", Data: []byte(`{"Secret":"JBSWY3DPEHPK3PXP","Algorithm":"SHA1","Digits":6,"Period":30,"AddedAt":"2024-01-01T00:00:00Z"}`)},
	{Key: "work", Data: []byte(`{"Secret":"GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ","Algorithm":"SHA1","Digits":8,"Period":60,"Issuer":"ACME","AddedAt":"2024-01-02T00:00:00Z"}`)},
}

func newTestApp(items []keyring.Item) (*kingpin.Application, *OtpVault) {
	app := kingpin.New("otp-vault", "")
	otpVault := ConfigureGlobals(app)
	otpVault.keyringImpl = keyring.NewArrayKeyring(items)
	otpVault.config = vault.DefaultConfig()
	otpVault.Clock = func() time.Time { return time.Unix(59, 0) }
	return app, otpVault
}
