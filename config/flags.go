package config

import (
	"github.com/spf13/pflag"
)

// NewFlagSet declares the command line of the updater. Each credential can be
// given inline or as a file, never both.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.StringP("domain", "d", "", "DNS record (and zone) name to update")
	fs.StringP("domain-file", "D", "", "path to a file holding the domain")
	fs.StringP("email", "e", "", "Cloudflare account email")
	fs.StringP("email-file", "E", "", "path to a file holding the account email")
	fs.StringP("token", "t", "", "Cloudflare API token")
	fs.StringP("token-file", "T", "", "path to a file holding the API token")

	fs.StringP("config", "c", "", "path to a config file")
	fs.String("log-level", "", "log level (trace, debug, info, warn, error)")
	fs.Int("interval", 0, "seconds between runs, 0 runs once and exits")
	fs.Bool("verify", false, "verify the API token before updating")
	fs.BoolP("version", "v", false, "show version")

	return fs
}
