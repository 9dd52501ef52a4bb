package config

import (
	"flag"
	"os"

	"github.com/faithguard/faithguard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   SQLite DSN for the local store
//	-s string   admin token HMAC secret key
//	-k string   push provider API key
//	-p string   push provider project id
//	-n string   push provider sender id
//	-a string   push provider app id
//	-v string   push provider VAPID key
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-k", "-p", "-n", "-a", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AdminSecretKey, "s", config.AdminSecretKey, "admin token secret key")
	fs.StringVar(&config.Push.APIKey, "k", config.Push.APIKey, "push provider API key")
	fs.StringVar(&config.Push.ProjectID, "p", config.Push.ProjectID, "push provider project id")
	fs.StringVar(&config.Push.SenderID, "n", config.Push.SenderID, "push provider sender id")
	fs.StringVar(&config.Push.AppID, "a", config.Push.AppID, "push provider app id")
	fs.StringVar(&config.Push.VAPIDKey, "v", config.Push.VAPIDKey, "push provider VAPID key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
