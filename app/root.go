// Package app implements the main application commands.
package app

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nulldns/subdns-portal/internal/config"
	"github.com/nulldns/subdns-portal/internal/logger"
)

const (
	// EnvPrefix prefixes the environment variables bound by viper,
	// e.g. SUBDNS_SESSION and SUBDNS_CONFIG.
	EnvPrefix = "SUBDNS"

	keyConfig  = "config"
	keySession = "session"
)

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "subdns-portal",
		Short: "subdns-portal is the self-service portal of the subdns dynamic DNS",
		Long: `subdns-portal lets users search free subdomains below the managed zones,
register A, AAAA, CNAME and TXT records and renew the domains they own.
It serves a web portal and offers the same operations on the command line.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}
)

func init() { //nolint: gochecknoinits
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String(keyConfig, "./etc/", "Directory holding main.toml")
	flags.String(keySession, "", "Backend session cookie value used by the CLI commands")

	_ = viper.BindPFlag(keyConfig, flags.Lookup(keyConfig))
	_ = viper.BindPFlag(keySession, flags.Lookup(keySession))
}

// loadConfig reads the configuration and initializes the logger before any command.
func loadConfig(_ *cobra.Command, _ []string) error {
	path := viper.GetString(keyConfig)
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	var err error
	if cfg, err = config.ReadConfig(path); err != nil {
		return err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "init logger")
	}

	return nil
}

// session returns the backend session of the CLI: flag or SUBDNS_SESSION
// first, the configured one otherwise.
func session() string {
	if s := viper.GetString(keySession); s != "" {
		return s
	}

	return cfg.Backend.Session
}

// Execute runs the root command and prints errors no notice explained yet.
func Execute() error {
	err := rootCmd.Execute()

	var shown reportedError
	if err != nil && !errors.As(err, &shown) {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}

	return err
}
