package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nulldns/subdns-portal/internal/config"
)

// maskedSession replaces a configured session in the dump.
const maskedSession = "********"

var (
	configJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults and the JSON override are applied.
A configured backend session is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg
			if c.Backend.Session != "" {
				c.Backend.Session = maskedSession
			}

			dump := config.DumpConfig
			if configJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&c)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Print JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}
