package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds state shared by every subcommand. Each invocation gets its own
// viper instance so flags, FLOATUI_* variables and floatui.toml resolve
// without touching package globals.
type cli struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	c := &cli{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "floatui",
		Short: "Position floating elements and explore their interactions",
		Long: `floatui drives the floating element engine from the command line.

Configuration is read from ./floatui.toml (or --config), then FLOATUI_*
environment variables, then flags. Set FLOATUI_DEBUG to a file path to
write the engine's debug log there.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.initializeConfig(); err != nil {
				return err
			}
			level := log.InfoLevel
			if c.v.GetBool("verbose") {
				level = log.DebugLevel
			}
			logger := newLogger(stderr, level)
			if used := c.v.ConfigFileUsed(); used != "" {
				logger.Debug("loaded config", "file", used)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}
	cmd.SetVersionTemplate("floatui version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default ./floatui.toml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	_ = c.v.BindPFlag("verbose", flags.Lookup("verbose"))

	cmd.AddCommand(c.newPlaceCmd(), c.newDemoCmd(), newVersionCmd())
	return cmd
}

// initializeConfig loads floatui.toml and wires environment variables. A
// missing default config file is fine; a missing --config file is not.
func (c *cli) initializeConfig() error {
	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
	} else {
		c.v.AddConfigPath(".")
		c.v.SetConfigName("floatui")
		c.v.SetConfigType("toml")
	}

	c.v.SetEnvPrefix("FLOATUI")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}
