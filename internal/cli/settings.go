package cli

import (
	"github.com/spf13/cobra"

	"github.com/warnet/warcli/pkg/config"
	"github.com/warnet/warcli/pkg/errors"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect warcli settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigShow(cmd)
		},
	})
	return cmd
}

func (c *CLI) runConfigShow(cmd *cobra.Command) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	source := c.configPath
	if source == "" {
		if source, err = config.Path(); err != nil {
			source = "(defaults)"
		}
	}
	printKeyValue(cmd.ErrOrStderr(), "source", source)

	data, err := cfg.Encode()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding settings")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
