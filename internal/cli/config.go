package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdscan/pkg/config"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Resolve configuration from defaults, config files, MDSCAN_* environment
variables, and global flags, then print the result as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := contextWithLogger(cmd)

			loaded, err := loadConfig(ctx, global, &config.Config{})
			if err != nil {
				return err
			}

			header := []string{"# mdscan effective configuration"}
			if len(loaded.LoadedFrom) == 0 {
				header = append(header, "# sources: defaults")
			}
			for _, path := range loaded.LoadedFrom {
				header = append(header, "# source: "+path)
			}

			out, err := loaded.Config.ToYAMLWithHeader(strings.Join(header, "\n"))
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
