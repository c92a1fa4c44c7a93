package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crabby-lang/website/internal/version"
)

func newVersionCmd() *cobra.Command {
	var (
		format string
		short  bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for crabbysite: version, git commit,
build time, Go version and target platform.

Examples:
  crabbysite version                # Detailed version info
  crabbysite version --short        # Version only
  crabbysite version --format json  # Output as JSON`,
		Args: cobra.NoArgs,
		// Version output does not depend on configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			case "text":
				if short {
					fmt.Fprintln(out, info.Short())
					return nil
				}
				fmt.Fprintln(out, "crabbysite")
				fmt.Fprintln(out, info.Detailed())
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
			}
		},
	}

	versionCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	versionCmd.Flags().BoolVar(&short, "short", false, "show short version only")
	return versionCmd
}
