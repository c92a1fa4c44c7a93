package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	siteerrors "github.com/crabby-lang/website/internal/errors"
	"github.com/crabby-lang/website/internal/features"
	"github.com/crabby-lang/website/internal/richtext"
)

func newFeaturesCmd(a *app) *cobra.Command {
	featuresCmd := &cobra.Command{
		Use:     "features",
		Aliases: []string{"f"},
		Short:   "Inspect the homepage feature list",
	}
	addFeaturesFlag(featuresCmd.PersistentFlags())

	featuresCmd.AddCommand(newFeaturesListCmd(a), newFeaturesValidateCmd(a))
	return featuresCmd
}

func newFeaturesListCmd(a *app) *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the feature descriptors in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := features.LoadOrDefault(a.cfg.Site.FeaturesFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(list)
			case "text":
				if len(list) == 0 {
					fmt.Fprintln(out, "No features.")
					return nil
				}
				for i, d := range list {
					fmt.Fprintf(out, "%d. %s [%s]\n", i+1, d.Title, d.Icon)
					fmt.Fprintf(out, "   %s\n", strings.TrimSpace(richtext.Text(d.Description)))
				}
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
			}
		},
	}

	listCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return listCmd
}

func newFeaturesValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check titles, descriptions and icon references",
		Long: `Check every descriptor for an empty title, an empty description, or an
icon reference that does not resolve. All problems are reported; the
command exits non-zero if there is any.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := features.LoadOrDefault(a.cfg.Site.FeaturesFile)
			if err != nil {
				return err
			}

			if err := list.Validate(a.iconLoader()); err != nil {
				problems := unjoin(err)
				for _, p := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s: %v\n", problemKind(p), p)
				}
				return fmt.Errorf("%d problem(s) in %d feature(s)", len(problems), len(list))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d feature(s) OK\n", len(list))
			return nil
		},
	}
}

func problemKind(err error) string {
	switch {
	case siteerrors.IsAssetError(err):
		return "icon"
	case siteerrors.IsValidationError(err):
		return "content"
	default:
		return "other"
	}
}

// unjoin splits an errors.Join result back into its parts.
func unjoin(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
