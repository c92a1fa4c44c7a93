package cmd

import (
	"bytes"

	"github.com/a-h/templ"
	"github.com/spf13/cobra"

	"github.com/crabby-lang/website/internal/components"
	"github.com/crabby-lang/website/internal/features"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		page   bool
		output string
	)

	renderCmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Render the features section as HTML",
		Long: `Render the homepage features section and print the HTML.

Examples:
  crabbysite render                          # Section fragment to stdout
  crabbysite render --page -o index.html     # Standalone preview page
  crabbysite render --features features.yml  # Render another feature list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := features.LoadOrDefault(a.cfg.Site.FeaturesFile)
			if err != nil {
				return err
			}

			r := a.renderer()
			var component templ.Component
			if page {
				component = r.Homepage(components.PageOptions{
					Title:   a.cfg.Site.Title,
					Tagline: a.cfg.Site.Tagline,
				}, list)
			} else {
				component = r.Section(list)
			}

			// Render fully before touching the output so a failure leaves
			// no partial file behind.
			var buf bytes.Buffer
			if err := component.Render(cmd.Context(), &buf); err != nil {
				return err
			}
			buf.WriteByte('\n')

			out, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			if _, err := buf.WriteTo(out); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			a.logger.Debug(cmd.Context(), "Rendered features", "count", len(list), "page", page)
			return nil
		},
	}

	renderCmd.Flags().BoolVar(&page, "page", false, "render a full HTML document instead of the section fragment")
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	addFeaturesFlag(renderCmd.Flags())

	return renderCmd
}
