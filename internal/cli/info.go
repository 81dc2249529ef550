package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ning3739/forge/internal/stats"
	"github.com/ning3739/forge/internal/ui"
	"github.com/ning3739/forge/internal/version"
)

// pypiPackage is the published package name whose download count the info
// panel shows.
const pypiPackage = "forge-fastapi-cli"

// newInfoCommand creates the "info" command that shows release information.
func newInfoCommand(_ *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show forge release information",
		Long:  "Show the forge version, author, license, and documentation links together with the package's download count from pypistats.org.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			downloads := "N/A"
			client := stats.NewClient(version.Version)
			count, err := client.Downloads(cmd.Context(), pypiPackage)
			if err != nil {
				// Shown as N/A; an unreachable stats API never fails the command.
				logger.Debug("download stats unavailable", "error", err)
			} else {
				downloads = stats.FormatCount(count)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Info(version.Version, downloads))
			return nil
		},
	}

	return cmd
}
