package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/orchestrator"
)

// newDockerCommand creates the "docker" command that regenerates Docker
// configuration files for an existing project.
func newDockerCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docker [path]",
		Short: "Regenerate Docker configuration for an existing project",
		Long:  "Regenerate the Dockerfile, docker-compose.yml, and .dockerignore of an existing project from its saved configuration.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()

			projectPath, err := resolveProjectDir(opts)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				projectPath = args[0]
			}

			cfg, err := config.Load(projectPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cfg.HasDocker() {
				return fmt.Errorf("docker is not enabled for this project: set \"docker\": true in %s", config.FilePath(projectPath))
			}

			fmt.Fprintln(out, "Generating Docker configuration files...")
			fmt.Fprintln(out)

			runOpts := orchestrator.Options{OnlyCategories: []string{"deployment"}, RelaxedRequires: true}
			report, err := runGeneration(cmd.Context(), logger, projectPath, cfg, runOpts)
			if err != nil {
				return err
			}
			for _, unit := range report.Completed {
				fmt.Fprintf(out, "  ✓ %s\n", unit)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Docker configuration generated successfully!")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Usage:")
			fmt.Fprintln(out, "  docker compose up -d      # start services")
			fmt.Fprintln(out, "  docker compose logs -f    # follow logs")
			fmt.Fprintln(out, "  docker compose down       # stop services")

			return nil
		},
	}

	return cmd
}
