package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/generators"
	"github.com/ning3739/forge/internal/orchestrator"
	"github.com/ning3739/forge/internal/ui"
	"github.com/ning3739/forge/internal/version"
	"github.com/ning3739/forge/internal/wizard"
)

// initFlags holds the configuration overrides accepted by "forge init".
type initFlags struct {
	noInteractive bool
	database      string
	orm           string
	noMigrations  bool
	auth          string
	cors          bool
	devTools      bool
	testing       bool
	docker        bool
}

// newInitCommand creates the "init" command that scaffolds a new project.
func newInitCommand(opts *Options) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init [project-name]",
		Short: "Initialize a new FastAPI project",
		Long:  "Initialize a new FastAPI project, either through the interactive setup wizard or non-interactively with defaults. Flags override the collected configuration in both modes.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()

			baseDir, err := resolveProjectDir(opts)
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			fmt.Fprintln(out, ui.Banner(version.Version))

			var cfg *config.Config
			if flags.noInteractive || opts.NoInput {
				cfg = config.Default(name)
			} else {
				wiz, err := wizard.Run(baseDir, name)
				if err != nil {
					return err
				}
				if wiz.Cancelled() || !wiz.Done() {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
				cfg = wiz.Config()
			}

			if err := applyOverrides(cmd, flags, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			projectPath := filepath.Join(baseDir, cfg.ProjectName)
			if err := config.Save(projectPath, cfg); err != nil {
				return err
			}
			logger.Debug("configuration saved", "path", config.FilePath(projectPath))

			report, err := runGeneration(cmd.Context(), logger, projectPath, cfg, orchestrator.Options{})
			if err != nil {
				return err
			}
			logger.Info("project generated", "project", cfg.ProjectName, "units", len(report.Completed))

			fmt.Fprintln(out, ui.Summary(cfg))
			if cfg.HasCompleteAuth() {
				fmt.Fprintln(out)
				fmt.Fprintln(out, ui.EmailWarning())
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.NextSteps(cfg, projectPath))

			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.noInteractive, "no-interactive", false, "Skip the wizard and use the default configuration")
	cmd.Flags().StringVar(&flags.database, "database", "", "Database engine (PostgreSQL, MySQL, or none)")
	cmd.Flags().StringVar(&flags.orm, "orm", "", "ORM layer (SQLModel or SQLAlchemy)")
	cmd.Flags().BoolVar(&flags.noMigrations, "no-migrations", false, "Disable Alembic migrations")
	cmd.Flags().StringVar(&flags.auth, "auth", "", "Authentication level (none, basic, or complete)")
	cmd.Flags().BoolVar(&flags.cors, "cors", true, "Enable the CORS middleware")
	cmd.Flags().BoolVar(&flags.devTools, "dev-tools", true, "Include Black and Ruff configuration")
	cmd.Flags().BoolVar(&flags.testing, "testing", true, "Include the pytest test suite")
	cmd.Flags().BoolVar(&flags.docker, "docker", true, "Include Docker configuration")

	return cmd
}

// applyOverrides folds changed init flags into the collected configuration.
func applyOverrides(cmd *cobra.Command, flags *initFlags, cfg *config.Config) error {
	fs := cmd.Flags()

	if fs.Changed("database") {
		switch strings.ToLower(strings.TrimSpace(flags.database)) {
		case "postgresql", "postgres":
			ensureDatabase(cfg).Type = config.DatabasePostgreSQL
		case "mysql":
			ensureDatabase(cfg).Type = config.DatabaseMySQL
		case "none", "":
			cfg.Database = nil
			cfg.Features.Auth = config.AuthConfig{Type: config.AuthNone, Features: []string{}}
		default:
			return fmt.Errorf("unknown database %q (expected PostgreSQL, MySQL, or none)", flags.database)
		}
	}

	if fs.Changed("orm") {
		switch strings.ToLower(strings.TrimSpace(flags.orm)) {
		case "sqlmodel":
			ensureDatabase(cfg).ORM = config.ORMSQLModel
		case "sqlalchemy":
			ensureDatabase(cfg).ORM = config.ORMSQLAlchemy
		default:
			return fmt.Errorf("unknown orm %q (expected SQLModel or SQLAlchemy)", flags.orm)
		}
	}

	if flags.noMigrations && cfg.Database != nil {
		cfg.Database.MigrationTool = ""
	}

	if fs.Changed("auth") {
		switch strings.ToLower(strings.TrimSpace(flags.auth)) {
		case config.AuthNone:
			cfg.Features.Auth = config.AuthConfig{Type: config.AuthNone, Features: []string{}}
		case config.AuthBasic:
			cfg.Features.Auth = config.AuthConfig{Type: config.AuthBasic, Features: []string{}}
		case config.AuthComplete:
			cfg.Features.Auth = config.AuthConfig{
				Type:         config.AuthComplete,
				RefreshToken: true,
				Features:     append([]string(nil), config.CompleteAuthFeatures...),
			}
		default:
			return fmt.Errorf("unknown auth level %q (expected none, basic, or complete)", flags.auth)
		}
	}

	if fs.Changed("cors") {
		cfg.Features.CORS = flags.cors
	}
	if fs.Changed("dev-tools") {
		cfg.Features.DevTools = flags.devTools
	}
	if fs.Changed("testing") {
		cfg.Features.Testing = flags.testing
	}
	if fs.Changed("docker") {
		cfg.Features.Docker = flags.docker
	}

	return nil
}

// ensureDatabase returns the config's database layer, adding the default
// one first when the collected configuration had none.
func ensureDatabase(cfg *config.Config) *config.DatabaseConfig {
	if cfg.Database == nil {
		cfg.Database = &config.DatabaseConfig{
			Type:          config.DatabasePostgreSQL,
			ORM:           config.ORMSQLAlchemy,
			MigrationTool: config.MigrationAlembic,
		}
	}
	return cfg.Database
}

// runGeneration runs the registered generator units against the project tree.
func runGeneration(ctx context.Context, logger *slog.Logger, projectPath string, cfg *config.Config, opts orchestrator.Options) (*orchestrator.Report, error) {
	reg := orchestrator.NewRegistry()
	generators.RegisterBuiltins(reg)

	tree := fsutil.NewTree(projectPath)
	return orchestrator.New(reg, logger).Run(ctx, tree, cfg, opts)
}
