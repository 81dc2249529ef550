// Package appcfg registers the units that write the generated
// application's configuration modules, logger manager, dependency
// injection helpers, and the FastAPI entry point.
package appcfg

import (
	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the application configuration units to the registry.
func Register(reg *orchestrator.Registry) {
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-base",
		Category:    "app",
		Priority:    20,
		Description: "Write the pydantic-settings base class with env file loading",
		Generate:    generateConfigBase,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-app",
		Category:    "app",
		Priority:    21,
		Requires:    []string{"config-base"},
		Description: "Write the application metadata settings module",
		Generate:    generateConfigApp,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-logger",
		Category:    "app",
		Priority:    22,
		Requires:    []string{"config-base"},
		Description: "Write the logging settings module",
		Generate:    generateConfigLogger,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "logger-manager",
		Category:    "app",
		Priority:    23,
		Requires:    []string{"config-settings"},
		Description: "Write the loguru-based logger manager",
		Generate:    generateLoggerManager,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-cors",
		Category:    "app",
		Priority:    24,
		Requires:    []string{"config-base"},
		EnabledWhen: func(cfg *config.Config) bool { return cfg.HasCORS() },
		Description: "Write the CORS settings module",
		Generate:    generateConfigCors,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-database",
		Category:    "app",
		Priority:    25,
		Requires:    []string{"config-base"},
		EnabledWhen: func(cfg *config.Config) bool { return cfg.HasDatabase() },
		Description: "Write the database settings module",
		Generate:    generateConfigDatabase,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-jwt",
		Category:    "app",
		Priority:    26,
		Requires:    []string{"config-base"},
		EnabledWhen: func(cfg *config.Config) bool { return cfg.HasAuth() },
		Description: "Write the JWT settings module",
		Generate:    generateConfigJwt,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-email",
		Category:    "app",
		Priority:    27,
		EnabledWhen: func(cfg *config.Config) bool { return cfg.HasCompleteAuth() },
		Description: "Write the SMTP settings module",
		Generate:    generateConfigEmail,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "config-settings",
		Category:    "app",
		Priority:    28,
		Requires:    []string{"config-app", "config-logger"},
		Description: "Write the aggregated settings facade",
		Generate:    generateConfigSettings,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "core-deps",
		Category:    "app",
		Priority:    29,
		EnabledWhen: func(cfg *config.Config) bool { return cfg.HasAuth() },
		Description: "Write the FastAPI dependency injection helpers",
		Generate:    generateCoreDeps,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "app-main",
		Category:    "app",
		Priority:    90,
		Requires:    []string{"config-settings", "logger-manager"},
		Description: "Write the FastAPI application entry point",
		Generate:    generateAppMain,
	})
}
