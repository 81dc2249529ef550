// Package generators wires every generator unit into a registry.
package generators

import (
	"github.com/ning3739/forge/internal/generators/appcfg"
	"github.com/ning3739/forge/internal/generators/auth"
	"github.com/ning3739/forge/internal/generators/configs"
	"github.com/ning3739/forge/internal/generators/database"
	"github.com/ning3739/forge/internal/generators/deployment"
	"github.com/ning3739/forge/internal/generators/email"
	"github.com/ning3739/forge/internal/generators/migration"
	"github.com/ning3739/forge/internal/generators/structure"
	"github.com/ning3739/forge/internal/generators/testsuite"
	"github.com/ning3739/forge/internal/orchestrator"
)

// RegisterBuiltins adds every built-in unit to the registry. The
// orchestrator freezes the registry when it runs.
func RegisterBuiltins(reg *orchestrator.Registry) {
	structure.Register(reg)
	configs.Register(reg)
	appcfg.Register(reg)
	database.Register(reg)
	auth.Register(reg)
	email.Register(reg)
	migration.Register(reg)
	deployment.Register(reg)
	testsuite.Register(reg)
}
