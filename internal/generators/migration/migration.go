// Package migration registers the unit that scaffolds Alembic for
// generated projects: alembic.ini, the async migration environment,
// the revision template, and an empty versions directory.
package migration

import (
	"context"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the migration unit to the registry.
func Register(reg *orchestrator.Registry) {
	reg.MustRegister(orchestrator.Unit{
		Name:        "alembic",
		Category:    "migration",
		Priority:    95,
		Requires:    []string{"db-connection"},
		EnabledWhen: func(cfg *config.Config) bool { return cfg.HasMigration() },
		Description: "Scaffold Alembic migrations",
		Generate:    generateAlembic,
	})
}

func generateAlembic(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	// A project that already carries migrations keeps them untouched.
	if tree.Exists("alembic/env.py") {
		return nil
	}

	if err := tree.WriteString("alembic.ini", alembicIni); err != nil {
		return err
	}
	if err := writeEnvPy(tree, cfg); err != nil {
		return err
	}
	if err := tree.WriteString("alembic/script.py.mako", scriptMako(cfg)); err != nil {
		return err
	}
	if err := tree.WriteString("alembic/README.md", alembicReadme); err != nil {
		return err
	}
	return tree.WriteString("alembic/versions/.gitkeep", "")
}

// Double percent signs survive configparser interpolation.
const alembicIni = `[alembic]
script_location = alembic
file_template = %%(rev)s_%%(slug)s
prepend_sys_path = .
timezone = UTC

[loggers]
keys = root,sqlalchemy,alembic

[handlers]
keys = console

[formatters]
keys = generic

[logger_root]
level = WARN
handlers = console
qualname =

[logger_sqlalchemy]
level = WARN
handlers =
qualname = sqlalchemy.engine

[logger_alembic]
level = INFO
handlers =
qualname = alembic

[handler_console]
class = StreamHandler
args = (sys.stderr,)
level = NOTSET
formatter = generic

[formatter_generic]
format = %%(levelname)-5.5s [%%(name)s] %%(message)s
datefmt = %%H:%%M:%%S
`

func writeEnvPy(tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"import asyncio",
		"import os",
		"from logging.config import fileConfig",
		"from pathlib import Path",
		"from alembic import context",
		"from dotenv import load_dotenv",
		"from sqlalchemy import pool",
		"from sqlalchemy.engine import Connection",
		"from sqlalchemy.ext.asyncio import async_engine_from_config",
	}

	metadata := "Base.metadata"
	if cfg.ORMType() == config.ORMSQLModel {
		imports = append(imports, "from sqlmodel import SQLModel")
		metadata = "SQLModel.metadata"
	} else {
		imports = append(imports, "from app.core.database import Base")
	}

	// Model imports register the tables on the metadata object.
	if cfg.HasAuth() {
		imports = append(imports, "from app.models.user import User  # noqa: F401")
		if cfg.HasCompleteAuth() {
			if cfg.HasRefreshToken() {
				imports = append(imports,
					"from app.models.token import RefreshToken, VerificationCode  # noqa: F401")
			} else {
				imports = append(imports,
					"from app.models.token import VerificationCode  # noqa: F401")
			}
		}
	}

	asyncDriver := "postgresql+asyncpg://"
	scheme := "postgresql://"
	if cfg.DatabaseType() == config.DatabaseMySQL {
		asyncDriver = "mysql+aiomysql://"
		scheme = "mysql://"
	}

	var b strings.Builder
	b.WriteString(`load_dotenv(
    Path(__file__).resolve().parent.parent / "secret" / ".env.development"
)

config = context.config

if config.config_file_name is not None:
    fileConfig(config.config_file_name)

target_metadata = ` + metadata + `


def get_url() -> str:
    """Read DATABASE_URL and force the async driver."""
    url = os.getenv("DATABASE_URL", "")
    if url.startswith("` + scheme + `"):
        return url.replace("` + scheme + `", "` + asyncDriver + `", 1)
    return url


def run_migrations_offline() -> None:
    """Run migrations without a live database connection."""
    context.configure(
        url=get_url(),
        target_metadata=target_metadata,
        literal_binds=True,
        dialect_opts={"paramstyle": "named"},
    )

    with context.begin_transaction():
        context.run_migrations()


def do_run_migrations(connection: Connection) -> None:
    context.configure(connection=connection, target_metadata=target_metadata)

    with context.begin_transaction():
        context.run_migrations()


async def run_async_migrations() -> None:
    configuration = config.get_section(config.config_ini_section, {})
    configuration["sqlalchemy.url"] = get_url()
    connectable = async_engine_from_config(
        configuration,
        prefix="sqlalchemy.",
        poolclass=pool.NullPool,
    )

    async with connectable.connect() as connection:
        await connection.run_sync(do_run_migrations)

    await connectable.dispose()


def run_migrations_online() -> None:
    """Run migrations against the configured database."""
    asyncio.run(run_async_migrations())


if context.is_offline_mode():
    run_migrations_offline()
else:
    run_migrations_online()
`)

	return tree.WritePython("alembic/env.py", "Alembic migration environment", imports, b.String())
}

func scriptMako(cfg *config.Config) string {
	extraImport := ""
	if cfg.ORMType() == config.ORMSQLModel {
		// Autogenerated revisions reference sqlmodel.sql.sqltypes.
		extraImport = "import sqlmodel\n"
	}

	return `"""${message}

Revision ID: ${up_revision}
Revises: ${down_revision | comma,n}
Create Date: ${create_date}

"""
from typing import Sequence, Union

from alembic import op
import sqlalchemy as sa
` + extraImport + `${imports if imports else ""}

# revision identifiers, used by Alembic.
revision: str = ${repr(up_revision)}
down_revision: Union[str, None] = ${repr(down_revision)}
branch_labels: Union[str, Sequence[str], None] = ${repr(branch_labels)}
depends_on: Union[str, Sequence[str], None] = ${repr(depends_on)}


def upgrade() -> None:
    ${upgrades if upgrades else "pass"}


def downgrade() -> None:
    ${downgrades if downgrades else "pass"}
`
}

const alembicReadme = `# Database migrations

Migrations are managed with [Alembic](https://alembic.sqlalchemy.org/).

Create a revision after changing the models:

    alembic revision --autogenerate -m "describe the change"

Apply pending revisions:

    alembic upgrade head

Roll back the last revision:

    alembic downgrade -1

The environment reads DATABASE_URL from secret/.env.development.
`
