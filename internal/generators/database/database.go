// Package database registers the units that write the generated
// application's database layer: the engine manager for the selected
// database, the connection facade, and the cookie-session dependency
// helpers.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the database units to the registry.
func Register(reg *orchestrator.Registry) {
	reg.MustRegister(orchestrator.Unit{
		Name:        "db-connection",
		Category:    "database",
		Priority:    30,
		EnabledWhen: func(cfg *config.Config) bool { return cfg.HasDatabase() },
		Description: "Write the database connection facade",
		Generate:    generateConnection,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:     "db-postgres",
		Category: "database",
		Priority: 31,
		EnabledWhen: func(cfg *config.Config) bool {
			return cfg.DatabaseType() == config.DatabasePostgreSQL
		},
		Description: "Write the PostgreSQL engine manager",
		Generate:    generatePostgres,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:     "db-mysql",
		Category: "database",
		Priority: 32,
		EnabledWhen: func(cfg *config.Config) bool {
			return cfg.DatabaseType() == config.DatabaseMySQL
		},
		Description: "Write the MySQL engine manager",
		Generate:    generateMySQL,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:     "db-deps",
		Category: "database",
		Priority: 33,
		Requires: []string{"db-connection"},
		EnabledWhen: func(cfg *config.Config) bool {
			return cfg.HasDatabase() && cfg.HasAuth()
		},
		Description: "Write the cookie-session dependency helpers",
		Generate:    generateDependencies,
	})
}

func generateConnection(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	module := strings.ToLower(cfg.DatabaseType())
	manager := module + "_manager"

	imports := []string{
		"from typing import Any, Optional",
		"from app.core.logger import logger_manager",
		fmt.Sprintf("from app.core.database.%s import %s", module, manager),
	}

	body := fmt.Sprintf(`logger = logger_manager.get_logger(__name__)


class DatabaseConnectionManager:
    """Single entry point for every configured database engine."""

    def __init__(self):
        self.%s = %s

    async def initialize(self) -> None:
        """Initialize all database connections."""
        await self.%s.initialize()

    async def test_connections(self) -> bool:
        """Test all database connections."""
        try:
            await self.%s.test_connection()
            logger.info("All database connections tested successfully")
            return True
        except Exception as e:
            logger.error(f"Connection test failed: {e}")
            raise

    async def close(self) -> None:
        """Close all database connections."""
        await self.%s.close()

    async def __aenter__(self) -> "DatabaseConnectionManager":
        await self.initialize()
        return self

    async def __aexit__(
        self,
        exc_type: Optional[type],
        exc_value: Optional[Exception],
        traceback: Optional[Any],
    ) -> None:
        if exc_type is not None:
            logger.error(
                f"Exception occurred in DatabaseConnectionManager context: "
                f"{exc_type.__name__}: {exc_value}"
            )
        await self.close()
        # Returning False lets the exception propagate.
        return False


db_manager = DatabaseConnectionManager()
`, module+"_manager", manager, module+"_manager", module+"_manager", module+"_manager")

	return tree.WritePython("app/core/database/connection.py", "Database connection facade", imports, body)
}

// engineSpec parametrizes the per-database manager template.
type engineSpec struct {
	class       string // Python manager class name
	singleton   string // module-level instance name
	rel         string // output path under the project
	docstring   string
	scheme      string // plain URL scheme, e.g. "postgresql://"
	asyncDriver string // e.g. "postgresql+asyncpg://"
	syncDriver  string // e.g. "postgresql+psycopg2://"
	display     string // log label, e.g. "PostgreSQL"
}

func generatePostgres(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	return generateManager(tree, engineSpec{
		class:       "PostgreSQLManager",
		singleton:   "postgresql_manager",
		rel:         "app/core/database/postgresql.py",
		docstring:   "PostgreSQL connection manager",
		scheme:      "postgresql://",
		asyncDriver: "postgresql+asyncpg://",
		syncDriver:  "postgresql+psycopg2://",
		display:     "PostgreSQL",
	})
}

func generateMySQL(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	return generateManager(tree, engineSpec{
		class:       "MySQLManager",
		singleton:   "mysql_manager",
		rel:         "app/core/database/mysql.py",
		docstring:   "MySQL connection manager",
		scheme:      "mysql://",
		asyncDriver: "mysql+aiomysql://",
		syncDriver:  "mysql+pymysql://",
		display:     "MySQL",
	})
}

func generateManager(tree *fsutil.Tree, spec engineSpec) error {
	imports := []string{
		"from collections.abc import AsyncGenerator",
		"from typing import Optional",
		"from sqlalchemy.ext.asyncio import AsyncEngine, AsyncSession, async_sessionmaker, create_async_engine",
		"from sqlalchemy import create_engine, text",
		"from sqlalchemy.engine import Engine",
		"from sqlalchemy.orm import sessionmaker, Session, declarative_base",
		"from app.core.logger import logger_manager",
		"from app.core.config.settings import settings",
	}

	body := fmt.Sprintf(`Base = declarative_base()


class %[1]s:
    """%[6]s connection manager with async and sync engines."""

    def __init__(self):
        self.logger = logger_manager.get_logger(__name__)
        self.async_engine: Optional[AsyncEngine] = None
        self.async_session_maker: Optional[async_sessionmaker] = None
        self.sync_engine: Optional[Engine] = None
        self.sync_session_maker: Optional[sessionmaker] = None

    def get_sqlalchemy_url(self) -> str:
        """Build the async connection URL."""
        url = settings.database.DATABASE_URL
        if url.startswith(%[3]q):
            return url.replace(%[3]q, %[4]q, 1)
        elif url.startswith(%[5]q):
            return url.replace(%[5]q, %[4]q, 1)
        return url

    def get_sync_sqlalchemy_url(self) -> str:
        """Build the sync connection URL."""
        url = settings.database.DATABASE_URL
        if url.startswith(%[3]q):
            return url.replace(%[3]q, %[5]q, 1)
        elif url.startswith(%[4]q):
            return url.replace(%[4]q, %[5]q, 1)
        return url

    async def initialize(self) -> None:
        """Create async and sync engines; idempotent."""
        if self.async_engine:
            self.logger.debug("%[1]s is already initialized.")
            return

        try:
            db = settings.database

            self.async_engine = create_async_engine(
                self.get_sqlalchemy_url(),
                echo=db.ECHO,
                pool_pre_ping=db.POOL_PRE_PING,
                pool_timeout=db.POOL_TIMEOUT,
                pool_size=db.POOL_SIZE,
                max_overflow=db.POOL_MAX_OVERFLOW,
            )

            self.async_session_maker = async_sessionmaker(
                self.async_engine,
                class_=AsyncSession,
                expire_on_commit=False,
            )

            # Sync engine is used by background tasks.
            self.sync_engine = create_engine(
                self.get_sync_sqlalchemy_url(),
                echo=db.ECHO,
                pool_pre_ping=db.POOL_PRE_PING,
                pool_timeout=db.POOL_TIMEOUT,
                pool_size=db.POOL_SIZE,
                max_overflow=db.POOL_MAX_OVERFLOW,
            )

            self.sync_session_maker = sessionmaker(
                self.sync_engine,
                class_=Session,
                expire_on_commit=False,
            )

            self.logger.info("%[6]s initialized successfully (async + sync).")
        except Exception:
            self.logger.exception("Failed to initialize %[6]s.")
            raise

    async def get_db(self) -> AsyncGenerator[AsyncSession, None]:
        """Yield an async session for FastAPI dependency injection."""
        if not self.async_session_maker:
            raise RuntimeError("Database not initialized. Call initialize() first.")

        async with self.async_session_maker() as session:
            yield session

    def get_sync_db(self) -> Session:
        """Return a sync session for background tasks."""
        if not self.sync_session_maker:
            raise RuntimeError("Database not initialized. Call initialize() first.")
        return self.sync_session_maker()

    async def test_connection(self) -> bool:
        """Run SELECT 1 against the async engine."""
        if not self.async_session_maker:
            raise RuntimeError("Database not initialized.")

        try:
            async with self.async_session_maker() as session:
                result = await session.execute(text("SELECT 1"))
                if result.scalar() != 1:
                    raise RuntimeError("%[6]s connection test failed.")
                self.logger.info("%[6]s connection test passed.")
                return True
        except Exception:
            self.logger.exception("%[6]s connection test failed.")
            raise

    async def close(self) -> None:
        """Dispose both engines and release pooled connections."""
        if self.async_engine:
            try:
                await self.async_engine.dispose()
                self.async_engine = None
                self.async_session_maker = None
                self.logger.info("%[6]s async engine disposed successfully.")
            except Exception:
                self.logger.exception("Failed to dispose %[6]s async engine.")
                raise

        if self.sync_engine:
            try:
                self.sync_engine.dispose()
                self.sync_engine = None
                self.sync_session_maker = None
                self.logger.info("%[6]s sync engine disposed successfully.")
            except Exception:
                self.logger.exception("Failed to dispose %[6]s sync engine.")
                raise

    async def __aenter__(self) -> "%[1]s":
        await self.initialize()
        return self

    async def __aexit__(self, exc_type, exc_value, traceback) -> None:
        await self.close()


%[2]s = %[1]s()
`, spec.class, spec.singleton, spec.scheme, spec.asyncDriver, spec.syncDriver, spec.display)

	return tree.WritePython(spec.rel, spec.docstring, imports, body)
}

func generateDependencies(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	module := strings.ToLower(cfg.DatabaseType())
	manager := module + "_manager"

	imports := []string{
		"from fastapi import Depends, HTTPException, Response",
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"from fastapi.security import APIKeyCookie",
		fmt.Sprintf("from app.core.database.%s import %s", module, manager),
		"from app.core.logger import logger_manager",
		"from app.core.security import security_manager",
		"from app.crud.user import user_crud",
	}

	var b strings.Builder
	b.WriteString(`get_access_token_cookie = APIKeyCookie(
    name="access_token",
    auto_error=False,
    scheme_name="Bearer",
    description="Access token for authentication",
)
`)
	if cfg.HasRefreshToken() {
		b.WriteString(`
get_refresh_token_cookie = APIKeyCookie(
    name="refresh_token",
    auto_error=False,
    scheme_name="Bearer",
    description="Refresh token for authentication",
)
`)
	}

	verifiedCheck := ""
	if cfg.HasCompleteAuth() {
		verifiedCheck = " and user.is_verified"
	}

	fmt.Fprintf(&b, `

class Dependencies:
    """Cookie-based session helpers for routes that cannot use bearer auth."""

    def __init__(self, db: AsyncSession):
        self.db = db
        self.%[1]s = %[1]s
        self.security_manager = security_manager
        self.logger = logger_manager.get_logger(__name__)

    async def get_current_user(
        self,
        access_token: str = Depends(get_access_token_cookie),
        db: AsyncSession = Depends(%[1]s.get_db),
    ):
        """Resolve the current user from the access token cookie."""
        if not access_token:
            self.logger.warning("No access_token provided in request")
            raise HTTPException(
                status_code=401,
                detail="Unauthorized access",
            )

        try:
            token_data = security_manager.decode_token(access_token)

            if token_data:
                user_id = token_data.get("user_id")

                if user_id:
                    user = await user_crud.get_by_id(db, user_id)

                    if user and user.is_active%[2]s:
                        self.logger.info(f"User authenticated via access token: {user.email}")
                        return user

                    self.logger.warning(
                        f"User validation failed - "
                        f"active: {user.is_active if user else 'N/A'}"
                    )
                else:
                    self.logger.warning("No user_id found in decoded token")
            else:
                self.logger.warning("Token decode returned None")
        except Exception as e:
            self.logger.warning(f"Access token validation failed: {str(e)}")

        raise HTTPException(
            status_code=401,
            detail="Unauthorized access",
        )
`, manager, verifiedCheck)

	if cfg.HasRefreshToken() {
		b.WriteString(`
    async def cleanup_tokens(
        self,
        response: Response,
    ) -> bool:
        """Delete the session cookies on logout."""
        response.delete_cookie("access_token", path="/")
        self.logger.info("Access token cookie deleted")

        response.delete_cookie("refresh_token", path="/")
        self.logger.info("Refresh token cookie deleted")

        return True
`)
	}

	return tree.WritePython("app/core/database/dependencies.py", "Cookie-session dependency helpers", imports, b.String())
}
