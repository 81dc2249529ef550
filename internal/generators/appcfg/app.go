package appcfg

import (
	"context"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

func generateLoggerManager(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	imports := []string{
		"import sys",
		"import logging",
		"from pathlib import Path",
		"from typing import Optional",
		"from loguru import logger",
		"",
		"from app.core.config.settings import settings",
	}

	body := `class LoggerManager:
    """Loguru-backed logging facade configured from settings.logging."""

    def __init__(self):
        self._initialized = False

    def setup(self) -> None:
        """Configure sinks once; later calls are no-ops."""
        if self._initialized:
            return

        logger.remove()

        if settings.logging.LOG_TO_CONSOLE:
            logger.add(
                sys.stdout,
                level=settings.logging.LOG_CONSOLE_LEVEL,
                format="<green>{time:YYYY-MM-DD HH:mm:ss}</green> | "
                       "<level>{level: <8}</level> | "
                       "<cyan>{name}</cyan>:<cyan>{function}</cyan>:<cyan>{line}</cyan> | "
                       "<level>{message}</level>",
                colorize=True,
            )

        if settings.logging.LOG_TO_FILE:
            log_path = Path(settings.logging.LOG_FILE_PATH)
            log_path.parent.mkdir(parents=True, exist_ok=True)

            logger.add(
                settings.logging.LOG_FILE_PATH,
                level=settings.logging.LOG_LEVEL,
                format="{time:YYYY-MM-DD HH:mm:ss} | {level: <8} | {name}:{function}:{line} | {message}",
                rotation=settings.logging.LOG_ROTATION,
                retention=settings.logging.LOG_RETENTION_PERIOD,
                compression="zip",
                encoding="utf-8",
            )

        self._intercept_standard_logging()

        self._initialized = True
        logger.info("Logger initialized successfully")

    def _intercept_standard_logging(self) -> None:
        """Redirect stdlib logging records to loguru."""

        class InterceptHandler(logging.Handler):
            def emit(self, record: logging.LogRecord) -> None:
                try:
                    level = logger.level(record.levelname).name
                except ValueError:
                    level = record.levelno

                frame, depth = logging.currentframe(), 2
                while frame.f_code.co_filename == logging.__file__:
                    frame = frame.f_back
                    depth += 1

                logger.opt(depth=depth, exception=record.exc_info).log(
                    level, record.getMessage()
                )

        logging.basicConfig(handlers=[InterceptHandler()], level=0, force=True)

        for logger_name in ["uvicorn", "uvicorn.access", "uvicorn.error", "fastapi"]:
            logging.getLogger(logger_name).handlers = [InterceptHandler()]

    def get_logger(self, name: Optional[str] = None):
        """Return a logger, binding name (usually __name__) when given."""
        if not self._initialized:
            self.setup()

        if name:
            return logger.bind(name=name)
        return logger


logger_manager = LoggerManager()
`

	return tree.WritePython("app/core/logger.py", "Logger manager", imports, body)
}

func generateCoreDeps(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	imports := []string{
		"from fastapi import Depends, HTTPException, status",
		"from fastapi.security import HTTPBearer, HTTPAuthorizationCredentials",
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"",
		"from app.core.database import get_db",
		"from app.core.security import security_manager",
		"from app.crud.user import user_crud",
		"from app.models.user import User",
	}

	body := `security = HTTPBearer(auto_error=False)


async def get_current_user(
    credentials: HTTPAuthorizationCredentials = Depends(security),
    db: AsyncSession = Depends(get_db),
) -> User:
    """Resolve the authenticated user from the bearer token.

    Raises:
        HTTPException: 401 when the token is missing or invalid.
    """
    if not credentials:
        raise HTTPException(
            status_code=status.HTTP_401_UNAUTHORIZED,
            detail="Not authenticated",
            headers={"WWW-Authenticate": "Bearer"},
        )

    token = credentials.credentials

    payload = security_manager.decode_token(token)
    if not payload:
        raise HTTPException(
            status_code=status.HTTP_401_UNAUTHORIZED,
            detail="Could not validate credentials",
            headers={"WWW-Authenticate": "Bearer"},
        )

    user_id: int = payload.get("user_id")
    if user_id is None:
        raise HTTPException(
            status_code=status.HTTP_401_UNAUTHORIZED,
            detail="Could not validate credentials",
            headers={"WWW-Authenticate": "Bearer"},
        )

    user = await user_crud.get_by_id(db, user_id)
    if user is None:
        raise HTTPException(
            status_code=status.HTTP_401_UNAUTHORIZED,
            detail="User not found",
        )

    if not user.is_active:
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST,
            detail="Inactive user",
        )

    return user


async def get_current_superuser(
    current_user: User = Depends(get_current_user),
) -> User:
    """Require the authenticated user to be a superuser.

    Raises:
        HTTPException: 403 when the user lacks superuser rights.
    """
    if not current_user.is_superuser:
        raise HTTPException(
            status_code=status.HTTP_403_FORBIDDEN,
            detail="Not enough permissions",
        )
    return current_user
`

	return tree.WritePython("app/core/deps.py", "Dependency injection helpers", imports, body)
}

func generateAppMain(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"import os",
		"import uvicorn",
		"from fastapi import FastAPI, HTTPException, Request",
		"from fastapi.responses import JSONResponse",
		"from fastapi.openapi.utils import get_openapi",
	}
	if cfg.HasCORS() {
		imports = append(imports, "from fastapi.middleware.cors import CORSMiddleware")
	}
	imports = append(imports,
		"from fastapi.staticfiles import StaticFiles",
		"",
		"from app.core.config.settings import settings",
		"from app.core.logger import logger_manager",
	)
	if cfg.HasDatabase() {
		imports = append(imports, "from app.core.database import db_manager")
	}
	if cfg.HasAuth() {
		imports = append(imports,
			"",
			"from app.routers.v1 import (",
			"    auth_router,",
			"    user_router,",
			")",
		)
	}

	var body strings.Builder
	body.WriteString(`logger_manager.setup()

logger = logger_manager.get_logger(__name__)
`)

	if cfg.HasDatabase() {
		body.WriteString(`

async def lifespan(_app: FastAPI):
    """Application lifespan management"""
    logger.info("Starting the application...")
    logger.info(f"You are working in the {os.getenv('ENV', 'development')} environment")

    try:
        await db_manager.initialize()
        logger.info("Database connections initialized successfully")
        await db_manager.test_connections()
        logger.info("Database connections tested successfully")
    except Exception as e:
        logger.error(f"Database connection failed: {e}")
        logger.warning("Application will start without database connections")

    yield

    try:
        await db_manager.close()
        logger.info("Database connections closed successfully")
    except Exception as e:
        logger.error(f"Database connection close failed: {e}")


app = FastAPI(
    lifespan=lifespan,
    title=settings.app.APP_NAME,
    version=settings.app.APP_VERSION,
    description=settings.app.APP_DESCRIPTION,
)
`)
	} else {
		body.WriteString(`

app = FastAPI(
    title=settings.app.APP_NAME,
    version=settings.app.APP_VERSION,
    description=settings.app.APP_DESCRIPTION,
)
`)
	}

	body.WriteString(`

@app.exception_handler(HTTPException)
async def http_exception_handler(_request: Request, exc: HTTPException):
    """HTTP exception handler"""
    logger.error(f"HTTPException: {exc}")
    error_detail = exc.detail

    if isinstance(error_detail, dict):
        error_message = error_detail.get("error", str(error_detail))
    else:
        error_message = str(error_detail)

    return JSONResponse(
        status_code=exc.status_code,
        content={"status": exc.status_code, "error": error_message},
    )


@app.exception_handler(Exception)
async def general_exception_handler(_request: Request, exc: Exception):
    """General exception handler"""
    logger.error(f"Exception: {exc}")
    return JSONResponse(
        status_code=500,
        content={"status": 500, "error": "Internal server error"},
    )
`)

	if cfg.HasCORS() {
		body.WriteString(`

allow_origins = [x.strip() for x in settings.cors.CORS_ALLOWED_ORIGINS.split(',') if x.strip()]
allow_methods = [x.strip() for x in settings.cors.CORS_ALLOW_METHODS.split(',') if x.strip()]
allow_headers = [x.strip() for x in settings.cors.CORS_ALLOW_HEADERS.split(',') if x.strip()]
allow_credentials = settings.cors.CORS_ALLOW_CREDENTIALS
expose_headers = [x.strip() for x in settings.cors.CORS_EXPOSE_HEADERS.split(',') if x.strip()]

app.add_middleware(
    CORSMiddleware,
    allow_origins=allow_origins,
    allow_methods=allow_methods,
    allow_headers=allow_headers,
    allow_credentials=allow_credentials,
    expose_headers=expose_headers,
)
`)
	}

	if cfg.HasAuth() {
		body.WriteString(`

app.include_router(auth_router, prefix="/api/v1")
app.include_router(user_router, prefix="/api/v1")
`)
	}

	body.WriteString(`

static_dir = os.path.join(os.path.dirname(__file__), "..", "static")
if os.path.exists(static_dir):
    app.mount("/static", StaticFiles(directory=static_dir), name="static")


@app.get("/health", tags=["Health"])
async def health_check():
    """Health check endpoint"""
    return {"status": "healthy"}


def custom_openapi():
    """Custom OpenAPI documentation"""
    if app.openapi_schema:
        return app.openapi_schema

    openapi_schema = get_openapi(
        title=settings.app.APP_NAME,
        version=settings.app.APP_VERSION,
        description=settings.app.APP_DESCRIPTION,
        routes=app.routes,
    )

    app.openapi_schema = openapi_schema
    return app.openapi_schema


app.openapi = custom_openapi


if __name__ == "__main__":
    if os.getenv("ENV") == "development":
        logger.info("Starting the application in development mode...")
        uvicorn.run(
            app="app.main:app",
            host="127.0.0.1",
            port=8000,
            reload=True,
        )
`)

	return tree.WritePython("app/main.py", "FastAPI application entry point", imports, body.String())
}
