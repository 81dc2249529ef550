// Package structure registers the units that lay out the skeleton of a
// generated project: directories, package init files, and the shared
// response helpers every other generated module builds on.
package structure

import (
	"context"
	"fmt"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the structure units to the registry.
func Register(reg *orchestrator.Registry) {
	reg.MustRegister(orchestrator.Unit{
		Name:        "structure",
		Category:    "structure",
		Priority:    0,
		Description: "Create project directories and package init files",
		Generate:    generateLayout,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "response-utils",
		Category:    "structure",
		Priority:    5,
		Requires:    []string{"structure"},
		Description: "Create the unified API response helpers",
		Generate:    generateResponseUtils,
	})
}

func generateLayout(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	dirs := []string{
		"app",
		"app/core",
		"app/core/config",
		"app/core/config/modules",
		"app/decorators",
		"app/schemas",
		"app/utils",
		"script",
	}
	if cfg.HasDatabase() {
		dirs = append(dirs, "app/core/database", "app/crud", "app/models")
	}
	if cfg.HasAuth() {
		dirs = append(dirs, "app/services", "app/routers", "app/routers/v1")
	}
	if cfg.HasMigration() {
		dirs = append(dirs, "alembic")
	}
	if cfg.HasTesting() {
		dirs = append(dirs, "tests", "tests/api", "tests/unit")
	}
	for _, dir := range dirs {
		if err := tree.MkdirAll(dir); err != nil {
			return err
		}
	}

	if err := writeInitFiles(tree, cfg); err != nil {
		return err
	}
	return writePackageExports(tree, cfg)
}

// writeInitFiles creates empty __init__.py markers. Existing files are left
// alone so a re-run does not clobber user edits.
func writeInitFiles(tree *fsutil.Tree, cfg *config.Config) error {
	inits := []string{
		"app/__init__.py",
		"app/core/__init__.py",
		"app/decorators/__init__.py",
		"app/schemas/__init__.py",
		"app/utils/__init__.py",
	}
	if cfg.HasDatabase() {
		inits = append(inits, "app/crud/__init__.py", "app/models/__init__.py")
	}
	if cfg.HasAuth() {
		inits = append(inits,
			"app/services/__init__.py",
			"app/routers/__init__.py",
			"app/routers/v1/__init__.py",
		)
	}
	if cfg.HasTesting() {
		inits = append(inits,
			"tests/__init__.py",
			"tests/api/__init__.py",
			"tests/unit/__init__.py",
		)
	}
	for _, rel := range inits {
		if _, err := tree.EnsureFile(rel, nil); err != nil {
			return err
		}
	}
	return nil
}

// writePackageExports writes the init files that re-export package members.
func writePackageExports(tree *fsutil.Tree, cfg *config.Config) error {
	configInit := `"""Configuration package"""
from .settings import settings

__all__ = ["settings"]
`
	if err := tree.WriteString("app/core/config/__init__.py", configInit); err != nil {
		return err
	}

	if err := tree.WriteString("app/core/config/modules/__init__.py", modulesInit(cfg)); err != nil {
		return err
	}

	if cfg.HasDatabase() {
		return tree.WriteString("app/core/database/__init__.py", databaseInit(cfg))
	}
	return nil
}

// modulesInit builds app/core/config/modules/__init__.py with one import and
// export per enabled settings module.
func modulesInit(cfg *config.Config) string {
	imports := []string{
		"from .app import AppSettings",
		"from .logger import LoggingSettings",
	}
	exports := []string{"AppSettings", "LoggingSettings"}

	if cfg.HasDatabase() {
		imports = append(imports, "from .database import DatabaseSettings")
		exports = append(exports, "DatabaseSettings")
	}
	if cfg.HasAuth() {
		imports = append(imports, "from .jwt import JWTSettings")
		exports = append(exports, "JWTSettings")
	}
	if cfg.HasCompleteAuth() {
		imports = append(imports, "from .email import EmailSettings")
		exports = append(exports, "EmailSettings")
	}
	if cfg.HasCORS() {
		imports = append(imports, "from .cors import CORSSettings")
		exports = append(exports, "CORSSettings")
	}

	quoted := make([]string, len(exports))
	for i, e := range exports {
		quoted[i] = fmt.Sprintf("    %q,", e)
	}

	return fmt.Sprintf(`"""Settings modules"""
%s

__all__ = [
%s
]
`, strings.Join(imports, "\n"), strings.Join(quoted, "\n"))
}

// databaseInit builds app/core/database/__init__.py exporting the manager
// singleton for the configured engine plus the FastAPI session dependency.
func databaseInit(cfg *config.Config) string {
	module := strings.ToLower(cfg.DatabaseType())
	manager := module + "_manager"

	return fmt.Sprintf(`"""Database package"""
from .connection import db_manager
from .%s import %s, Base


async def get_db():
    """Yield an async database session for FastAPI dependencies."""
    async for session in %s.get_db():
        yield session


__all__ = ["db_manager", "%s", "Base", "get_db"]
`, module, manager, manager, manager)
}

func generateResponseUtils(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	imports := []string{
		"from typing import Any, Optional, Dict, List, Union",
		"from datetime import datetime",
		"from enum import Enum",
	}

	body := `class ResponseCode(Enum):
    """HTTP status codes used by the response helpers."""

    SUCCESS = 200
    CREATED = 201
    BAD_REQUEST = 400
    UNAUTHORIZED = 401
    FORBIDDEN = 403
    NOT_FOUND = 404
    CONFLICT = 409
    VALIDATION_ERROR = 422
    INTERNAL_ERROR = 500


class ResponseModel:
    """Builders for the unified response envelope."""

    @staticmethod
    def success(data: Any = None, message: str = "OK", code: int = ResponseCode.SUCCESS.value) -> Dict[str, Any]:
        return {
            "code": code,
            "success": True,
            "message": message,
            "data": data,
            "timestamp": datetime.now().isoformat(),
        }

    @staticmethod
    def error(
        message: str = "Request failed",
        code: int = ResponseCode.BAD_REQUEST.value,
        errors: Optional[Union[List, Dict]] = None,
    ) -> Dict[str, Any]:
        response = {
            "code": code,
            "success": False,
            "message": message,
            "data": None,
            "timestamp": datetime.now().isoformat(),
        }
        if errors:
            response["errors"] = errors
        return response

    @staticmethod
    def paginated(
        items: List[Any],
        total: int,
        page: int = 1,
        page_size: int = 10,
        message: str = "OK",
    ) -> Dict[str, Any]:
        total_pages = (total + page_size - 1) // page_size
        return {
            "code": ResponseCode.SUCCESS.value,
            "success": True,
            "message": message,
            "data": {
                "items": items,
                "pagination": {
                    "total": total,
                    "page": page,
                    "page_size": page_size,
                    "total_pages": total_pages,
                    "has_next": page < total_pages,
                    "has_prev": page > 1,
                },
            },
            "timestamp": datetime.now().isoformat(),
        }

    @staticmethod
    def created(data: Any = None, message: str = "Created") -> Dict[str, Any]:
        return ResponseModel.success(data=data, message=message, code=ResponseCode.CREATED.value)

    @staticmethod
    def not_found(message: str = "Resource not found") -> Dict[str, Any]:
        return ResponseModel.error(message=message, code=ResponseCode.NOT_FOUND.value)

    @staticmethod
    def unauthorized(message: str = "Unauthorized") -> Dict[str, Any]:
        return ResponseModel.error(message=message, code=ResponseCode.UNAUTHORIZED.value)

    @staticmethod
    def forbidden(message: str = "Forbidden") -> Dict[str, Any]:
        return ResponseModel.error(message=message, code=ResponseCode.FORBIDDEN.value)

    @staticmethod
    def validation_error(
        message: str = "Validation failed",
        errors: Optional[Union[List, Dict]] = None,
    ) -> Dict[str, Any]:
        return ResponseModel.error(message=message, code=ResponseCode.VALIDATION_ERROR.value, errors=errors)

    @staticmethod
    def internal_error(message: str = "Internal server error") -> Dict[str, Any]:
        return ResponseModel.error(message=message, code=ResponseCode.INTERNAL_ERROR.value)


Response = ResponseModel
`

	return tree.WritePython("app/utils/response.py", "Unified response envelope helpers", imports, body)
}
