// Package auth registers the units that write the generated
// application's authentication stack: password hashing and JWT
// helpers, the user and token models with their schemas and CRUD
// layers, the auth service, and the versioned API routers.
package auth

import (
	"context"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the authentication units to the registry.
func Register(reg *orchestrator.Registry) {
	authEnabled := func(cfg *config.Config) bool { return cfg.HasAuth() }
	completeAuth := func(cfg *config.Config) bool { return cfg.HasCompleteAuth() }

	reg.MustRegister(orchestrator.Unit{
		Name:        "security",
		Category:    "auth",
		Priority:    40,
		Requires:    []string{"config-settings"},
		EnabledWhen: authEnabled,
		Description: "Write the password hashing and JWT security manager",
		Generate:    generateSecurity,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "user-model",
		Category:    "auth",
		Priority:    41,
		EnabledWhen: authEnabled,
		Description: "Write the user database model",
		Generate:    generateUserModel,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "user-schema",
		Category:    "auth",
		Priority:    42,
		EnabledWhen: authEnabled,
		Description: "Write the user request and response schemas",
		Generate:    generateUserSchema,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "user-crud",
		Category:    "auth",
		Priority:    43,
		Requires:    []string{"security", "user-model"},
		EnabledWhen: authEnabled,
		Description: "Write the user CRUD layer",
		Generate:    generateUserCRUD,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "token-model",
		Category:    "auth",
		Priority:    44,
		EnabledWhen: completeAuth,
		Description: "Write the refresh token and verification code models",
		Generate:    generateTokenModel,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "token-schema",
		Category:    "auth",
		Priority:    45,
		EnabledWhen: completeAuth,
		Description: "Write the token schemas",
		Generate:    generateTokenSchema,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "token-crud",
		Category:    "auth",
		Priority:    46,
		Requires:    []string{"token-model"},
		EnabledWhen: completeAuth,
		Description: "Write the token CRUD layer",
		Generate:    generateTokenCRUD,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "auth-service",
		Category:    "auth",
		Priority:    50,
		Requires:    []string{"user-crud"},
		EnabledWhen: authEnabled,
		Description: "Write the authentication service",
		Generate:    generateAuthService,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "auth-router",
		Category:    "auth",
		Priority:    60,
		Requires:    []string{"auth-service"},
		EnabledWhen: authEnabled,
		Description: "Write the authentication endpoints",
		Generate:    generateAuthRouter,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "user-router",
		Category:    "auth",
		Priority:    61,
		Requires:    []string{"user-crud"},
		EnabledWhen: authEnabled,
		Description: "Write the user endpoints",
		Generate:    generateUserRouter,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "api-v1-router",
		Category:    "auth",
		Priority:    62,
		Requires:    []string{"auth-router", "user-router"},
		EnabledWhen: authEnabled,
		Description: "Export the v1 routers from the package init",
		Generate:    generateAPIV1Router,
	})
}

func generateSecurity(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime, timedelta, timezone",
		"from typing import Any, Optional",
		"from jose import JWTError, jwt",
		"from passlib.context import CryptContext",
		"from app.core.config.settings import settings",
	}

	refreshMethod := ""
	if cfg.HasRefreshToken() {
		refreshMethod = `
    def create_refresh_token(self, data: dict[str, Any]) -> tuple[str, datetime]:
        """Create a refresh token; returns the token and its expiry."""
        return self._create_token(
            data, "refresh", settings.jwt.JWT_REFRESH_TOKEN_EXPIRATION
        )
`
	}

	body := `pwd_context = CryptContext(schemes=["bcrypt"], deprecated="auto")


def get_password_hash(password: str) -> str:
    """Hash a plain password with bcrypt."""
    return pwd_context.hash(password)


def verify_password(plain_password: str, hashed_password: str) -> bool:
    """Check a plain password against its stored hash."""
    return pwd_context.verify(plain_password, hashed_password)


class SecurityManager:
    """Create and validate the JWTs used for API authentication."""

    def __init__(self):
        self.secret_key = settings.jwt.JWT_SECRET_KEY.get_secret_value()
        self.algorithm = settings.jwt.JWT_ALGORITHM

    def _create_token(
        self,
        data: dict[str, Any],
        token_type: str,
        lifetime_seconds: int,
    ) -> tuple[str, datetime]:
        expires_at = datetime.now(timezone.utc) + timedelta(seconds=lifetime_seconds)
        to_encode = {**data, "exp": expires_at, "type": token_type}
        if settings.jwt.JWT_ISSUER:
            to_encode["iss"] = settings.jwt.JWT_ISSUER
        if settings.jwt.JWT_AUDIENCE:
            to_encode["aud"] = settings.jwt.JWT_AUDIENCE
        token = jwt.encode(to_encode, self.secret_key, algorithm=self.algorithm)
        return token, expires_at

    def create_access_token(self, data: dict[str, Any]) -> tuple[str, datetime]:
        """Create an access token; returns the token and its expiry."""
        return self._create_token(
            data, "access", settings.jwt.JWT_ACCESS_TOKEN_EXPIRATION
        )
` + refreshMethod + `
    def decode_token(self, token: str) -> Optional[dict[str, Any]]:
        """Decode a token, returning its payload or None when invalid."""
        try:
            return jwt.decode(
                token,
                self.secret_key,
                algorithms=[self.algorithm],
                options={"verify_aud": False},
            )
        except JWTError:
            return None


security_manager = SecurityManager()
`

	return tree.WritePython("app/core/security.py", "Password hashing and JWT helpers", imports, body)
}
