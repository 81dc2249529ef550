package auth

import (
	"context"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

func generateAuthService(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	if cfg.HasCompleteAuth() {
		return writeCompleteAuthService(tree, cfg)
	}
	return writeBasicAuthService(tree)
}

func writeBasicAuthService(tree *fsutil.Tree) error {
	imports := []string{
		"from datetime import datetime, timedelta, timezone",
		"from typing import Optional",
		"from jose import jwt",
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"from app.core.config.settings import settings",
		"from app.crud.user import user_crud",
		"from app.models.user import User",
		"from app.schemas.user import Token, UserCreate",
	}

	body := `class AuthService:
    """Account registration and login."""

    @staticmethod
    def create_access_token(data: dict) -> str:
        expires = datetime.now(timezone.utc) + timedelta(
            seconds=settings.jwt.JWT_ACCESS_TOKEN_EXPIRATION
        )
        to_encode = {**data, "exp": expires, "type": "access"}
        return jwt.encode(
            to_encode,
            settings.jwt.JWT_SECRET_KEY.get_secret_value(),
            algorithm=settings.jwt.JWT_ALGORITHM,
        )

    @staticmethod
    async def register_user(db: AsyncSession, user_in: UserCreate) -> User:
        """Create an account, rejecting duplicate usernames and emails."""
        if await user_crud.get_by_username(db, user_in.username):
            raise ValueError("Username already registered")
        if await user_crud.get_by_email(db, user_in.email):
            raise ValueError("Email already registered")
        return await user_crud.create(db, user_in)

    @staticmethod
    async def login_user(
        db: AsyncSession, identifier: str, password: str
    ) -> Optional[Token]:
        """Exchange credentials for an access token."""
        user = await user_crud.authenticate(db, identifier, password)
        if not user:
            return None
        access_token = AuthService.create_access_token({"user_id": user.id})
        return Token(access_token=access_token)


auth_service = AuthService()
`

	return tree.WritePython("app/services/auth.py", "Authentication service", imports, body)
}

func writeCompleteAuthService(tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from typing import Optional",
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"from app.core.security import security_manager",
		"from app.crud.user import user_crud",
		"from app.models.user import User",
		"from app.schemas.user import Token, UserCreate",
		"from app.utils.email import email_service",
	}
	if cfg.HasRefreshToken() {
		imports = append(imports,
			"from app.crud.token import refresh_token_crud, verification_code_crud")
	} else {
		imports = append(imports,
			"from app.crud.token import verification_code_crud")
	}

	var b strings.Builder
	b.WriteString(`class AuthService:
    """Registration, verification, login, and session management."""

    @staticmethod
    async def register_user(
        db: AsyncSession, user_in: UserCreate, send_verification: bool = True
    ) -> User:
        """Create an account and email a verification code."""
        if await user_crud.get_by_username(db, user_in.username):
            raise ValueError("Username already registered")
        if await user_crud.get_by_email(db, user_in.email):
            raise ValueError("Email already registered")
        user = await user_crud.create(db, user_in)
        if send_verification:
            await AuthService.send_verification_email(db, user)
        return user

    @staticmethod
    async def send_verification_email(db: AsyncSession, user: User) -> None:
        """Issue a fresh verification code, invalidating any older ones."""
        await verification_code_crud.invalidate_user_codes(
            db, user.id, "email_verification"
        )
        code = await verification_code_crud.create(
            db,
            user_id=user.id,
            code_type="email_verification",
            expiration_minutes=60,
        )
        await email_service.send_email(
            subject="Email Verification",
            recipient=user.email,
            template="verification",
            username=user.username,
            code=code.code,
        )

    @staticmethod
    async def verify_email(db: AsyncSession, user: User, code: str) -> bool:
        """Redeem a verification code and send the welcome email."""
        ok = await verification_code_crud.verify(
            db, user.id, code, "email_verification"
        )
        if not ok:
            return False
        await user_crud.verify_email(db, user)
        await email_service.send_email(
            subject="Welcome!",
            recipient=user.email,
            template="welcome",
            username=user.username,
        )
        return True

    @staticmethod
    async def login_user(
        db: AsyncSession,
        identifier: str,
        password: str,
`)
	if cfg.HasRefreshToken() {
		b.WriteString(`        device_name: Optional[str] = None,
        device_type: Optional[str] = None,
        ip_address: Optional[str] = None,
        user_agent: Optional[str] = None,
`)
	}
	b.WriteString(`    ) -> Optional[Token]:
        """Exchange credentials for tokens. Raises ValueError when the
        account's email is not verified."""
        user = await user_crud.authenticate(db, identifier, password)
        if not user:
            return None
        if not user.is_verified:
            raise ValueError("Email address is not verified")
        access_token, _ = security_manager.create_access_token(
            {"user_id": user.id}
        )
`)
	if cfg.HasRefreshToken() {
		b.WriteString(`        refresh_token, refresh_expires = security_manager.create_refresh_token(
            {"user_id": user.id}
        )
        await refresh_token_crud.create(
            db,
            token=refresh_token,
            user_id=user.id,
            expires_at=refresh_expires,
            device_name=device_name,
            device_type=device_type,
            ip_address=ip_address,
            user_agent=user_agent,
        )
        return Token(access_token=access_token, refresh_token=refresh_token)
`)
	} else {
		b.WriteString("        return Token(access_token=access_token)\n")
	}

	if cfg.HasRefreshToken() {
		b.WriteString(`
    @staticmethod
    async def refresh_access_token(
        db: AsyncSession, refresh_token: str
    ) -> Optional[Token]:
        """Mint a new access token from a stored, unexpired refresh token."""
        stored = await refresh_token_crud.get_by_token(db, refresh_token)
        if not stored or not stored.is_valid():
            return None
        payload = security_manager.decode_token(refresh_token)
        if not payload or payload.get("type") != "refresh":
            return None
        user = await user_crud.get_by_id(db, stored.user_id)
        if not user or not user.is_active:
            return None
        await refresh_token_crud.update_last_used(db, stored)
        access_token, _ = security_manager.create_access_token(
            {"user_id": user.id}
        )
        return Token(access_token=access_token, refresh_token=refresh_token)
`)
	}

	b.WriteString(`
    @staticmethod
    async def request_password_reset(db: AsyncSession, email: str) -> bool:
        """Send a reset code. Always reports success so the endpoint does
        not reveal whether the address exists."""
        user = await user_crud.get_by_email(db, email)
        if not user:
            return True
        await verification_code_crud.invalidate_user_codes(
            db, user.id, "password_reset"
        )
        code = await verification_code_crud.create(
            db,
            user_id=user.id,
            code_type="password_reset",
            expiration_minutes=60,
        )
        await email_service.send_email(
            subject="Password Reset",
            recipient=user.email,
            template="password_reset",
            username=user.username,
            code=code.code,
        )
        return True

    @staticmethod
    async def reset_password(
        db: AsyncSession, email: str, code: str, new_password: str
    ) -> bool:
        """Redeem a reset code and replace the password."""
        user = await user_crud.get_by_email(db, email)
        if not user:
            return False
        ok = await verification_code_crud.verify(db, user.id, code, "password_reset")
        if not ok:
            return False
        await user_crud.change_password(db, user, new_password)
`)
	if cfg.HasRefreshToken() {
		b.WriteString("        await refresh_token_crud.revoke_user_tokens(db, user.id)\n")
	}
	b.WriteString("        return True\n")

	if cfg.HasRefreshToken() {
		b.WriteString(`
    @staticmethod
    async def logout_user(db: AsyncSession, refresh_token: str) -> bool:
        """Revoke one refresh token."""
        stored = await refresh_token_crud.get_by_token(db, refresh_token)
        if not stored:
            return False
        await refresh_token_crud.revoke(db, stored)
        return True

    @staticmethod
    async def logout_all_devices(db: AsyncSession, user: User) -> int:
        """Revoke every active session of a user; returns the count."""
        return await refresh_token_crud.revoke_user_tokens(db, user.id)
`)
	}

	b.WriteString("\n\nauth_service = AuthService()\n")

	return tree.WritePython("app/services/auth.py", "Authentication service", imports, b.String())
}
