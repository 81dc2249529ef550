package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

// selectImport returns the select() import matching the configured ORM.
// SQLModel re-exports select with its own typing overloads.
func selectImport(cfg *config.Config) string {
	if cfg.ORMType() == config.ORMSQLModel {
		return "from sqlmodel import select"
	}
	return "from sqlalchemy import select"
}

func generateUserCRUD(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime, timezone",
		"from typing import Optional",
		selectImport(cfg),
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"from app.core.security import get_password_hash, verify_password",
		"from app.models.user import User",
		"from app.schemas.user import UserCreate, UserUpdate",
	}

	// SQLModel sessions need an explicit add() before committing changes
	// to an already-loaded row.
	addLine := ""
	if cfg.ORMType() == config.ORMSQLModel {
		addLine = "        db.add(user)\n"
	}

	var b strings.Builder
	b.WriteString(`class UserCRUD:
    """Database operations for users."""

    @staticmethod
    async def get_by_id(db: AsyncSession, user_id: int) -> Optional[User]:
        return await db.get(User, user_id)

    @staticmethod
    async def get_by_username(db: AsyncSession, username: str) -> Optional[User]:
        result = await db.execute(select(User).where(User.username == username))
        return result.scalar_one_or_none()

    @staticmethod
    async def get_by_email(db: AsyncSession, email: str) -> Optional[User]:
        result = await db.execute(select(User).where(User.email == email))
        return result.scalar_one_or_none()

    @staticmethod
    async def get_all(
        db: AsyncSession, skip: int = 0, limit: int = 100
    ) -> list[User]:
        result = await db.execute(select(User).offset(skip).limit(limit))
        return list(result.scalars().all())

    @staticmethod
    async def create(db: AsyncSession, user_in: UserCreate) -> User:
        user = User(
            username=user_in.username,
            email=user_in.email,
            hashed_password=get_password_hash(user_in.password),
`)
	if cfg.HasCompleteAuth() {
		b.WriteString("            is_verified=False,\n")
	}
	fmt.Fprintf(&b, `        )
        db.add(user)
        await db.commit()
        await db.refresh(user)
        return user

    @staticmethod
    async def update(db: AsyncSession, user: User, user_in: UserUpdate) -> User:
        update_data = user_in.model_dump(exclude_unset=True)
        if "password" in update_data:
            update_data["hashed_password"] = get_password_hash(
                update_data.pop("password")
            )
        for field, value in update_data.items():
            setattr(user, field, value)
        user.updated_at = datetime.now(timezone.utc)
%[1]s        await db.commit()
        await db.refresh(user)
        return user

    @staticmethod
    async def delete(db: AsyncSession, user: User) -> None:
        await db.delete(user)
        await db.commit()

    @staticmethod
    async def authenticate(
        db: AsyncSession, identifier: str, password: str
    ) -> Optional[User]:
        """Look the user up by username, then email, and check the password."""
        user = await UserCRUD.get_by_username(db, identifier)
        if not user:
            user = await UserCRUD.get_by_email(db, identifier)
        if not user:
            return None
        if not verify_password(password, user.hashed_password):
            return None
`, addLine)
	if cfg.HasCompleteAuth() {
		fmt.Fprintf(&b, `        user.last_login_at = datetime.now(timezone.utc)
%s        await db.commit()
        await db.refresh(user)
`, addLine)
	}
	b.WriteString("        return user\n")

	if cfg.HasCompleteAuth() {
		fmt.Fprintf(&b, `
    @staticmethod
    async def verify_email(db: AsyncSession, user: User) -> User:
        user.is_verified = True
        user.updated_at = datetime.now(timezone.utc)
%[1]s        await db.commit()
        await db.refresh(user)
        return user

    @staticmethod
    async def change_password(
        db: AsyncSession, user: User, new_password: str
    ) -> User:
        user.hashed_password = get_password_hash(new_password)
        user.updated_at = datetime.now(timezone.utc)
%[1]s        await db.commit()
        await db.refresh(user)
        return user
`, addLine)
	}

	b.WriteString("\n\nuser_crud = UserCRUD()\n")

	return tree.WritePython("app/crud/user.py", "User CRUD operations", imports, b.String())
}

func generateTokenCRUD(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"import secrets",
		"from datetime import datetime, timedelta, timezone",
		"from typing import Optional",
		selectImport(cfg),
		"from sqlalchemy.ext.asyncio import AsyncSession",
	}
	if cfg.HasRefreshToken() {
		imports = append(imports, "from app.models.token import RefreshToken, VerificationCode")
	} else {
		imports = append(imports, "from app.models.token import VerificationCode")
	}

	var b strings.Builder
	if cfg.HasRefreshToken() {
		b.WriteString(`class RefreshTokenCRUD:
    """Database operations for refresh tokens."""

    @staticmethod
    async def create(
        db: AsyncSession,
        token: str,
        user_id: int,
        expires_at: datetime,
        device_name: Optional[str] = None,
        device_type: Optional[str] = None,
        ip_address: Optional[str] = None,
        user_agent: Optional[str] = None,
    ) -> RefreshToken:
        obj = RefreshToken(
            token=token,
            user_id=user_id,
            expires_at=expires_at,
            device_name=device_name,
            device_type=device_type,
            ip_address=ip_address,
            user_agent=user_agent,
        )
        db.add(obj)
        await db.commit()
        await db.refresh(obj)
        return obj

    @staticmethod
    async def get_by_token(db: AsyncSession, token: str) -> Optional[RefreshToken]:
        result = await db.execute(
            select(RefreshToken).where(
                RefreshToken.token == token,
                RefreshToken.is_revoked == False,  # noqa: E712
            )
        )
        return result.scalar_one_or_none()

    @staticmethod
    async def get_user_tokens(
        db: AsyncSession, user_id: int, include_revoked: bool = False
    ) -> list[RefreshToken]:
        stmt = select(RefreshToken).where(RefreshToken.user_id == user_id)
        if not include_revoked:
            stmt = stmt.where(RefreshToken.is_revoked == False)  # noqa: E712
        result = await db.execute(stmt)
        return list(result.scalars().all())

    @staticmethod
    async def update_last_used(db: AsyncSession, token: RefreshToken) -> RefreshToken:
        token.last_used_at = datetime.now(timezone.utc)
        db.add(token)
        await db.commit()
        await db.refresh(token)
        return token

    @staticmethod
    async def revoke(db: AsyncSession, token: RefreshToken) -> RefreshToken:
        token.revoke()
        db.add(token)
        await db.commit()
        await db.refresh(token)
        return token

    @staticmethod
    async def revoke_user_tokens(db: AsyncSession, user_id: int) -> int:
        """Revoke every active token of a user; returns the count."""
        tokens = await RefreshTokenCRUD.get_user_tokens(db, user_id)
        for token in tokens:
            token.revoke()
            db.add(token)
        await db.commit()
        return len(tokens)

    @staticmethod
    async def cleanup_expired(db: AsyncSession) -> int:
        """Delete expired tokens; returns the count."""
        now = datetime.now(timezone.utc)
        result = await db.execute(
            select(RefreshToken).where(RefreshToken.expires_at < now)
        )
        tokens = list(result.scalars().all())
        for token in tokens:
            await db.delete(token)
        await db.commit()
        return len(tokens)


`)
	}

	b.WriteString(`class VerificationCodeCRUD:
    """Database operations for verification codes."""

    @staticmethod
    def generate_code(length: int = 6) -> str:
        """Generate a numeric one-time code."""
        return "".join(str(secrets.randbelow(10)) for _ in range(length))

    @staticmethod
    async def create(
        db: AsyncSession,
        user_id: int,
        code_type: str,
        expiration_minutes: int = 60,
        max_attempts: int = 5,
    ) -> VerificationCode:
        obj = VerificationCode(
            user_id=user_id,
            code=VerificationCodeCRUD.generate_code(),
            code_type=code_type,
            expires_at=datetime.now(timezone.utc)
            + timedelta(minutes=expiration_minutes),
            max_attempts=max_attempts,
        )
        db.add(obj)
        await db.commit()
        await db.refresh(obj)
        return obj

    @staticmethod
    async def get(
        db: AsyncSession, user_id: int, code: str, code_type: str
    ) -> Optional[VerificationCode]:
        result = await db.execute(
            select(VerificationCode).where(
                VerificationCode.user_id == user_id,
                VerificationCode.code == code,
                VerificationCode.code_type == code_type,
                VerificationCode.is_used == False,  # noqa: E712
            )
        )
        return result.scalar_one_or_none()

    @staticmethod
    async def verify(
        db: AsyncSession, user_id: int, code: str, code_type: str
    ) -> bool:
        """Redeem a code, counting the attempt even when it fails."""
        obj = await VerificationCodeCRUD.get(db, user_id, code, code_type)
        if not obj:
            return False
        obj.increment_attempts()
        db.add(obj)
        if not obj.is_valid():
            await db.commit()
            return False
        obj.mark_as_used()
        db.add(obj)
        await db.commit()
        return True

    @staticmethod
    async def get_latest(
        db: AsyncSession, user_id: int, code_type: str
    ) -> Optional[VerificationCode]:
        result = await db.execute(
            select(VerificationCode)
            .where(
                VerificationCode.user_id == user_id,
                VerificationCode.code_type == code_type,
            )
            .order_by(VerificationCode.created_at.desc())
        )
        return result.scalars().first()

    @staticmethod
    async def invalidate_user_codes(
        db: AsyncSession, user_id: int, code_type: str
    ) -> int:
        """Mark a user's outstanding codes as used; returns the count."""
        result = await db.execute(
            select(VerificationCode).where(
                VerificationCode.user_id == user_id,
                VerificationCode.code_type == code_type,
                VerificationCode.is_used == False,  # noqa: E712
            )
        )
        codes = list(result.scalars().all())
        for obj in codes:
            obj.mark_as_used()
            db.add(obj)
        await db.commit()
        return len(codes)

    @staticmethod
    async def cleanup_expired(db: AsyncSession) -> int:
        """Delete expired codes; returns the count."""
        now = datetime.now(timezone.utc)
        result = await db.execute(
            select(VerificationCode).where(VerificationCode.expires_at < now)
        )
        codes = list(result.scalars().all())
        for obj in codes:
            await db.delete(obj)
        await db.commit()
        return len(codes)
`)

	if cfg.HasRefreshToken() {
		b.WriteString("\n\nrefresh_token_crud = RefreshTokenCRUD()\nverification_code_crud = VerificationCodeCRUD()\n")
	} else {
		b.WriteString("\n\nverification_code_crud = VerificationCodeCRUD()\n")
	}

	return tree.WritePython("app/crud/token.py", "Token CRUD operations", imports, b.String())
}
