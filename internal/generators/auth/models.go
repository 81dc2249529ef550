package auth

import (
	"context"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

func generateUserModel(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	if cfg.ORMType() == config.ORMSQLModel {
		return writeSQLModelUser(tree, cfg)
	}
	return writeSQLAlchemyUser(tree, cfg)
}

func writeSQLModelUser(tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime, timezone",
		"from typing import Optional",
		"from sqlmodel import Field, SQLModel",
	}

	var b strings.Builder
	b.WriteString(`class User(SQLModel, table=True):
    """Application user account."""

    __tablename__ = "users"

    id: Optional[int] = Field(default=None, primary_key=True)
    username: str = Field(index=True, unique=True, max_length=50)
    email: str = Field(index=True, unique=True, max_length=255)
    hashed_password: str = Field(max_length=255)
    is_active: bool = Field(default=True)
    is_superuser: bool = Field(default=False)
`)
	if cfg.HasCompleteAuth() {
		b.WriteString("    is_verified: bool = Field(default=False)\n")
	}
	b.WriteString(`    created_at: datetime = Field(
        default_factory=lambda: datetime.now(timezone.utc)
    )
    updated_at: Optional[datetime] = Field(default=None)
`)
	if cfg.HasCompleteAuth() {
		b.WriteString("    last_login_at: Optional[datetime] = Field(default=None)\n")
	}

	return tree.WritePython("app/models/user.py", "User model", imports, b.String())
}

func writeSQLAlchemyUser(tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime, timezone",
		"from sqlalchemy import Boolean, Column, DateTime, Integer, String",
		"from app.core.database import Base",
	}

	var b strings.Builder
	b.WriteString(`class User(Base):
    """Application user account."""

    __tablename__ = "users"

    id = Column(Integer, primary_key=True, index=True)
    username = Column(String(50), unique=True, index=True, nullable=False)
    email = Column(String(255), unique=True, index=True, nullable=False)
    hashed_password = Column(String(255), nullable=False)
    is_active = Column(Boolean, default=True, nullable=False)
    is_superuser = Column(Boolean, default=False, nullable=False)
`)
	if cfg.HasCompleteAuth() {
		b.WriteString("    is_verified = Column(Boolean, default=False, nullable=False)\n")
	}
	b.WriteString(`    created_at = Column(
        DateTime(timezone=True),
        default=lambda: datetime.now(timezone.utc),
        nullable=False,
    )
    updated_at = Column(DateTime(timezone=True), nullable=True)
`)
	if cfg.HasCompleteAuth() {
		b.WriteString("    last_login_at = Column(DateTime(timezone=True), nullable=True)\n")
	}
	b.WriteString(`
    def __repr__(self) -> str:
        return f"<User id={self.id} username={self.username!r}>"
`)

	return tree.WritePython("app/models/user.py", "User model", imports, b.String())
}

func generateTokenModel(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	if cfg.ORMType() == config.ORMSQLModel {
		return writeSQLModelTokens(tree, cfg)
	}
	return writeSQLAlchemyTokens(tree, cfg)
}

func writeSQLModelTokens(tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime, timezone",
		"from typing import Optional",
		"from sqlmodel import Field, SQLModel",
	}

	var b strings.Builder
	if cfg.HasRefreshToken() {
		b.WriteString(`class RefreshToken(SQLModel, table=True):
    """Long-lived token backing a login session on one device."""

    __tablename__ = "refresh_tokens"

    id: Optional[int] = Field(default=None, primary_key=True)
    token: str = Field(index=True, unique=True, max_length=500)
    user_id: int = Field(foreign_key="users.id", index=True)
    expires_at: datetime
    is_revoked: bool = Field(default=False)
    revoked_at: Optional[datetime] = Field(default=None)
    device_name: Optional[str] = Field(default=None, max_length=100)
    device_type: Optional[str] = Field(default=None, max_length=50)
    ip_address: Optional[str] = Field(default=None, max_length=45)
    user_agent: Optional[str] = Field(default=None, max_length=500)
    created_at: datetime = Field(
        default_factory=lambda: datetime.now(timezone.utc)
    )
    last_used_at: Optional[datetime] = Field(default=None)

    def is_valid(self) -> bool:
        """Whether the token can still be used."""
        expires_at = self.expires_at
        if expires_at.tzinfo is None:
            expires_at = expires_at.replace(tzinfo=timezone.utc)
        return not self.is_revoked and expires_at > datetime.now(timezone.utc)

    def revoke(self) -> None:
        """Mark the token as revoked."""
        self.is_revoked = True
        self.revoked_at = datetime.now(timezone.utc)


`)
	}
	b.WriteString(`class VerificationCode(SQLModel, table=True):
    """One-time code for email verification and password reset."""

    __tablename__ = "verification_codes"

    id: Optional[int] = Field(default=None, primary_key=True)
    user_id: int = Field(foreign_key="users.id", index=True)
    code: str = Field(index=True, max_length=10)
    code_type: str = Field(max_length=20)
    expires_at: datetime
    is_used: bool = Field(default=False)
    used_at: Optional[datetime] = Field(default=None)
    attempts: int = Field(default=0)
    max_attempts: int = Field(default=5)
    created_at: datetime = Field(
        default_factory=lambda: datetime.now(timezone.utc)
    )

    def is_valid(self) -> bool:
        """Whether the code can still be redeemed."""
        expires_at = self.expires_at
        if expires_at.tzinfo is None:
            expires_at = expires_at.replace(tzinfo=timezone.utc)
        return (
            not self.is_used
            and self.attempts < self.max_attempts
            and expires_at > datetime.now(timezone.utc)
        )

    def increment_attempts(self) -> None:
        """Record a redemption attempt."""
        self.attempts += 1

    def mark_as_used(self) -> None:
        """Consume the code."""
        self.is_used = True
        self.used_at = datetime.now(timezone.utc)
`)

	return tree.WritePython("app/models/token.py", "Token models", imports, b.String())
}

func writeSQLAlchemyTokens(tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime, timezone",
		"from sqlalchemy import Boolean, Column, DateTime, ForeignKey, Integer, String",
		"from sqlalchemy.orm import relationship",
		"from app.core.database import Base",
	}

	var b strings.Builder
	if cfg.HasRefreshToken() {
		b.WriteString(`class RefreshToken(Base):
    """Long-lived token backing a login session on one device."""

    __tablename__ = "refresh_tokens"

    id = Column(Integer, primary_key=True, index=True)
    token = Column(String(500), unique=True, index=True, nullable=False)
    user_id = Column(Integer, ForeignKey("users.id"), index=True, nullable=False)
    expires_at = Column(DateTime(timezone=True), nullable=False)
    is_revoked = Column(Boolean, default=False, nullable=False)
    revoked_at = Column(DateTime(timezone=True), nullable=True)
    device_name = Column(String(100), nullable=True)
    device_type = Column(String(50), nullable=True)
    ip_address = Column(String(45), nullable=True)
    user_agent = Column(String(500), nullable=True)
    created_at = Column(
        DateTime(timezone=True),
        default=lambda: datetime.now(timezone.utc),
        nullable=False,
    )
    last_used_at = Column(DateTime(timezone=True), nullable=True)

    user = relationship("User", backref="refresh_tokens")

    def is_valid(self) -> bool:
        """Whether the token can still be used."""
        expires_at = self.expires_at
        if expires_at.tzinfo is None:
            expires_at = expires_at.replace(tzinfo=timezone.utc)
        return not self.is_revoked and expires_at > datetime.now(timezone.utc)

    def revoke(self) -> None:
        """Mark the token as revoked."""
        self.is_revoked = True
        self.revoked_at = datetime.now(timezone.utc)

    def __repr__(self) -> str:
        return f"<RefreshToken id={self.id} user_id={self.user_id}>"


`)
	}
	b.WriteString(`class VerificationCode(Base):
    """One-time code for email verification and password reset."""

    __tablename__ = "verification_codes"

    id = Column(Integer, primary_key=True, index=True)
    user_id = Column(Integer, ForeignKey("users.id"), index=True, nullable=False)
    code = Column(String(10), index=True, nullable=False)
    code_type = Column(String(20), nullable=False)
    expires_at = Column(DateTime(timezone=True), nullable=False)
    is_used = Column(Boolean, default=False, nullable=False)
    used_at = Column(DateTime(timezone=True), nullable=True)
    attempts = Column(Integer, default=0, nullable=False)
    max_attempts = Column(Integer, default=5, nullable=False)
    created_at = Column(
        DateTime(timezone=True),
        default=lambda: datetime.now(timezone.utc),
        nullable=False,
    )

    user = relationship("User", backref="verification_codes")

    def is_valid(self) -> bool:
        """Whether the code can still be redeemed."""
        expires_at = self.expires_at
        if expires_at.tzinfo is None:
            expires_at = expires_at.replace(tzinfo=timezone.utc)
        return (
            not self.is_used
            and self.attempts < self.max_attempts
            and expires_at > datetime.now(timezone.utc)
        )

    def increment_attempts(self) -> None:
        """Record a redemption attempt."""
        self.attempts += 1

    def mark_as_used(self) -> None:
        """Consume the code."""
        self.is_used = True
        self.used_at = datetime.now(timezone.utc)

    def __repr__(self) -> str:
        return f"<VerificationCode id={self.id} code_type={self.code_type!r}>"
`)

	return tree.WritePython("app/models/token.py", "Token models", imports, b.String())
}
