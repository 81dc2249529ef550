package auth

import (
	"context"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

func generateUserSchema(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime",
		"from typing import Optional",
		"from pydantic import BaseModel, ConfigDict, EmailStr, Field, model_validator",
	}

	var b strings.Builder
	b.WriteString(`class UserBase(BaseModel):
    username: str = Field(..., min_length=3, max_length=50)
    email: EmailStr


class UserCreate(UserBase):
    password: str = Field(..., min_length=8, max_length=128)


class UserUpdate(BaseModel):
    username: Optional[str] = Field(default=None, min_length=3, max_length=50)
    email: Optional[EmailStr] = None
    password: Optional[str] = Field(default=None, min_length=8, max_length=128)


class UserResponse(UserBase):
    model_config = ConfigDict(from_attributes=True)

    id: int
    is_active: bool
    is_superuser: bool
`)
	if cfg.HasCompleteAuth() {
		b.WriteString("    is_verified: bool\n")
	}
	b.WriteString("    created_at: datetime\n")
	if cfg.HasCompleteAuth() {
		b.WriteString("    last_login_at: Optional[datetime] = None\n")
	}

	b.WriteString(`

class UserLogin(BaseModel):
    username: Optional[str] = None
    email: Optional[EmailStr] = None
    password: str

    @model_validator(mode="after")
    def check_username_or_email(self) -> "UserLogin":
        if not self.username and not self.email:
            raise ValueError("Either username or email must be provided")
        return self


class Token(BaseModel):
    access_token: str
`)
	if cfg.HasRefreshToken() {
		b.WriteString("    refresh_token: Optional[str] = None\n")
	}
	b.WriteString(`    token_type: str = "bearer"


class TokenData(BaseModel):
    user_id: Optional[int] = None
`)

	if cfg.HasCompleteAuth() {
		if cfg.HasRefreshToken() {
			b.WriteString(`

class RefreshTokenRequest(BaseModel):
    refresh_token: str
`)
		}
		b.WriteString(`

class EmailVerificationRequest(BaseModel):
    email: EmailStr
    code: str = Field(..., min_length=6, max_length=10)


class ResendVerificationRequest(BaseModel):
    email: EmailStr


class PasswordResetRequest(BaseModel):
    email: EmailStr


class PasswordResetConfirm(BaseModel):
    email: EmailStr
    code: str = Field(..., min_length=6, max_length=10)
    new_password: str = Field(..., min_length=8, max_length=128)


class PasswordChange(BaseModel):
    model_config = ConfigDict(
        json_schema_extra={
            "example": {
                "current_password": "OldPassword123",
                "new_password": "NewPassword456",
            }
        }
    )

    current_password: str
    new_password: str = Field(..., min_length=8, max_length=128)
`)
	}

	return tree.WritePython("app/schemas/user.py", "User schemas", imports, b.String())
}

func generateTokenSchema(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from datetime import datetime",
		"from typing import Optional",
		"from pydantic import BaseModel, ConfigDict, Field",
	}

	var b strings.Builder
	if cfg.HasRefreshToken() {
		b.WriteString(`class RefreshTokenBase(BaseModel):
    token: str
    user_id: int
    expires_at: datetime


class RefreshTokenCreate(RefreshTokenBase):
    device_name: Optional[str] = None
    device_type: Optional[str] = None
    ip_address: Optional[str] = None
    user_agent: Optional[str] = None


class RefreshTokenResponse(BaseModel):
    model_config = ConfigDict(from_attributes=True)

    id: int
    device_name: Optional[str] = None
    device_type: Optional[str] = None
    ip_address: Optional[str] = None
    is_revoked: bool
    created_at: datetime
    last_used_at: Optional[datetime] = None


class RefreshTokenRevoke(BaseModel):
    token_id: int


`)
	}
	b.WriteString(`class VerificationCodeBase(BaseModel):
    user_id: int
    code: str = Field(..., max_length=10)
    code_type: str = Field(..., max_length=20)


class VerificationCodeCreate(VerificationCodeBase):
    expires_at: datetime
    max_attempts: int = 5


class VerificationCodeResponse(BaseModel):
    model_config = ConfigDict(from_attributes=True)

    id: int
    code_type: str
    expires_at: datetime
    is_used: bool
    attempts: int
    created_at: datetime


class VerificationCodeVerify(BaseModel):
    code: str = Field(..., min_length=6, max_length=10)
    code_type: str
`)

	return tree.WritePython("app/schemas/token.py", "Token schemas", imports, b.String())
}
