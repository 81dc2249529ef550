package auth

import (
	"context"
	"sort"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

func generateAuthRouter(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	if cfg.HasCompleteAuth() {
		return writeCompleteAuthRouter(tree, cfg)
	}
	return writeBasicAuthRouter(tree)
}

func writeBasicAuthRouter(tree *fsutil.Tree) error {
	imports := []string{
		"from fastapi import APIRouter, Depends, HTTPException, status",
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"from app.core.database import get_db",
		"from app.schemas.user import Token, UserCreate, UserLogin, UserResponse",
		"from app.services.auth import auth_service",
	}

	body := `router = APIRouter(prefix="/auth", tags=["Authentication"])


@router.post(
    "/register",
    response_model=UserResponse,
    status_code=status.HTTP_201_CREATED,
)
async def register(user_in: UserCreate, db: AsyncSession = Depends(get_db)):
    """Create a new user account."""
    try:
        return await auth_service.register_user(db, user_in)
    except ValueError as e:
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST, detail=str(e)
        )


@router.post("/login", response_model=Token)
async def login(credentials: UserLogin, db: AsyncSession = Depends(get_db)):
    """Exchange credentials for an access token."""
    identifier = credentials.email or credentials.username
    token = await auth_service.login_user(db, identifier, credentials.password)
    if not token:
        raise HTTPException(
            status_code=status.HTTP_401_UNAUTHORIZED,
            detail="Incorrect username or password",
        )
    return token
`

	return tree.WritePython("app/routers/v1/auth.py", "Authentication endpoints", imports, body)
}

func writeCompleteAuthRouter(tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"from fastapi import APIRouter, Depends, HTTPException, Request, status",
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"from app.core.database import get_db",
		"from app.core.deps import get_current_user",
		"from app.crud.user import user_crud",
		"from app.models.user import User",
		"from app.services.auth import auth_service",
	}
	userSchemas := []string{
		"EmailVerificationRequest",
		"PasswordChange",
		"PasswordResetConfirm",
		"PasswordResetRequest",
		"ResendVerificationRequest",
		"Token",
		"UserCreate",
		"UserLogin",
		"UserResponse",
	}
	if cfg.HasRefreshToken() {
		userSchemas = append(userSchemas, "RefreshTokenRequest")
		imports = append(imports,
			"from app.crud.token import refresh_token_crud",
			"from app.schemas.token import RefreshTokenResponse",
		)
	}
	// Keep the schema import sorted the way ruff's isort rules expect.
	sort.Strings(userSchemas)
	imports = append(imports,
		"from app.schemas.user import (\n    "+strings.Join(userSchemas, ",\n    ")+",\n)")

	var b strings.Builder
	b.WriteString(`router = APIRouter(prefix="/auth", tags=["Authentication"])


@router.post(
    "/register",
    response_model=UserResponse,
    status_code=status.HTTP_201_CREATED,
)
async def register(user_in: UserCreate, db: AsyncSession = Depends(get_db)):
    """Create a new user account and send a verification email."""
    try:
        return await auth_service.register_user(db, user_in)
    except ValueError as e:
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST, detail=str(e)
        )


@router.post("/login", response_model=Token)
async def login(
    credentials: UserLogin,
    request: Request,
    db: AsyncSession = Depends(get_db),
):
    """Exchange credentials for tokens. Fails for unverified accounts."""
    identifier = credentials.email or credentials.username
`)
	if cfg.HasRefreshToken() {
		b.WriteString(`    user_agent = request.headers.get("user-agent", "")
    ip_address = request.client.host if request.client else None
    try:
        token = await auth_service.login_user(
            db,
            identifier,
            credentials.password,
            device_name=user_agent[:100] if user_agent else None,
            device_type="web",
            ip_address=ip_address,
            user_agent=user_agent,
        )
`)
	} else {
		b.WriteString(`    try:
        token = await auth_service.login_user(db, identifier, credentials.password)
`)
	}
	b.WriteString(`    except ValueError as e:
        raise HTTPException(status_code=status.HTTP_403_FORBIDDEN, detail=str(e))
    if not token:
        raise HTTPException(
            status_code=status.HTTP_401_UNAUTHORIZED,
            detail="Incorrect username or password",
        )
    return token
`)

	if cfg.HasRefreshToken() {
		b.WriteString(`

@router.post("/logout")
async def logout(
    payload: RefreshTokenRequest, db: AsyncSession = Depends(get_db)
):
    """Revoke one refresh token."""
    if not await auth_service.logout_user(db, payload.refresh_token):
        raise HTTPException(
            status_code=status.HTTP_404_NOT_FOUND, detail="Token not found"
        )
    return {"message": "Logged out successfully"}


@router.post("/logout-all")
async def logout_all(
    current_user: User = Depends(get_current_user),
    db: AsyncSession = Depends(get_db),
):
    """Revoke every active session of the authenticated user."""
    count = await auth_service.logout_all_devices(db, current_user)
    return {"message": f"Logged out from {count} devices"}


@router.post("/refresh", response_model=Token)
async def refresh(
    payload: RefreshTokenRequest, db: AsyncSession = Depends(get_db)
):
    """Mint a new access token from a refresh token."""
    token = await auth_service.refresh_access_token(db, payload.refresh_token)
    if not token:
        raise HTTPException(
            status_code=status.HTTP_401_UNAUTHORIZED,
            detail="Invalid or expired refresh token",
        )
    return token
`)
	}

	b.WriteString(`

@router.post("/verify-email")
async def verify_email(
    payload: EmailVerificationRequest, db: AsyncSession = Depends(get_db)
):
    """Redeem an email verification code."""
    user = await user_crud.get_by_email(db, payload.email)
    if not user:
        raise HTTPException(
            status_code=status.HTTP_404_NOT_FOUND, detail="User not found"
        )
    if user.is_verified:
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST,
            detail="Email is already verified",
        )
    if not await auth_service.verify_email(db, user, payload.code):
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST,
            detail="Invalid or expired verification code",
        )
    return {"message": "Email verified successfully"}


@router.post("/resend-verification")
async def resend_verification(
    payload: ResendVerificationRequest, db: AsyncSession = Depends(get_db)
):
    """Send a fresh verification code without revealing account existence."""
    user = await user_crud.get_by_email(db, payload.email)
    if user:
        if user.is_verified:
            raise HTTPException(
                status_code=status.HTTP_400_BAD_REQUEST,
                detail="Email is already verified",
            )
        await auth_service.send_verification_email(db, user)
    return {"message": "If the email exists, a verification code has been sent"}


@router.post("/forgot-password")
async def forgot_password(
    payload: PasswordResetRequest, db: AsyncSession = Depends(get_db)
):
    """Send a password reset code without revealing account existence."""
    await auth_service.request_password_reset(db, payload.email)
    return {"message": "If the email exists, a password reset code has been sent"}


@router.post("/reset-password")
async def reset_password(
    payload: PasswordResetConfirm, db: AsyncSession = Depends(get_db)
):
    """Redeem a reset code and set a new password."""
    ok = await auth_service.reset_password(
        db, payload.email, payload.code, payload.new_password
    )
    if not ok:
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST,
            detail="Invalid or expired reset code",
        )
    return {"message": "Password reset successfully"}


@router.post("/change-password")
async def change_password(
    payload: PasswordChange,
    current_user: User = Depends(get_current_user),
    db: AsyncSession = Depends(get_db),
):
    """Change the password after re-checking the current one."""
    user = await user_crud.authenticate(
        db, current_user.username, payload.current_password
    )
    if not user:
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST,
            detail="Current password is incorrect",
        )
    await user_crud.change_password(db, user, payload.new_password)
`)
	if cfg.HasRefreshToken() {
		b.WriteString(`    await refresh_token_crud.revoke_user_tokens(db, user.id)
`)
	}
	b.WriteString(`    return {"message": "Password changed successfully"}
`)

	if cfg.HasRefreshToken() {
		b.WriteString(`

@router.get("/devices", response_model=list[RefreshTokenResponse])
async def list_devices(
    current_user: User = Depends(get_current_user),
    db: AsyncSession = Depends(get_db),
):
    """List the authenticated user's active sessions."""
    return await refresh_token_crud.get_user_tokens(db, current_user.id)
`)
	}

	return tree.WritePython("app/routers/v1/auth.py", "Authentication endpoints", imports, b.String())
}

func generateUserRouter(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	imports := []string{
		"from fastapi import APIRouter, Depends, HTTPException, status",
		"from sqlalchemy.ext.asyncio import AsyncSession",
		"from app.core.database import get_db",
		"from app.core.deps import get_current_superuser, get_current_user",
		"from app.crud.user import user_crud",
		"from app.models.user import User",
		"from app.schemas.user import UserResponse, UserUpdate",
	}

	body := `router = APIRouter(prefix="/users", tags=["Users"])


@router.get("/me", response_model=UserResponse)
async def get_me(current_user: User = Depends(get_current_user)):
    """Return the authenticated user."""
    return current_user


@router.put("/me", response_model=UserResponse)
async def update_me(
    user_in: UserUpdate,
    current_user: User = Depends(get_current_user),
    db: AsyncSession = Depends(get_db),
):
    """Update the authenticated user, rejecting taken usernames and emails."""
    if user_in.username and user_in.username != current_user.username:
        if await user_crud.get_by_username(db, user_in.username):
            raise HTTPException(
                status_code=status.HTTP_400_BAD_REQUEST,
                detail="Username already taken",
            )
    if user_in.email and user_in.email != current_user.email:
        if await user_crud.get_by_email(db, user_in.email):
            raise HTTPException(
                status_code=status.HTTP_400_BAD_REQUEST,
                detail="Email already taken",
            )
    return await user_crud.update(db, current_user, user_in)


@router.delete("/me", status_code=status.HTTP_204_NO_CONTENT)
async def delete_me(
    current_user: User = Depends(get_current_user),
    db: AsyncSession = Depends(get_db),
):
    """Delete the authenticated user's account."""
    await user_crud.delete(db, current_user)


@router.get("/", response_model=list[UserResponse])
async def list_users(
    skip: int = 0,
    limit: int = 100,
    _: User = Depends(get_current_superuser),
    db: AsyncSession = Depends(get_db),
):
    """List users. Superusers only."""
    return await user_crud.get_all(db, skip=skip, limit=limit)


@router.get("/{user_id}", response_model=UserResponse)
async def get_user(
    user_id: int,
    _: User = Depends(get_current_superuser),
    db: AsyncSession = Depends(get_db),
):
    """Fetch one user by id. Superusers only."""
    user = await user_crud.get_by_id(db, user_id)
    if not user:
        raise HTTPException(
            status_code=status.HTTP_404_NOT_FOUND, detail="User not found"
        )
    return user


@router.put("/{user_id}", response_model=UserResponse)
async def update_user(
    user_id: int,
    user_in: UserUpdate,
    _: User = Depends(get_current_superuser),
    db: AsyncSession = Depends(get_db),
):
    """Update one user by id. Superusers only."""
    user = await user_crud.get_by_id(db, user_id)
    if not user:
        raise HTTPException(
            status_code=status.HTTP_404_NOT_FOUND, detail="User not found"
        )
    return await user_crud.update(db, user, user_in)


@router.delete("/{user_id}", status_code=status.HTTP_204_NO_CONTENT)
async def delete_user(
    user_id: int,
    current_user: User = Depends(get_current_superuser),
    db: AsyncSession = Depends(get_db),
):
    """Delete one user by id. Superusers cannot delete themselves."""
    user = await user_crud.get_by_id(db, user_id)
    if not user:
        raise HTTPException(
            status_code=status.HTTP_404_NOT_FOUND, detail="User not found"
        )
    if user.id == current_user.id:
        raise HTTPException(
            status_code=status.HTTP_400_BAD_REQUEST,
            detail="Cannot delete yourself",
        )
    await user_crud.delete(db, user)
`

	return tree.WritePython("app/routers/v1/users.py", "User endpoints", imports, body)
}

func generateAPIV1Router(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	imports := []string{
		"from .auth import router as auth_router",
		"from .users import router as user_router",
	}

	body := `__all__ = ["auth_router", "user_router"]
`

	return tree.WritePython("app/routers/v1/__init__.py", "API v1 routers", imports, body)
}
