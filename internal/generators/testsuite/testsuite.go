// Package testsuite registers the units that write the generated
// application's pytest suite: shared fixtures plus smoke, auth, and
// user endpoint tests.
package testsuite

import (
	"context"
	"fmt"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the test suite units to the registry.
func Register(reg *orchestrator.Registry) {
	testing := func(cfg *config.Config) bool { return cfg.HasTesting() }
	testingWithAuth := func(cfg *config.Config) bool { return cfg.HasTesting() && cfg.HasAuth() }

	reg.MustRegister(orchestrator.Unit{
		Name:        "conftest",
		Category:    "testing",
		Priority:    110,
		EnabledWhen: testing,
		Description: "Write the shared pytest fixtures",
		Generate:    generateConftest,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "test-main",
		Category:    "testing",
		Priority:    111,
		Requires:    []string{"conftest"},
		EnabledWhen: testing,
		Description: "Write the application smoke tests",
		Generate:    generateTestMain,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "test-auth",
		Category:    "testing",
		Priority:    112,
		Requires:    []string{"conftest"},
		EnabledWhen: testingWithAuth,
		Description: "Write the authentication flow tests",
		Generate:    generateTestAuth,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "test-users",
		Category:    "testing",
		Priority:    113,
		Requires:    []string{"conftest"},
		EnabledWhen: testingWithAuth,
		Description: "Write the user endpoint tests",
		Generate:    generateTestUsers,
	})
}

func generateConftest(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"import pytest_asyncio",
		"from httpx import ASGITransport, AsyncClient",
		"from app.main import app",
	}
	if cfg.HasDatabase() {
		if cfg.ORMType() == config.ORMSQLModel {
			imports = append(imports,
				"from sqlmodel import SQLModel",
				"from app.core.database import db_manager",
			)
		} else {
			imports = append(imports, "from app.core.database import Base, db_manager")
		}
	}
	if cfg.HasCompleteAuth() {
		imports = append(imports, "from app.crud.user import user_crud")
	}

	var b strings.Builder

	if cfg.HasDatabase() {
		fmt.Fprintf(&b, `@pytest_asyncio.fixture(autouse=True)
async def _database():
    """Initialize the database layer and make sure the tables exist.

    The test client does not run the application lifespan, so the
    engines are set up here instead.
    """
    await db_manager.initialize()
    async with db_manager.%s.async_engine.begin() as conn:
        await conn.run_sync(%s.metadata.create_all)
    yield
    await db_manager.close()


`, strings.ToLower(cfg.DatabaseType())+"_manager", metadataOwner(cfg))
	}

	b.WriteString(`@pytest_asyncio.fixture
async def client():
    """HTTP client bound to the application without a running server."""
    transport = ASGITransport(app=app)
    async with AsyncClient(transport=transport, base_url="http://test") as c:
        yield c
`)

	if cfg.HasAuth() {
		b.WriteString(`

@pytest_asyncio.fixture
async def auth_headers(client: AsyncClient) -> dict[str, str]:
    """Register and log in a throwaway user, returning bearer headers.

    Registration failures are ignored so the fixture can run more than
    once per session; login always goes through the email, which other
    tests never change.
    """
    credentials = {
        "username": "testuser",
        "email": "testuser@example.com",
        "password": "TestPassword123",
    }
    await client.post("/api/v1/auth/register", json=credentials)
`)
		if cfg.HasCompleteAuth() {
			manager := strings.ToLower(cfg.DatabaseType()) + "_manager"
			fmt.Fprintf(&b, `    async with db_manager.%s.async_session_maker() as db:
        user = await user_crud.get_by_email(db, credentials["email"])
        if user and not user.is_verified:
            await user_crud.verify_email(db, user)
`, manager)
		}
		b.WriteString(`    response = await client.post(
        "/api/v1/auth/login",
        json={"email": credentials["email"], "password": credentials["password"]},
    )
    token = response.json()["access_token"]
    return {"Authorization": f"Bearer {token}"}
`)
	}

	return tree.WritePython("tests/conftest.py", "Shared test fixtures", imports, b.String())
}

// metadataOwner names the object whose metadata carries the table
// definitions for the configured ORM.
func metadataOwner(cfg *config.Config) string {
	if cfg.ORMType() == config.ORMSQLModel {
		return "SQLModel"
	}
	return "Base"
}

func generateTestMain(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"import pytest",
		"from httpx import AsyncClient",
	}

	body := fmt.Sprintf(`@pytest.mark.asyncio
async def test_health_check(client: AsyncClient):
    response = await client.get("/health")
    assert response.status_code == 200
    assert response.json() == {"status": "healthy"}


@pytest.mark.asyncio
async def test_openapi_schema(client: AsyncClient):
    response = await client.get("/openapi.json")
    assert response.status_code == 200
    assert response.json()["info"]["title"] == %q
`, cfg.ProjectName)

	return tree.WritePython("tests/test_main.py", "Application smoke tests", imports, body)
}

func generateTestAuth(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	imports := []string{
		"import pytest",
		"from httpx import AsyncClient",
	}

	var b strings.Builder
	b.WriteString(`CREDENTIALS = {
    "username": "authuser",
    "email": "authuser@example.com",
    "password": "AuthPassword123",
}


@pytest.mark.asyncio
async def test_register(client: AsyncClient):
    response = await client.post("/api/v1/auth/register", json=CREDENTIALS)
    assert response.status_code == 201
    data = response.json()
    assert data["username"] == CREDENTIALS["username"]
    assert data["email"] == CREDENTIALS["email"]
    assert "hashed_password" not in data


@pytest.mark.asyncio
async def test_register_duplicate_username(client: AsyncClient):
    await client.post("/api/v1/auth/register", json=CREDENTIALS)
    response = await client.post("/api/v1/auth/register", json=CREDENTIALS)
    assert response.status_code == 400


@pytest.mark.asyncio
async def test_login_wrong_password(client: AsyncClient):
    await client.post("/api/v1/auth/register", json=CREDENTIALS)
    response = await client.post(
        "/api/v1/auth/login",
        json={"username": CREDENTIALS["username"], "password": "WrongPassword1"},
    )
    assert response.status_code == 401
`)

	if cfg.HasCompleteAuth() {
		b.WriteString(`

@pytest.mark.asyncio
async def test_login_unverified(client: AsyncClient):
    await client.post("/api/v1/auth/register", json=CREDENTIALS)
    response = await client.post(
        "/api/v1/auth/login",
        json={
            "username": CREDENTIALS["username"],
            "password": CREDENTIALS["password"],
        },
    )
    assert response.status_code == 403
`)
	} else {
		b.WriteString(`

@pytest.mark.asyncio
async def test_login(client: AsyncClient):
    await client.post("/api/v1/auth/register", json=CREDENTIALS)
    response = await client.post(
        "/api/v1/auth/login",
        json={
            "username": CREDENTIALS["username"],
            "password": CREDENTIALS["password"],
        },
    )
    assert response.status_code == 200
    data = response.json()
    assert data["token_type"] == "bearer"
    assert data["access_token"]
`)
	}

	return tree.WritePython("tests/test_auth.py", "Authentication flow tests", imports, b.String())
}

func generateTestUsers(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	imports := []string{
		"import pytest",
		"from httpx import AsyncClient",
	}

	body := `@pytest.mark.asyncio
async def test_get_current_user(client: AsyncClient, auth_headers: dict[str, str]):
    response = await client.get("/api/v1/users/me", headers=auth_headers)
    assert response.status_code == 200
    data = response.json()
    assert data["username"] == "testuser"
    assert data["email"] == "testuser@example.com"


@pytest.mark.asyncio
async def test_get_user_without_auth(client: AsyncClient):
    response = await client.get("/api/v1/users/me")
    assert response.status_code == 401


@pytest.mark.asyncio
async def test_update_current_user(client: AsyncClient, auth_headers: dict[str, str]):
    response = await client.put(
        "/api/v1/users/me",
        headers=auth_headers,
        json={"username": "updateduser"},
    )
    assert response.status_code == 200
    assert response.json()["username"] == "updateduser"
`

	return tree.WritePython("tests/api/test_users.py", "User endpoint tests", imports, body)
}
