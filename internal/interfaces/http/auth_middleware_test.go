package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpiface "github.com/jhoicas/Panaderia-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Panaderia-api/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-prueba"
	testIssuer    = "panaderia-api-test"
	testUserID    = "11111111-1111-1111-1111-111111111111"
	testExpMin    = 15
)

// buildTestApp app mínima con una ruta protegida y otra solo-admin.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", httpiface.AuthMiddleware(testJWTSecret))
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": httpiface.GetUserID(c),
			"role":    httpiface.GetRole(c),
		})
	})
	protected.Get("/admin-only", httpiface.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// ──────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenMalformado(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, "/me", "no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeUserIDYRole(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, "/me", tokenForRole(t, "user"))
	require.Equal(t, fiber.StatusOK, status)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, testUserID, out["user_id"])
	assert.Equal(t, "user", out["role"])
}

func TestAuthMiddleware_SecretIncorrecto(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate("otro-secreto", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	status, body := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -5)
	require.NoError(t, err)

	status, _ := doRequest(t, app, "/me", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, "/admin-only", tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "true")
}

func TestRequireAdmin_UsuarioComunBloqueado(t *testing.T) {
	app := buildTestApp()
	status, body := doRequest(t, app, "/admin-only", tokenForRole(t, "user"))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────
// pkg/jwt
// ──────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateParse(t *testing.T) {
	token, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "admin", role)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "user", testIssuer, testExpMin)
	assert.Error(t, err)

	_, _, err = pkgjwt.Parse("", "cualquier-cosa")
	assert.Error(t, err)
}
