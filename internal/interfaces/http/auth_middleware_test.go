package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-api/internal/domain/entity"
	apphttp "github.com/jhoicas/leads-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/leads-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "leads-api-test"
)

// fakeUsers is an in-memory UserRepository with a single known user.
type fakeUsers struct {
	user *entity.User
}

func (f *fakeUsers) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

// buildTestApp builds a minimal Fiber app with one protected route that echoes
// the locals populated by the middleware.
func buildTestApp(users *fakeUsers) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, users),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":   apphttp.GetUserID(c),
				"user_name": apphttp.GetUserName(c),
			})
		},
	)
	return app
}

func knownUsers() *fakeUsers {
	return &fakeUsers{user: &entity.User{
		ID:    testUserID,
		Email: "alice@example.com",
		Name:  "Alice",
	}}
}

// doRequest issues GET /protected with the given cookie value ("" = no cookie).
func doRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	app := buildTestApp(knownUsers())
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := buildTestApp(knownUsers())
	resp := doRequest(t, app, "not.a.token")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := buildTestApp(knownUsers())
	tok, err := pkgjwt.Generate("a-completely-different-secret", testIssuer, testUserID)
	require.NoError(t, err)

	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	// pkg/jwt only issues tokens with the fixed TTL, so the expired token is
	// signed by hand here.
	claims := pkgjwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: testUserID,
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	app := buildTestApp(knownUsers())
	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TOKEN_EXPIRED")
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	// Valid token for a user that no longer exists.
	app := buildTestApp(&fakeUsers{})
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testUserID)
	require.NoError(t, err)

	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNKNOWN_USER")
}

func TestAuthMiddleware_PopulatesLocals(t *testing.T) {
	app := buildTestApp(knownUsers())
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testUserID)
	require.NoError(t, err)

	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "Alice", body["user_name"])
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testUserID)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testUserID)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("another-secret-entirely", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}
