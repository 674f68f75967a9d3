package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"covoiturage-api/config"
	"covoiturage-api/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "",
		map[string]interface{}{"email": "new@test.io", "password": "secret123", "role": "passenger"})
	wantStatus(t, w, http.StatusCreated)
	body := decodeBody(t, w)
	if body["token"] == nil || body["token"].(string) == "" {
		t.Fatal("register returned no token")
	}

	w = doJSON(r, http.MethodPost, "/api/auth/login", "",
		map[string]interface{}{"email": "new@test.io", "password": "secret123"})
	wantStatus(t, w, http.StatusOK)

	token := decodeBody(t, w)["token"].(string)
	w = doJSON(r, http.MethodGet, "/api/profile", token, nil)
	wantStatus(t, w, http.StatusOK)
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	r, _ := setupRouter(t)
	createUser(t, "taken@test.io", models.RolePassenger)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "",
		map[string]interface{}{"email": "taken@test.io", "password": "secret123", "role": "driver"})
	wantStatus(t, w, http.StatusConflict)
}

func TestRegisterAdminRoleRejected(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "",
		map[string]interface{}{"email": "boss@test.io", "password": "secret123", "role": "admin"})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "",
		map[string]interface{}{"email": "new@test.io", "password": "abc", "role": "passenger"})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	r, _ := setupRouter(t)
	createUser(t, "user@test.io", models.RolePassenger)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "",
		map[string]interface{}{"email": "user@test.io", "password": "wrongpass"})
	wantStatus(t, w, http.StatusUnauthorized)
}

func TestExpiredTokenRejected(t *testing.T) {
	r, _ := setupRouter(t)
	user, _ := createUser(t, "user@test.io", models.RolePassenger)

	// Token whose expiry passed one second ago
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(-time.Second).Unix(),
		"iat":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w := doJSON(r, http.MethodGet, "/api/profile", expired, nil)
	wantStatus(t, w, http.StatusUnauthorized)
}

func TestMissingTokenRejected(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/profile", "", nil)
	wantStatus(t, w, http.StatusUnauthorized)
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	r, _ := setupRouter(t)
	user, token := createUser(t, "user@test.io", models.RolePassenger)

	w := doJSON(r, http.MethodPut, "/api/profile", token,
		map[string]interface{}{"gender": "female", "role": "admin"})
	wantStatus(t, w, http.StatusOK)

	var reloaded models.User
	config.DB.First(&reloaded, user.ID)
	if reloaded.Gender != "female" {
		t.Errorf("gender = %q, want %q", reloaded.Gender, "female")
	}
	if reloaded.Role != models.RolePassenger {
		t.Errorf("role = %q, want unchanged %q", reloaded.Role, models.RolePassenger)
	}
}
