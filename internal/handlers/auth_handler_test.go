package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"ambulance-backend/internal/models"
)

func TestSignupThenMe(t *testing.T) {
	s := newServer(t)
	token, id := s.signup("Jane", "Jane@Example.com")

	rec := s.do(http.MethodGet, "/me", token, nil)
	expectStatus(t, rec, http.StatusOK)

	var me map[string]interface{}
	decode(t, rec, &me)
	if me["email"] != "jane@example.com" {
		t.Errorf("email should be normalised, got %v", me["email"])
	}
	if uint64(me["id"].(float64)) != id {
		t.Errorf("expected id %d, got %v", id, me["id"])
	}
	if _, leaked := me["password_hash"]; leaked {
		t.Error("password hash must not be serialised")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newServer(t)
	s.signup("Jane", "jane@example.com")

	rec := s.do(http.MethodPost, "/signup", "", map[string]string{
		"name": "Other", "email": "jane@example.com", "password": "x",
	})
	expectStatus(t, rec, http.StatusBadRequest)
	if got := errorOf(t, rec); got != "Email already in use" {
		t.Errorf("unexpected error %q", got)
	}

	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestSignupValidation(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/signup", "", map[string]string{"name": "A", "email": "a@b.c"})
	expectStatus(t, rec, http.StatusBadRequest)
	if got := errorOf(t, rec); got != "Missing required field: password" {
		t.Errorf("unexpected error %q", got)
	}

	rec = s.do(http.MethodPost, "/signup", "", map[string]string{"name": "", "email": "a@b.c", "password": "x"})
	expectStatus(t, rec, http.StatusBadRequest)
	if got := errorOf(t, rec); got != "Field 'name' cannot be empty" {
		t.Errorf("unexpected error %q", got)
	}

	rec = s.do(http.MethodPost, "/signup", "", map[string]string{"name": "A", "email": "not-an-email", "password": "x"})
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestLogin(t *testing.T) {
	s := newServer(t)
	s.signup("Jane", "jane@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"correct", "jane@example.com", "secret123", http.StatusOK},
		{"case insensitive email", "JANE@example.com", "secret123", http.StatusOK},
		{"wrong password", "jane@example.com", "nope", http.StatusUnauthorized},
		{"unknown email", "ghost@example.com", "secret123", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/login", "", map[string]string{
				"email": tt.email, "password": tt.password,
			})
			expectStatus(t, rec, tt.want)
			if tt.want == http.StatusUnauthorized {
				if got := errorOf(t, rec); got != "Invalid email or password" {
					t.Errorf("unexpected error %q", got)
				}
				return
			}
			var out map[string]interface{}
			decode(t, rec, &out)
			if out["access_token"] == "" || out["access_token"] == nil {
				t.Error("expected access token")
			}
		})
	}
}

func TestProtectedRouteNeedsToken(t *testing.T) {
	s := newServer(t)

	expectStatus(t, s.do(http.MethodGet, "/me", "", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/requests", "garbage", nil), http.StatusUnauthorized)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newServer(t)
	token, _ := s.signup("Jane", "jane@example.com")

	expectStatus(t, s.do(http.MethodPost, "/logout", token, nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/me", token, nil), http.StatusUnauthorized)

	rec := s.do(http.MethodPost, "/login", "", map[string]string{"email": "jane@example.com", "password": "secret123"})
	expectStatus(t, rec, http.StatusOK)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &out)
	expectStatus(t, s.do(http.MethodGet, "/me", out.AccessToken, nil), http.StatusOK)
}

func TestListUsersFilters(t *testing.T) {
	s := newServer(t)
	token, _ := s.signup("Jane Doe", "jane@example.com")
	s.signup("Bob", "bob@example.com")

	rec := s.do(http.MethodGet, "/users?name=Jane", token, nil)
	expectStatus(t, rec, http.StatusOK)
	var users []models.User
	decode(t, rec, &users)
	if len(users) != 1 || users[0].Email != "jane@example.com" {
		t.Errorf("unexpected users %+v", users)
	}

	rec = s.do(http.MethodGet, "/user?email=nobody@example.com", token, nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "[]" {
		t.Errorf("expected empty list, got %s", rec.Body.String())
	}
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/signup", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": strings.Repeat("x", 100),
	})
	expectStatus(t, rec, http.StatusBadRequest)
	if got := errorOf(t, rec); got != "Password too long" {
		t.Errorf("unexpected error %q", got)
	}
}

func TestRegisterIsSignup(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "secret123",
	})
	expectStatus(t, rec, http.StatusCreated)

	rec = s.do(http.MethodPost, "/signup", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "secret123",
	})
	expectStatus(t, rec, http.StatusBadRequest)
}
