package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-billing/internal/events"
	"user-billing/internal/repository"
	"user-billing/internal/service"
)

func setupUserRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryUserRepository()
	bus := events.NewBus(zap.NewNop())
	svc := service.NewUserService(zap.NewNop(), repo, bus)
	return NewUserRouter(zap.NewNop(), NewUserHandler(zap.NewNop(), svc))
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUserHandlerCreateUser_Success(t *testing.T) {
	r := setupUserRouter()

	rec := performRequest(r, http.MethodPost, "/users", map[string]string{
		"email":       "a@x.com",
		"password":    "longenough",
		"displayName": "A",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if resp["id"] == "" || resp["id"] == nil {
		t.Fatalf("expected generated id in response")
	}
	if resp["email"] != "a@x.com" || resp["displayName"] != "A" {
		t.Fatalf("unexpected response body %v", resp)
	}
	if resp["createdAt"] == nil {
		t.Fatalf("expected createdAt in response")
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Fatalf("password hash must never leave the service boundary")
	}
}

func TestUserHandlerCreateUser_DuplicateEmail(t *testing.T) {
	r := setupUserRouter()

	body := map[string]string{
		"email":       "a@x.com",
		"password":    "longenough",
		"displayName": "A",
	}
	if rec := performRequest(r, http.MethodPost, "/users", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	body["email"] = "A@X.COM"
	rec := performRequest(r, http.MethodPost, "/users", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error message in body")
	}
}

func TestUserHandlerCreateUser_InvalidBody(t *testing.T) {
	r := setupUserRouter()

	cases := []map[string]string{
		{"email": "not-an-email", "password": "longenough", "displayName": "A"},
		{"email": "a@x.com", "password": "short", "displayName": "A"},
		{"email": "a@x.com", "password": "longenough"},
		{"email": "a@x.com", "password": strings.Repeat("p", 100), "displayName": "A"},
		{},
	}
	for _, body := range cases {
		rec := performRequest(r, http.MethodPost, "/users", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %v, got %d", body, rec.Code)
		}
	}
}

func TestUserRouter_UnmatchedRoute(t *testing.T) {
	r := setupUserRouter()

	rec := performRequest(r, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if resp["error"] != "Not Found" {
		t.Fatalf("expected Not Found error body, got %v", resp)
	}
}
