package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ticketbase-dev/ticketbase/internal/auth"
	"github.com/ticketbase-dev/ticketbase/internal/models"
	"github.com/ticketbase-dev/ticketbase/internal/testutils"
	"gorm.io/gorm"
)

func authRouter(gdb *gorm.DB, tokens *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(gdb, tokens)
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSignupLoginScenario(t *testing.T) {
	gdb := testutils.SetupDB(t)
	tokens := auth.NewService("test-secret", time.Hour)
	r := authRouter(gdb, tokens)

	signup := map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "a@x.com",
		"password":  "p",
	}

	rec := postJSON(t, r, "/signup", signup)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, r, "/login", map[string]string{"email": "a@x.com", "password": "p"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loginResp.Token == "" {
		t.Fatal("login returned empty token")
	}

	claims, err := tokens.Verify(loginResp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "a@x.com" || claims.FirstName != "Ada" || claims.LastName != "Lovelace" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	rec = postJSON(t, r, "/login", map[string]string{"email": "a@x.com", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", rec.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	gdb := testutils.SetupDB(t)
	r := authRouter(gdb, auth.NewService("test-secret", time.Hour))

	body := map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "a@x.com",
		"password":  "p",
	}

	if rec := postJSON(t, r, "/signup", body); rec.Code != http.StatusCreated {
		t.Fatalf("first signup status = %d, want 201", rec.Code)
	}

	rec := postJSON(t, r, "/signup", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup status = %d, want 400, body=%s", rec.Code, rec.Body.String())
	}

	var count int64
	gdb.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count)
	if count != 1 {
		t.Fatalf("user rows = %d, want 1", count)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r := authRouter(testutils.SetupDB(t), auth.NewService("test-secret", time.Hour))

	rec := postJSON(t, r, "/login", map[string]string{"email": "nobody@x.com", "password": "p"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSignupMissingFields(t *testing.T) {
	r := authRouter(testutils.SetupDB(t), auth.NewService("test-secret", time.Hour))

	rec := postJSON(t, r, "/signup", map[string]string{"email": "a@x.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
