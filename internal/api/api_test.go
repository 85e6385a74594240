package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alphacloud/assessment-portal/internal/auth"
	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	if username == "assessment" && password == "secureAccess@2025" {
		return &service.LoginResult{
			Token:      "token",
			AccessType: "assessment",
			Username:   username,
			Message:    "Login successful - Assessment Access",
		}, nil
	}
	return nil, service.ErrInvalidCredentials
}

type stubReviewService struct {
	lastClientID string
}

func (s *stubReviewService) Get(ctx context.Context, clientID string) (*service.ReviewState, error) {
	s.lastClientID = clientID
	return &service.ReviewState{CanAccess: true, Submitted: true}, nil
}

func (s *stubReviewService) Update(ctx context.Context, clientID string, update service.ReviewUpdate) error {
	return service.ErrNotSubmittedYet
}

func newTestRouter(review service.ReviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(
		router,
		auth.NewUnsignedCodec(),
		"default",
		stubAuthService{},
		nil,
		review,
		nil,
		nil,
		nil,
		nil,
	)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEnvelope(t *testing.T) {
	router := newTestRouter(&stubReviewService{})

	rec := doRequest(router, http.MethodPost, "/api/v1/auth/login",
		`{"username":"assessment","password":"secureAccess@2025"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["success"] != true || body["accessType"] != "assessment" || body["token"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestLoginFailureEnvelope(t *testing.T) {
	router := newTestRouter(&stubReviewService{})

	rec := doRequest(router, http.MethodPost, "/api/v1/auth/login",
		`{"username":"assessment","password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["success"] != false || body["error"] != "Invalid credentials" {
		t.Errorf("body = %v", body)
	}
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	router := newTestRouter(&stubReviewService{})

	rec := doRequest(router, http.MethodPut, "/api/v1/submitted-assessments", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["success"] != false || body["message"] != "Method not allowed" {
		t.Errorf("body = %v", body)
	}
}

func TestAssessmentRequiresToken(t *testing.T) {
	review := &stubReviewService{}
	router := newTestRouter(review)

	rec := doRequest(router, http.MethodGet, "/api/v1/assessment", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	token, err := auth.NewUnsignedCodec().Issue(auth.Claims{
		ClientID:   "default",
		Username:   "assessment",
		AccessType: "assessment",
	})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	rec = doRequest(router, http.MethodGet, "/api/v1/assessment", "", header)
	if rec.Code != http.StatusOK {
		t.Fatalf("status with token = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if review.lastClientID != "default" {
		t.Errorf("client id from token = %q, want default", review.lastClientID)
	}
}

func TestReviewGateErrorEnvelope(t *testing.T) {
	router := newTestRouter(&stubReviewService{})

	token, _ := auth.NewUnsignedCodec().Issue(auth.Claims{ClientID: "default"})
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	rec := doRequest(router, http.MethodPost, "/api/v1/assessment", `{"findings":"x"}`, header)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body struct {
		Error errorBody `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Error.Code != "NOT_SUBMITTED" {
		t.Errorf("error code = %q, want NOT_SUBMITTED", body.Error.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	router := newTestRouter(&stubReviewService{})

	rec := doRequest(router, http.MethodGet, "/ping", "", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request id not generated")
	}

	header := http.Header{}
	header.Set("X-Request-ID", "req-123")
	rec = doRequest(router, http.MethodGet, "/ping", "", header)
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("request id = %q, want req-123", got)
	}
}
