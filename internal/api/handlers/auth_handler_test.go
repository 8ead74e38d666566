package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/services"
)

type stubAuthService struct {
	user *models.User
}

func (s *stubAuthService) Register(context.Context, services.RegisterInput) (*models.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) Login(context.Context, string, string, models.UserRole) (*models.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) GetProfile(context.Context, string) (*models.User, error) {
	cp := *s.user
	return &cp, nil
}

func (s *stubAuthService) UpdateProfile(_ context.Context, u *models.User) (*models.User, error) {
	s.user = u
	return u, nil
}

func seededProfileStub() *stubAuthService {
	return &stubAuthService{user: &models.User{
		ID:          "user-1",
		Email:       "jane@example.com",
		Name:        "Jane Doe",
		Role:        models.RoleCandidate,
		Phone:       "+1-555-0100",
		Skills:      pq.StringArray{"Go", "Postgres"},
		LinkedinURL: "https://linkedin.com/in/janedoe",
		ResumeURL:   "https://storage.test/resumes/jane.pdf",
	}}
}

func putProfile(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", "user-1")
	c.Request = httptest.NewRequest(http.MethodPut, "/auth/profile", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.UpdateProfile(c)
	return w
}

func TestUpdateProfilePreservesOmittedFields(t *testing.T) {
	svc := seededProfileStub()
	h := NewAuthHandler(svc)

	w := putProfile(t, h, `{"name":"Jane D."}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Jane D.", svc.user.Name)
	assert.Equal(t, "+1-555-0100", svc.user.Phone)
	assert.Equal(t, pq.StringArray{"Go", "Postgres"}, svc.user.Skills)
	assert.Equal(t, "https://linkedin.com/in/janedoe", svc.user.LinkedinURL)
	assert.Equal(t, "https://storage.test/resumes/jane.pdf", svc.user.ResumeURL)
}

func TestUpdateProfileAppliesProvidedFields(t *testing.T) {
	svc := seededProfileStub()
	h := NewAuthHandler(svc)

	// An explicitly provided empty value clears the field; omitted fields
	// stay put.
	w := putProfile(t, h, `{"phone":"","skills":["Go","Kubernetes"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Jane Doe", svc.user.Name)
	assert.Empty(t, svc.user.Phone)
	assert.Equal(t, pq.StringArray{"Go", "Kubernetes"}, svc.user.Skills)
	assert.Equal(t, "https://linkedin.com/in/janedoe", svc.user.LinkedinURL)
}

func TestUpdateProfileNeverTouchesEmailOrRole(t *testing.T) {
	svc := seededProfileStub()
	h := NewAuthHandler(svc)

	w := putProfile(t, h, `{"name":"Eve","email":"eve@example.com","role":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "jane@example.com", svc.user.Email)
	assert.Equal(t, models.RoleCandidate, svc.user.Role)
}
