package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/victor-POL/mi-uni-api/internal/middleware"
	"github.com/victor-POL/mi-uni-api/internal/models"
	"github.com/victor-POL/mi-uni-api/internal/service"
	"github.com/victor-POL/mi-uni-api/pkg/response"
)

type yearRepoMock struct {
	scope *models.AcademicYearScope
}

func (m *yearRepoMock) Get(ctx context.Context, userID int64) (*models.AcademicYearScope, error) {
	if m.scope == nil {
		return nil, sql.ErrNoRows
	}
	return m.scope, nil
}

func (m *yearRepoMock) Upsert(ctx context.Context, scope *models.AcademicYearScope, cascade bool) error {
	m.scope = scope
	return nil
}

func (m *yearRepoMock) Clear(ctx context.Context, userID int64) error {
	if m.scope == nil {
		return sql.ErrNoRows
	}
	m.scope = nil
	return nil
}

type termReaderMock struct {
	term *models.Term
}

func (m *termReaderMock) FindActive(ctx context.Context) (*models.Term, error) {
	if m.term == nil {
		return nil, sql.ErrNoRows
	}
	return m.term, nil
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func authed(c *gin.Context, userID int64) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID})
}

func TestAcademicYearEstablish(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewAcademicYearService(&yearRepoMock{}, &termReaderMock{term: &models.Term{Year: 2025}}, nil)
	handler := NewAcademicYearHandler(svc)

	c, w := newGinContext(http.MethodPost, "/academic-year", nil)
	authed(c, 7)

	handler.Establish(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	scope := envelope.Data.(map[string]interface{})
	require.EqualValues(t, 2025, scope["year"])
}

func TestAcademicYearEstablishWithoutActiveTerm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewAcademicYearService(&yearRepoMock{}, &termReaderMock{}, nil)
	handler := NewAcademicYearHandler(svc)

	c, w := newGinContext(http.MethodPost, "/academic-year", nil)
	authed(c, 7)

	handler.Establish(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestAcademicYearGetRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewAcademicYearService(&yearRepoMock{}, &termReaderMock{}, nil)
	handler := NewAcademicYearHandler(svc)

	c, w := newGinContext(http.MethodGet, "/academic-year", nil)

	handler.Get(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAcademicYearChangeRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewAcademicYearService(&yearRepoMock{}, &termReaderMock{}, nil)
	handler := NewAcademicYearHandler(svc)

	c, w := newGinContext(http.MethodPut, "/academic-year", []byte(`{}`))
	authed(c, 7)

	handler.Change(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAcademicYearClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &yearRepoMock{scope: &models.AcademicYearScope{UserID: 7, Year: 2025}}
	svc := service.NewAcademicYearService(repo, &termReaderMock{}, nil)
	handler := NewAcademicYearHandler(svc)

	c, w := newGinContext(http.MethodDelete, "/academic-year", nil)
	authed(c, 7)

	handler.Clear(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Nil(t, repo.scope)
}
