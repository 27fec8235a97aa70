package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocms/foliocms/internal/portfolio"
	"github.com/foliocms/foliocms/internal/portfolio/repository"
	"github.com/foliocms/foliocms/internal/portfolio/service"
)

// allowAll stands in for the session gate in handler tests
func allowAll(c *gin.Context) { c.Next() }

type fakeUploader struct {
	lastSection string
	lastName    string
	fail        bool
}

func (f *fakeUploader) Upload(_ context.Context, section, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.fail {
		return "", errors.New("boom")
	}
	f.lastSection = section
	f.lastName = filename
	_, _ = io.Copy(io.Discard, reader)
	return "https://cdn.example.com/" + section + "/" + filename, nil
}

func portfolioRouter(uploader Uploader) (*gin.Engine, *service.Service) {
	svc := service.NewService(repository.NewMemoryRepository())
	h := NewPortfolioHandler(svc, uploader)
	r := gin.New()
	rg := r.Group("/")
	h.Register(rg, allowAll)
	return r, svc
}

func TestGetPortfolio_SeedsEmptyStore(t *testing.T) {
	r, _ := portfolioRouter(nil)

	req := httptest.NewRequest("GET", "/api/portfolio", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var data portfolio.Data
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	require.NotNil(t, data.Hero)
	assert.Equal(t, "John Doe", data.Hero.Name)
}

func TestPutThenGetSection(t *testing.T) {
	r, _ := portfolioRouter(nil)

	body := `{"name":"Jane Roe","jobTitle":"Platform Engineer","subtitle":"Hi","profileImageUrl":null}`
	req := httptest.NewRequest("PUT", "/api/portfolio/hero", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req2 := httptest.NewRequest("GET", "/api/portfolio/hero", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)

	var hero portfolio.Hero
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &hero))
	assert.Equal(t, "Jane Roe", hero.Name)
}

func TestPutSection_InvalidPayloadIs400(t *testing.T) {
	r, _ := portfolioRouter(nil)

	req := httptest.NewRequest("PUT", "/api/portfolio/hero", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSectionRoutes_UnknownSection(t *testing.T) {
	r, _ := portfolioRouter(nil)

	req := httptest.NewRequest("GET", "/api/portfolio/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req2 := httptest.NewRequest("PUT", "/api/portfolio/nope", strings.NewReader(`{}`))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestGetSection_MissingIs404(t *testing.T) {
	r, _ := portfolioRouter(nil)

	// writing section was never written; memory store starts empty
	req := httptest.NewRequest("GET", "/api/portfolio/writing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload_ReturnsPublicURL(t *testing.T) {
	up := &fakeUploader{}
	r, _ := portfolioRouter(up)

	body, contentType := multipartBody(t, "file", "avatar.webp", "fake-image-bytes")
	req := httptest.NewRequest("POST", "/api/uploads/hero", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://cdn.example.com/hero/avatar.webp")
	assert.Equal(t, "hero", up.lastSection)
}

func TestUpload_FailuresMapToStatus(t *testing.T) {
	up := &fakeUploader{fail: true}
	r, _ := portfolioRouter(up)

	body, contentType := multipartBody(t, "file", "avatar.webp", "x")
	req := httptest.NewRequest("POST", "/api/uploads/hero", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// missing multipart field
	req2 := httptest.NewRequest("POST", "/api/uploads/hero", strings.NewReader("no file"))
	req2.Header.Set("Content-Type", "text/plain")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestUpload_UnconfiguredStorage(t *testing.T) {
	r, _ := portfolioRouter(nil)

	body, contentType := multipartBody(t, "file", "avatar.webp", "x")
	req := httptest.NewRequest("POST", "/api/uploads/hero", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
