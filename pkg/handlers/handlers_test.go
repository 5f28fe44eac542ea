package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronicle/pkg/gemini"
	"chronicle/pkg/models"
	"chronicle/pkg/studio"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type gatedInsights struct {
	started chan struct{}
	release chan struct{}
}

func (g *gatedInsights) FetchInsight(_ context.Context, topic string) (models.Insight, error) {
	g.started <- struct{}{}
	<-g.release
	return models.Insight{Summary: "checked " + topic}, nil
}

type stubImages struct {
	ref string
	err error
}

func (s *stubImages) GenerateImage(context.Context, string) (string, error) {
	return s.ref, s.err
}

type stubLocations struct {
	pos    *models.LatLng
	result *models.MapResult
}

func (s *stubLocations) GroundLocation(_ context.Context, _ string, pos *models.LatLng) *models.MapResult {
	s.pos = pos
	return s.result
}

type fixture struct {
	router    *gin.Engine
	studio    *studio.Studio
	insights  *gatedInsights
	images    *stubImages
	locations *stubLocations
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		insights:  &gatedInsights{started: make(chan struct{}, 1), release: make(chan struct{})},
		images:    &stubImages{ref: "data:image/png;base64,AAAA"},
		locations: &stubLocations{},
	}
	f.studio = studio.New(studio.DefaultArticle(), f.insights, f.images, f.locations)
	r, err := NewRouter(f.studio, RouterOptions{SessionSecret: "test-secret", MaxUploadBytes: 1 << 20})
	require.NoError(t, err)
	f.router = r
	return f
}

func (f *fixture) do(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestGetState(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state studio.State
	decode(t, w, &state)
	assert.Equal(t, models.ModeRead, state.Mode)
	assert.Equal(t, "The Great Fire of London", state.Article.Title)
	assert.False(t, state.Busy.Insight)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetMode(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPut, "/api/mode", gin.H{"mode": "edit"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ModeEdit, f.studio.Snapshot().Mode)

	w = f.do(http.MethodPut, "/api/mode", gin.H{"mode": "preview"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateContentReturnsBlocks(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPut, "/api/article/content", gin.H{"content": "## Title\n\nBody"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Blocks []models.ContentBlock `json:"blocks"`
	}
	decode(t, w, &resp)
	assert.Equal(t, []models.ContentBlock{
		models.Heading(2, "Title"),
		models.Paragraph("Body", true),
	}, resp.Blocks)

	w = f.do(http.MethodPut, "/api/article/content", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateDetailsAndFootnotes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPut, "/api/article/details", gin.H{"title": "The Plague Year"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The Plague Year", f.studio.Article().Title)
	assert.Equal(t, "Dr. Evelyn Blackwood", f.studio.Article().Author)

	w = f.do(http.MethodPost, "/api/article/footnotes", gin.H{"text": "Defoe, D. (1722)."})
	require.Equal(t, http.StatusCreated, w.Code)
	var note models.Footnote
	decode(t, w, &note)
	assert.Equal(t, 3, note.ID)

	w = f.do(http.MethodPost, "/api/article/footnotes", gin.H{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportImportRoundTrip(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/article/export?format=toml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "the-great-fire-of-london.md")
	doc := w.Body.String()

	f.studio.UpdateContent("scratch")
	w = f.do(http.MethodPost, "/api/article/import", doc)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, studio.DefaultArticle().Content, f.studio.Article().Content)

	w = f.do(http.MethodGet, "/api/article/export?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCoverRejectsText(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("just some text"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/article/cover", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, studio.DefaultArticle().CoverImage, f.studio.Article().CoverImage)
}

func TestInsightBusyReturnsConflict(t *testing.T) {
	f := newFixture(t)

	first := make(chan *httptest.ResponseRecorder)
	go func() { first <- f.do(http.MethodPost, "/api/tools/insight", nil) }()
	<-f.insights.started

	w := f.do(http.MethodPost, "/api/tools/insight", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	close(f.insights.release)
	w = <-first
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Insight models.Insight `json:"insight"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "checked The Spark in the Dark", resp.Insight.Summary)
}

func TestGenerateImageErrors(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/tools/image", gin.H{"prompt": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.images.err = &gemini.ServiceError{Op: "generate image", Cause: &gemini.NoImageDataError{}}
	w = f.do(http.MethodPost, "/api/tools/image", gin.H{"prompt": "a burning city"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	f.images.err = &gemini.ServiceError{Op: "generate image", Cause: errors.New("boom")}
	w = f.do(http.MethodPost, "/api/tools/image", gin.H{"prompt": "a burning city"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	f.images.err = nil
	w = f.do(http.MethodPost, "/api/tools/image", gin.H{"prompt": "a burning city"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "data:image/png;base64,AAAA", f.studio.Article().CoverImage)
}

func TestGroundLocationAbsence(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/tools/location", gin.H{"name": "Pudding Lane"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Found  bool              `json:"found"`
		Result *models.MapResult `json:"result"`
	}
	decode(t, w, &resp)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Result)
	assert.Nil(t, f.locations.pos)
}

func TestGroundLocationUsesSessionPosition(t *testing.T) {
	f := newFixture(t)
	link := "https://maps.google.com/?cid=1"
	f.locations.result = &models.MapResult{Text: "Pudding Lane, London", MapURL: &link}

	w := f.do(http.MethodPost, "/api/position", gin.H{"lat": 51.51, "lng": -0.08})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = f.do(http.MethodPost, "/api/tools/location", gin.H{"name": "Pudding Lane"}, cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.locations.pos)
	assert.InDelta(t, 51.51, f.locations.pos.Lat, 1e-9)
	assert.InDelta(t, -0.08, f.locations.pos.Lng, 1e-9)
	assert.Equal(t, "Pudding Lane, London", f.studio.Snapshot().MapResult.Text)

	w = f.do(http.MethodPost, "/api/position", gin.H{"lat": 91, "lng": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToolsRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/", RateLimit(1, 1), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestIndexRendersModes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Spark in the Dark")

	w = f.do(http.MethodGet, "/?mode=edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `id="content"`))
	assert.Equal(t, models.ModeEdit, f.studio.Snapshot().Mode)

	w = f.do(http.MethodGet, "/?mode=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaticAssets(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/static/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

type gatedImages struct {
	started chan struct{}
	release chan struct{}
}

func (g *gatedImages) GenerateImage(context.Context, string) (string, error) {
	g.started <- struct{}{}
	<-g.release
	return "data:image/png;base64,AQID", nil
}

func TestGenerateImageAfterResetConflicts(t *testing.T) {
	img := &gatedImages{started: make(chan struct{}, 1), release: make(chan struct{})}
	s := studio.New(studio.DefaultArticle(), stubInsights{}, img, &stubLocations{})
	r, err := NewRouter(s, RouterOptions{SessionSecret: "test-secret"})
	require.NoError(t, err)
	f := &fixture{router: r, studio: s}

	first := make(chan *httptest.ResponseRecorder)
	go func() { first <- f.do(http.MethodPost, "/api/tools/image", gin.H{"prompt": "harbour"}) }()
	<-img.started

	w := f.do(http.MethodPost, "/api/article/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	close(img.release)

	assert.Equal(t, http.StatusConflict, (<-first).Code)
	assert.Equal(t, studio.DefaultArticle().CoverImage, s.Article().CoverImage)
}

type stubInsights struct{}

func (stubInsights) FetchInsight(context.Context, string) (models.Insight, error) {
	return models.Insight{}, nil
}
