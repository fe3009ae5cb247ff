package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osu-soilwater/cover-crop-advisor/internal/dataset"
	"github.com/osu-soilwater/cover-crop-advisor/internal/logger"
	"github.com/osu-soilwater/cover-crop-advisor/internal/session"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeRecommender struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecommender) Recommend(_ context.Context, _ []dataset.CoverCropRecord, _ []dataset.Goal, _ []string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func testRecords() []dataset.CoverCropRecord {
	return []dataset.CoverCropRecord{
		{
			Name:            "Cereal Rye",
			SoilBuilder:     true,
			ErosionFighter:  true,
			TargetCashCrops: "Corn, Soybeans",
			PlantingMonths:  "Sep-Nov",
		},
		{
			Name:            "Crimson Clover",
			NitrogenSource:  true,
			TargetCashCrops: "Corn, Cotton",
			PlantingMonths:  "Aug-Oct",
		},
	}
}

func newTestRouter(t *testing.T, rec Recommender) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewStore()
	handler := NewHandler(testRecords(), rec, sessions, logger.NewTestLogger(t))

	router := gin.New()
	router.GET("/", handler.ServeIndex)
	router.GET("/api/options", handler.GetOptions)
	router.POST("/api/recommend", handler.Recommend)
	router.GET("/api/recommendation", handler.Replay)
	return router, sessions
}

func postRecommend(router *gin.Engine, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/recommend", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ==========================
// Core Functionality Tests
// ==========================

func TestGetOptions(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRecommender{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp OptionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Goals, 10)
	assert.Contains(t, resp.Goals, "Soil builder")
	assert.Equal(t, []string{"Corn", "Cotton", "Soybeans"}, resp.CashCrops)
}

func TestRecommend_Success(t *testing.T) {
	rec := &fakeRecommender{text: "Based on your farming goals, we recommend cereal rye."}
	router, sessions := newTestRouter(t, rec)

	w := postRecommend(router, `{"goals":["Soil builder"],"crops":["Corn"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Match)
	assert.Equal(t, "Found 1 matching cover crop(s).", resp.Message)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Cereal Rye", resp.Matches[0].CoverCrop)
	assert.Equal(t, rec.text, resp.Recommendation)
	assert.Equal(t, 1, rec.calls)

	// Success stores the text under the minted session cookie.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	stored, ok := sessions.Get(cookies[0].Value)
	assert.True(t, ok)
	assert.Equal(t, rec.text, stored)
}

func TestRecommend_SelectionOmitted(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no goals", `{"goals":[],"crops":["Corn"]}`},
		{"no crops", `{"goals":["Soil builder"],"crops":[]}`},
		{"nothing selected", `{"goals":[],"crops":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecommender{text: "unused"}
			router, _ := newTestRouter(t, rec)

			w := postRecommend(router, tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Please select at least one goal and one or more cash crops.", resp.Error)
			assert.Zero(t, rec.calls, "the completion service must not be invoked")
		})
	}
}

func TestRecommend_UnknownGoal(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRecommender{})

	w := postRecommend(router, `{"goals":["Maximum yield"],"crops":["Corn"]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown farming goal")
}

func TestRecommend_NoMatch(t *testing.T) {
	rec := &fakeRecommender{text: "unused"}
	router, _ := newTestRouter(t, rec)

	w := postRecommend(router, `{"goals":["Soil builder"],"crops":["Wheat"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.Match)
	assert.Equal(t, "No matching cover crops found.", resp.Message)
	assert.Empty(t, resp.Matches)
	assert.Zero(t, rec.calls)
}

func TestRecommend_ServiceFault(t *testing.T) {
	rec := &fakeRecommender{err: errors.New("rate limit exceeded")}
	router, sessions := newTestRouter(t, rec)

	// A previous recommendation is already stored for this session.
	cookie := &http.Cookie{Name: sessionCookie, Value: "session-1"}
	sessions.Put(cookie.Value, "previous recommendation")

	w := postRecommend(router, `{"goals":["Soil builder"],"crops":["Corn"]}`, cookie)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "AI Error")
	assert.Contains(t, resp.Error, "rate limit exceeded")

	// The fault leaves the session's previous text untouched.
	stored, ok := sessions.Get(cookie.Value)
	assert.True(t, ok)
	assert.Equal(t, "previous recommendation", stored)
}

func TestRecommend_ReusesSessionCookie(t *testing.T) {
	rec := &fakeRecommender{text: "recommendation text"}
	router, sessions := newTestRouter(t, rec)

	cookie := &http.Cookie{Name: sessionCookie, Value: "session-keep"}
	w := postRecommend(router, `{"goals":["Soil builder"],"crops":["Corn"]}`, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	stored, ok := sessions.Get("session-keep")
	assert.True(t, ok)
	assert.Equal(t, "recommendation text", stored)
}

func TestReplay(t *testing.T) {
	router, sessions := newTestRouter(t, &fakeRecommender{})
	sessions.Put("session-2", "stored recommendation")

	t.Run("returns the stored text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recommendation", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-2"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp ReplayResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "stored recommendation", resp.Recommendation)
	})

	t.Run("404 without a session cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recommendation", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("404 when the session has no recommendation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recommendation", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-empty"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServeIndex(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRecommender{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Cover Crop Selection Guide")
}
