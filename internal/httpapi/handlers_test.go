package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *Server {
	cfg := &contract.Config{
		Mode:            schema.CutMode,
		ResultLimit:     25,
		Scoring:         schema.DefaultScoringParams(),
		GradeThresholds: schema.DefaultGradeThresholds(),
	}
	reports := []schema.ScoreReport{
		{
			Brand:          "optimum_nutrition",
			ScoringVersion: schema.DefaultScoringVersion,
			Cut:            schema.ModeScore{Mode: schema.CutMode, Status: schema.StatusScored, Score: schema.F64(0.82)},
			Bulk:           schema.ModeScore{Mode: schema.BulkMode, Status: schema.StatusScored, Score: schema.F64(0.61)},
			Clean:          schema.ModeScore{Mode: schema.CleanMode, Status: schema.StatusScored, Score: schema.F64(0.74)},
		},
		{
			Brand:          "budget_gains",
			ScoringVersion: schema.DefaultScoringVersion,
			Cut:            schema.ModeScore{Mode: schema.CutMode, Status: schema.StatusRejected, Rejected: true, RejectionReason: strPtr("protein_per_100_kcal below cut floor")},
			Bulk:           schema.ModeScore{Mode: schema.BulkMode, Status: schema.StatusScored, Score: schema.F64(0.44)},
			Clean:          schema.ModeScore{Mode: schema.CleanMode, Status: schema.StatusIndeterminate},
		},
	}
	return &Server{cfg: cfg, reports: reports}
}

func strPtr(s string) *string { return &s }

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, testServer(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestModesEndpoint(t *testing.T) {
	rec := doRequest(t, testServer(), "/api/modes")
	require.Equal(t, http.StatusOK, rec.Code)

	var model schema.ModesRenderModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	assert.Equal(t, schema.DefaultScoringVersion, model.Version)
	assert.Len(t, model.Modes, 3)
}

func TestProductsEndpoint(t *testing.T) {
	rec := doRequest(t, testServer(), "/api/products")
	require.Equal(t, http.StatusOK, rec.Code)

	var reports []schema.ScoreReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	assert.Len(t, reports, 2)
}

func TestProductByBrand(t *testing.T) {
	t.Run("case insensitive match", func(t *testing.T) {
		rec := doRequest(t, testServer(), "/api/products/Optimum_Nutrition")
		require.Equal(t, http.StatusOK, rec.Code)

		var report schema.ScoreReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "optimum_nutrition", report.Brand)
	})

	t.Run("unknown brand", func(t *testing.T) {
		rec := doRequest(t, testServer(), "/api/products/no_such_brand")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "no_such_brand")
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	t.Run("mode and limit", func(t *testing.T) {
		rec := doRequest(t, testServer(), "/api/leaderboard?mode=bulk&limit=1")
		require.Equal(t, http.StatusOK, rec.Code)

		var entries []schema.EnrichedLeaderboardEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "optimum_nutrition", entries[0].Brand)
		assert.Equal(t, schema.BulkMode, entries[0].Mode)
	})

	t.Run("rejected products sort last", func(t *testing.T) {
		rec := doRequest(t, testServer(), "/api/leaderboard?mode=cut")
		require.Equal(t, http.StatusOK, rec.Code)

		var entries []schema.EnrichedLeaderboardEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, schema.StatusRejected, entries[1].Status)
	})

	t.Run("invalid mode", func(t *testing.T) {
		rec := doRequest(t, testServer(), "/api/leaderboard?mode=shredded")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid mode")
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := doRequest(t, testServer(), "/api/leaderboard?limit=zero")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "limit must be a positive integer")
	})
}
