package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getModes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, core.BuildModesModel(s.cfg.Scoring))
}

func (s *Server) getProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reports)
}

// getProduct matches the brand path segment case-insensitively against the
// raw brand token, so both "optimum_nutrition" and "Optimum_Nutrition" hit.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	brand := mux.Vars(r)["brand"]
	for i := range s.reports {
		if strings.EqualFold(s.reports[i].Brand, brand) {
			writeJSON(w, http.StatusOK, s.reports[i])
			return
		}
	}
	writeJSONError(w, http.StatusNotFound, "no product with brand "+strconv.Quote(brand))
}

func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode := s.cfg.Mode
	if m := r.URL.Query().Get("mode"); m != "" {
		mode = schema.ScoringMode(m)
		if _, ok := schema.ValidScoringModes[mode]; !ok {
			writeJSONError(w, http.StatusBadRequest, "invalid mode "+strconv.Quote(m))
			return
		}
	}

	limit := s.cfg.ResultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	ranked := core.RankReports(s.reports, mode, limit)
	writeJSON(w, http.StatusOK, schema.EnrichLeaderboard(ranked, s.cfg.GradeThresholds))
}
