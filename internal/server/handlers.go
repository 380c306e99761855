package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jonathan/expert-finder/internal/credibility"
	"github.com/jonathan/expert-finder/internal/types"
)

// SearchRequest is the request body for the expert search endpoint.
type SearchRequest struct {
	Query          string `json:"query" validate:"required"`
	IncludeSummary bool   `json:"include_summary,omitempty"`
}

// SearchResponse is the response body for the expert search endpoint.
type SearchResponse struct {
	Query   string               `json:"query"`
	Results []types.SearchResult `json:"results"`
	Count   int                  `json:"count"`
	Summary string               `json:"summary,omitempty"`
}

// StatsResponse mirrors the persisted population statistics.
type StatsResponse struct {
	TotalProfiles          int                          `json:"total_profiles"`
	MaxYears               float64                      `json:"max_years"`
	ExperienceDistribution map[credibility.Bracket]int  `json:"experience_distribution"`
	EducationDistribution  map[credibility.Category]int `json:"education_distribution"`
}

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// handleSearch runs a full expert search: query parsing, vector retrieval,
// credibility annotation and LLM reranking.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		s.errorResponse(w, http.StatusBadRequest, "Query is required")
		return
	}

	results, err := s.finder.FindExperts(r.Context(), req.Query)
	if err != nil {
		s.metrics.ObserveSearch("error", 0)
		s.errorResponse(w, http.StatusInternalServerError, "Search failed: "+err.Error())
		return
	}
	s.metrics.ObserveSearch("ok", len(results))

	response := SearchResponse{
		Query:   req.Query,
		Results: results,
		Count:   len(results),
	}
	if response.Results == nil {
		response.Results = []types.SearchResult{}
	}

	if req.IncludeSummary && len(results) > 0 {
		summary, err := s.finder.GenerateResponse(r.Context(), req.Query, results)
		if err != nil {
			// A missing summary should not fail the whole search
			s.errorResponse(w, http.StatusInternalServerError, "Summary generation failed: "+err.Error())
			return
		}
		response.Summary = summary
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// handleListProfiles lists stored profiles with pagination
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 200)
	offset := parseQueryInt(r, "offset", 0, 0)

	profiles, err := s.db.ListProfiles(r.Context(), limit, offset)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
		"limit":    limit,
		"offset":   offset,
	})
}

// handleGetProfile retrieves a profile by URN ID
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	urnID := r.PathValue("id")
	if urnID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Profile ID is required")
		return
	}

	profile, err := s.db.GetProfile(r.Context(), urnID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		notFound := &ErrProfileNotFound{URNID: urnID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGetCredibility scores a stored profile against the population
// statistics and returns the credibility block.
func (s *Server) handleGetCredibility(w http.ResponseWriter, r *http.Request) {
	urnID := r.PathValue("id")
	if urnID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Profile ID is required")
		return
	}

	profile, err := s.db.GetProfile(r.Context(), urnID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		notFound := &ErrProfileNotFound{URNID: urnID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	cred := s.cred.Credibility(profile.Record())

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"urn_id":      profile.URNID,
		"full_name":   profile.FullName,
		"credibility": cred,
	})
}

// handleGetStats returns the persisted population statistics
func (s *Server) handleGetStats(w http.ResponseWriter, _ *http.Request) {
	if !s.stats.FileExists() {
		unavailable := &ErrStatsUnavailable{}
		s.errorResponse(w, HTTPStatus(unavailable), unavailable.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, statsResponseFromSnapshot(s.stats.Snapshot()))
}

// handleRefreshStats rebuilds the population statistics from the database.
// Protected by admin authentication.
func (s *Server) handleRefreshStats(w http.ResponseWriter, r *http.Request) {
	updated := s.cred.RefreshStats(r.Context())
	if !updated {
		s.metrics.IncStatsRefresh("error")
		s.errorResponse(w, http.StatusInternalServerError, "Stats refresh failed: population could not be read")
		return
	}
	s.metrics.IncStatsRefresh("ok")

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"updated": true,
		"stats":   statsResponseFromSnapshot(s.stats.Snapshot()),
	})
}

func statsResponseFromSnapshot(snap credibility.Snapshot) StatsResponse {
	return StatsResponse{
		TotalProfiles:          snap.TotalProfiles,
		MaxYears:               snap.MaxYears,
		ExperienceDistribution: snap.ExperienceDistribution,
		EducationDistribution:  snap.EducationDistribution,
	}
}
