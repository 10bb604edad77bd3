package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pluginpulse/pluginpulse/internal/application"
	"github.com/pluginpulse/pluginpulse/internal/domain"
	"github.com/pluginpulse/pluginpulse/internal/log"
)

// pluginPayload flattens a scored record for the wire: score fields sit next
// to the metadata subset clients render.
type pluginPayload struct {
	Slug           string          `json:"slug"`
	Name           string          `json:"name"`
	Version        string          `json:"version,omitempty"`
	Author         string          `json:"author,omitempty"`
	Rating         float64         `json:"rating"`
	NumRatings     int             `json:"num_ratings"`
	ActiveInstalls string          `json:"active_installs"`
	LastUpdated    string          `json:"last_updated,omitempty"`
	Tested         string          `json:"tested,omitempty"`
	RequiresPHP    string          `json:"requires_php,omitempty"`
	HealthScore    int             `json:"health_score"`
	HealthGrade    string          `json:"health_grade"`
	UsabilityScore int             `json:"usability_score"`
	UsabilityGrade string          `json:"usability_grade"`
	Signals        []domain.Signal `json:"signals,omitempty"`
}

type listResponse struct {
	Plugins     []pluginPayload `json:"plugins"`
	Cached      bool            `json:"cached"`
	Stale       bool            `json:"stale"`
	Notice      string          `json:"notice,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toPayload(sp domain.ScoredPlugin, withSignals bool) pluginPayload {
	installs := sp.Plugin.ActiveInstallsText
	if installs == "" {
		if n, ok := sp.Plugin.Installs(); ok {
			installs = fmt.Sprintf("%d+", n)
		}
	}
	p := pluginPayload{
		Slug:           sp.Plugin.Slug,
		Name:           sp.Plugin.Name,
		Version:        sp.Plugin.Version,
		Author:         sp.Plugin.Author,
		Rating:         sp.Plugin.Rating,
		NumRatings:     sp.Plugin.NumRatings,
		ActiveInstalls: installs,
		LastUpdated:    sp.Plugin.LastUpdated,
		Tested:         sp.Plugin.Tested,
		RequiresPHP:    sp.Plugin.RequiresPHP,
		HealthScore:    sp.Score.Health,
		HealthGrade:    sp.Score.HealthGrade(),
		UsabilityScore: sp.Score.Usability,
		UsabilityGrade: sp.Score.UsabilityGrade(),
	}
	if withSignals {
		p.Signals = sp.Score.Signals
	}
	return p
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query, err := queryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var result *application.SearchResult
	if r.URL.Query().Get("refresh") == "1" {
		result, err = s.search.Refresh(r.Context(), query)
	} else {
		result, err = s.search.Search(r.Context(), query)
	}
	if err != nil {
		// Unavailability soft-fails inside the service; whatever reaches
		// here is a hard upstream failure.
		writeError(w, http.StatusBadGateway, err)
		return
	}

	resp := listResponse{
		Plugins:     make([]pluginPayload, 0, len(result.Plugins)),
		Cached:      result.Cached,
		Stale:       result.Stale,
		Notice:      result.Notice,
		GeneratedAt: result.GeneratedAt,
	}
	withSignals := r.URL.Query().Get("signals") == "1"
	for _, sp := range result.Plugins {
		resp.Plugins = append(resp.Plugins, toPayload(sp, withSignals))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlugin(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	out, err := s.score.Score(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrPluginNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Plugin      pluginPayload `json:"plugin"`
		Cached      bool          `json:"cached"`
		Stale       bool          `json:"stale"`
		Notice      string        `json:"notice,omitempty"`
		GeneratedAt time.Time     `json:"generated_at"`
	}{
		Plugin:      toPayload(out.Plugin, true),
		Cached:      out.Cached,
		Stale:       out.Stale,
		Notice:      out.Notice,
		GeneratedAt: out.GeneratedAt,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryFromRequest maps URL parameters onto a SearchQuery. Unparseable
// numbers are a client error rather than silently clamped.
func queryFromRequest(r *http.Request) (domain.SearchQuery, error) {
	params := r.URL.Query()
	query := domain.SearchQuery{
		Term: params.Get("search"),
		Sort: params.Get("sort"),
	}

	for name, dst := range map[string]*int{
		"page":       &query.Page,
		"per_page":   &query.PerPage,
		"min_health": &query.MinHealth,
	} {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.SearchQuery{}, fmt.Errorf("invalid %s %q", name, raw)
		}
		*dst = n
	}

	if err := query.Validate(); err != nil {
		return domain.SearchQuery{}, err
	}
	return query, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
