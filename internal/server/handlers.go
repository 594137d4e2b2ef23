package server

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jonathan/skillboard/internal/rendering"
	"github.com/jonathan/skillboard/internal/selection"
	"github.com/jonathan/skillboard/internal/types"
)

// SelectResponse is returned by the selection endpoints.
type SelectResponse struct {
	Query     string              `json:"query"`
	Selection selection.Selection `json:"selection"`
	// Regions holds markup for the regions the transition invalidated, keyed by element id.
	Regions map[string]string `json:"regions"`
}

// DetailsResponse is the JSON form of everything a page shows.
type DetailsResponse struct {
	Selection selection.Selection     `json:"selection"`
	Levels    []rendering.FilterItem  `json:"levels"`
	Groups    []rendering.FilterItem  `json:"groups"`
	Details   []selection.GroupDetail `json:"details"`
}

// loadDataset reads the dataset from the configured source
func (s *Server) loadDataset(ctx context.Context) (types.Dataset, error) {
	dataset, err := s.source.Dataset(ctx)
	if err != nil {
		return nil, &ErrDatasetUnavailable{Cause: err}
	}
	return dataset, nil
}

// handlePage renders the full page for the selection in the query string
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sel := selection.FromQuery(r.URL.Query())

	dataset, err := s.loadDataset(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = s.renderer.RenderPage(&buf, rendering.PageData{Title: s.title, Dataset: dataset, Selection: sel})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.htmlResponse(w, http.StatusOK, buf.Bytes())
}

// handleRegion renders a single region fragment
func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("region")
	region, ok := selection.ParseRegion(name)
	if !ok {
		s.handleError(w, r, &ErrUnknownRegion{Name: name})
		return
	}

	dataset, err := s.loadDataset(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderRegion(&buf, region, dataset, selection.FromQuery(r.URL.Query())); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.htmlResponse(w, http.StatusOK, buf.Bytes())
}

// handleSelectGroup applies a group selection to the current one
func (s *Server) handleSelectGroup(w http.ResponseWriter, r *http.Request) {
	current := selection.FromQuery(r.URL.Query())
	next, regions := current.SelectGroup(selection.ParseValue(r.PathValue("id")))
	s.selectResponse(w, r, next, regions)
}

// handleSelectLevel applies a level selection to the current one
func (s *Server) handleSelectLevel(w http.ResponseWriter, r *http.Request) {
	current := selection.FromQuery(r.URL.Query())
	next, regions := current.SelectLevel(selection.ParseValue(r.PathValue("level")))
	s.selectResponse(w, r, next, regions)
}

// selectResponse re-renders only the invalidated regions for the new selection
func (s *Server) selectResponse(w http.ResponseWriter, r *http.Request, sel selection.Selection, regions []selection.Region) {
	dataset, err := s.loadDataset(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	rendered, err := s.renderer.RenderRegions(dataset, sel, regions)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := SelectResponse{
		Query:     sel.Query().Encode(),
		Selection: sel,
		Regions:   make(map[string]string, len(rendered)),
	}
	for region, html := range rendered {
		resp.Regions[string(region)] = html
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSkillsGrouped returns the dataset as JSON
func (s *Server) handleSkillsGrouped(w http.ResponseWriter, r *http.Request) {
	dataset, err := s.loadDataset(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if dataset == nil {
		dataset = types.Dataset{}
	}

	s.jsonResponse(w, http.StatusOK, dataset)
}

// handleDetails returns the filter lists and detail cards for a selection as JSON
func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	sel := selection.FromQuery(r.URL.Query())

	dataset, err := s.loadDataset(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	details := selection.Details(dataset, sel, loggerFrom(r.Context(), s.logger))
	if details == nil {
		details = []selection.GroupDetail{}
	}

	s.jsonResponse(w, http.StatusOK, DetailsResponse{
		Selection: sel,
		Levels:    rendering.LevelFilter(sel),
		Groups:    rendering.GroupFilter(dataset, sel),
		Details:   details,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := s.source.(Pinger); ok {
		if err := pinger.Ping(r.Context()); err != nil {
			loggerFrom(r.Context(), s.logger).Warn("health check failed")
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
