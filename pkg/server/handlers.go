package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kitshelf/kitshelf/pkg/catalog"
	"github.com/kitshelf/kitshelf/pkg/enrich"
	"github.com/kitshelf/kitshelf/pkg/errors"
)

const maxPerPage = 100

type kitsResponse struct {
	catalog.Page
	Loading bool `json:"loading"`
}

type kitResponse struct {
	Kit     catalog.Entry `json:"kit"`
	Loading bool          `json:"loading"`
}

type passSummary struct {
	PassID   string    `json:"passId"`
	Started  time.Time `json:"started"`
	Duration string    `json:"duration"`
	Fetches  int       `json:"fetches"`
	Updated  int       `json:"updated"`
	Failed   int       `json:"failed"`
	SaveErr  string    `json:"saveError,omitempty"`
}

type statusResponse struct {
	Loading  bool         `json:"loading"`
	Kits     int          `json:"kits"`
	LastPass *passSummary `json:"lastPass,omitempty"`
}

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) listKits(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	cat, loading := s.source.Snapshot()
	s.writeJSON(w, r, http.StatusOK, kitsResponse{Page: cat.Query(q), Loading: loading})
}

func (s *Server) getKit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "kit id must be an integer"))
		return
	}
	cat, loading := s.source.Snapshot()
	kit, ok := cat.Find(id)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, errors.New(errors.ErrCodeKitNotFound, "kit %d not found", id))
		return
	}
	s.writeJSON(w, r, http.StatusOK, kitResponse{Kit: kit, Loading: loading})
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	cat, _ := s.source.Snapshot()
	s.writeJSON(w, r, http.StatusOK, map[string][]string{"categories": cat.Categories()})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	cat, loading := s.source.Snapshot()
	resp := statusResponse{Loading: loading, Kits: len(cat)}
	if res, ok := s.source.Last(); ok {
		sum := &passSummary{
			PassID:   res.PassID,
			Started:  res.Started,
			Duration: res.Duration.Round(time.Millisecond).String(),
			Fetches:  res.Fetches,
			Updated:  res.Updated(),
			Failed:   len(res.Outcomes) - res.Updated() - res.Count(enrich.StateSkipped),
		}
		if res.SaveErr != nil {
			sum.SaveErr = errors.UserMessage(res.SaveErr)
		}
		resp.LastPass = sum
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	if !s.source.Trigger() {
		s.writeError(w, r, http.StatusServiceUnavailable, errors.New(errors.ErrCodeUnsupported, "refresh loop is not running"))
		return
	}
	s.writeJSON(w, r, http.StatusAccepted, map[string]bool{"queued": true})
}

func parseQuery(r *http.Request) (catalog.Query, error) {
	v := r.URL.Query()
	sort, err := catalog.ParseSortMode(v.Get("sort"))
	if err != nil {
		return catalog.Query{}, err
	}

	page, _ := strconv.Atoi(v.Get("page"))
	perPage, _ := strconv.Atoi(v.Get("per_page"))
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	featured, _ := strconv.ParseBool(v.Get("featured"))

	return catalog.Query{
		Search:       v.Get("search"),
		Category:     v.Get("category"),
		Sort:         sort,
		Page:         page,
		PerPage:      perPage,
		FeaturedOnly: featured,
	}, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "path", r.URL.Path, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	s.writeJSON(w, r, status, body)
}
