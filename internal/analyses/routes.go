package analyses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flowlens/flowlens/internal/diagrams"
	"github.com/flowlens/flowlens/internal/report"
	"github.com/flowlens/flowlens/internal/vectordb"
)

// RegisterRoutes mounts analysis endpoints on the given router. hub may be
// nil to disable the live stream.
func RegisterRoutes(r chi.Router, svc *Service, hub *Hub, maxSourceKB int) {
	r.Post("/api/analyze", analyzeHandler(svc, hub, maxSourceKB))
	r.Get("/api/analyses", listHandler(svc))
	r.Get("/api/analyses/{id}", getHandler(svc))
	r.Delete("/api/analyses/{id}", deleteHandler(svc))
	r.Get("/api/analyses/{id}/mermaid", mermaidHandler(svc))
	r.Get("/api/analyses/{id}/report", reportHandler(svc))
	r.Get("/api/search", searchHandler(svc))
	if hub != nil {
		r.Get("/api/analyses/stream", hub.ServeHTTP)
	}
}

type analyzeBody struct {
	Source   string `json:"source"`
	FileName string `json:"file_name"`
	Language string `json:"language"`
	Enhance  bool   `json:"enhance"`
}

type analyzeResponse struct {
	Analysis *Analysis `json:"analysis"`
	Cached   bool      `json:"cached"`
}

func analyzeHandler(svc *Service, hub *Hub, maxSourceKB int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body analyzeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if body.Source == "" {
			http.Error(w, "source is required", http.StatusBadRequest)
			return
		}
		if maxSourceKB > 0 && len(body.Source) > maxSourceKB*1024 {
			http.Error(w, "source exceeds size limit", http.StatusRequestEntityTooLarge)
			return
		}

		a, cached, err := svc.Analyze(r.Context(), AnalyzeRequest{
			Source:   body.Source,
			FileName: body.FileName,
			Language: body.Language,
			Enhance:  body.Enhance,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if !cached && hub != nil {
			hub.Broadcast(a)
		}

		status := http.StatusCreated
		if cached {
			status = http.StatusOK
		}
		writeJSON(w, status, analyzeResponse{Analysis: a, Cached: cached})
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Store().List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []Summary{}
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := findAnalysis(svc, w, r)
		if a == nil {
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "analysis not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func mermaidHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := findAnalysis(svc, w, r)
		if a == nil {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(diagrams.Flowchart(a.Result())))
	}
}

func reportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := findAnalysis(svc, w, r)
		if a == nil {
			return
		}

		md := report.Markdown(a.Result())
		if r.URL.Query().Get("format") == "html" {
			html, err := report.HTML(a.Result())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(html))
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
	}
}

type searchResponse struct {
	Query   string                  `json:"query"`
	Results []vectordb.SearchResult `json:"results"`
}

func searchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.SearchEnabled() {
			http.Error(w, "search is not configured", http.StatusServiceUnavailable)
			return
		}
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "q is required", http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		var filter *vectordb.SearchFilter
		if lang := r.URL.Query().Get("language"); lang != "" {
			filter = &vectordb.SearchFilter{Language: &lang}
		}

		results, err := svc.Search(r.Context(), query, limit, filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if results == nil {
			results = []vectordb.SearchResult{}
		}
		writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results})
	}
}

// findAnalysis loads the {id} analysis, writing the error response itself
// and returning nil when it is missing or unreadable.
func findAnalysis(svc *Service, w http.ResponseWriter, r *http.Request) *Analysis {
	id := chi.URLParam(r, "id")
	a, err := svc.Store().Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "analysis not found", http.StatusNotFound)
		return nil
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil
	}
	return a
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
