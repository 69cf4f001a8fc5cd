// Package httpapi exposes the three-endpoint query surface: a liveness
// root, a search endpoint that enqueues a QueryTask and mints its token,
// and a results endpoint that paginates a task's current state.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/wavemark/fathom/internal/queryworker"
	"github.com/wavemark/fathom/internal/region"
)

// PerPage is the fixed page size for /results.
const PerPage = 50

// Server holds the shared state every handler needs: the job table and
// the queue feeding the single query worker.
type Server struct {
	jobs  *queryworker.JobTable
	queue *queryworker.Queue
}

// New wires jobs and queue into a chi router with a wide-open CORS policy.
func New(jobs *queryworker.JobTable, queue *queryworker.Queue) http.Handler {
	s := &Server{jobs: jobs, queue: queue}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", s.handleRoot)
	r.Get("/search", s.handleSearch)
	r.Get("/results", s.handleResults)
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("INDEX ROOT"))
}

// handleSearch mints a task, registers it, and hands it to the worker.
// The job table write lock is held only for the map insertion; the
// queue send happens outside it. The queue is unbounded, so the only
// send failure is the queue having been closed (server shutdown).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topLeftLon, err1 := parseFloat(q.Get("top_left_long"))
	topLeftLat, err2 := parseFloat(q.Get("top_left_lat"))
	bottomRightLon, err3 := parseFloat(q.Get("bottom_right_long"))
	bottomRightLat, err4 := parseFloat(q.Get("bottom_right_lat"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid or missing coordinate parameter"})
		return
	}

	task := queryworker.NewTask(uuid.New(), region.Region{
		TopLeft:     region.Coordinate{Lon: topLeftLon, Lat: topLeftLat},
		BottomRight: region.Coordinate{Lon: bottomRightLon, Lat: bottomRightLat},
	})
	s.jobs.Insert(task)

	if err := s.queue.Send(task); err != nil {
		log.Printf("httpapi: failed to enqueue task %s: %v", task.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": task.ID.String()})
}

type paginatedResponse struct {
	Status     string          `json:"status"`
	Pagination paginationBlock `json:"pagination"`
	Results    any             `json:"results"`
}

type paginationBlock struct {
	Count       int `json:"count"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// handleResults looks the task up (404 if unknown), takes a snapshot of its
// state and results under the task's own read lock, then paginates that
// snapshot.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := uuid.Parse(q.Get("uuid"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	task, ok := s.jobs.Lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.NotFound(w, r)
			return
		}
		page = n
	}

	state, results := task.Results()
	count := len(results)

	start := (page - 1) * PerPage
	if start > count {
		http.NotFound(w, r)
		return
	}
	end := start + PerPage
	if end > count {
		end = count
	}

	writeJSON(w, http.StatusOK, paginatedResponse{
		Status: state.String(),
		Pagination: paginationBlock{
			Count:       count,
			CurrentPage: page,
			PerPage:     PerPage,
		},
		Results: results[start:end],
	})
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("httpapi: failed to encode response: %v", err)
	}
}
