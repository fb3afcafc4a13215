// Package apitest provides an in-memory stand-in for the external task service.
//
// The fake serves the same five endpoints as the real service and keeps its
// tasks in insertion order behind a mutex. Quirks of the real service (empty
// answers to list and create) can be switched on to exercise the client's
// tolerance for them.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"TareasWeb/models"

	"github.com/google/uuid"
)

// Server is a running fake task service. Its URL is the base URL of the endpoints.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	tasks []models.Task
	calls map[string]int

	// EmptyAnswers makes create answer with an empty body and list answer
	// with an empty body when there are no tasks.
	EmptyAnswers bool
}

// NewServer starts a fake task service. Close it when done.
func NewServer() *Server {
	s := &Server{calls: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ObtenerTareas", s.list)
	mux.HandleFunc("GET /ObtenerTareaPorId/{id}", s.get)
	mux.HandleFunc("POST /CrearTarea", s.create)
	mux.HandleFunc("PUT /EditarTarea/{id}", s.update)
	mux.HandleFunc("DELETE /EliminarTarea/{id}", s.delete)
	s.Server = httptest.NewServer(mux)
	return s
}

// Seed stores tasks directly and returns them with their assigned ids.
func (s *Server) Seed(data ...models.TaskData) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, 0, len(data))
	for _, d := range data {
		task := models.Task{Id: newID(), TaskData: d}
		s.tasks = append(s.tasks, task)
		out = append(out, task)
	}
	return out
}

// Tasks returns a copy of the stored tasks.
func (s *Server) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.tasks...)
}

// Calls returns how many requests reached the endpoint named by its verb and path pattern,
// for instance "GET /ObtenerTareas".
func (s *Server) Calls(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[pattern]
}

func (s *Server) list(res http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[req.Pattern]++
	if len(s.tasks) == 0 && s.EmptyAnswers {
		res.WriteHeader(http.StatusOK)
		return
	}
	tasks := s.tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(res, http.StatusOK, tasks)
}

func (s *Server) get(res http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[req.Pattern]++
	i := s.indexOf(req.PathValue("id"))
	if i < 0 {
		res.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(res, http.StatusOK, s.tasks[i])
}

func (s *Server) create(res http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[req.Pattern]++
	var data models.TaskData
	if err := json.NewDecoder(req.Body).Decode(&data); err != nil {
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		return
	}
	task := models.Task{Id: newID(), TaskData: data}
	s.tasks = append(s.tasks, task)
	if s.EmptyAnswers {
		res.WriteHeader(http.StatusCreated)
		return
	}
	writeJSON(res, http.StatusCreated, task)
}

func (s *Server) update(res http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[req.Pattern]++
	id := req.PathValue("id")
	var task models.Task
	if err := json.NewDecoder(req.Body).Decode(&task); err != nil {
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		return
	}
	i := s.indexOf(id)
	if i < 0 {
		http.Error(res, "task not found", http.StatusNotFound)
		return
	}
	task.Id = models.TaskID(id)
	s.tasks[i] = task
	writeJSON(res, http.StatusOK, task)
}

func (s *Server) delete(res http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[req.Pattern]++
	i := s.indexOf(req.PathValue("id"))
	if i < 0 {
		res.WriteHeader(http.StatusNotFound)
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	res.WriteHeader(http.StatusNoContent)
}

func (s *Server) indexOf(id string) int {
	for i, t := range s.tasks {
		if string(t.Id) == id {
			return i
		}
	}
	return -1
}

func newID() models.TaskID {
	return models.TaskID(uuid.NewString())
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_ = json.NewEncoder(res).Encode(v)
}
