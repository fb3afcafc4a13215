// Package handlers provides the HTTP request handlers for TareasWeb.
//
// This package binds the route table of the routes package to net/http. For
// every route it serves:
//
//  1. GET {path} - run the loader, then render the page
//  2. POST {path} - run the action, run the loader again, then render the page with the action result
//
// POST is only served for routes with an action. Loader failures render the
// error page with status 502 Bad Gateway, since the task service is the one
// that failed. Every request goes through the request id, access log and rate
// limit middleware, and is counted in Prometheus.
package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"TareasWeb/models"
	"TareasWeb/routes"
	"TareasWeb/views"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ConfirmParam is the query parameter naming the task the list page asks to confirm deletion for.
const ConfirmParam = "confirmar"

// Options configures a Server. Zero values pick the defaults.
type Options struct {
	Logger logrus.FieldLogger
	// Metrics may be nil, in which case nothing is recorded.
	Metrics *Metrics
	// Limiter defaults to 2 requests per second with a burst of 20.
	Limiter *rate.Limiter
	// Timeout bounds loader and action calls. It defaults to 10 seconds.
	Timeout time.Duration
}

// Server serves the pages of the route table.
type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	views   *views.Renderer
	log     logrus.FieldLogger
	metrics *Metrics
	timeout time.Duration
}

// NewServer registers every route of table.
func NewServer(table []routes.Route, renderer *views.Renderer, opts Options) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		views:   renderer,
		log:     opts.Logger,
		metrics: opts.Metrics,
		timeout: opts.Timeout,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Second
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(2, 20)
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	for _, route := range table {
		path := route.Path
		if path == "/" {
			path = "/{$}"
		}
		s.mux.HandleFunc("GET "+path, s.instrument(route.Name, s.pageHandler(route)))
		if route.Action != nil {
			s.mux.HandleFunc("POST "+path, s.instrument(route.Name, s.submitHandler(route)))
		}
	}

	s.handler = WithRequestID(Logging(s.log)(RateLimiter(limiter)(s.mux)))
	return s
}

func (s *Server) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	s.handler.ServeHTTP(res, req)
}

func (s *Server) handleHealth(res http.ResponseWriter, req *http.Request) {
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.WriteHeader(http.StatusOK)
	res.Write([]byte("ok"))
}

// pageHandler renders a route after running its loader.
func (s *Server) pageHandler(route routes.Route) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), s.timeout)
		defer cancel()

		data, err := s.load(ctx, route, req)
		if err != nil {
			s.loaderFailed(res, req, route, err)
			return
		}
		page := views.Page{Title: route.Title, Data: data}
		if list, ok := data.(routes.ListData); ok {
			page.Confirm = findTask(list.Tasks, req.URL.Query().Get(ConfirmParam))
		}
		s.render(res, req, route, http.StatusOK, page)
	}
}

// submitHandler runs a route's action, reloads its data and renders the outcome.
func (s *Server) submitHandler(route routes.Route) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), s.timeout)
		defer cancel()

		if err := req.ParseForm(); err != nil {
			s.metrics.countError(route.Name)
			http.Error(res, "Invalid form body", http.StatusBadRequest)
			s.entry(req, route).Error("Invalid form body: " + err.Error())
			return
		}
		result := route.Action(ctx, pathParams(route, req), req.PostForm)
		if !result.Success {
			s.metrics.countError(route.Name)
		}
		s.entry(req, route).WithField("success", result.Success).Info("Processing request")

		data, err := s.load(ctx, route, req)
		if err != nil {
			s.loaderFailed(res, req, route, err)
			return
		}
		s.render(res, req, route, http.StatusOK, views.AfterAction(route.Title, data, result))
	}
}

func (s *Server) load(ctx context.Context, route routes.Route, req *http.Request) (any, error) {
	if route.Loader == nil {
		return nil, nil
	}
	return route.Loader(ctx, pathParams(route, req))
}

func (s *Server) loaderFailed(res http.ResponseWriter, req *http.Request, route routes.Route, err error) {
	s.metrics.countError(route.Name)
	s.entry(req, route).Error(err.Error())
	page := views.Page{Title: route.Title, Error: "No se pudo obtener la información del servicio de tareas."}
	s.render(res, req, route, http.StatusBadGateway, page, views.ErrorPage)
}

// render writes the page named after the route, or the override page when given.
func (s *Server) render(res http.ResponseWriter, req *http.Request, route routes.Route, status int, page views.Page, override ...string) {
	name := route.Name
	if len(override) > 0 {
		name = override[0]
	}
	var buf bytes.Buffer
	if err := s.views.Render(&buf, name, page); err != nil {
		s.metrics.countError(route.Name)
		s.entry(req, route).Error(err.Error())
		http.Error(res, "Internal server error", http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.WriteHeader(status)
	buf.WriteTo(res)
}

func (s *Server) entry(req *http.Request, route routes.Route) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"task operation": route.Name,
		"request":        req.Method + " " + req.URL.Path,
		"request_id":     RequestIDFromContext(req.Context()),
	})
}

func pathParams(route routes.Route, req *http.Request) routes.Params {
	params := routes.Params{}
	for _, name := range route.Params {
		params[name] = req.PathValue(name)
	}
	return params
}

func findTask(tasks []models.Task, id string) *models.Task {
	if id == "" {
		return nil
	}
	for i := range tasks {
		if string(tasks[i].Id) == id {
			return &tasks[i]
		}
	}
	return nil
}
