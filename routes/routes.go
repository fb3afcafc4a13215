// Package routes pairs every page with the loader that reads its data and the
// action that performs its writes.
//
// A loader runs before the page renders. An action runs when the page's form
// is submitted and answers with a response.ActionResult; it never returns an
// error, failures become a result with Success false.
package routes

import (
	"context"
	"net/url"

	"TareasWeb/models"
	"TareasWeb/response"
	"TareasWeb/validation"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Route names, also used as template names and metric labels.
const (
	List       = "list"
	Create     = "create"
	View       = "view"
	Edit       = "edit"
	Statistics = "statistics"
)

// Params holds the path parameters of the matched route.
type Params map[string]string

// Loader reads the data a page renders.
type Loader func(ctx context.Context, params Params) (any, error)

// Action performs the write bound to a page's form.
type Action func(ctx context.Context, params Params, form url.Values) response.ActionResult

// Route maps a path to its view, loader and action. Loader and Action may be nil.
type Route struct {
	Name   string
	Title  string
	Path   string
	Params []string
	Loader Loader
	Action Action
}

// TaskService is the part of the task service client the routes use.
type TaskService interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTaskByID(ctx context.Context, id string) (models.Task, error)
	CreateTask(ctx context.Context, data models.TaskData) (any, error)
	UpdateTask(ctx context.Context, id string, task models.Task) (any, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
}

// Routes holds what the loaders and actions share.
type Routes struct {
	tasks    TaskService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// New returns the loaders and actions bound to tasks.
func New(tasks TaskService, log logrus.FieldLogger) *Routes {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Routes{
		tasks:    tasks,
		validate: validation.New(),
		log:      log,
	}
}

// Table is the router configuration: every page of the application.
func (r *Routes) Table() []Route {
	return []Route{
		{Name: List, Title: "Tareas", Path: "/", Loader: r.LoadTasks, Action: r.DeleteTask},
		{Name: Create, Title: "Nueva tarea", Path: "/crear", Action: r.CreateTask},
		{Name: View, Title: "Detalle de tarea", Path: "/ver/{id}", Params: []string{"id"}, Loader: r.LoadTask},
		{Name: Edit, Title: "Editar tarea", Path: "/editar/{id}", Params: []string{"id"}, Loader: r.LoadTask, Action: r.EditTask},
		{Name: Statistics, Title: "Estadísticas", Path: "/estadisticas", Loader: r.LoadStatistics},
	}
}
