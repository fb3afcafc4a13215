// Package commands contains the commands for the application to be used for request inputs.
//
// Each command is decoded from a submitted HTML form. Field names match the
// JSON names the task service uses.
package commands

import (
	"net/url"

	"TareasWeb/models"
)

// DeleteTaskCommand represents a command to delete a task.
type DeleteTaskCommand struct {
	Id string `validate:"required"`
}

// NewDeleteTaskCommand reads the id field of the confirmation form.
func NewDeleteTaskCommand(form url.Values) DeleteTaskCommand {
	return DeleteTaskCommand{Id: form.Get("id")}
}

// CreateTaskCommand represents a command to create a task.
// New tasks always start pending.
type CreateTaskCommand struct {
	models.TaskData
}

// NewCreateTaskCommand reads the creation form.
func NewCreateTaskCommand(form url.Values) CreateTaskCommand {
	return CreateTaskCommand{TaskData: models.TaskData{
		Nombre:      form.Get("nombre"),
		Descripcion: form.Get("descripcion"),
		Completado:  false,
		FechaInicio: form.Get("fechaInicio"),
		FechaFinal:  form.Get("fechaFinal"),
	}}
}

// EditTaskCommand represents a command to replace every field of an existing task.
type EditTaskCommand struct {
	Id string `validate:"required"`
	models.TaskData
}

// NewEditTaskCommand reads the edit form of the task identified by id.
// The task is completed only when the completado checkbox was submitted.
func NewEditTaskCommand(id string, form url.Values) EditTaskCommand {
	return EditTaskCommand{
		Id: id,
		TaskData: models.TaskData{
			Nombre:      form.Get("nombre"),
			Descripcion: form.Get("descripcion"),
			Completado:  form.Has("completado"),
			FechaInicio: form.Get("fechaInicio"),
			FechaFinal:  form.Get("fechaFinal"),
		},
	}
}

// Task builds the full task sent to the service.
func (c EditTaskCommand) Task() models.Task {
	return models.Task{Id: models.TaskID(c.Id), TaskData: c.TaskData}
}
