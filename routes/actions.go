package routes

import (
	"context"
	"errors"
	"net/url"

	"TareasWeb/commands"
	"TareasWeb/response"

	"github.com/sirupsen/logrus"
)

var errNotDeleted = errors.New("task service refused the deletion")

// DeleteTask deletes the task whose id was submitted by the confirmation form.
// A refusal from the service counts as a failure, like a transport error.
func (r *Routes) DeleteTask(ctx context.Context, _ Params, form url.Values) response.ActionResult {
	cmd := commands.NewDeleteTaskCommand(form)
	if err := r.validate.Struct(cmd); err != nil {
		return r.fail("delete a task", cmd.Id, err, response.TaskDeleteFailed)
	}
	deleted, err := r.tasks.DeleteTask(ctx, cmd.Id)
	if err == nil && !deleted {
		err = errNotDeleted
	}
	if err != nil {
		return r.fail("delete a task", cmd.Id, err, response.TaskDeleteFailed)
	}
	r.log.WithFields(logrus.Fields{
		"task operation": "delete a task",
		"task id":        cmd.Id,
	}).Info("task deleted")
	return response.Succeeded(response.TaskDeleted)
}

// CreateTask creates a pending task from the creation form.
func (r *Routes) CreateTask(ctx context.Context, _ Params, form url.Values) response.ActionResult {
	cmd := commands.NewCreateTaskCommand(form)
	if err := r.validate.Struct(cmd); err != nil {
		return r.fail("create a task", "", err, response.TaskCreateFailed)
	}
	if _, err := r.tasks.CreateTask(ctx, cmd.TaskData); err != nil {
		return r.fail("create a task", "", err, response.TaskCreateFailed)
	}
	r.log.WithFields(logrus.Fields{
		"task operation": "create a task",
		"task name":      cmd.Nombre,
	}).Info("task created")
	return response.Succeeded(response.TaskCreated)
}

// EditTask replaces every field of the task named by the id path parameter.
func (r *Routes) EditTask(ctx context.Context, params Params, form url.Values) response.ActionResult {
	cmd := commands.NewEditTaskCommand(params["id"], form)
	if err := r.validate.Struct(cmd); err != nil {
		return r.fail("update a task", cmd.Id, err, response.TaskUpdateFailed)
	}
	if _, err := r.tasks.UpdateTask(ctx, cmd.Id, cmd.Task()); err != nil {
		return r.fail("update a task", cmd.Id, err, response.TaskUpdateFailed)
	}
	r.log.WithFields(logrus.Fields{
		"task operation": "update a task",
		"task id":        cmd.Id,
	}).Info("task updated")
	return response.Succeeded(response.TaskUpdated)
}

func (r *Routes) fail(operation, id string, err error, msg string) response.ActionResult {
	r.log.WithFields(logrus.Fields{
		"task operation": operation,
		"task id":        id,
	}).Error(err.Error())
	return response.Failed(msg)
}
