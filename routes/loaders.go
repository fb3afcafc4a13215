package routes

import (
	"context"
	"fmt"

	"TareasWeb/models"
	"TareasWeb/stats"
)

// ListData is what the list page renders.
type ListData struct {
	Tasks []models.Task
}

// TaskData is what the detail and edit pages render.
type TaskData struct {
	Task models.Task
}

// StatisticsData is what the statistics page renders.
type StatisticsData struct {
	Tasks   []models.Task
	Summary stats.Summary
}

// LoadTasks fetches every task for the list page.
func (r *Routes) LoadTasks(ctx context.Context, _ Params) (any, error) {
	tasks, err := r.tasks.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return ListData{Tasks: tasks}, nil
}

// LoadTask fetches the task named by the id path parameter.
func (r *Routes) LoadTask(ctx context.Context, params Params) (any, error) {
	id := params["id"]
	task, err := r.tasks.GetTaskByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading task %s: %w", id, err)
	}
	return TaskData{Task: task}, nil
}

// LoadStatistics fetches every task and aggregates them; the aggregation makes no further calls.
func (r *Routes) LoadStatistics(ctx context.Context, _ Params) (any, error) {
	tasks, err := r.tasks.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks for statistics: %w", err)
	}
	return StatisticsData{Tasks: tasks, Summary: stats.Compute(tasks)}, nil
}
