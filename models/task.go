// Package models contains the data models exchanged with the task service.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskData holds every field of a task except its identifier.
// It is the payload sent to the task service when a task is created.
// - Nombre: The name of the task.
// - Descripcion: The description of the task.
// - Completado: Whether the task is done.
// - FechaInicio: The start date of the task.
// - FechaFinal: The end date of the task.
type TaskData struct {
	Nombre      string `json:"nombre" validate:"required,fieldValidator"`
	Descripcion string `json:"descripcion" validate:"required,fieldValidator"`
	Completado  bool   `json:"completado"`
	FechaInicio string `json:"fechaInicio" validate:"required,dateValidator"`
	FechaFinal  string `json:"fechaFinal" validate:"required,dateValidator"`
}

// Task represents a task stored by the task service.
// The Id is assigned by the service and never changes.
type Task struct {
	Id TaskID `json:"id,omitempty"`
	TaskData
}

// TaskID is the opaque identifier of a task.
// The service may send it as a JSON string or number; both decode to text.
type TaskID string

func (id *TaskID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task id must be a string or a number: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

func (id TaskID) String() string {
	return string(id)
}
