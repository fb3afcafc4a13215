// Package response contains the small result records handed back to the views.
package response

// Localized feedback shown after a form submission.
const (
	TaskCreated       = "Tarea creada con éxito"
	TaskCreateFailed  = "No se pudo crear la tarea"
	TaskUpdated       = "Tarea actualizada con éxito"
	TaskUpdateFailed  = "No se pudo actualizar la tarea"
	TaskDeleted       = "Tarea eliminada con éxito"
	TaskDeleteFailed  = "No se pudo eliminar la tarea"
	CapacityExhausted = "The API is at capacity, try again later."
)

// A struct type that represents a message with a status and body.
// Message has the following properties:
// - Status: The status of the message.
// - Body: The body of the message.
type Message struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}

// ActionResult is the outcome of a route action.
// Success tells the view whether to redirect back to the list; Message is shown to the user either way.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded returns a successful result carrying msg.
func Succeeded(msg string) ActionResult {
	return ActionResult{Success: true, Message: msg}
}

// Failed returns a failed result carrying msg.
func Failed(msg string) ActionResult {
	return ActionResult{Success: false, Message: msg}
}
