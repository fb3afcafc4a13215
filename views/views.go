// Package views renders the HTML pages of the application.
//
// Every page is a template defining "content", executed inside the shared
// "layout". Pages only render what their loader and action produced; they
// fetch nothing themselves.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"TareasWeb/dates"
	"TareasWeb/models"
	"TareasWeb/response"
)

// RedirectDelay is how long a success message stays on screen before the list page replaces it.
const RedirectDelay = 2 * time.Second

// Page names. The list, create, view, edit and statistics pages share their
// names with the routes that render them.
const (
	ErrorPage = "error"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"shortDate": dates.Short,
	"longDate":  dates.Long,
	"inputDate": dates.Input,
}

// Redirect asks the browser to load To after Seconds.
type Redirect struct {
	Seconds int
	To      string
}

// Page is everything a template can see. State such as the task awaiting
// deletion lives here and is rebuilt on every request.
type Page struct {
	Title string
	// Data is the loader output.
	Data any
	// Result is the action output, shown as a banner.
	Result *response.ActionResult
	// Confirm is the task the list page asks to confirm deletion for.
	Confirm  *models.Task
	Redirect *Redirect
	Error    string
}

// AfterAction returns the page for an action result. A successful action
// sends the browser back to the list once RedirectDelay has passed.
func AfterAction(title string, data any, result response.ActionResult) Page {
	page := Page{Title: title, Data: data, Result: &result}
	if result.Success {
		page.Redirect = &Redirect{Seconds: int(RedirectDelay / time.Second), To: "/"}
	}
	return page
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the layout.
func New() (*Renderer, error) {
	names := []string{"list", "create", "view", "edit", "statistics", ErrorPage}
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named page to w.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := t.ExecuteTemplate(w, "layout", page); err != nil {
		return fmt.Errorf("rendering page %s: %w", name, err)
	}
	return nil
}
