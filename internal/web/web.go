// Package web serves the employee records UI: a list view and a
// create/edit form, rendered on the server and backed by the records API.
package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/deppfellow/emp-records/internal/client"
	"github.com/deppfellow/emp-records/internal/middleware"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Records is the part of the API client the UI uses.
type Records interface {
	List(ctx context.Context) ([]model.Record, error)
	Get(ctx context.Context, id string) (model.Record, error)
	Create(ctx context.Context, rec model.Record) (model.Record, error)
	Replace(ctx context.Context, id string, rec model.Record) (model.UpdateResult, error)
	Remove(ctx context.Context, id string) (model.DeleteResult, error)
}

var _ Records = (*client.Client)(nil)

// ListView is the data of the list page.
type ListView struct {
	Records []model.Record
	Error   string
}

// FormView is the data of the create/edit page. ID is empty for a new record.
type FormView struct {
	ID        string
	FirstName string
	LastName  string
	Position  string
	Level     model.Level
	Levels    []model.Level
	Error     string
}

func (f FormView) IsNew() bool {
	return f.ID == ""
}

// Action is the URL the form posts to.
func (f FormView) Action() string {
	if f.IsNew() {
		return "/create"
	}
	return "/edit/" + f.ID
}

// Record builds the record the form describes.
func (f FormView) Record() model.Record {
	return model.Record{
		Name:     JoinName(f.FirstName, f.LastName),
		Position: strings.TrimSpace(f.Position),
		Level:    f.Level,
	}
}

// JoinName joins first and last name with a single space.
func JoinName(first, last string) string {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if last == "" {
		return first
	}
	if first == "" {
		return last
	}
	return first + " " + last
}

// SplitName splits name at its first space: the first word is the first
// name and the rest, however many words, is the last name.
func SplitName(name string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}

// UI holds the page handlers.
type UI struct {
	records Records
}

func NewUI(records Records) *UI {
	return &UI{records: records}
}

// List renders every record.
func (ui *UI) List(c echo.Context) error {
	return ui.renderList(c, http.StatusOK, "")
}

// NewForm renders an empty form.
func (ui *UI) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "form", FormView{Levels: model.Levels})
}

// EditForm renders the form filled with the record named by :id. If the
// record cannot be loaded the list is shown with the reason.
func (ui *UI) EditForm(c echo.Context) error {
	id := c.Param("id")
	rec, err := ui.records.Get(c.Request().Context(), id)
	if err != nil {
		middleware.GetLogger(c).Warn().Err(err).Str("record_id", id).Msg("failed to load record for editing")
		return ui.renderList(c, statusFor(err), userMessage(err))
	}

	first, last := SplitName(rec.Name)
	return c.Render(http.StatusOK, "form", FormView{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Position:  rec.Position,
		Level:     rec.Level,
		Levels:    model.Levels,
	})
}

// Submit creates or replaces a record from the posted form. On success it
// redirects to the list; on failure the form is shown again with the input
// kept and the error visible.
func (ui *UI) Submit(c echo.Context) error {
	form := FormView{
		ID:        c.Param("id"),
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Position:  c.FormValue("position"),
		Level:     model.Level(c.FormValue("level")),
		Levels:    model.Levels,
	}

	ctx := c.Request().Context()
	var err error
	if form.IsNew() {
		_, err = ui.records.Create(ctx, form.Record())
	} else {
		_, err = ui.records.Replace(ctx, form.ID, form.Record())
	}
	if err != nil {
		middleware.GetLogger(c).Warn().Err(err).Str("record_id", form.ID).Msg("failed to save record")
		form.Error = userMessage(err)
		return c.Render(statusFor(err), "form", form)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes the record named by :id and redirects to the list. A failed
// delete renders the list with the error instead.
func (ui *UI) Delete(c echo.Context) error {
	id := c.Param("id")
	if _, err := ui.records.Remove(c.Request().Context(), id); err != nil {
		middleware.GetLogger(c).Warn().Err(err).Str("record_id", id).Msg("failed to delete record")
		return ui.renderList(c, statusFor(err), userMessage(err))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (ui *UI) renderList(c echo.Context, status int, message string) error {
	view := ListView{Error: message}

	records, err := ui.records.List(c.Request().Context())
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to list records")
		if view.Error == "" {
			view.Error = userMessage(err)
		}
		if status < http.StatusBadRequest {
			status = statusFor(err)
		}
	}
	view.Records = records

	return c.Render(status, "list", view)
}

// userMessage turns an API call failure into text for the page.
func userMessage(err error) string {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		return "Could not reach the records service. Please try again."
	}

	if apiErr.Message == "" {
		return "An error occurred: " + apiErr.Status
	}
	if len(apiErr.Fields) == 0 {
		return apiErr.Message
	}

	details := make([]string, 0, len(apiErr.Fields))
	for _, f := range apiErr.Fields {
		details = append(details, fmt.Sprintf("%s %s", f.Field, f.Error))
	}
	return apiErr.Message + ": " + strings.Join(details, "; ")
}

// statusFor keeps the API's client errors and reports everything else as a
// bad gateway.
func statusFor(err error) int {
	if code := client.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
