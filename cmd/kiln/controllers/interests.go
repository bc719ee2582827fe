package controllers

import (
	"errors"
	"maps"
	"net/http"
	"strings"

	"github.com/dmitrymomot/kiln"
	"github.com/dmitrymomot/kiln/cmd/kiln/models"
	"github.com/dmitrymomot/kiln/pkg/model"
)

// descriptionSource reads a description from a JSON or form body, then the query.
var descriptionSource = kiln.NewExtractor(
	kiln.FromBody("description"),
	kiln.FromForm("description"),
	kiln.FromArg("description"),
)

// Interests exposes team_interests over the dispatcher.
//
//	GET    /interests                  list active interests
//	GET    /interests/show/{id}        one interest
//	POST   /interests/create           {"description": "..."}
//	PUT    /interests/update/{id}      {"description": "...", "active": 0}
//	DELETE /interests/delete/{id}      soft delete
//
// Unknown ids answer 404 on show, update and delete.
type Interests struct {
	table *models.TeamInterests
}

// NewInterests creates the interests controller.
func NewInterests(table *models.TeamInterests) *Interests {
	return &Interests{table: table}
}

// Actions implements kiln.Controller.
func (h *Interests) Actions(a *kiln.ActionSet) {
	a.Handle(kiln.IndexAction, h.list)
	a.GET("show", h.show, kiln.Required("id"))
	a.POST("create", h.create)
	a.PUT("update", h.update, kiln.Required("id"))
	a.PATCH("update", h.update, kiln.Required("id"))
	a.DELETE("delete", h.delete, kiln.Required("id"))
	a.Private("seed", h.seed)
}

func (h *Interests) list(c kiln.Context, _ kiln.Args) error {
	var (
		rows []model.Record
		err  error
	)
	if kiln.Query[bool](c, "all") {
		rows, err = h.table.SelectAll(c)
	} else {
		rows, err = h.table.Active(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"interests": rows})
}

func (h *Interests) show(c kiln.Context, args kiln.Args) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	rec, err := h.table.Find(c, id)
	if err != nil {
		return asRouteError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Interests) create(c kiln.Context, _ kiln.Args) error {
	description, ok := descriptionSource.Extract(c)
	if !ok || strings.TrimSpace(description) == "" {
		return kiln.ErrBadRequest("description is required")
	}

	id, err := h.table.Create(c, model.Record{"description": strings.TrimSpace(description)})
	if err != nil {
		return asRouteError(err)
	}
	c.LogInfo("interest created", "id", id)
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *Interests) update(c kiln.Context, args kiln.Args) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	body := c.Body()
	if len(body) == 0 {
		return kiln.ErrBadRequest("a JSON or form body is required")
	}
	rec, err := model.ToRecord(maps.Clone(body))
	if err != nil {
		return asRouteError(err)
	}

	if err := h.table.Modify(c, id, rec); err != nil {
		return asRouteError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Interests) delete(c kiln.Context, args kiln.Args) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	if err := h.table.SoftDelete(c, id); err != nil {
		return asRouteError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// seed is private: requesting /interests/seed answers 403.
func (h *Interests) seed(c kiln.Context, _ kiln.Args) error {
	return h.table.Seed(c)
}

func idArg(args kiln.Args) (int64, error) {
	id := kiln.ArgDefault[int64](args, 0, 0)
	if id <= 0 {
		return 0, kiln.ErrBadRequest("a positive numeric id is required")
	}
	return id, nil
}

// asRouteError maps a missing row to 404 and validation failures to 400.
// Other storage failures pass through and end up as 500.
func asRouteError(err error) error {
	if errors.Is(err, model.ErrNoRows) {
		return kiln.ErrNotFound("Interest not found.")
	}
	if model.IsValidation(err) {
		return kiln.ErrBadRequest("Invalid interest data.", kiln.WithError(err))
	}
	return err
}
