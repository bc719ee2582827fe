package controllers

import (
	"net/http"

	"github.com/dmitrymomot/kiln"
	"github.com/dmitrymomot/kiln/cmd/kiln/models"
)

// Home is the default target.
type Home struct {
	interests *models.TeamInterests
}

// NewHome creates the home controller.
func NewHome(interests *models.TeamInterests) *Home {
	return &Home{interests: interests}
}

// Actions implements kiln.Controller.
func (h *Home) Actions(a *kiln.ActionSet) {
	a.Handle(kiln.IndexAction, h.index)
	a.GET("restEx", h.restEx)
	a.POST("restEx", h.restEx)
}

func (h *Home) index(c kiln.Context, _ kiln.Args) error {
	interests, err := h.interests.Active(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"interests": interests,
	})
}

// restEx echoes what the dispatcher made of the request.
func (h *Home) restEx(c kiln.Context, args kiln.Args) error {
	req := c.Parsed()
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Retrieved via " + string(req.Verb) + ".",
		"request": echo(req, args),
	})
}

type requestEcho struct {
	Args   map[string]string `json:"args"`
	Body   map[string]any    `json:"body,omitempty"`
	Verb   string            `json:"verb"`
	Target string            `json:"target"`
	Method string            `json:"method"`
	Params []any             `json:"params"`
}

func echo(req *kiln.Request, args kiln.Args) requestEcho {
	params := []any(args)
	if params == nil {
		params = []any{}
	}
	return requestEcho{
		Args:   req.Args.Map(),
		Body:   req.Body,
		Verb:   string(req.Verb),
		Target: req.Target,
		Method: req.Method,
		Params: params,
	}
}
