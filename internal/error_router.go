package internal

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// statusMessages are the user-facing texts of the default error responses.
var statusMessages = map[int]string{
	http.StatusBadRequest:            "The request could not be understood by the server.",
	http.StatusForbidden:             "You do not have permission to access the requested page.",
	http.StatusNotFound:              "The page that you have requested could not be found.",
	http.StatusMethodNotAllowed:      "The request method is not supported for the requested page.",
	http.StatusRequestEntityTooLarge: "The request body exceeds the size the server accepts.",
	http.StatusInternalServerError:   "The server encountered an internal error and was unable to complete your request.",
}

// routeErrorKey is the context key under which an override target finds the
// error it is handling.
type routeErrorKey struct{}

// requestKey is the context key of the parsed Request.
type requestKey struct{}

// RouteErrorFrom returns the error an override target was dispatched for.
func RouteErrorFrom(c Context) *RouteError {
	return ContextValue[*RouteError](c, routeErrorKey{})
}

// errorRouter turns errors into responses: configured override targets
// first, the built-in default response otherwise.
type errorRouter struct {
	dispatcher *Dispatcher
	overrides  map[int]string
	policy     *bluemonday.Policy
	logger     *slog.Logger
	debug      bool
}

func newErrorRouter(d *Dispatcher, cfg RoutingConfig, logger *slog.Logger) *errorRouter {
	overrides := make(map[int]string, 2)
	if cfg.ForbiddenTarget != "" {
		overrides[http.StatusForbidden] = cfg.ForbiddenTarget
	}
	if cfg.NotFoundTarget != "" {
		overrides[http.StatusNotFound] = cfg.NotFoundTarget
	}
	return &errorRouter{
		dispatcher: d,
		overrides:  overrides,
		policy:     bluemonday.StrictPolicy(),
		logger:     logger,
		debug:      cfg.Debug,
	}
}

// handle writes a response for err. Errors that are not RouteErrors become 500s.
func (er *errorRouter) handle(c Context, err error) {
	re := AsRouteError(err)
	if re == nil {
		er.logger.ErrorContext(c, "action failed", slog.String("error", err.Error()))
		re = ErrInternal(err.Error(), WithError(err))
	} else if re.Code >= http.StatusInternalServerError {
		er.logger.ErrorContext(c, "request failed",
			slog.Int("status", re.Code),
			slog.String("error", re.Error()),
		)
	}

	if target, ok := er.overrides[re.Code]; ok {
		if req := ParsedRequest(c); req != nil {
			if er.redispatch(c, req, target, re) {
				return
			}
		}
	}

	er.respond(c, re)
}

// redispatch runs the override target through the dispatcher with the
// original verb. It reports whether the override produced a response.
func (er *errorRouter) redispatch(c Context, orig *Request, target string, re *RouteError) bool {
	name, method, _ := strings.Cut(target, "/")
	req := &Request{
		Headers: orig.Headers,
		Verb:    orig.Verb,
		Target:  strings.ToLower(name),
		Class:   capitalize(strings.ToLower(name)),
		Method:  method,
		Args:    ArgBag{Named: map[string]string{}},
	}

	c.Set(routeErrorKey{}, re)
	c.Set(requestKey{}, req)

	if err := er.dispatcher.Dispatch(c, req); err != nil {
		er.logger.WarnContext(c, "error override failed",
			slog.String("target", target),
			slog.Int("status", re.Code),
			slog.String("error", err.Error()),
		)
		return c.Written()
	}
	return true
}

// respond writes the built-in response for re.
func (er *errorRouter) respond(c Context, re *RouteError) {
	if c.Written() {
		return
	}

	code := re.Code
	if code < http.StatusBadRequest || code > 599 {
		code = http.StatusInternalServerError
	}
	message, ok := statusMessages[code]
	if !ok {
		message = http.StatusText(code)
	}

	if wantsJSON(c.Request()) {
		resp := errorResponse{
			Status:  code,
			Error:   http.StatusText(code),
			Message: message,
		}
		if er.debug {
			resp.Detail = re.Error()
		}
		_ = c.JSON(code, resp)
		return
	}

	var b strings.Builder
	b.WriteString("<h1>")
	b.WriteString(strconv.Itoa(code))
	b.WriteString(" ")
	b.WriteString(http.StatusText(code))
	b.WriteString("</h1>")
	b.WriteString(message)
	if er.debug {
		b.WriteString("<p>Error Message: ")
		b.WriteString(er.policy.Sanitize(re.Error()))
		b.WriteString("</p>")
	}
	_ = c.HTML(code, b.String())
}

// errorResponse is the JSON shape of a default error response.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Status  int    `json:"status"`
}
