package internal

import (
	"cmp"
	"log/slog"
	"strings"
)

// State is a step of request resolution.
type State uint8

const (
	StateStart State = iota
	StateTargetResolved
	StateClassLoaded
	StateMethodResolved
	StateInvoked
	StateForbidden
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateTargetResolved:
		return "target_resolved"
	case StateClassLoaded:
		return "class_loaded"
	case StateMethodResolved:
		return "method_resolved"
	case StateInvoked:
		return "invoked"
	case StateForbidden:
		return "forbidden"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// RouteTarget is a resolved action together with the arguments it will be
// invoked with.
type RouteTarget struct {
	Action *Action
	File   string
	Class  string
	Method string
	Args   ArgBag
	State  State
}

// Dispatcher resolves parsed requests to controller actions and invokes them.
// It only reads the registry and is safe for concurrent use.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// Resolve walks the resolution states for req.
// The containment check runs before the registry lookup, so a traversal
// attempt is always reported as forbidden, never as not found.
func (d *Dispatcher) Resolve(req *Request) (*RouteTarget, error) {
	rt := &RouteTarget{State: StateStart, Args: req.Args}

	file := d.registry.fileFor(req.Target)
	if !d.registry.contains(file) {
		return rt, ErrForbidden("Security Exception, attempt to traverse directories.")
	}
	entry, ok := d.registry.lookup(file)
	if !ok {
		return rt, ErrNotFound("Controller file not found: " + file)
	}
	rt.File = file
	rt.State = StateTargetResolved

	class := req.Class + d.registry.suffix
	if !strings.EqualFold(entry.class, class) {
		return rt, ErrNotFound("Class " + class + " not found in " + file)
	}
	rt.Class = class
	rt.State = StateClassLoaded

	action, args, ok := resolveAction(entry.actions, req)
	if !ok {
		return rt, ErrNotFound("Method " + cmp.Or(req.Method, IndexAction) + " not found on " + class)
	}
	if action.Visibility != Public {
		return rt, ErrForbidden("The called method is not public.")
	}
	rt.Action = action
	rt.Method = action.Name
	rt.Args = args
	rt.State = StateMethodResolved

	return rt, nil
}

// resolveAction tries {method}_{VERB}, then {method}, then index with the
// method token as the first positional argument.
func resolveAction(actions *ActionSet, req *Request) (*Action, ArgBag, bool) {
	if req.Method != "" {
		if a, ok := actions.Lookup(verbAction(req.Method, req.Verb)); ok {
			return a, req.Args, true
		}
		if a, ok := actions.Lookup(req.Method); ok {
			return a, req.Args, true
		}
	}

	index, ok := actions.Lookup(IndexAction)
	if !ok {
		return nil, req.Args, false
	}
	if req.Method != "" {
		return index, req.Args.prepend(req.Method), true
	}
	return index, req.Args, true
}

// Dispatch resolves req, binds its arguments and invokes the action.
// The bound arguments are recorded on req.Params; an index fallback leaves
// the method token at the front of req.Args.
func (d *Dispatcher) Dispatch(c Context, req *Request) error {
	rt, err := d.Resolve(req)
	if err != nil {
		if re := AsRouteError(err); re != nil {
			d.logger.DebugContext(c, "route resolution failed",
				slog.String("target", req.Target),
				slog.String("method", req.Method),
				slog.String("reached", rt.State.String()),
				slog.String("state", re.State.String()),
				slog.Int("status", re.Code),
			)
		}
		return err
	}

	req.Args = rt.Args
	args := Bind(rt.Action.Params, rt.Args)
	req.Params = append(req.Params, args...)

	d.logger.DebugContext(c, "dispatching",
		slog.String("file", rt.File),
		slog.String("class", rt.Class),
		slog.String("action", rt.Method),
		slog.String("verb", string(req.Verb)),
		slog.Int("args", len(args)),
	)

	return rt.Action.Handler(c, args)
}
