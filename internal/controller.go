package internal

import (
	"slices"
	"strings"
)

// IndexAction is the entry point used when no other action matches.
const IndexAction = "index"

// ActionFunc is the signature of a controller action.
// args holds the values bound to the action's declared parameters.
type ActionFunc func(c Context, args Args) error

// Visibility controls whether an action can be reached from a request.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// Action is one entry in a controller's action table.
type Action struct {
	Handler    ActionFunc
	Name       string
	Params     []Param
	Visibility Visibility
}

// Controller declares its actions on an ActionSet.
//
// Example:
//
//	type InterestsController struct {
//	    interests *model.Table
//	}
//
//	func (ic *InterestsController) Actions(a *kiln.ActionSet) {
//	    a.Handle("index", ic.list)
//	    a.GET("show", ic.show, kiln.Required("id"))
//	    a.Private("seed", ic.seed)
//	}
type Controller interface {
	Actions(a *ActionSet)
}

// ActionSet is a controller's action table.
// Action names are matched case-insensitively.
type ActionSet struct {
	actions map[string]*Action
}

func newActionSet(c Controller) *ActionSet {
	s := &ActionSet{actions: make(map[string]*Action)}
	c.Actions(s)
	return s
}

// Handle registers a public action.
func (s *ActionSet) Handle(name string, h ActionFunc, params ...Param) {
	s.add(name, Public, h, params)
}

// Protected registers an action that is never reachable from a request.
func (s *ActionSet) Protected(name string, h ActionFunc, params ...Param) {
	s.add(name, Protected, h, params)
}

// Private registers an action that is never reachable from a request.
func (s *ActionSet) Private(name string, h ActionFunc, params ...Param) {
	s.add(name, Private, h, params)
}

// GET registers a public action that only answers GET requests.
func (s *ActionSet) GET(name string, h ActionFunc, params ...Param) {
	s.Handle(verbAction(name, VerbGet), h, params...)
}

// POST registers a public action that only answers POST requests.
func (s *ActionSet) POST(name string, h ActionFunc, params ...Param) {
	s.Handle(verbAction(name, VerbPost), h, params...)
}

// PUT registers a public action that only answers PUT requests.
func (s *ActionSet) PUT(name string, h ActionFunc, params ...Param) {
	s.Handle(verbAction(name, VerbPut), h, params...)
}

// PATCH registers a public action that only answers PATCH requests.
func (s *ActionSet) PATCH(name string, h ActionFunc, params ...Param) {
	s.Handle(verbAction(name, VerbPatch), h, params...)
}

// DELETE registers a public action that only answers DELETE requests.
func (s *ActionSet) DELETE(name string, h ActionFunc, params ...Param) {
	s.Handle(verbAction(name, VerbDelete), h, params...)
}

// HEAD registers a public action that only answers HEAD requests.
func (s *ActionSet) HEAD(name string, h ActionFunc, params ...Param) {
	s.Handle(verbAction(name, VerbHead), h, params...)
}

// OPTIONS registers a public action that only answers OPTIONS requests.
func (s *ActionSet) OPTIONS(name string, h ActionFunc, params ...Param) {
	s.Handle(verbAction(name, VerbOptions), h, params...)
}

// Lookup finds an action by name.
func (s *ActionSet) Lookup(name string) (*Action, bool) {
	a, ok := s.actions[strings.ToLower(name)]
	return a, ok
}

// Names returns the registered action names, sorted.
func (s *ActionSet) Names() []string {
	names := make([]string, 0, len(s.actions))
	for _, a := range s.actions {
		names = append(names, a.Name)
	}
	slices.Sort(names)
	return names
}

func (s *ActionSet) add(name string, v Visibility, h ActionFunc, params []Param) {
	if name == "" || h == nil {
		panic("kiln: action requires a name and a handler")
	}
	s.actions[strings.ToLower(name)] = &Action{
		Handler:    h,
		Name:       name,
		Params:     params,
		Visibility: v,
	}
}

func verbAction(name string, v Verb) string {
	return name + "_" + string(v)
}
