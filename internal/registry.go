package internal

import (
	"maps"
	"path"
	"slices"
	"strings"
)

// controllerEntry is a controller registered under a file-like name.
type controllerEntry struct {
	actions *ActionSet
	file    string
	class   string
}

// registration is a pending WithController call, resolved once the routing
// config is final.
type registration struct {
	controller Controller
	name       string
	class      string
}

// Registry maps controller files to their action tables.
// It is built once at startup and read-only afterwards.
type Registry struct {
	entries map[string]*controllerEntry
	root    string
	ext     string
	suffix  string
}

func newRegistry(cfg RoutingConfig, regs []registration) *Registry {
	r := &Registry{
		entries: make(map[string]*controllerEntry, len(regs)),
		root:    path.Clean(cfg.ControllerRoot),
		ext:     cfg.ControllerExt,
		suffix:  cfg.ClassSuffix,
	}
	for _, reg := range regs {
		r.register(reg)
	}
	return r
}

func (r *Registry) register(reg registration) {
	name := strings.ToLower(strings.Trim(reg.name, "/"))
	class := reg.class
	if class == "" {
		class = capitalize(name) + r.suffix
	}
	file := r.fileFor(name)
	r.entries[file] = &controllerEntry{
		actions: newActionSet(reg.controller),
		file:    file,
		class:   class,
	}
}

// fileFor returns the cleaned candidate file for a target name.
func (r *Registry) fileFor(target string) string {
	return path.Clean(r.root + "/" + strings.ReplaceAll(target, `\`, "/") + r.ext)
}

// contains reports whether file lies inside the controller root.
func (r *Registry) contains(file string) bool {
	return strings.HasPrefix(file, r.root+"/")
}

func (r *Registry) lookup(file string) (*controllerEntry, bool) {
	e, ok := r.entries[file]
	return e, ok
}

// Files returns the registered controller files, sorted.
func (r *Registry) Files() []string {
	return slices.Sorted(maps.Keys(r.entries))
}
