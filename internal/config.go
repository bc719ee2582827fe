package internal

import (
	"path"
	"strings"
)

// Routing defaults.
const (
	defaultControllerRoot = "controllers"
	defaultControllerExt  = ".go"
	defaultClassSuffix    = "Controller"
	defaultTarget         = "home"
)

// RoutingConfig controls how requests are mapped to controllers.
type RoutingConfig struct {
	// BasePath segments are removed from every request path before parsing.
	BasePath string `env:"ROUTING_BASE_PATH" yaml:"base_path"`

	// ControllerRoot is the directory controller names are resolved under.
	// Requests resolving outside of it are rejected with 403.
	ControllerRoot string `env:"ROUTING_CONTROLLER_ROOT" envDefault:"controllers" yaml:"controller_root"`

	// ControllerExt is appended to the target name to form the controller file.
	ControllerExt string `env:"ROUTING_CONTROLLER_EXT" envDefault:".go" yaml:"controller_ext"`

	// ClassSuffix is appended to the capitalized target to form the class name.
	ClassSuffix string `env:"ROUTING_CLASS_SUFFIX" envDefault:"Controller" yaml:"class_suffix"`

	// DefaultTarget handles requests with an empty path.
	DefaultTarget string `env:"ROUTING_DEFAULT_TARGET" envDefault:"home" yaml:"default_target"`

	// NotFoundTarget and ForbiddenTarget, when set, take over 404 and 403
	// responses. Format: "target" or "target/action".
	NotFoundTarget  string `env:"ROUTING_NOT_FOUND_TARGET" yaml:"not_found_target"`
	ForbiddenTarget string `env:"ROUTING_FORBIDDEN_TARGET" yaml:"forbidden_target"`

	// Debug adds internal error messages to default error responses.
	Debug bool `env:"ROUTING_DEBUG" envDefault:"false" yaml:"debug"`
}

// DefaultRoutingConfig returns the routing configuration used when none is given.
func DefaultRoutingConfig() RoutingConfig {
	return RoutingConfig{
		ControllerRoot: defaultControllerRoot,
		ControllerExt:  defaultControllerExt,
		ClassSuffix:    defaultClassSuffix,
		DefaultTarget:  defaultTarget,
	}
}

// withDefaults fills zero fields with their defaults.
func (c RoutingConfig) withDefaults() RoutingConfig {
	root := strings.TrimSpace(c.ControllerRoot)
	if root == "" || path.Clean(root) == "." || path.Clean(root) == "/" {
		root = defaultControllerRoot
	}
	c.ControllerRoot = path.Clean(root)

	if c.ControllerExt == "" {
		c.ControllerExt = defaultControllerExt
	}
	if c.ClassSuffix == "" {
		c.ClassSuffix = defaultClassSuffix
	}
	if c.DefaultTarget == "" {
		c.DefaultTarget = defaultTarget
	}
	c.DefaultTarget = strings.ToLower(c.DefaultTarget)
	return c
}
