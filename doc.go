// Package kiln is a small web-app runtime that maps URLs onto controllers
// by convention instead of by route table.
//
// A request path names a target (the controller), a method (the action)
// and a list of arguments. Query tokens without a value extend the same
// list, tokens with a value become named arguments. There are no routes to
// declare: registering a controller under a target name is enough.
//
// # Quick Start
//
//	app := kiln.New(
//	    kiln.WithLogger("web"),
//	    kiln.WithController("home", controllers.NewHome(interests)),
//	    kiln.WithController("interests", controllers.NewInterests(interests)),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Controllers
//
// Controllers implement [Controller] and declare their actions on an
// [ActionSet]. An action registered as name_VERB is preferred for that
// verb; the bare name answers any verb:
//
//	func (h *Interests) Actions(a *kiln.ActionSet) {
//	    a.Handle("index", h.list)
//	    a.Handle("show", h.show, kiln.Required("id"))
//	    a.POST("create", h.create)
//	    a.Private("seed", h.seed)
//	}
//
//	func (h *Interests) show(c kiln.Context, args kiln.Args) error {
//	    id := kiln.Arg[int64](args, 0)
//	    ...
//	}
//
// GET /interests/show/7 and GET /interests/show?id=7 both bind id to 7.
// Unknown actions fall through to index with the unmatched name passed as
// its first argument.
//
// # Errors
//
// Actions return errors. A [RouteError] carries its HTTP status; anything
// else becomes a 500. 403 and 404 can be routed to a controller of their
// own with [WithForbiddenTarget] and [WithNotFoundTarget].
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns:
//
//	func Timing(next kiln.HandlerFunc) kiln.HandlerFunc {
//	    return func(c kiln.Context) error {
//	        start := time.Now()
//	        err := next(c)
//	        c.LogInfo("request", "duration", time.Since(start))
//	        return err
//	    }
//	}
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM for graceful shutdown. Register cleanup
// functions with [ShutdownHook]:
//
//	app.Run(":8080", kiln.ShutdownHook(db.Shutdown(database)))
package kiln
