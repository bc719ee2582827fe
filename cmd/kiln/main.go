// Command kiln runs the demo application: a home page and a team interests
// resource served by the kiln dispatcher on top of PostgreSQL or SQLite.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

func main() {
	err := newRootCmd().Execute()
	sentry.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
