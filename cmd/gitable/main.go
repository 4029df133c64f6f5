/*
gitable parses, normalizes and compares git repository locators from the
command line.

# Usage

	gitable [flags] <command> ...

	commands:
	  parse LOCATOR...         Show the components of each LOCATOR
	  equivalent A B           Exit 0 if A and B locate the same repository
	  web LOCATOR              Print the repository's web page URL
	  heuristic LOCATOR...     Fix up mistyped LOCATORs
	  remotes [DIR]            List the remotes of the repository in DIR

	flags:
	  -o, --output string      Output format: text, json or yaml (default "text")
	      --log-level string   Log level (default "warn")
	      --tracing            Export traces with OTLP

Flags can also be set with environment variables prefixed with GITABLE_, for
example GITABLE_OUTPUT=json or GITABLE_LOG_LEVEL=debug.

# Examples

	$ gitable parse git@github.com:martinemde/gitable.git
	locator:         git@github.com:martinemde/gitable.git
	kind:            scp
	inferred scheme: ssh
	user:            git
	host:            github.com
	path:            martinemde/gitable.git
	...

	$ gitable equivalent git@github.com:martinemde/gitable.git https://github.com/martinemde/gitable
	true

	$ gitable web --scheme=http git://github.com/martinemde/gitable.git
	http://github.com/martinemde/gitable

	$ gitable heuristic http://github.com:martinemde/gitable
	git://github.com/martinemde/gitable.git

	$ gitable remotes --match https://github.com/martinemde/gitable .
	origin
*/
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}

	if err != nil {
		logrus.WithError(err).Error("exiting with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return newApp().execute(ctx, args, stdout, stderr)
}

// exitError ends the program with a non-zero exit code and no message
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return "exit status " + strconv.Itoa(e.code)
}
