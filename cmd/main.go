package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/roster/internal/shared"
)

func main() {
	logger := shared.WithLogger(shared.NewLogger(nil), "run", shared.GenerateID())

	runner := NewRunner(RunnerOpts{Logger: logger})
	app := newApp(runner)

	if err := app.Run(context.Background(), os.Args); err != nil {
		if isUserError(err) {
			logger.Warn(err.Error())
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// isUserError reports whether err came from bad input rather than a broken environment.
func isUserError(err error) bool {
	for _, target := range []error{
		shared.ErrValidation,
		shared.ErrNotFound,
		shared.ErrInvalidInput,
		shared.ErrMissingArgument,
		shared.ErrInvalidArgument,
		shared.ErrUnsupportedFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
