package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/repositories"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	store      *store.Store
	repos      *repositories.Repositories
	closeStore func() error
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When Store is nil the runner opens the backend named by the config on first use.
type RunnerOpts struct {
	Config *shared.Config
	Store  *store.Store
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
	if opts.Store != nil {
		r.store = opts.Store
		r.repos = repositories.NewRepositories(opts.Store)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		studentCommand, courseCommand, instructorCommand, enrollCommand, statsCommand,
		exportCommand, importCommand, setupCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the config file named by --config. A missing file keeps the current config.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("loaded config", "path", path)
	}

	shared.SetLogLevel(r.logger, r.config.LogLevel())
	return ctx, nil
}

// After releases the storage backend.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.closeStore == nil {
		return nil
	}
	err := r.closeStore()
	r.closeStore = nil
	return err
}

// open loads the store from the configured backend unless one is already attached.
func (r *Runner) open() error {
	if r.store != nil {
		return nil
	}

	backend, closeFn, err := store.NewBackend(r.config)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	s, err := store.Open(backend)
	if err != nil {
		closeFn()
		return err
	}

	r.logger.Debug("store opened", "backend", r.config.Storage.Backend, "dir", r.config.Storage.Dir)
	r.store = s
	r.repos = repositories.NewRepositories(s)
	r.closeStore = closeFn
	return nil
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// idArg parses the positional argument name as a record id.
func (r *Runner) idArg(cmd *cli.Command, name string) (models.ID, error) {
	raw := cmd.StringArg(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return models.ParseID(raw)
}

// confirmDelete reports an unconfirmed delete. It is not an error.
func (r *Runner) confirmDelete(kind string, id models.ID) error {
	r.logger.Warn("delete not confirmed", kind, id)
	return r.writePlain("%v: re-run with --yes to delete %s %d\n", shared.ErrNotConfirmed, kind, id)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
