package session

import (
	"context"
	"sync"
	"time"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/console"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/runner"
)

// State of the session loop
type State string

const (
	StateCollecting State = "collecting_parameters"
	StateRunning    State = "running"
	StateAwaiting   State = "awaiting_command"
	StateTerminated State = "terminated"
)

// Frontend supplies the parts that differ between the interactive tools
type Frontend interface {
	// Name identifies the front-end in logs and metrics
	Name() string
	// Subcommand is the external tool subcommand the front-end drives
	Subcommand() string
	// Collect gathers a complete parameter set. Errors are fatal.
	Collect(ctx context.Context, p *prompt.Prompter) (*params.Set, error)
	// Build maps a parameter set to the external invocation
	Build(set *params.Set) command.Spec
	Vocabulary() Vocabulary
}

// DirChecker enforces the working directory precondition
type DirChecker interface {
	Ensure() error
}

// Reason tells why a run happened
type Reason string

const (
	ReasonInitial Reason = "initial"
	ReasonRetry   Reason = "retry"
	ReasonNew     Reason = "new"
)

// RunRecord is one entry of the session history
type RunRecord struct {
	Frontend   string
	Subcommand string
	Attempt    int
	Reason     Reason
	Command    command.Spec
	Result     runner.Result
}

// Observer is notified about collected parameters and finished runs
type Observer interface {
	ParametersCollected(frontend string, set *params.Set)
	RunFinished(rec RunRecord)
}

// Options configures a session
type Options struct {
	Frontend  Frontend
	Prompter  *prompt.Prompter
	Runner    runner.Runner
	WorkDir   DirChecker
	Observers []Observer
}

// Session drives collect, run and the retry/new/exit loop for one front-end
type Session struct {
	frontend  Frontend
	prompter  *prompt.Prompter
	con       *console.Console
	runner    runner.Runner
	workDir   DirChecker
	observers []Observer

	mu      sync.Mutex
	state   State
	current *params.Set
	history []RunRecord
}

// New creates a session
func New(opts Options) *Session {
	return &Session{
		frontend:  opts.Frontend,
		prompter:  opts.Prompter,
		con:       opts.Prompter.Console(),
		runner:    opts.Runner,
		workDir:   opts.WorkDir,
		observers: opts.Observers,
		state:     StateCollecting,
	}
}

// Run collects parameters, runs once, then loops on operator commands.
// It returns nil after exit and a fatal error when collection or the
// working directory precondition fails.
func (s *Session) Run(ctx context.Context) error {
	set, err := s.collect(ctx)
	if err != nil {
		return s.terminate(err)
	}
	if err := s.execute(ctx, set, ReasonInitial); err != nil {
		return s.terminate(err)
	}

	vocab := s.frontend.Vocabulary()
	for {
		if err := ctx.Err(); err != nil {
			return s.terminate(err)
		}

		s.setState(StateAwaiting)
		s.con.Action("%s", vocab.Prompt)

		line, err := s.prompter.ReadLine()
		if err != nil {
			return s.terminate(err)
		}

		cmd, ok := vocab.Parse(line)
		if !ok {
			s.prompter.Rejected("command")
			s.con.Error("%s", vocab.Invalid)
			continue
		}

		switch cmd {
		case CommandRetry:
			s.con.Tell("Retrying with the same parameters...")
			if err := s.execute(ctx, set, ReasonRetry); err != nil {
				return s.terminate(err)
			}

		case CommandNew:
			set, err = s.collect(ctx)
			if err != nil {
				return s.terminate(err)
			}
			if vocab.NewRun != "" {
				s.con.Warning("%s", vocab.NewRun)
			}
			if err := s.execute(ctx, set, ReasonNew); err != nil {
				return s.terminate(err)
			}

		case CommandExit:
			s.con.Info("Exiting...")
			return s.terminate(nil)
		}
	}
}

func (s *Session) collect(ctx context.Context) (*params.Set, error) {
	s.setState(StateCollecting)
	if err := s.ensureWorkDir(); err != nil {
		return nil, err
	}

	set, err := s.frontend.Collect(ctx, s.prompter)
	if err != nil {
		return nil, err
	}
	frozen := set.Freeze()

	s.mu.Lock()
	s.current = frozen
	s.mu.Unlock()

	for _, o := range s.observers {
		o.ParametersCollected(s.frontend.Name(), frozen)
	}
	return frozen, nil
}

// execute builds and runs the command. Launch failures are reported as
// warnings and never end the session.
func (s *Session) execute(ctx context.Context, set *params.Set, reason Reason) error {
	if err := s.ensureWorkDir(); err != nil {
		return err
	}
	s.setState(StateRunning)

	spec := s.frontend.Build(set)
	s.con.Action("Running command: %s", spec.String())

	res := s.runner.Run(ctx, spec)
	if res.Err != nil {
		s.con.Warning("Failed to run docker command: %v", lerrors.Cause(res.Err))
	}

	s.mu.Lock()
	rec := RunRecord{
		Frontend:   s.frontend.Name(),
		Subcommand: s.frontend.Subcommand(),
		Attempt:    len(s.history) + 1,
		Reason:     reason,
		Command:    spec,
		Result:     res,
	}
	s.history = append(s.history, rec)
	s.mu.Unlock()

	for _, o := range s.observers {
		o.RunFinished(rec)
	}
	return nil
}

func (s *Session) ensureWorkDir() error {
	if s.workDir == nil {
		return nil
	}
	return s.workDir.Ensure()
}

func (s *Session) terminate(err error) error {
	s.setState(StateTerminated)
	return err
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// State returns the current loop state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Parameters returns the parameter set of the latest collection
func (s *Session) Parameters() *params.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// History returns a copy of all run records
func (s *Session) History() []RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RunRecord, len(s.history))
	copy(out, s.history)
	return out
}

// TotalDuration sums the wall time of all runs
func (s *Session) TotalDuration() time.Duration {
	var d time.Duration
	for _, r := range s.History() {
		d += r.Result.Duration
	}
	return d
}
