package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/console"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/prompt"
	"github.com/ducminhle1904/freqtrade-launcher/internal/runner"
)

// echoFrontend asks for a single word and runs `tool <word>`
type echoFrontend struct {
	vocab    Vocabulary
	collects int
	failOn   int
}

func (f *echoFrontend) Name() string       { return "echo" }
func (f *echoFrontend) Subcommand() string { return "echo" }
func (f *echoFrontend) Vocabulary() Vocabulary {
	return f.vocab
}

func (f *echoFrontend) Collect(_ context.Context, p *prompt.Prompter) (*params.Set, error) {
	f.collects++
	if f.failOn != 0 && f.collects == f.failOn {
		return nil, lerrors.NewFatalError("echo", "collect", "no candidates")
	}
	word, err := prompt.Ask(p, prompt.Question[string]{
		Field:       "word",
		Instruction: "Enter a word:",
		Valid:       func(string) bool { return true },
		Convert:     prompt.Identity,
		Invalid:     "Invalid word.",
	})
	if err != nil {
		return nil, err
	}
	return params.New().PutString("word", word), nil
}

func (f *echoFrontend) Build(set *params.Set) command.Spec {
	return command.New("tool", set.String("word"))
}

type recordingRunner struct {
	specs []command.Spec
	err   error
}

func (r *recordingRunner) Run(_ context.Context, spec command.Spec) runner.Result {
	r.specs = append(r.specs, spec)
	return runner.Result{Started: time.Now(), Duration: time.Second, Err: r.err}
}

type countingObserver struct {
	collected []*params.Set
	runs      []RunRecord
}

func (o *countingObserver) ParametersCollected(_ string, set *params.Set) {
	o.collected = append(o.collected, set)
}

func (o *countingObserver) RunFinished(rec RunRecord) {
	o.runs = append(o.runs, rec)
}

type stubDir struct {
	calls int
	err   error
}

func (d *stubDir) Ensure() error {
	d.calls++
	return d.err
}

func newTestSession(input string, fe *echoFrontend, r runner.Runner, dir DirChecker, obs ...Observer) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	con := console.New(&out)
	con.ShowColors = false
	p := prompt.New(strings.NewReader(input), con)
	return New(Options{Frontend: fe, Prompter: p, Runner: r, WorkDir: dir, Observers: obs}), &out
}

func shortVocab() Vocabulary {
	return ShortAndLong("Select 'retry' (r), 'new' (n), 'exit' (e)", "Running command with selected parameters...")
}

func TestSession_RetryReusesIdenticalCommand(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab()}
	r := &recordingRunner{}
	obs := &countingObserver{}
	s, out := newTestSession("alpha\nretry\nR\nexit\n", fe, r, nil, obs)

	require.NoError(t, s.Run(context.Background()))

	require.Len(t, r.specs, 3)
	assert.True(t, r.specs[0].Equal(r.specs[1]))
	assert.True(t, r.specs[1].Equal(r.specs[2]))
	assert.Equal(t, 1, fe.collects)
	assert.Len(t, obs.collected, 1)
	assert.Len(t, obs.runs, 3)
	assert.Equal(t, StateTerminated, s.State())

	hist := s.History()
	require.Len(t, hist, 3)
	assert.Equal(t, ReasonInitial, hist[0].Reason)
	assert.Equal(t, ReasonRetry, hist[1].Reason)
	assert.Equal(t, 3, hist[2].Attempt)
	assert.Equal(t, 3*time.Second, s.TotalDuration())

	assert.Contains(t, out.String(), "Running command: tool alpha")
	assert.Contains(t, out.String(), "Retrying with the same parameters...")
	assert.Contains(t, out.String(), "Exiting...")
}

func TestSession_NewCollectsAgain(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab()}
	r := &recordingRunner{}
	s, out := newTestSession("alpha\nn\nbeta\ne\n", fe, r, nil)

	require.NoError(t, s.Run(context.Background()))

	require.Len(t, r.specs, 2)
	assert.Equal(t, "tool alpha", r.specs[0].String())
	assert.Equal(t, "tool beta", r.specs[1].String())
	assert.Equal(t, 2, fe.collects)
	assert.Equal(t, "beta", s.Parameters().String("word"))
	assert.True(t, s.Parameters().Frozen())
	assert.Contains(t, out.String(), "Running command with selected parameters...")
}

func TestSession_ExitImmediatelyAfterFirstRun(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab()}
	r := &recordingRunner{}
	s, _ := newTestSession("alpha\nexit\n", fe, r, nil)

	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, r.specs, 1)
}

func TestSession_LongOnlyRejectsShortForms(t *testing.T) {
	fe := &echoFrontend{vocab: LongOnly("Type 'retry' to use same parameters", "")}
	r := &recordingRunner{}
	s, out := newTestSession("alpha\nr\nEXIT\n", fe, r, nil)

	var rejected []string
	s.prompter.OnReject = func(field string) { rejected = append(rejected, field) }

	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, r.specs, 1)
	assert.Equal(t, []string{"command"}, rejected)
	assert.Contains(t, out.String(), "Invalid input. Please type 'retry', 'new', or 'exit'.")
}

func TestSession_LaunchFailureContinues(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab()}
	r := &recordingRunner{err: lerrors.NewLaunchError("runner", "start", errors.New("executable file not found"))}
	s, out := newTestSession("alpha\nretry\nexit\n", fe, r, nil)

	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, r.specs, 2)
	assert.Equal(t, 2, strings.Count(out.String(), "Failed to run docker command: executable file not found"))
	assert.False(t, s.History()[0].Result.Launched())
}

func TestSession_FatalCollectOnNewTerminates(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab(), failOn: 2}
	r := &recordingRunner{}
	s, _ := newTestSession("alpha\nnew\n", fe, r, nil)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.True(t, lerrors.IsFatal(err))
	assert.Len(t, r.specs, 1)
	assert.Equal(t, StateTerminated, s.State())
}

func TestSession_InputClosedWhileAwaiting(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab()}
	r := &recordingRunner{}
	s, _ := newTestSession("alpha\n", fe, r, nil)

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
	assert.Len(t, r.specs, 1)
}

func TestSession_WorkDirCheckedBeforeCollectAndRun(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab()}
	r := &recordingRunner{}
	dir := &stubDir{}
	s, _ := newTestSession("alpha\nretry\nexit\n", fe, r, dir)

	require.NoError(t, s.Run(context.Background()))
	// collect, initial run, retry
	assert.Equal(t, 3, dir.calls)
}

func TestSession_WorkDirFailureIsFatal(t *testing.T) {
	fe := &echoFrontend{vocab: shortVocab()}
	r := &recordingRunner{}
	dir := &stubDir{err: lerrors.NewFatalError("config", "chdir", "Failed to change directory to /x.")}
	s, _ := newTestSession("alpha\n", fe, r, dir)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, fe.collects)
	assert.Empty(t, r.specs)
}

func TestVocabulary_Parse(t *testing.T) {
	short := shortVocab()
	for in, want := range map[string]Command{"retry": CommandRetry, "R": CommandRetry, " n ": CommandNew, "Exit": CommandExit} {
		got, ok := short.Parse(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := short.Parse("quit")
	assert.False(t, ok)

	long := LongOnly("", "")
	_, ok = long.Parse("e")
	assert.False(t, ok)
	got, ok := long.Parse("NEW")
	assert.True(t, ok)
	assert.Equal(t, "new", got.String())
}
