// Package execution provides the simulated "compile and run" step behind
// the editor panel.
//
// Nothing is parsed or executed. A run flips the busy flag, waits for a
// fixed delay and then reports a fixed success message. The Simulator also
// owns the editor buffer so that edits, resets and runs share one source of
// truth and one set of host notifications.
package execution

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultInitialCode is the buffer used when the host supplies none.
	DefaultInitialCode = "// Welcome to Vignan's Code Mentor!\n" +
		"// Start typing your code here...\n" +
		"\n" +
		"function greet(name) {\n" +
		"  return `Hello, ${name}!`;\n" +
		"}\n" +
		"\n" +
		"console.log(greet('World'));"

	// DefaultLanguage is the display-only language label.
	DefaultLanguage = "javascript"

	// DefaultDelay is how long a simulated run takes.
	DefaultDelay = 1000 * time.Millisecond

	// SuccessOutput is produced by every successful run, whatever the buffer holds.
	SuccessOutput = "Hello, World!\n✓ Code executed successfully!"

	// errorPrefix is prepended to failure details in the output buffer.
	errorPrefix = "Error: "
)

// ErrRunInProgress is returned by Begin while another run is in flight.
var ErrRunInProgress = errors.New("execution: run already in progress")

// ExecutionFailure wraps an error raised by the simulated step. It is
// rendered into the output buffer and never returned to the host.
type ExecutionFailure struct {
	Err error
}

func (f *ExecutionFailure) Error() string {
	if f.Err == nil {
		return "simulated execution failed"
	}
	return f.Err.Error()
}

func (f *ExecutionFailure) Unwrap() error { return f.Err }

// StepFunc performs the suspension inside a run. The default sleeps for
// the configured delay and never fails.
type StepFunc func(delay time.Duration) error

func sleepStep(delay time.Duration) error {
	time.Sleep(delay)
	return nil
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithInitialCode sets the buffer's initial (and reset) value. An explicit
// empty string is honoured.
func WithInitialCode(code string) Option {
	return func(s *Simulator) { s.initial = code }
}

// WithLanguage sets the display-only language label.
func WithLanguage(lang string) Option {
	return func(s *Simulator) {
		if lang != "" {
			s.language = lang
		}
	}
}

// WithDelay sets the simulated run duration.
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithStep replaces the suspension step. Tests use it to hold a run open
// or to exercise the failure path.
func WithStep(step StepFunc) Option {
	return func(s *Simulator) {
		if step != nil {
			s.step = step
		}
	}
}

// WithLogger attaches a logger for run lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// OnCodeChange registers the callback fired after every buffer edit.
func OnCodeChange(fn func(text string)) Option {
	return func(s *Simulator) { s.onCodeChange = fn }
}

// OnRunCode registers the callback fired once per successful run with the
// buffer content at completion time.
func OnRunCode(fn func(text string)) Option {
	return func(s *Simulator) { s.onRunCode = fn }
}

// Simulator owns the editor buffer, the running flag and the output buffer.
// It is safe for concurrent use; the busy flag is guarded so a run that
// completes on another goroutine cannot interleave with an edit mid-update.
type Simulator struct {
	mu sync.Mutex

	initial  string
	buffer   string
	language string
	delay    time.Duration
	step     StepFunc
	logger   *zap.Logger

	running bool
	output  string

	onCodeChange func(string)
	onRunCode    func(string)

	counters runCounters
}

// New creates a Simulator. Without options the buffer starts from
// DefaultInitialCode and runs take DefaultDelay.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		initial:  DefaultInitialCode,
		language: DefaultLanguage,
		delay:    DefaultDelay,
		step:     sleepStep,
		logger:   zap.NewNop(),
	}
	s.counters.since = time.Now()
	for _, opt := range opts {
		opt(s)
	}
	s.buffer = s.initial
	return s
}

// Buffer returns the current editor text.
func (s *Simulator) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// InitialCode returns the value ResetBuffer restores.
func (s *Simulator) InitialCode() string {
	return s.initial
}

// Language returns the display-only language label.
func (s *Simulator) Language() string {
	return s.language
}

// Delay returns the simulated run duration.
func (s *Simulator) Delay() time.Duration {
	return s.delay
}

// IsRunning reports whether a run is in flight.
func (s *Simulator) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Output returns the output buffer; empty until the first run completes.
func (s *Simulator) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// SetBuffer replaces the buffer and then notifies OnCodeChange.
func (s *Simulator) SetBuffer(text string) {
	s.mu.Lock()
	s.buffer = text
	notify := s.onCodeChange
	s.mu.Unlock()
	atomic.AddInt64(&s.counters.changes, 1)

	if notify != nil {
		notify(text)
	}
}

// ResetBuffer restores the initial value. It is a direct write and does
// not fire OnCodeChange.
func (s *Simulator) ResetBuffer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = s.initial
}

// LineNumbers returns 1..n for the n newline-separated lines of the buffer.
// An empty buffer still has one line.
func (s *Simulator) LineNumbers() []int {
	n := strings.Count(s.Buffer(), "\n") + 1
	nums := make([]int, n)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// Begin marks the simulator as running and returns the in-flight run.
// The flag is set before Begin returns, so a host can disable its trigger
// synchronously and complete the run on another goroutine with Wait.
func (s *Simulator) Begin() (*Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		atomic.AddInt64(&s.counters.rejected, 1)
		return nil, ErrRunInProgress
	}
	s.running = true
	atomic.AddInt64(&s.counters.started, 1)

	e := &Execution{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		sim:       s,
	}
	s.logger.Debug("run started",
		zap.String("run_id", e.ID),
		zap.Int("buffer_bytes", len(s.buffer)),
		zap.Duration("delay", s.delay))
	return e, nil
}

// Run performs a complete run on the calling goroutine and returns the
// resulting output. It fails only with ErrRunInProgress.
func (s *Simulator) Run() (string, error) {
	e, err := s.Begin()
	if err != nil {
		return "", err
	}
	return e.Wait().Output, nil
}

// Result describes a completed run.
type Result struct {
	RunID    string
	Output   string
	Failed   bool
	Duration time.Duration
}

// Execution is a run between Begin and completion.
type Execution struct {
	ID        string
	StartedAt time.Time

	sim    *Simulator
	once   sync.Once
	result Result
}

// Wait suspends for the simulated step and completes the run. Only the
// first call does any work; later calls return the same Result.
func (e *Execution) Wait() Result {
	e.once.Do(e.complete)
	return e.result
}

func (e *Execution) complete() {
	s := e.sim
	err := s.step(s.delay)

	s.mu.Lock()
	var out string
	if err != nil {
		failure := &ExecutionFailure{Err: err}
		out = errorPrefix + failure.Error()
	} else {
		out = SuccessOutput
	}
	s.output = out
	s.running = false
	code := s.buffer
	notify := s.onRunCode
	s.mu.Unlock()

	e.result = Result{
		RunID:    e.ID,
		Output:   out,
		Failed:   err != nil,
		Duration: time.Since(e.StartedAt),
	}

	if err != nil {
		atomic.AddInt64(&s.counters.failed, 1)
		s.logger.Warn("simulated run failed",
			zap.String("run_id", e.ID),
			zap.Error(err))
		return
	}

	atomic.AddInt64(&s.counters.succeeded, 1)
	s.logger.Debug("run finished",
		zap.String("run_id", e.ID),
		zap.Duration("elapsed", e.result.Duration))
	if notify != nil {
		notify(code)
	}
}
