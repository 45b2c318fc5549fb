package reagent

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxIterations is the iteration budget used when none is given.
const DefaultMaxIterations = 10

// Session is the mutable state of one question being worked through the loop.
//
// A session is created per question, mutated only by the agent loop and the
// executor, and handed back to the caller as a [Result]. Sessions are never
// shared, but hooks may read one from another goroutine, so every accessor
// takes the lock.
type Session struct {
	mu sync.RWMutex

	id            string
	question      string
	maxIterations int

	transcript Transcript
	iteration  int

	// All trace events (append-only log)
	events []TraceEvent
	stats  *Stats

	startTime time.Time
	endTime   time.Time

	status      Status
	finalAnswer string
	reason      string
	err         error

	hooks HookFirer
}

// NewSession creates a running session for question. A maxIterations of zero
// or less means [DefaultMaxIterations].
func NewSession(question string, maxIterations int) *Session {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Session{
		id:            uuid.NewString(),
		question:      question,
		maxIterations: maxIterations,
		transcript:    make(Transcript, 0),
		events:        make([]TraceEvent, 0),
		stats:         NewStats(),
		startTime:     time.Now(),
		status:        StatusRunning,
	}
}

// ID is a random UUID identifying the session in logs and storage.
func (s *Session) ID() string {
	return s.id
}

// Question returns the user question the session answers.
func (s *Session) Question() string {
	return s.question
}

// MaxIterations returns the iteration budget.
func (s *Session) MaxIterations() int {
	return s.maxIterations
}

// -----------------------------------------------------------------------------
// Transcript
// -----------------------------------------------------------------------------

// Transcript returns a copy of the steps recorded so far.
func (s *Session) Transcript() Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcript.Clone()
}

// Len returns the number of recorded steps.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transcript)
}

// AppendStep records a completed step. The session keeps its own copy.
func (s *Session) AppendStep(step *Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, step.Clone())
}

// -----------------------------------------------------------------------------
// Iteration Management
// -----------------------------------------------------------------------------

// Iteration returns the current iteration number (1-indexed).
// Returns 0 if no iteration has started.
func (s *Session) Iteration() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iteration
}

// StartIteration begins a new iteration, recording an IterationStartTrace.
// Called by the executor.
func (s *Session) StartIteration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iteration++
	s.stats.incr(KeyIterations, 1)
	s.events = append(s.events, IterationStartTrace{BaseTrace: s.baseTraceLocked()})
}

// EndIteration completes the current iteration, recording an IterationEndTrace.
// Called by the executor.
func (s *Session) EndIteration(action LoopAction, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, IterationEndTrace{
		BaseTrace: s.baseTraceLocked(),
		Duration:  duration,
		Action:    action,
	})
}

// -----------------------------------------------------------------------------
// Tracing
// -----------------------------------------------------------------------------

// Trace records a trace event and updates stats based on its type.
func (s *Session) Trace(event TraceEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.baseTraceLocked()
	switch e := event.(type) {
	case ModelCallTrace:
		e.BaseTrace = fillBase(e.BaseTrace, base)
		s.stats.incr(KeyModelCalls, 1)
		s.stats.incr(KeyPromptChars, int64(e.PromptChars))
		s.stats.incr(KeyResponseChars, int64(e.ResponseChars))
		if e.Model != "" {
			s.stats.incr(KeyModelCallsFor+e.Model, 1)
		}
		if e.Error != nil {
			s.stats.incr(KeyModelErrors, 1)
		}
		event = e
	case ToolCallTrace:
		e.BaseTrace = fillBase(e.BaseTrace, base)
		s.stats.incr(KeyToolCalls, 1)
		s.stats.incr(KeyToolCallsFor+e.ToolName, 1)
		switch e.ErrorKind {
		case ToolErrorNone:
		case ToolErrorUnknownAction:
			s.stats.incr(KeyUnknownActions, 1)
		default:
			s.stats.incr(KeyToolErrors, 1)
			s.stats.incr(KeyToolErrorsFor+e.ToolName, 1)
		}
		event = e
	case ParseErrorTrace:
		e.BaseTrace = fillBase(e.BaseTrace, base)
		s.stats.incr(KeyParseErrors, 1)
		event = e
	case CustomTrace:
		e.BaseTrace = fillBase(e.BaseTrace, base)
		event = e
	}
	s.events = append(s.events, event)
}

// TraceCustom is a convenience method for recording custom trace events.
func (s *Session) TraceCustom(name string, data map[string]any) {
	s.Trace(CustomTrace{Name: name, Data: data})
}

func fillBase(b, defaults BaseTrace) BaseTrace {
	if b.Timestamp.IsZero() {
		b.Timestamp = defaults.Timestamp
	}
	if b.Iteration == 0 {
		b.Iteration = defaults.Iteration
	}
	return b
}

func (s *Session) baseTraceLocked() BaseTrace {
	return BaseTrace{Timestamp: time.Now(), Iteration: s.iteration}
}

// Events returns a copy of all recorded trace events.
func (s *Session) Events() []TraceEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TraceEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Stats returns the session's live counters.
func (s *Session) Stats() *Stats {
	return s.stats
}

// -----------------------------------------------------------------------------
// Hooks
// -----------------------------------------------------------------------------

// SetHookFirer sets the dispatcher used by the Fire methods. The executor
// calls this before the first iteration.
func (s *Session) SetHookFirer(h HookFirer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}

func (s *Session) hookFirer() HookFirer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hooks
}

// FireBeforeModelCall dispatches to the hook firer, if any.
func (s *Session) FireBeforeModelCall(ctx context.Context, event BeforeModelCallEvent) {
	if h := s.hookFirer(); h != nil {
		h.FireBeforeModelCall(ctx, s, event)
	}
}

// FireAfterModelCall dispatches to the hook firer, if any.
func (s *Session) FireAfterModelCall(ctx context.Context, event AfterModelCallEvent) {
	if h := s.hookFirer(); h != nil {
		h.FireAfterModelCall(ctx, s, event)
	}
}

// FireBeforeToolCall dispatches to the hook firer, if any.
func (s *Session) FireBeforeToolCall(ctx context.Context, event *BeforeToolCallEvent) {
	if h := s.hookFirer(); h != nil {
		h.FireBeforeToolCall(ctx, s, event)
	}
}

// FireAfterToolCall dispatches to the hook firer, if any.
func (s *Session) FireAfterToolCall(ctx context.Context, event AfterToolCallEvent) {
	if h := s.hookFirer(); h != nil {
		h.FireAfterToolCall(ctx, s, event)
	}
}

// FireError dispatches to the hook firer, if any.
func (s *Session) FireError(ctx context.Context, err error) {
	if h := s.hookFirer(); h != nil {
		h.FireError(ctx, s, ErrorEvent{Iteration: s.Iteration(), Err: err})
	}
}

// -----------------------------------------------------------------------------
// Termination
// -----------------------------------------------------------------------------

// SetTermination ends the session. Only the first call has any effect.
func (s *Session) SetTermination(status Status, finalAnswer, reason string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.IsTerminal() {
		return
	}
	s.status = status
	s.finalAnswer = finalAnswer
	s.reason = reason
	s.err = err
	s.endTime = time.Now()
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// FinalAnswer returns the answer once the session is answered.
func (s *Session) FinalAnswer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finalAnswer
}

// Reason returns why the session was aborted or exhausted.
func (s *Session) Reason() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// Err returns the error that aborted the session, if any.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time {
	return s.startTime
}

// EndTime returns when the session terminated, or the zero time.
func (s *Session) EndTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endTime
}

// Duration returns the session's wall time so far.
func (s *Session) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.endTime.IsZero() {
		return time.Since(s.startTime)
	}
	return s.endTime.Sub(s.startTime)
}

// Result snapshots the session into a [Result].
func (s *Session) Result() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Result{
		SessionID:   s.id,
		Question:    s.question,
		Status:      s.status,
		FinalAnswer: s.finalAnswer,
		Reason:      s.reason,
		Transcript:  s.transcript.Clone(),
		Iterations:  s.iteration,
		Err:         s.err,
		StartTime:   s.startTime,
		EndTime:     s.endTime,
	}
}
