// Package session owns one in-progress policy draft for the lifetime of a
// builder dialog: it routes tree edits through the editor's leaf-limit gate,
// regenerates source text, snapshots the draft to the scratch store on an
// interval, and debounces advisory lint calls.
//
// A session is single-owner: all mutations come from the one active UI
// session, so a mutex guards the draft only against the session's own
// background timers, not concurrent editors. Closing the session cancels
// every timer before releasing state, so nothing fires after close.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"kestrel-hq/forge/pkg/backend"
	"kestrel-hq/forge/pkg/control/analyzer"
	"kestrel-hq/forge/pkg/control/ast"
	"kestrel-hq/forge/pkg/control/editor"
	"kestrel-hq/forge/pkg/control/generator"
	"kestrel-hq/forge/pkg/scratch"
	"kestrel-hq/forge/pkg/telemetry/metrics"
)

// ErrManualEdits is returned by Regenerate when the draft's source text was
// edited by hand and the caller did not opt into overwriting it.
var ErrManualEdits = errors.New("draft has manual source edits; regenerating would overwrite them")

// Linter is the advisory lint service dependency.
type Linter interface {
	Lint(ctx context.Context, source string) ([]backend.LintViolation, error)
}

// Options configures a session.
type Options struct {
	// Draft is the initial draft. Required.
	Draft *ast.Draft

	// Editor applies tree mutations. Required.
	Editor *editor.Editor

	// Store receives autosave snapshots and preference flags. Optional; nil
	// disables autosave and sticky preferences.
	Store scratch.Store

	// Linter serves debounced advisory lint calls. Optional.
	Linter Linter

	// OnLint receives lint results. Advisory only; never mutates the draft.
	OnLint func([]backend.LintViolation)

	// AutosaveInterval is the snapshot cadence. Zero disables autosave.
	AutosaveInterval time.Duration

	// LintDebounce is the quiet period before a lint call fires.
	// Default: 1500ms.
	LintDebounce time.Duration

	// Metrics records builder activity. Optional.
	Metrics *metrics.BuilderMetrics
}

// Session drives one open builder dialog.
type Session struct {
	mu     sync.Mutex
	draft  *ast.Draft
	editor *editor.Editor

	store   scratch.Store
	linter  Linter
	onLint  func([]backend.LintViolation)
	metrics *metrics.BuilderMetrics
	logger  *slog.Logger

	autosaveEvery time.Duration
	debouncer     *Debouncer

	cancel  context.CancelFunc
	done    chan struct{}
	started bool
	closed  bool
}

// New creates a session over the given draft. Call Start to begin the
// autosave loop and Close when the dialog closes.
func New(opts Options) *Session {
	debounce := opts.LintDebounce
	if debounce == 0 {
		debounce = 1500 * time.Millisecond
	}
	return &Session{
		draft:         opts.Draft,
		editor:        opts.Editor,
		store:         opts.Store,
		linter:        opts.Linter,
		onLint:        opts.OnLint,
		metrics:       opts.Metrics,
		logger:        slog.Default().With("component", "session"),
		autosaveEvery: opts.AutosaveInterval,
		debouncer:     NewDebouncer(debounce),
		done:          make(chan struct{}),
	}
}

// Start launches the autosave loop. It returns immediately; the loop runs
// until Close or ctx cancellation.
func (s *Session) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.started = true
	s.mu.Unlock()

	if s.store == nil || s.autosaveEvery <= 0 {
		close(s.done)
		return
	}
	go s.autosaveLoop(ctx)
}

// Close discards the session: timers are cleared first so no debounced lint
// or autosave can run against released state. The in-memory draft is gone
// after Close; only explicit backend saves and the last autosave survive.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancel
	started := s.started
	s.mu.Unlock()

	s.debouncer.Stop()
	if cancel != nil {
		cancel()
	}
	// Only a started session owns a loop to wait out; a constructed-but-
	// abandoned one has nothing running and nothing to close s.done.
	if started {
		<-s.done
	}
}

// Draft returns a deep copy of the current draft.
func (s *Session) Draft() *ast.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// SetMetadata updates the draft's name and description.
func (s *Session) SetMetadata(name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Name = name
	s.draft.Description = description
}

// SetTarget sets the protected resource and its paired enforcement point.
func (s *Session) SetTarget(resourceID, bouncerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ResourceID = resourceID
	s.draft.BouncerID = bouncerID
}

// SetEffect sets the clause effect.
func (s *Session) SetEffect(effect ast.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Effect = effect
}

// Apply routes a structured mutation through the editor. A refused mutation
// (leaf cap, unknown node) leaves the draft unchanged and returns the
// editor's error for the UI to surface.
func (s *Session) Apply(m editor.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.editor.Apply(s.draft.Conditions, m)
	if err != nil {
		var limitErr *editor.LimitError
		if errors.As(err, &limitErr) && s.metrics != nil {
			s.metrics.RecordLimitRejection()
		}
		return err
	}
	s.draft.Conditions = next
	return nil
}

// Regenerate renders the condition tree to Rego and stores it on the draft.
// If the draft carries manual source edits, it refuses with ErrManualEdits
// unless force is set; regeneration silently discards manual edits, so the
// caller must surface that choice to the user.
func (s *Session) Regenerate(force bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.Source == ast.SourceManual && !force {
		return "", ErrManualEdits
	}
	code := generator.Generate(s.draft)
	s.draft.Rego = code
	s.draft.Source = ast.SourceTree
	if s.metrics != nil {
		s.metrics.RecordGeneration()
	}
	return code, nil
}

// SetManualRego records a hand edit to the source text, marks the draft
// manual, and schedules a debounced advisory lint call.
func (s *Session) SetManualRego(ctx context.Context, source string) {
	s.mu.Lock()
	s.draft.Rego = source
	s.draft.Source = ast.SourceManual
	s.mu.Unlock()

	if s.linter == nil {
		return
	}
	s.debouncer.Trigger(func() {
		s.runLint(ctx, source)
	})
}

// Analyze classifies the draft's current source text.
func (s *Session) Analyze() analyzer.Report {
	s.mu.Lock()
	source := s.draft.Rego
	s.mu.Unlock()

	report := analyzer.Analyze(source)
	if s.metrics != nil {
		s.metrics.RecordAnalysis(string(report.Level))
	}
	return report
}

// ComplexityNoticeDismissed reports whether the user permanently dismissed
// the complexity warning.
func (s *Session) ComplexityNoticeDismissed(ctx context.Context) bool {
	if s.store == nil {
		return false
	}
	value, err := s.store.Get(ctx, scratch.KeyComplexityNoticeDismissed)
	return err == nil && value == "true"
}

// DismissComplexityNotice persists the "don't show again" flag.
func (s *Session) DismissComplexityNotice(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, scratch.KeyComplexityNoticeDismissed, "true"); err != nil {
		// Preference writes are advisory; losing one costs a repeat notice.
		s.logger.Debug("failed to persist dismissal flag", "error", err)
	}
}

func (s *Session) runLint(ctx context.Context, source string) {
	violations, err := s.linter.Lint(ctx, source)
	if err != nil {
		// Lint is advisory: failures are skipped silently apart from a debug
		// line, and nothing touches the draft.
		s.logger.Debug("advisory lint unavailable", "error", err)
		if s.metrics != nil {
			s.metrics.RecordLint("error")
		}
		return
	}
	if s.metrics != nil {
		s.metrics.RecordLint("ok")
	}
	if s.onLint != nil {
		s.onLint(violations)
	}
}
