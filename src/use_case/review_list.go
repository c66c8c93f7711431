package use_case

import (
	"context"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/entity/metrics"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"sync"
)

type ReviewListOptions struct {
	// AllowPendingReset permits pending as a transition target.
	AllowPendingReset bool
	// GuardInFlight rejects a transition while another one for the same
	// record is outstanding. Without it the last completion wins.
	GuardInFlight bool
	// StrictAssertions panics when a transition names an unknown record.
	StrictAssertions bool
}

type Loader func(ctx context.Context) ([]application.Application, error)

type StatusSetter interface {
	SetStatus(ctx context.Context, ID string, status application.Status) error
}

type StatusSetterFunc func(ctx context.Context, ID string, status application.Status) error

func (f StatusSetterFunc) SetStatus(ctx context.Context, ID string, status application.Status) error {
	return f(ctx, ID, status)
}

type Counts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

type Facets struct {
	Categories   []string
	ProductTypes []string
}

type ReviewState struct {
	Loaded   bool
	LoadErr  error
	Filter   Filter
	InFlight []string
}

type ReviewSnapshot struct {
	State   ReviewState
	Counts  Counts
	Facets  Facets
	Visible []application.Application
}

type TransitionResult struct {
	Before application.Application
	After  application.Application
}

// ReviewList is an in-memory collection of applications owned by a single
// goroutine. Every read and write runs as a closure on that goroutine, remote
// calls run on the caller's goroutine and post their outcome back.
type ReviewList struct {
	loader  Loader
	setter  StatusSetter
	options ReviewListOptions

	cmds      chan reviewCmd
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

type reviewCmd struct {
	fn    func(s *reviewState)
	reply chan struct{}
}

type reviewState struct {
	records  []application.Application
	filter   Filter
	loaded   bool
	loadErr  error
	inFlight map[string]int
}

func (s *reviewState) find(ID string) int {
	for i := range s.records {
		if s.records[i].ID == ID {
			return i
		}
	}
	return -1
}

// NewReviewList builds a list view over the directory's pending working set.
func NewReviewList(directory DirectoryRepository, options ReviewListOptions) *ReviewList {
	return newReviewList(directory.ListPending, directory, options)
}

// NewDetailReviewList builds a single record view, used by the detail screen.
func NewDetailReviewList(directory DirectoryRepository, ID string, options ReviewListOptions) *ReviewList {
	loader := func(ctx context.Context) ([]application.Application, error) {
		app, err := directory.GetByID(ctx, ID)
		if err != nil {
			return nil, err
		}
		return []application.Application{app}, nil
	}
	return newReviewList(loader, StatusSetterFunc(directory.UpdateStatus), options)
}

func newReviewList(loader Loader, setter StatusSetter, options ReviewListOptions) *ReviewList {
	r := &ReviewList{
		loader:  loader,
		setter:  setter,
		options: options,
		cmds:    make(chan reviewCmd),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *ReviewList) run() {
	defer close(r.stopped)

	state := &reviewState{
		filter:   Filter{Status: StatusFilterAll},
		inFlight: map[string]int{},
	}

	for {
		select {
		case <-r.done:
			return
		case c := <-r.cmds:
			select {
			case <-r.done:
				return
			default:
			}
			c.fn(state)
			close(c.reply)
		}
	}
}

func (r *ReviewList) do(ctx context.Context, fn func(s *reviewState)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := reviewCmd{fn: fn, reply: make(chan struct{})}

	select {
	case r.cmds <- c:
	case <-r.done:
		return ErrViewClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-c.reply:
		return nil
	case <-r.done:
		select {
		case <-c.reply:
			return nil
		default:
			return ErrViewClosed
		}
	}
}

// Close tears the view down. Completions arriving afterwards are dropped.
func (r *ReviewList) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	<-r.stopped
}

func (r *ReviewList) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "use_case.ReviewList.Load")
	defer span.End()

	records, err := r.loader(ctx)
	if err != nil {
		loadErr := fmt.Errorf("%w: %w", ErrLoadFailure, err)
		zap.L().Error("load applications failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", loadErr))
		metrics.ReviewLoads.WithLabelValues("failure").Inc()

		if doErr := r.do(context.Background(), func(s *reviewState) {
			s.loadErr = loadErr
		}); doErr != nil {
			return doErr
		}
		return loadErr
	}

	fresh := make([]application.Application, len(records))
	copy(fresh, records)

	err = r.do(context.Background(), func(s *reviewState) {
		s.records = fresh
		s.loaded = true
		s.loadErr = nil
	})
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return err
	}

	metrics.ReviewLoads.WithLabelValues("success").Inc()
	zap.L().Debug("applications loaded", logger.WithTraceId(ctx), zap.Int("count", len(fresh)))
	return nil
}

func normalizeFilter(f Filter) (Filter, error) {
	if len(f.Status) <= 0 {
		f.Status = StatusFilterAll
	}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func (r *ReviewList) SetFilter(f Filter) error {
	f, err := normalizeFilter(f)
	if err != nil {
		return err
	}

	return r.do(context.Background(), func(s *reviewState) {
		s.filter = f
	})
}

// Snapshot reads the state, counts, facets and visible set in one step, so
// all of them describe the same collection and filter.
func (r *ReviewList) Snapshot() (ReviewSnapshot, error) {
	var snap ReviewSnapshot
	err := r.do(context.Background(), func(s *reviewState) {
		snap = s.snapshot()
	})
	if err != nil {
		return ReviewSnapshot{}, err
	}
	return snap, nil
}

// ApplyFilter sets f and returns the snapshot it produces. No other command
// runs between the two.
func (r *ReviewList) ApplyFilter(f Filter) (ReviewSnapshot, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return ReviewSnapshot{}, err
	}

	var snap ReviewSnapshot
	err = r.do(context.Background(), func(s *reviewState) {
		s.filter = f
		snap = s.snapshot()
	})
	if err != nil {
		return ReviewSnapshot{}, err
	}
	return snap, nil
}

// Visible returns copies of the records matching the current filter, in
// collection order.
func (r *ReviewList) Visible() ([]application.Application, error) {
	var out []application.Application
	err := r.do(context.Background(), func(s *reviewState) {
		out = s.visible()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewList) All() ([]application.Application, error) {
	var out []application.Application
	err := r.do(context.Background(), func(s *reviewState) {
		out = make([]application.Application, len(s.records))
		copy(out, s.records)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewList) Get(ID string) (application.Application, error) {
	var (
		out   application.Application
		found bool
	)
	err := r.do(context.Background(), func(s *reviewState) {
		if i := s.find(ID); i >= 0 {
			out = s.records[i]
			found = true
		}
	})
	if err != nil {
		return application.Application{}, err
	}
	if !found {
		return application.Application{}, fmt.Errorf("%s: %w", ID, ErrApplicationNotFound)
	}
	return out, nil
}

// Counts always covers the whole collection, never the filtered view.
func (r *ReviewList) Counts() (Counts, error) {
	var c Counts
	err := r.do(context.Background(), func(s *reviewState) {
		c = s.counts()
	})
	if err != nil {
		return Counts{}, err
	}
	return c, nil
}

func (r *ReviewList) Facets() (Facets, error) {
	var f Facets
	err := r.do(context.Background(), func(s *reviewState) {
		f = s.facets()
	})
	if err != nil {
		return Facets{}, err
	}
	return f, nil
}

func (r *ReviewList) State() (ReviewState, error) {
	var st ReviewState
	err := r.do(context.Background(), func(s *reviewState) {
		st = s.state()
	})
	if err != nil {
		return ReviewState{}, err
	}
	return st, nil
}

func (s *reviewState) visible() []application.Application {
	out := make([]application.Application, 0, len(s.records))
	for _, a := range s.records {
		if s.filter.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s *reviewState) counts() Counts {
	c := Counts{Total: len(s.records)}
	for _, a := range s.records {
		switch a.Status {
		case application.StatusPending:
			c.Pending++
		case application.StatusApproved:
			c.Approved++
		case application.StatusRejected:
			c.Rejected++
		}
	}
	return c
}

func (s *reviewState) facets() Facets {
	var f Facets
	seenCategory := map[string]struct{}{}
	seenType := map[string]struct{}{}
	for _, a := range s.records {
		if _, ok := seenCategory[a.Category]; !ok && len(a.Category) > 0 {
			seenCategory[a.Category] = struct{}{}
			f.Categories = append(f.Categories, a.Category)
		}
		if _, ok := seenType[a.ProductType]; !ok && len(a.ProductType) > 0 {
			seenType[a.ProductType] = struct{}{}
			f.ProductTypes = append(f.ProductTypes, a.ProductType)
		}
	}
	return f
}

func (s *reviewState) state() ReviewState {
	st := ReviewState{
		Loaded:  s.loaded,
		LoadErr: s.loadErr,
		Filter:  s.filter,
	}
	for ID := range s.inFlight {
		st.InFlight = append(st.InFlight, ID)
	}
	return st
}

func (s *reviewState) snapshot() ReviewSnapshot {
	return ReviewSnapshot{
		State:   s.state(),
		Counts:  s.counts(),
		Facets:  s.facets(),
		Visible: s.visible(),
	}
}

func (r *ReviewList) checkTarget(target application.Status) error {
	if _, err := application.ParseStatus(string(target)); err != nil {
		return fmt.Errorf("%s: %w", err, ErrInvalidTransition)
	}
	if target == application.StatusPending && !r.options.AllowPendingReset {
		return fmt.Errorf("reset to %s is disabled: %w", target, ErrInvalidTransition)
	}
	return nil
}

// Transition asks the directory to move a record to target and applies the
// new status locally only once the directory accepted it.
func (r *ReviewList) Transition(ctx context.Context, ID string, target application.Status) (TransitionResult, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("use_case.ReviewList.Transition(%s)", ID))
	defer span.End()

	if err := r.checkTarget(target); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return TransitionResult{}, err
	}

	var (
		before application.Application
		found  bool
		busy   bool
	)
	err := r.do(ctx, func(s *reviewState) {
		i := s.find(ID)
		if i < 0 {
			return
		}
		found = true
		if r.options.GuardInFlight && s.inFlight[ID] > 0 {
			busy = true
			return
		}
		s.inFlight[ID]++
		before = s.records[i]
	})
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return TransitionResult{}, err
	}

	if !found {
		zap.L().Error("transition of unknown application", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Any("error", ErrApplicationNotFound))
		span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", ID, ErrApplicationNotFound))
		if r.options.StrictAssertions {
			panic(fmt.Sprintf("transition of unknown application %q", ID))
		}
		return TransitionResult{}, fmt.Errorf("%s: %w", ID, ErrApplicationNotFound)
	}
	if busy {
		span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", ID, ErrTransitionInFlight))
		return TransitionResult{}, fmt.Errorf("%s: %w", ID, ErrTransitionInFlight)
	}

	remoteErr := r.setter.SetStatus(ctx, ID, target)

	var (
		after   application.Application
		applied bool
	)
	err = r.do(context.Background(), func(s *reviewState) {
		if s.inFlight[ID]--; s.inFlight[ID] <= 0 {
			delete(s.inFlight, ID)
		}
		if remoteErr != nil {
			return
		}
		if i := s.find(ID); i >= 0 {
			s.records[i].Status = target
			after = s.records[i]
			applied = true
		}
	})

	if remoteErr != nil {
		zap.L().Error("status change failed", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Any("target", target), zap.Any("error", remoteErr))
		span.SetStatus(codes.Error, fmt.Sprintf("status change failed: %s", remoteErr))
		metrics.ReviewTransitions.WithLabelValues(string(target), "failure").Inc()
		return TransitionResult{}, fmt.Errorf("%s: %w: %w", ID, ErrTransitionFailure, remoteErr)
	}
	metrics.ReviewTransitions.WithLabelValues(string(target), "success").Inc()

	if err != nil {
		zap.L().Warn("status changed after view teardown", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Any("target", target))
		after = before
		after.Status = target
		return TransitionResult{Before: before, After: after}, fmt.Errorf("%s: %w: %w", ID, ErrChangedAfterViewClosed, err)
	}

	if !applied {
		// reloaded while the call was outstanding and the record is gone
		after = before
		after.Status = target
	}

	return TransitionResult{Before: before, After: after}, nil
}

// TransitionTargets lists the statuses a record in current can be moved to.
func TransitionTargets(options ReviewListOptions, current application.Status) []application.Status {
	out := []application.Status{}
	for _, status := range application.Statuses() {
		if status == current {
			continue
		}
		if status == application.StatusPending && !options.AllowPendingReset {
			continue
		}
		out = append(out, status)
	}
	return out
}
