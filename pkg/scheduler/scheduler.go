package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/metsearch/collection-client/pkg/catalog"
)

// Common errors returned by the scheduler.
var (
	// ErrNotRunning is returned when the scheduler has not been started
	// or has been closed.
	ErrNotRunning = errors.New("scheduler is not running")

	// ErrAlreadyRunning is returned by Start on a running scheduler.
	ErrAlreadyRunning = errors.New("scheduler is already running")
)

// Searcher resolves a search term into the ordered list of object
// document URLs. *catalog.Client and catalog.ScopedSearcher satisfy it.
type Searcher interface {
	SearchURLs(ctx context.Context, term string) ([]string, error)
}

// Fetcher retrieves a single object document by URL. The scheduler
// treats it as a black-box async operation; any error is a permanent
// per-item failure.
type Fetcher interface {
	FetchObject(ctx context.Context, url string) (catalog.Document, error)
}

// Notification callbacks. They run on the scheduler's loop goroutine:
// they must return promptly and must not call back into the scheduler.
type (
	// DocumentUpdatedFunc fires when a URL reaches a terminal state,
	// resolved or failed.
	DocumentUpdatedFunc func(url string)

	// BatchCompleteFunc fires exactly once per batch, after every item
	// in the batch has a terminal state.
	BatchCompleteFunc func(batchKey int)

	// PacingTickFunc fires every pacing tick with the seconds remaining
	// until the next dispatch boundary.
	PacingTickFunc func(remaining int)
)

// Config holds the scheduler configuration.
type Config struct {
	// Searcher performs the identifier-list lookup.
	Searcher Searcher

	// Fetcher retrieves individual documents.
	Fetcher Fetcher

	// PageSize is how many identifiers each window advance admits
	// (default 80).
	PageSize int

	// PacingPeriod is the cool-down between batch dispatches, in ticks
	// (default 60).
	PacingPeriod int

	// TickInterval is the pacing tick length (default 1s).
	TickInterval time.Duration

	// MaxConcurrent caps in-flight fetches across batches. Zero means
	// no cap beyond the batch size.
	MaxConcurrent int

	// Notification callbacks, all optional.
	OnDocumentUpdated DocumentUpdatedFunc
	OnBatchComplete   BatchCompleteFunc
	OnPacingTick      PacingTickFunc
}

// DefaultConfig returns a configuration matching the upstream
// service's tolerated cadence: pages of 80 documents, one page per
// minute.
func DefaultConfig(searcher Searcher, fetcher Fetcher) Config {
	return Config{
		Searcher:     searcher,
		Fetcher:      fetcher,
		PageSize:     80,
		PacingPeriod: 60,
		TickInterval: 1 * time.Second,
	}
}

// phase is the scheduler's dispatch state.
type phase int

const (
	// phaseIdle: queue drained, pacer stopped, next enqueue dispatches
	// immediately.
	phaseIdle phase = iota

	// phaseDispatching: requests for the current batch are being issued.
	phaseDispatching

	// phaseWaiting: pacer counting toward the next dispatch boundary.
	phaseWaiting
)

// completion is one fetch outcome delivered to the loop.
type completion struct {
	gen   int
	batch int
	url   string
	doc   catalog.Document
	err   error
}

// command is a state mutation executed on the loop goroutine.
type command struct {
	fn   func()
	done chan struct{}
}

// Scheduler coordinates the fetch pipeline: it owns the document
// store, the batch queue, the result window, and the pacing timer, and
// is the only component that mutates them. The view layer is a
// read-only consumer of the accessors and notifications.
type Scheduler struct {
	cfg    Config
	logger zerolog.Logger
	sem    *semaphore.Weighted

	store  *Store
	window *Window

	// Loop-owned state. Only the run goroutine touches these.
	gen      int
	queue    *Queue
	pacer    *Pacer
	inflight map[int]*Batch
	phase    phase

	cmds        chan command
	completions chan completion

	ctx     context.Context
	running atomic.Bool
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New creates a scheduler. It must be started with Start before use.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 80
	}
	if cfg.PacingPeriod <= 0 {
		cfg.PacingPeriod = 60
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 1 * time.Second
	}

	s := &Scheduler{
		cfg:         cfg,
		logger:      log.With().Str("component", "scheduler").Logger(),
		store:       NewStore(),
		window:      NewWindow(),
		queue:       NewQueue(),
		pacer:       NewPacer(cfg.TickInterval, cfg.PacingPeriod),
		inflight:    make(map[int]*Batch),
		cmds:        make(chan command),
		completions: make(chan completion, 256),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	if cfg.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}

	return s, nil
}

// Start launches the event loop. The context bounds all fetches issued
// by this scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.ctx = ctx
	go s.run(ctx)
	return nil
}

// Close stops the event loop and waits for it to exit. In-flight
// fetches are abandoned; their replies are discarded.
func (s *Scheduler) Close() error {
	if !s.running.Load() {
		return nil
	}
	s.once.Do(func() { close(s.quit) })
	<-s.done
	return nil
}

// run is the cooperative event loop: commands, completions, and pacing
// ticks arrive as events, and nothing in the loop blocks on a network
// reply.
func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	defer s.pacer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case cmd := <-s.cmds:
			cmd.fn()
			close(cmd.done)
		case c := <-s.completions:
			s.handleCompletion(c)
		case <-s.pacer.C():
			s.handleTick()
		}
	}
}

// call executes fn on the loop goroutine and waits for it.
func (s *Scheduler) call(fn func()) error {
	if !s.running.Load() {
		return ErrNotRunning
	}

	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case s.cmds <- cmd:
	case <-s.done:
		return ErrNotRunning
	}

	select {
	case <-cmd.done:
		return nil
	case <-s.done:
		return ErrNotRunning
	}
}

// StartSearch begins a new search. All state from the prior search is
// discarded first, so late replies from it are recognized as stale and
// dropped. On success the first page is admitted and dispatched
// immediately; the returned count is the full identifier-list length.
// An empty result set returns (0, nil) and leaves the pipeline idle.
func (s *Scheduler) StartSearch(ctx context.Context, term string) (int, error) {
	var gen int
	if err := s.call(func() { gen = s.reset() }); err != nil {
		return 0, err
	}

	urls, err := s.cfg.Searcher.SearchURLs(ctx, term)
	if err != nil {
		s.logger.Error().Err(err).Str("term", term).Msg("Identifier lookup failed")
		return 0, fmt.Errorf("identifier lookup: %w", err)
	}
	if len(urls) == 0 {
		s.logger.Info().Str("term", term).Msg("No results found for search term")
		return 0, nil
	}

	count := 0
	err = s.call(func() {
		// A newer search may have reset again while the lookup was in
		// flight; its state must not be touched.
		if s.gen != gen {
			return
		}
		s.window.Reset(urls)
		count = len(urls)
		s.logger.Info().Str("term", term).Int("total", count).Msg("Total object count")
		s.admit(s.cfg.PageSize)
	})
	return count, err
}

// RequestMore admits up to count further identifiers as one new batch.
// The batch dispatches immediately when the pipeline is idle, else at
// the next pacing boundary; requests made within the same pacing
// window coalesce into the cadence instead of bursting. No-op when the
// whole list has been admitted. count <= 0 means one configured page.
func (s *Scheduler) RequestMore(count int) error {
	if count <= 0 {
		count = s.cfg.PageSize
	}
	return s.call(func() { s.admit(count) })
}

// CanFetchMore reports whether identifiers remain beyond the cursor,
// letting a view implement progressive loading without knowing fetch
// internals.
func (s *Scheduler) CanFetchMore() bool {
	return s.window.CanAdvance()
}

// Cursor returns the index of the last admitted identifier, or -1.
func (s *Scheduler) Cursor() int {
	return s.window.Cursor()
}

// ResultCount returns the full identifier-list length for the current
// search.
func (s *Scheduler) ResultCount() int {
	return s.window.Len()
}

// URLs returns the current search's full URL list in relevance order.
func (s *Scheduler) URLs() []string {
	return s.window.URLs()
}

// Document returns the cached document for a URL, or false while it is
// unresolved. Never blocks, never triggers a fetch.
func (s *Scheduler) Document(url string) (catalog.Document, bool) {
	return s.store.Get(url)
}

// IsBad reports whether the URL's fetch permanently failed.
func (s *Scheduler) IsBad(url string) bool {
	return s.store.IsBad(url)
}

// Status returns the URL's lifecycle state.
func (s *Scheduler) Status(url string) DocStatus {
	return s.store.Status(url)
}

// Counts returns the number of resolved and failed documents.
func (s *Scheduler) Counts() (resolved, failed int) {
	return s.store.Counts()
}

// reset discards all per-search state and bumps the generation. Runs
// on the loop.
func (s *Scheduler) reset() int {
	s.gen++
	s.store.Reset()
	s.window.Reset(nil)
	s.queue.Reset()
	s.inflight = make(map[int]*Batch)
	s.pacer.Stop()
	s.phase = phaseIdle
	schedulerQueueDepth.Set(0)
	return s.gen
}

// admit advances the window and enqueues the admitted URLs as one
// batch. Runs on the loop.
func (s *Scheduler) admit(count int) {
	urls := s.window.Advance(count)
	if len(urls) == 0 {
		s.logger.Debug().Msg("Nothing left to admit")
		return
	}

	b := s.queue.Push(urls)
	s.store.MarkPending(urls...)
	schedulerQueueDepth.Set(float64(s.queue.Len()))

	s.logger.Debug().
		Int("batch", b.Key).
		Int("size", b.Total()).
		Int("cursor", s.window.Cursor()).
		Msg("Batch enqueued")

	if s.phase == phaseIdle {
		s.dispatchNext()
	}
}

// dispatchNext pops the head batch and issues one concurrent request
// per item, fire-and-forget, then starts the pacing countdown. Runs on
// the loop.
func (s *Scheduler) dispatchNext() {
	b := s.queue.Pop()
	if b == nil {
		return
	}

	s.phase = phaseDispatching
	s.inflight[b.Key] = b
	schedulerQueueDepth.Set(float64(s.queue.Len()))
	schedulerBatchesDispatchedTotal.Inc()

	s.logger.Info().
		Int("batch", b.Key).
		Int("size", b.Total()).
		Int("queued", s.queue.Len()).
		Msg("Dispatching batch")

	gen := s.gen
	for _, url := range b.URLs {
		go s.fetch(gen, b.Key, url)
	}

	s.phase = phaseWaiting
	s.pacer.Start()
	s.logger.Debug().
		Int("period", s.pacer.Period()).
		Msg("Waiting for next cycle of requests")
}

// fetch retrieves one document and delivers the outcome to the loop.
// Runs on its own goroutine.
func (s *Scheduler) fetch(gen, batchKey int, url string) {
	if s.sem != nil {
		if err := s.sem.Acquire(s.ctx, 1); err != nil {
			s.deliver(completion{gen: gen, batch: batchKey, url: url, err: err})
			return
		}
		defer s.sem.Release(1)
	}

	doc, err := s.cfg.Fetcher.FetchObject(s.ctx, url)
	s.deliver(completion{gen: gen, batch: batchKey, url: url, doc: doc, err: err})
}

// deliver hands a completion to the loop unless the scheduler is
// shutting down.
func (s *Scheduler) deliver(c completion) {
	select {
	case s.completions <- c:
	case <-s.done:
	}
}

// handleCompletion absorbs one fetch outcome into the store and tracks
// batch completion. Failures never propagate beyond the bad set. Runs
// on the loop.
func (s *Scheduler) handleCompletion(c completion) {
	if c.gen != s.gen {
		schedulerStaleRepliesTotal.Inc()
		s.logger.Debug().Str("url", c.url).Msg("Dropping stale reply from prior search")
		return
	}

	if c.err != nil {
		s.store.MarkBad(c.url)
		schedulerDocumentsTotal.WithLabelValues("failed").Inc()
		s.logger.Warn().Err(c.err).Str("url", c.url).Msg("Document fetch failed")
	} else {
		s.store.Resolve(c.url, c.doc)
		schedulerDocumentsTotal.WithLabelValues("resolved").Inc()
		s.logger.Debug().Str("url", c.url).Msg("Document resolved")
	}

	s.notifyDocumentUpdated(c.url)

	b, ok := s.inflight[c.batch]
	if !ok {
		// Completions always follow their batch's dispatch; an unknown
		// key is a programming error.
		s.logger.Error().Int("batch", c.batch).Msg("Completion for unknown batch")
		return
	}

	if b.markDone() {
		s.logger.Info().
			Int("batch", b.Key).
			Int("size", b.Total()).
			Msg("Batch complete")
		s.notifyBatchComplete(b.Key)
	}
}

// handleTick advances the pacing countdown. At the boundary the next
// batch dispatches, or the pacer stops when nothing is queued. Runs on
// the loop.
func (s *Scheduler) handleTick() {
	remaining := s.pacer.Advance()
	schedulerPacingRemaining.Set(float64(remaining))
	s.notifyPacingTick(remaining)

	if !s.pacer.Expired() {
		return
	}

	if s.queue.Len() > 0 {
		s.dispatchNext()
		return
	}

	s.pacer.Stop()
	s.phase = phaseIdle
	s.logger.Debug().Msg("Queue drained, pacer stopped")
}

func (s *Scheduler) notifyDocumentUpdated(url string) {
	if s.cfg.OnDocumentUpdated != nil {
		s.cfg.OnDocumentUpdated(url)
	}
}

func (s *Scheduler) notifyBatchComplete(key int) {
	if s.cfg.OnBatchComplete != nil {
		s.cfg.OnBatchComplete(key)
	}
}

func (s *Scheduler) notifyPacingTick(remaining int) {
	if s.cfg.OnPacingTick != nil {
		s.cfg.OnPacingTick(remaining)
	}
}
