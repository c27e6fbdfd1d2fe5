// Package querysync owns the single funnel through which every listing
// round-trip is initiated: search edits, quick filters, advanced filter
// applies, sort, pagination, and column toggles all pass through the
// Synchronizer. It debounces search input, fences superseded requests with a
// generation counter, and persists view preferences on every change.
package querysync

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/Vinzor11/hrgrid/pkg/filter"
	"github.com/Vinzor11/hrgrid/pkg/logger"
	"github.com/Vinzor11/hrgrid/pkg/prefs"
	"github.com/Vinzor11/hrgrid/pkg/querystate"
)

const (
	defaultDebounce     = 500 * time.Millisecond
	defaultReapplyDelay = 150 * time.Millisecond
	defaultPerPage      = 25
)

// Fetcher performs one listing request. HTTPFetcher talks to the real
// endpoint; tests inject fakes.
type Fetcher interface {
	Fetch(ctx context.Context, params url.Values) (*querystate.Page, error)
}

// Config wires a Synchronizer.
type Config struct {
	Fetcher Fetcher
	Prefs   *prefs.Store
	Types   filter.TypeResolver

	// Debounce is the quiet period before a search-text-only request
	// fires. Zero means the 500ms default.
	Debounce time.Duration

	// ReapplyDelay is the settle delay before the automatic re-apply that
	// follows removal of a valid condition. Zero means the default.
	ReapplyDelay time.Duration

	DefaultPerPage int

	// OnResult receives every accepted (non-stale) page. It runs with the
	// synchronizer's lock held and must not call back into the Synchronizer.
	OnResult func(*querystate.Page)

	// OnLoading receives loading-flag transitions. Same reentrancy rule as
	// OnResult.
	OnLoading func(bool)
}

// Synchronizer merges filter state, quick filters, search, sort, and
// pagination into one canonical query and keeps the rendered page in sync
// with it. All methods are safe for use from a single UI goroutine plus the
// internal fetch goroutines.
type Synchronizer struct {
	mu sync.Mutex

	fetcher Fetcher
	store   *prefs.Store
	filters *filter.Model
	state   querystate.QueryState

	debounce     time.Duration
	reapplyDelay time.Duration

	// gen is the latest issued request generation. A response is applied
	// only while its generation is still the latest, so a stale response
	// can never overwrite a newer one.
	gen uint64

	loading     bool
	lastPage    *querystate.Page
	searchTimer *time.Timer
	reapplyTmr  *time.Timer

	onResult  func(*querystate.Page)
	onLoading func(bool)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Synchronizer with defaults applied. Call Restore to load
// persisted preferences, then Refresh for the initial page.
func New(cfg Config) *Synchronizer {
	if cfg.Debounce == 0 {
		cfg.Debounce = defaultDebounce
	}
	if cfg.ReapplyDelay == 0 {
		cfg.ReapplyDelay = defaultReapplyDelay
	}
	if cfg.DefaultPerPage == 0 {
		cfg.DefaultPerPage = defaultPerPage
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Synchronizer{
		fetcher:      cfg.Fetcher,
		store:        cfg.Prefs,
		filters:      filter.NewModel(cfg.Types),
		debounce:     cfg.Debounce,
		reapplyDelay: cfg.ReapplyDelay,
		onResult:     cfg.OnResult,
		onLoading:    cfg.OnLoading,
		ctx:          ctx,
		cancel:       cancel,
	}
	s.state = querystate.QueryState{
		Page:       1,
		PerPage:    cfg.DefaultPerPage,
		SearchMode: querystate.SearchAny,
	}
	return s
}

// Close cancels in-flight requests and pending timers and waits for fetch
// goroutines to finish.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	s.stopTimersLocked()
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until all currently issued fetches have completed. Intended
// for tests.
func (s *Synchronizer) Wait() {
	s.wg.Wait()
}

func (s *Synchronizer) stopTimersLocked() {
	if s.searchTimer != nil {
		s.searchTimer.Stop()
		s.searchTimer = nil
	}
	if s.reapplyTmr != nil {
		s.reapplyTmr.Stop()
		s.reapplyTmr = nil
	}
}

// Restore loads the persisted snapshot. Called once before the first fetch;
// absent or malformed fragments leave defaults in place.
func (s *Synchronizer) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = s.store.Status()
	s.state.DepartmentIDs = s.store.Departments()
	s.state.PositionIDs = s.store.Positions()
	s.state.EmployeeType = s.store.EmployeeType()
	s.state.ShowDeleted = s.store.ShowDeleted()
	s.state.VisibleColumns = s.store.VisibleColumns()
	if perPage := s.store.PerPage(); perPage > 0 {
		s.state.PerPage = perPage
	}
	s.filters.Replace(s.store.AdvancedFilters())
}

// State returns a snapshot of the current query state, with the valid
// filter subset populated.
func (s *Synchronizer) State() querystate.QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Synchronizer) snapshotLocked() querystate.QueryState {
	st := s.state
	st.Filters = s.filters.ValidConditions()
	return st
}

// Page returns the last accepted listing page, or nil before the first
// successful fetch.
func (s *Synchronizer) Page() *querystate.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPage
}

// Loading reports whether a request is in flight.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ValidFilterCount is the filter-button badge count.
func (s *Synchronizer) ValidFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.ValidCount()
}

// Refresh issues a request for the current state immediately.
func (s *Synchronizer) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fireLocked()
}

// SetSearch updates the search text and schedules a debounced request:
// only the final text within a quiet window fires. Any immediate trigger
// issued meanwhile cancels the pending search request.
func (s *Synchronizer) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Search = text
	s.state.Page = 1

	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.searchTimer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.searchTimer = nil
		s.fireLocked()
	})
}

// SetSearchMode switches the search scope and refetches immediately when
// there is search text to rescope.
func (s *Synchronizer) SetSearchMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchMode = mode
	s.state.Page = 1
	if s.state.Search != "" {
		s.fireLocked()
	}
}

func (s *Synchronizer) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = status
	s.store.SetStatus(status)
	s.state.Page = 1
	s.fireLocked()
}

func (s *Synchronizer) SetDepartments(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DepartmentIDs = ids
	s.store.SetDepartments(ids)
	s.state.Page = 1
	s.fireLocked()
}

func (s *Synchronizer) SetPositions(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PositionIDs = ids
	s.store.SetPositions(ids)
	s.state.Page = 1
	s.fireLocked()
}

func (s *Synchronizer) SetEmployeeType(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EmployeeType = t
	s.store.SetEmployeeType(t)
	s.state.Page = 1
	s.fireLocked()
}

func (s *Synchronizer) SetShowDeleted(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShowDeleted = show
	s.store.SetShowDeleted(show)
	s.state.Page = 1
	s.fireLocked()
}

// AddFilter appends a blank condition row. No request is issued; an
// incomplete condition is never transmitted.
func (s *Synchronizer) AddFilter() filter.Condition {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.filters.Add()
	s.persistFiltersLocked()
	return c
}

// UpdateFilter edits a condition in place. No request is issued until the
// user applies.
func (s *Synchronizer) UpdateFilter(id string, patch filter.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filters.Update(id, patch) {
		s.persistFiltersLocked()
	}
}

// RemoveFilter deletes a condition row. Removing a condition that was
// already effective re-applies the remaining filters automatically after a
// short settle delay; removing an incomplete row issues nothing.
func (s *Synchronizer) RemoveFilter(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, wasValid := s.filters.Remove(id)
	if !removed {
		return
	}
	s.persistFiltersLocked()
	if !wasValid {
		return
	}

	if s.reapplyTmr != nil {
		s.reapplyTmr.Stop()
	}
	s.reapplyTmr = time.AfterFunc(s.reapplyDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.reapplyTmr = nil
		s.state.Page = 1
		s.fireLocked()
	})
}

// ApplyFilters transmits the current valid filter set immediately.
func (s *Synchronizer) ApplyFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistFiltersLocked()
	s.state.Page = 1
	s.fireLocked()
}

// ClearFilters drops all advanced filters, resets quick filters to their
// defaults, and issues an explicitly filter-free request.
func (s *Synchronizer) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters.Clear()
	s.store.ClearAdvancedFilters()

	s.state.Status = ""
	s.state.DepartmentIDs = nil
	s.state.PositionIDs = nil
	s.state.EmployeeType = ""
	s.state.ShowDeleted = false
	s.store.SetStatus("")
	s.store.SetDepartments(nil)
	s.store.SetPositions(nil)
	s.store.SetEmployeeType("")
	s.store.SetShowDeleted(false)

	s.state.Page = 1
	s.fireLocked()
}

// SetSort orders by a column. Sorting restarts at page 1.
func (s *Synchronizer) SetSort(column, order string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortBy = column
	s.state.SortOrder = order
	s.state.Page = 1
	s.fireLocked()
}

func (s *Synchronizer) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.state.Page = page
	s.fireLocked()
}

// SetPerPage changes the page size. The old offset is meaningless under a
// new size, so the page resets to 1.
func (s *Synchronizer) SetPerPage(perPage int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PerPage = perPage
	s.store.SetPerPage(perPage)
	s.state.Page = 1
	s.fireLocked()
}

func (s *Synchronizer) SetVisibleColumns(columns []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.VisibleColumns = columns
	s.store.SetVisibleColumns(columns)
	s.fireLocked()
}

// SetViewMode persists the view mode. Pure presentation state: no request.
func (s *Synchronizer) SetViewMode(mode string) {
	s.store.SetViewMode(mode)
}

func (s *Synchronizer) persistFiltersLocked() {
	s.store.SetAdvancedFilters(s.filters.Conditions())
}

// fireLocked snapshots the state, bumps the generation, and launches the
// request. Parameter construction is synchronous and atomic: the snapshot is
// taken in one pass under the lock, so no interleaving of partial state can
// reach a single request. Pending deferred requests are superseded outright:
// the debounced search because the new request carries the current text, and
// the removal re-apply because any request fired now already transmits the
// post-removal filter set.
func (s *Synchronizer) fireLocked() {
	if s.searchTimer != nil {
		s.searchTimer.Stop()
		s.searchTimer = nil
	}
	if s.reapplyTmr != nil {
		s.reapplyTmr.Stop()
		s.reapplyTmr = nil
	}

	s.gen++
	gen := s.gen
	params := s.snapshotLocked().Params()

	s.setLoadingLocked(true)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		page, err := s.fetcher.Fetch(s.ctx, params)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			// Superseded by a newer request; drop the response and leave
			// the loading flag to the request that owns it.
			logger.Debug("dropping stale listing response (gen %d < %d)", gen, s.gen)
			return
		}
		s.setLoadingLocked(false)
		if err != nil {
			// No retry. The previously rendered page stays in place and
			// the surrounding flash mechanism surfaces the failure.
			logger.Error("listing request failed: %v", err)
			return
		}
		s.lastPage = page
		if s.onResult != nil {
			s.onResult(page)
		}
	}()
}

func (s *Synchronizer) setLoadingLocked(loading bool) {
	if s.loading == loading {
		return
	}
	s.loading = loading
	if s.onLoading != nil {
		s.onLoading(loading)
	}
}
