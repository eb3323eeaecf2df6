package core

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingModule struct {
	name string

	createErr   error
	saveReplace []string
	saveErr     error
	moveResult  MoveResult
	moveErr     error
	delResult   DeleteResult
	delErr      error
	guardOK     bool
	guardReason string

	createCalls []string
	saveCalls   [][]string
	moveCalls   [][2]string
	delCalls    []string
	statusCalls int
	guardCalls  []string
}

func newRecordingModule(name string) *recordingModule {
	return &recordingModule{name: name, guardOK: true}
}

func (m *recordingModule) Name() string { return m.name }

func (m *recordingModule) OnWillCreateAsset(path string) error {
	m.createCalls = append(m.createCalls, path)
	return m.createErr
}

func (m *recordingModule) OnWillSaveAssets(paths []string) ([]string, error) {
	m.saveCalls = append(m.saveCalls, append([]string(nil), paths...))
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return m.saveReplace, nil
}

func (m *recordingModule) OnWillMoveAsset(from, to string) (MoveResult, error) {
	m.moveCalls = append(m.moveCalls, [2]string{from, to})
	return m.moveResult, m.moveErr
}

func (m *recordingModule) OnWillDeleteAsset(path string, _ RemoveOptions) (DeleteResult, error) {
	m.delCalls = append(m.delCalls, path)
	return m.delResult, m.delErr
}

func (m *recordingModule) OnStatusUpdated() {
	m.statusCalls++
}

func (m *recordingModule) IsOpenForEdit(path string) (bool, string) {
	m.guardCalls = append(m.guardCalls, path)
	return m.guardOK, m.guardReason
}

// callbackModule binds through the exported-callback path instead of the
// typed capability interfaces.
type callbackModule struct {
	name      string
	callbacks map[string]any
}

func (m callbackModule) Name() string { return m.name }

func (m callbackModule) Callbacks() map[string]any { return m.callbacks }

type countingDiscoverer struct {
	modules []HandlerModule
	calls   int
}

func (d *countingDiscoverer) Modules() []HandlerModule {
	d.calls++
	return append([]HandlerModule(nil), d.modules...)
}

type fakeVersionControl struct {
	enabled bool

	makeEditableAll bool
	makeEditableMap map[string]bool
	makeEditableErr error

	statusEditable map[string]bool
	statusReason   map[string]string
	statusErr      error

	moveResult MoveResult
	moveErr    error
	delResult  DeleteResult
	delErr     error

	setModeErr error

	makeEditableCalls [][]string
	setModeCalls      [][]string
	setModeModes      []FileMode
	statusCalls       []string
	filterCalls       [][]string
	moveCalls         [][2]string
	delCalls          []string
}

func newFakeVersionControl() *fakeVersionControl {
	return &fakeVersionControl{
		enabled:         true,
		makeEditableAll: true,
		statusEditable:  map[string]bool{},
		statusReason:    map[string]string{},
	}
}

func (f *fakeVersionControl) Enabled() bool { return f.enabled }

func (f *fakeVersionControl) MakeEditable(_ context.Context, paths []string) (bool, []bool, error) {
	f.makeEditableCalls = append(f.makeEditableCalls, append([]string(nil), paths...))
	if f.makeEditableErr != nil {
		return false, nil, f.makeEditableErr
	}
	if f.makeEditableAll {
		editable := make([]bool, len(paths))
		for i := range editable {
			editable[i] = true
		}
		return true, editable, nil
	}
	editable := make([]bool, len(paths))
	for i, path := range paths {
		editable[i] = f.makeEditableMap[path]
	}
	return false, editable, nil
}

func (f *fakeVersionControl) SetFileMode(_ context.Context, paths []string, mode FileMode) error {
	f.setModeCalls = append(f.setModeCalls, append([]string(nil), paths...))
	f.setModeModes = append(f.setModeModes, mode)
	return f.setModeErr
}

func (f *fakeVersionControl) IsOpenForEdit(_ context.Context, path string, _ StatusQueryOptions) (bool, string, error) {
	f.statusCalls = append(f.statusCalls, path)
	if f.statusErr != nil {
		return false, "", f.statusErr
	}
	editable, known := f.statusEditable[path]
	if !known {
		return true, "", nil
	}
	return editable, f.statusReason[path], nil
}

func (f *fakeVersionControl) FilterNotEditable(_ context.Context, paths []string, _ StatusQueryOptions) ([]string, error) {
	f.filterCalls = append(f.filterCalls, append([]string(nil), paths...))
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	rejected := []string{}
	for _, path := range paths {
		if editable, known := f.statusEditable[path]; known && !editable {
			rejected = append(rejected, path)
		}
	}
	return rejected, nil
}

func (f *fakeVersionControl) OnWillMoveAsset(_ context.Context, from, to string) (MoveResult, error) {
	f.moveCalls = append(f.moveCalls, [2]string{from, to})
	return f.moveResult, f.moveErr
}

func (f *fakeVersionControl) OnWillDeleteAsset(_ context.Context, path string, _ RemoveOptions) (DeleteResult, error) {
	f.delCalls = append(f.delCalls, path)
	return f.delResult, f.delErr
}

type fakeConfirmer struct {
	confirmed []string
	err       error
	calls     [][]string
}

func (f *fakeConfirmer) Confirm(_ context.Context, paths []string) ([]string, error) {
	f.calls = append(f.calls, append([]string(nil), paths...))
	if f.err != nil {
		return nil, f.err
	}
	if f.confirmed == nil {
		return append([]string(nil), paths...), nil
	}
	return append([]string(nil), f.confirmed...), nil
}

type staticPrefs struct {
	prompt    bool
	overwrite bool
}

func (p staticPrefs) PromptBeforeSaving() bool      { return p.prompt }
func (p staticPrefs) OverwriteFailedCheckout() bool { return p.overwrite }

type fakeNotifier struct {
	err   error
	calls int
}

func (f *fakeNotifier) NotifyStatusChanged(context.Context) error {
	f.calls++
	return f.err
}

type memoryStatusCache struct {
	mu      sync.Mutex
	entries map[string]StatusEntry
	getErr  error
	gets    int
	upserts int
}

func newMemoryStatusCache() *memoryStatusCache {
	return &memoryStatusCache{entries: map[string]StatusEntry{}}
}

func (s *memoryStatusCache) Get(_ context.Context, path string) (StatusEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return StatusEntry{}, false, s.getErr
	}
	entry, ok := s.entries[path]
	return entry, ok, nil
}

func (s *memoryStatusCache) Upsert(_ context.Context, entry StatusEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	s.entries[entry.Path] = entry
	return nil
}

func (s *memoryStatusCache) DeleteStale(_ context.Context, olderThan time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, entry := range s.entries {
		if entry.CheckedAt.Before(olderThan) {
			delete(s.entries, path)
		}
	}
	return nil
}

type memoryActivityStore struct {
	mu      sync.Mutex
	entries []AssetActivityEntry
}

func (s *memoryActivityStore) Record(_ context.Context, entry AssetActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memoryActivityStore) List(_ context.Context, filter AssetActivityFilter) (AssetActivityPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []AssetActivityEntry{}
	for _, entry := range s.entries {
		if filter.Event != "" && entry.Event != filter.Event {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		items = append(items, entry)
	}
	return AssetActivityPage{Items: items, Page: 1, PerPage: len(items), Total: len(items)}, nil
}

type recordingMetrics struct {
	mu         sync.Mutex
	counters   map[string]int64
	histograms map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counters: map[string]int64{}, histograms: map[string]int{}}
}

func (m *recordingMetrics) IncCounter(_ context.Context, name string, value int64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += value
}

func (m *recordingMetrics) ObserveHistogram(_ context.Context, name string, _ float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms[name]++
}

func newTestService(t *testing.T, cfg Config, options ...Option) *Service {
	t.Helper()
	service, err := NewService(cfg, options...)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return service
}

func pathsEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
