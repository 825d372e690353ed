package preview

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/certadmin/pkg/placement"
	"github.com/pluqqy/certadmin/pkg/request"
)

type fakeRenderer struct {
	mu    sync.Mutex
	calls []request.Payload
	fail  error
	// gate, when set, blocks the first call until it is closed.
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeRenderer) GeneratePreview(ctx context.Context, payload request.Payload) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, payload)
	n := len(f.calls)
	fail := f.fail
	gate := f.gate
	f.mu.Unlock()

	if n == 1 && gate != nil {
		if f.started != nil {
			close(f.started)
		}
		<-gate
	}
	if fail != nil {
		return nil, fail
	}
	x, _ := payload.Get("xRel")
	return []byte("png:" + x), nil
}

func (f *fakeRenderer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRenderer) last() request.Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func snapshotAt(x float64) Snapshot {
	return Snapshot{
		Params: request.Params{
			Template:  &request.Template{Name: "bg.png", MediaType: "image/png", Data: []byte{1, 2, 3}, Revision: 1},
			SheetID:   "1AbCdEfGhIjKlMnOpQrStUv",
			Range:     "Sheet1!A1:C1000",
			Placement: placement.Point{X: x, Y: 0.5},
			FontSize:  48,
			Color:     "#000000",
		},
		RowIndex:   0,
		RowCount:   3,
		ServerView: true,
	}
}

func readLive(t *testing.T, c *Controller) string {
	t.Helper()
	path := c.State().Path
	require.NotEmpty(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRapidEditsCollapseIntoOneRequest(t *testing.T) {
	r := &fakeRenderer{}
	c := NewController(r, WithDelay(30*time.Millisecond), WithStoreDir(t.TempDir()))
	defer c.Close()

	assert.True(t, c.Notify(snapshotAt(0.2)))
	assert.True(t, c.Notify(snapshotAt(0.7)))

	assert.Eventually(t, func() bool { return c.State().Path != "" }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 1, r.count())
	x, _ := r.last().Get("xRel")
	assert.Equal(t, "0.7", x)
	preview, _ := r.last().Get("preview")
	assert.Equal(t, "png", preview)
	assert.Equal(t, "png:0.7", readLive(t, c))
}

func TestUnchangedSnapshotDoesNotReschedule(t *testing.T) {
	r := &fakeRenderer{}
	c := NewController(r, WithDelay(time.Hour), WithStoreDir(t.TempDir()))
	defer c.Close()

	assert.True(t, c.Notify(snapshotAt(0.5)))
	assert.False(t, c.Notify(snapshotAt(0.5)))
	assert.True(t, c.Notify(snapshotAt(0.6)))
}

func TestStaleResponseIsDropped(t *testing.T) {
	r := &fakeRenderer{gate: make(chan struct{}), started: make(chan struct{})}
	c := NewController(r, WithDelay(time.Hour), WithStoreDir(t.TempDir()))
	defer c.Close()

	c.Notify(snapshotAt(0.1))
	done := make(chan struct{})
	go func() {
		c.Refresh()
		close(done)
	}()
	<-r.started

	c.Notify(snapshotAt(0.9))
	c.Refresh()
	assert.Equal(t, "png:0.9", readLive(t, c))
	latest := c.State().Seq

	close(r.gate)
	<-done

	assert.Equal(t, latest, c.State().Seq)
	assert.Equal(t, "png:0.9", readLive(t, c))
	assert.False(t, c.State().Loading)
}

func TestFailureKeepsPreviousPreview(t *testing.T) {
	r := &fakeRenderer{}
	c := NewController(r, WithDelay(time.Hour), WithStoreDir(t.TempDir()))
	defer c.Close()

	c.Notify(snapshotAt(0.3))
	c.Refresh()
	before := c.State().Path
	require.NotEmpty(t, before)

	r.mu.Lock()
	r.fail = errors.New("backend exploded")
	r.mu.Unlock()

	c.Notify(snapshotAt(0.4))
	c.Refresh()

	st := c.State()
	assert.Equal(t, before, st.Path)
	assert.Equal(t, "backend exploded", st.Err)
	assert.False(t, st.Loading)
	assert.Equal(t, "png:0.3", readLive(t, c))
}

func TestSwapReleasesPreviousFile(t *testing.T) {
	r := &fakeRenderer{}
	c := NewController(r, WithDelay(time.Hour), WithStoreDir(t.TempDir()))
	defer c.Close()

	c.Notify(snapshotAt(0.3))
	c.Refresh()
	first := c.State().Path

	c.Notify(snapshotAt(0.6))
	c.Refresh()

	assert.NotEqual(t, first, c.State().Path)
	_, err := os.Stat(first)
	assert.True(t, os.IsNotExist(err))
}

func TestNotReadySkipsRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"client view", func(s *Snapshot) { s.ServerView = false }},
		{"no rows", func(s *Snapshot) { s.RowCount = 0 }},
		{"row out of range", func(s *Snapshot) { s.RowIndex = 3 }},
		{"no template", func(s *Snapshot) { s.Params.Template = nil }},
		{"no sheet", func(s *Snapshot) { s.Params.SheetID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRenderer{}
			c := NewController(r, WithDelay(time.Hour), WithStoreDir(t.TempDir()))
			defer c.Close()

			s := snapshotAt(0.5)
			tt.mutate(&s)
			c.Notify(s)
			c.Refresh()
			assert.Equal(t, 0, r.count())
			assert.Empty(t, c.State().Path)
		})
	}
}

func TestInvalidateReleasesPreview(t *testing.T) {
	r := &fakeRenderer{}
	var mu sync.Mutex
	var updates []State
	c := NewController(r, WithDelay(time.Hour), WithStoreDir(t.TempDir()), WithOnUpdate(func(s State) {
		mu.Lock()
		updates = append(updates, s)
		mu.Unlock()
	}))
	defer c.Close()

	c.Notify(snapshotAt(0.5))
	c.Refresh()
	path := c.State().Path
	require.NotEmpty(t, path)

	c.Invalidate()
	assert.Empty(t, c.State().Path)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// the same snapshot renders again after invalidation
	assert.True(t, c.Notify(snapshotAt(0.5)))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, updates, 3)
	assert.True(t, updates[0].Loading)
	assert.NotEmpty(t, updates[1].Path)
	assert.Empty(t, updates[2].Path)
}

func TestCloseReleasesAndStops(t *testing.T) {
	r := &fakeRenderer{}
	c := NewController(r, WithDelay(20*time.Millisecond), WithStoreDir(t.TempDir()))

	c.Notify(snapshotAt(0.5))
	c.Refresh()
	path := c.State().Path

	c.Notify(snapshotAt(0.8))
	c.Close()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, r.count())
	assert.False(t, c.Notify(snapshotAt(0.1)))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var mu sync.Mutex
	runs := 0
	d.Trigger(func() { mu.Lock(); runs++; mu.Unlock() })
	assert.True(t, d.Pending())
	d.Stop()
	assert.False(t, d.Pending())
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, runs)
}

func TestDebouncerDefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, NewDebouncer(0).Delay())
}
