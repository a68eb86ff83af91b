package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

func dispute(key string, at time.Time) models.SavedDispute {
	return models.SavedDispute{
		ID:          "id-" + key,
		EntityKey:   key,
		Kind:        models.KindAccount,
		Reason:      "reason " + key,
		Instruction: "instruction " + key,
		Selection:   []string{"TransUnion"},
		HasData:     true,
		SavedAt:     at,
	}
}

func TestLedger_PutRemoveHas(t *testing.T) {
	l := New()
	now := time.Now()

	l.Put(dispute("a", now))
	assert.True(t, l.Has("a"))
	got, err := l.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "reason a", got.Reason)

	l.Put(models.SavedDispute{EntityKey: "a", Reason: "second", Instruction: "x", HasData: true})
	got, err = l.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Reason, "last write wins")

	assert.True(t, l.Remove("a"))
	assert.False(t, l.Has("a"))
	assert.False(t, l.Remove("a"))

	_, err = l.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedger_MarkIsBareFlag(t *testing.T) {
	l := New()
	l.Mark("flag")

	assert.True(t, l.Has("flag"))
	_, err := l.Get("flag")
	assert.ErrorIs(t, err, ErrNotFound)

	e, ok := l.Lookup("flag")
	require.True(t, ok)
	assert.False(t, e.HasData())
	assert.Empty(t, l.Snapshot())
}

func TestLedger_IsFullyResolved(t *testing.T) {
	l := New()
	l.Put(dispute("a", time.Now()))
	l.Mark("b")

	assert.True(t, l.IsFullyResolved([]string{"a", "b"}))
	assert.False(t, l.IsFullyResolved([]string{"a", "c"}))
	assert.False(t, l.IsFullyResolved(nil))
}

func TestLedger_StoredCopiesAreIsolated(t *testing.T) {
	l := New()
	d := dispute("a", time.Now())
	l.Put(d)
	d.Selection[0] = "mutated"

	got, err := l.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"TransUnion"}, got.Selection)

	got.Selection[0] = "mutated again"
	again, _ := l.Get("a")
	assert.Equal(t, []string{"TransUnion"}, again.Selection)
}

func TestLedger_Subscribe(t *testing.T) {
	l := New()
	var changes []Change
	var sizes []int
	unsubscribe := l.Subscribe(func(c Change) {
		changes = append(changes, c)
		sizes = append(sizes, l.Len())
	})

	l.Put(dispute("a", time.Now()))
	l.Remove("missing")
	l.Remove("a")
	l.Mark("b")
	unsubscribe()
	l.Clear()

	assert.Equal(t, []Change{
		{Op: OpPut, Key: "a"},
		{Op: OpRemove, Key: "a"},
		{Op: OpPut, Key: "b"},
	}, changes)
	assert.Equal(t, []int{1, 0, 1}, sizes, "observers see the mutated ledger")
}

func TestLedger_SnapshotOrder(t *testing.T) {
	l := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.Put(dispute("b", base.Add(time.Minute)))
	l.Put(dispute("c", base))
	l.Put(dispute("a", base))

	var keys []string
	for _, d := range l.Snapshot() {
		keys = append(keys, d.EntityKey)
	}
	assert.Equal(t, []string{"a", "c", "b"}, keys)
	assert.Equal(t, []string{"a", "b", "c"}, l.Keys())
}

func TestSession_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions", "report.yaml")

	l := New()
	l.Put(dispute("a", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	l.Mark("b")

	s := &Session{
		Report:     "report.json",
		Selections: map[string][]string{"c": {"Experian"}},
		Drafts:     map[string]models.DisputeDraft{"c": {Reason: "half"}},
	}
	s.Capture(l)
	require.NoError(t, SaveSession(path, s))

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, "report.json", loaded.Report)
	assert.Equal(t, []string{"b"}, loaded.Marked)
	assert.Equal(t, []string{"Experian"}, loaded.Selections["c"])
	assert.Equal(t, "half", loaded.Drafts["c"].Reason)

	restored := New()
	restored.Mark("stale")
	loaded.Apply(restored)
	assert.Equal(t, []string{"a", "b"}, restored.Keys())
	got, err := restored.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "reason a", got.Reason)
}

func TestLoadSession_Missing(t *testing.T) {
	s, err := LoadSession(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, s.Disputes)
}
