package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_BurstCoalescesToFinalValue(t *testing.T) {
	d := NewDebouncer[string](30 * time.Millisecond)
	defer d.Stop()

	// A keystroke sequence typed within the quiet period.
	for _, term := range []string{"a", "ad", "ade", "adew", "adewa"} {
		d.Emit(term)
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case got := <-d.C():
		assert.Equal(t, "adewa", got, "only the final typed value is delivered")
	case <-time.After(time.Second):
		t.Fatal("debouncer never delivered")
	}

	// Exactly one delivery for the whole burst.
	select {
	case extra := <-d.C():
		t.Fatalf("unexpected second delivery %q", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_SeparateBurstsDeliverSeparately(t *testing.T) {
	d := NewDebouncer[string](10 * time.Millisecond)
	defer d.Stop()

	d.Emit("first")
	require.Equal(t, "first", <-d.C())

	d.Emit("second")
	require.Equal(t, "second", <-d.C())
}

func TestDebouncer_UnconsumedValueReplaced(t *testing.T) {
	d := NewDebouncer[string](5 * time.Millisecond)
	defer d.Stop()

	d.Emit("stale")
	time.Sleep(20 * time.Millisecond) // delivered but not consumed

	d.Emit("fresh")
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, "fresh", <-d.C(), "latest value replaces an unconsumed one")
}

func TestDebouncer_StopSilences(t *testing.T) {
	d := NewDebouncer[string](5 * time.Millisecond)

	d.Emit("pending")
	d.Stop()

	select {
	case got := <-d.C():
		t.Fatalf("delivery after Stop: %q", got)
	case <-time.After(50 * time.Millisecond):
	}

	// Emitting after Stop is a no-op, not a panic.
	d.Emit("ignored")
}
