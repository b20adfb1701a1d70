package observability

import (
	"context"
	"testing"
	"time"
)

type countingLayoutHooks struct {
	starts, completes int
}

func (h *countingLayoutHooks) OnLayoutStart(context.Context, int) { h.starts++ }
func (h *countingLayoutHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.completes++
}

func TestSetAndGetLayoutHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingLayoutHooks{}
	SetLayoutHooks(h)

	ctx := context.Background()
	Layout().OnLayoutStart(ctx, 10)
	Layout().OnLayoutComplete(ctx, 2, time.Millisecond, nil)

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("hook calls = (%d, %d), want (1, 1)", h.starts, h.completes)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingLayoutHooks{}
	SetLayoutHooks(h)
	SetLayoutHooks(nil)

	Layout().OnLayoutStart(context.Background(), 1)
	if h.starts != 1 {
		t.Error("SetLayoutHooks(nil) should keep the registered hooks")
	}
}

func TestResetRestoresNoops(t *testing.T) {
	h := &countingLayoutHooks{}
	SetLayoutHooks(h)
	Reset()

	Layout().OnLayoutStart(context.Background(), 1)
	if h.starts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() after Reset = %T, want NoopLayoutHooks", Layout())
	}
	if _, ok := Widget().(NoopWidgetHooks); !ok {
		t.Errorf("Widget() after Reset = %T, want NoopWidgetHooks", Widget())
	}
}

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Layout().OnLayoutStart(ctx, 0)
	Render().OnRenderStart(ctx, []string{"svg"})
	Cache().OnCacheHit(ctx, "layout")
	Widget().OnSessionStart(ctx, 3, true)
	Widget().OnSessionEnd(ctx, time.Second, false)
}
