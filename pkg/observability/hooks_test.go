package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Layout hooks
	l := NoopLayoutHooks{}
	l.OnRecompute(GenerationStats{Generation: 1, Changed: 3, Duration: time.Millisecond})

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "scene.toml")
	p.OnLoadComplete(ctx, "scene.toml", 12, time.Second, nil)
	p.OnRunStart(ctx, "run-1", 4)
	p.OnRunComplete(ctx, "run-1", 2, time.Second, nil)
	p.OnExportStart(ctx, []string{"json"})
	p.OnExportComplete(ctx, []string{"json"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "run")
	c.OnCacheMiss(ctx, "run")
	c.OnCacheSet(ctx, "run", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)

	// Setting nil should be ignored
	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}

	Reset()
}

func TestLayoutHooksReceiveStats(t *testing.T) {
	Reset()
	defer Reset()

	h := &testLayoutHooks{}
	SetLayoutHooks(h)
	Layout().OnRecompute(GenerationStats{Generation: 7, Changed: 2})

	if len(h.seen) != 1 || h.seen[0].Generation != 7 || h.seen[0].Changed != 2 {
		t.Errorf("unexpected stats delivered: %+v", h.seen)
	}
}

// Test implementations
type testLayoutHooks struct{ seen []GenerationStats }

func (h *testLayoutHooks) OnRecompute(s GenerationStats) { h.seen = append(h.seen, s) }

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
