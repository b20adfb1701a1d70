package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/treeize/pkg/cache"
	"github.com/matzehuels/treeize/pkg/tree"
)

func buildGraph(t *testing.T) *tree.Graph {
	t.Helper()
	g := tree.New(nil)
	for _, id := range []string{"root", "a", "b"} {
		if err := g.AddNode(tree.Node{ID: id, Label: id, Open: true}); err != nil {
			t.Fatalf("AddNode(%q) error: %v", id, err)
		}
	}
	if err := g.Connect("root", "a"); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := g.Connect("root", "b"); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	return g
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default Formats = %v, want [svg]", opts.Formats)
	}
	if opts.HorizontalSpacing != 200 || opts.VerticalSpacing != 150 {
		t.Errorf("default spacing = (%v, %v), want (200, 150)",
			opts.HorizontalSpacing, opts.VerticalSpacing)
	}

	bad := Options{Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should be rejected")
	}
}

func TestExecuteSVGAndDOT(t *testing.T) {
	g := buildGraph(t)
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), g, Options{
		Formats: []string{FormatSVG, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.WireCount != 2 {
		t.Errorf("Stats = %+v, want 3 nodes, 2 wires", result.Stats)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if len(result.Layout.Positions) != 3 {
		t.Errorf("layout positions = %d, want 3", len(result.Layout.Positions))
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg ") {
		t.Errorf("svg artifact unexpected: %.40s", svg)
	}
	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "rankdir=TB") {
		t.Errorf("dot artifact unexpected: %.80s", dot)
	}
}

func TestExecuteJSONFormatCarriesPositions(t *testing.T) {
	g := buildGraph(t)
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), g, Options{
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := string(result.Artifacts[FormatJSON])
	if !strings.Contains(out, `"pos"`) {
		t.Errorf("json artifact should carry positions:\n%s", out)
	}
	// The input graph keeps its original positions.
	if g.Node("a").Pos != (tree.Point{}) {
		t.Error("Execute should not mutate the input graph")
	}
}

func TestLayoutCaching(t *testing.T) {
	g := buildGraph(t)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	_, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if hit {
		t.Error("first layout run should miss the cache")
	}

	res, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatalf("second ComputeLayout error: %v", err)
	}
	if !hit {
		t.Error("second layout run should hit the cache")
	}
	if len(res.Positions) != 3 {
		t.Errorf("cached positions = %d, want 3", len(res.Positions))
	}

	// Different spacing means a different key.
	_, hit, err = runner.ComputeLayoutWithCacheInfo(ctx, g, Options{HorizontalSpacing: 300})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if hit {
		t.Error("changed options should miss the cache")
	}
}

func TestRenderCaching(t *testing.T) {
	g := buildGraph(t)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	opts := Options{Formats: []string{FormatSVG, FormatDOT}}
	first, err := runner.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first render should miss the cache")
	}

	second, err := runner.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want both stages cached", second.CacheInfo)
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from original")
	}
}

func TestGraphHashDeterministic(t *testing.T) {
	h1, err := GraphHash(buildGraph(t))
	if err != nil {
		t.Fatalf("GraphHash error: %v", err)
	}
	h2, err := GraphHash(buildGraph(t))
	if err != nil {
		t.Fatalf("GraphHash error: %v", err)
	}
	if h1 != h2 {
		t.Error("equal graphs should hash equally")
	}

	other := buildGraph(t)
	if err := other.Connect("a", "b"); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	h3, err := GraphHash(other)
	if err != nil {
		t.Fatalf("GraphHash error: %v", err)
	}
	if h1 == h3 {
		t.Error("different graphs should hash differently")
	}
}

// flakyCache fails the first Get and first Set with a retryable error,
// then delegates to an in-memory map.
type flakyCache struct {
	entries   map[string][]byte
	getFailed bool
	setFailed bool
}

func (c *flakyCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.getFailed {
		c.getFailed = true
		return nil, false, cache.Retryable(cache.ErrUnavailable)
	}
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *flakyCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if !c.setFailed {
		c.setFailed = true
		return cache.Retryable(cache.ErrUnavailable)
	}
	c.entries[key] = data
	return nil
}

func (c *flakyCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *flakyCache) Close() error { return nil }

func TestRunnerRetriesTransientCacheFailures(t *testing.T) {
	fc := &flakyCache{entries: make(map[string][]byte)}
	runner := NewRunner(fc, nil, nil)
	g := buildGraph(t)
	opts := Options{Formats: []string{FormatDOT}}

	res, err := runner.ComputeLayout(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	if !fc.getFailed || !fc.setFailed {
		t.Fatal("flaky cache was not exercised")
	}

	// The layout entry must have landed despite the transient Set
	// failure, so the next lookup is a hit.
	_, hit, err := runner.ComputeLayoutWithCacheInfo(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("ComputeLayoutWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second layout should hit the cache after retried Set")
	}
	if len(res.Positions) != g.NodeCount() {
		t.Errorf("Positions has %d entries, want %d", len(res.Positions), g.NodeCount())
	}
}

func TestCacheGetReportsMissWithoutRetry(t *testing.T) {
	dir := t.TempDir()
	fileCache, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)

	start := time.Now()
	_, err = runner.cacheGet(context.Background(), "layout:absent")
	if !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("cacheGet() error = %v, want ErrCacheMiss", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("a clean miss must not trigger backoff retries")
	}
}

func TestScopedKeyerNamespacesRunnerEntries(t *testing.T) {
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	g := buildGraph(t)
	opts := Options{Formats: []string{FormatDOT}}

	scoped := NewRunner(backend, cache.NewScopedKeyer(nil, "teamA:"), nil)
	if _, err := scoped.ComputeLayout(context.Background(), g, opts); err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}

	// Same backend, different namespace: no hit.
	other := NewRunner(backend, cache.NewScopedKeyer(nil, "teamB:"), nil)
	if _, hit, err := other.ComputeLayoutWithCacheInfo(context.Background(), g, opts); err != nil || hit {
		t.Errorf("foreign namespace lookup = (hit=%v, err=%v), want miss", hit, err)
	}

	// Same namespace: hit.
	again := NewRunner(backend, cache.NewScopedKeyer(nil, "teamA:"), nil)
	if _, hit, err := again.ComputeLayoutWithCacheInfo(context.Background(), g, opts); err != nil || !hit {
		t.Errorf("same namespace lookup = (hit=%v, err=%v), want hit", hit, err)
	}
}
