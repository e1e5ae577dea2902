package routeset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/sternensim/StarNavigation/internal/catalog"
	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/navigation"
	"github.com/sternensim/StarNavigation/internal/routecache"
	"github.com/sternensim/StarNavigation/internal/sky"
)

var (
	testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	obsTime    = time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC)
	berlin     = geo.Position{Latitude: 52.5200, Longitude: 13.4050}
	munich     = geo.Position{Latitude: 48.1351, Longitude: 11.5820}
)

func berlinMunich(maxRoutes int) Request {
	return Request{Start: berlin, Target: munich, Time: obsTime, MaxRoutes: maxRoutes}
}

func starBuilder(opts Options) *Builder {
	filter := sky.NewFilter(catalog.Static(catalog.BrightStars()), sky.Config{}, testLogger)
	return NewBuilder(navigation.NewPlanner(filter, testLogger), opts, testLogger)
}

// fakePlanner answers with fn and records every request it sees.
type fakePlanner struct {
	mu   sync.Mutex
	reqs []navigation.Request
	fn   func(navigation.Request) (*navigation.Route, error)
}

func (f *fakePlanner) Plan(_ context.Context, req navigation.Request) (*navigation.Route, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	return f.fn(req)
}

func (f *fakePlanner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

// distinctRoute encodes the variant parameters in the reference name so
// every strategy yields a different waypoint sequence.
func distinctRoute(req navigation.Request) (*navigation.Route, error) {
	name := fmt.Sprintf("%s/%v/%v/%s", req.Policy, req.PrioritizeMajor, req.StepKm, strings.Join(req.Excluded, "+"))
	return &navigation.Route{
		Waypoints: []navigation.Waypoint{{
			Position:  req.Target,
			Reference: &navigation.Reference{Name: name},
			Reason:    navigation.TargetReached,
			Timestamp: req.Time,
		}},
		UsedObjects: []string{name, "second"},
	}, nil
}

func strategies(set *Set) []string {
	out := make([]string, len(set.Routes))
	for i, r := range set.Routes {
		out[i] = r.Strategy
	}
	return out
}

func TestBuildBerlinToMunichThreeRoutes(t *testing.T) {
	set, err := starBuilder(Options{}).Build(context.Background(), berlinMunich(3))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(set.Routes) != 3 {
		t.Fatalf("got %d routes, want 3", len(set.Routes))
	}

	want := []struct {
		strategy string
		refs     []string
	}{
		{StrategyBaseline, []string{"Antares", "Regulus", "Spica", "Kaus Australis"}},
		{StrategyAlternatePolicy, []string{"Antares", "Alkaid", "Spica", "Vega"}},
		{StrategyExcludeFirst, []string{"Kaus Australis", "Arcturus", "Dubhe"}},
	}
	for i, w := range want {
		r := set.Routes[i]
		if r.Strategy != w.strategy {
			t.Errorf("route %d strategy = %q, want %q", i, r.Strategy, w.strategy)
		}
		if r.Label != fmt.Sprintf("Route %d", i+1) {
			t.Errorf("route %d label = %q", i, r.Label)
		}
		if strings.Join(r.UsedObjects, ",") != strings.Join(w.refs, ",") {
			t.Errorf("route %d used = %v, want %v", i, r.UsedObjects, w.refs)
		}
		last := r.Waypoints[len(r.Waypoints)-1]
		if last.Reason != navigation.TargetReached {
			t.Errorf("route %d ends with %q, want target_reached", i, last.Reason)
		}
		if r.TotalDistance < r.DirectDistance {
			t.Errorf("route %d total %.3f < direct %.3f", i, r.TotalDistance, r.DirectDistance)
		}
	}

	if !set.ObservationTime.Equal(obsTime) {
		t.Errorf("ObservationTime = %v, want %v", set.ObservationTime, obsTime)
	}
}

func TestBuildDropsDuplicateVariants(t *testing.T) {
	set, err := starBuilder(Options{}).Build(context.Background(), berlinMunich(5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(set.Routes) > 5 || len(set.Routes) < 3 {
		t.Fatalf("got %d routes, want 3..5", len(set.Routes))
	}

	seen := make(map[string]string)
	for _, r := range set.Routes {
		// Excluding Regulus as well reproduces the exclude-first route.
		if r.Strategy == StrategyExcludeFirstTwo {
			t.Errorf("duplicate %s variant kept", r.Strategy)
		}
		sig := signature(&r.Route)
		if prev, ok := seen[sig]; ok {
			t.Errorf("%s duplicates %s", r.Strategy, prev)
		}
		seen[sig] = r.Strategy
	}
}

func TestBuildSingleRoute(t *testing.T) {
	fp := &fakePlanner{fn: distinctRoute}
	set, err := NewBuilder(fp, Options{}, testLogger).Build(context.Background(), berlinMunich(0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(set.Routes) != 1 || set.Routes[0].Strategy != StrategyBaseline {
		t.Fatalf("routes = %v, want baseline only", strategies(set))
	}
	if fp.calls() != 1 {
		t.Errorf("planner calls = %d, want 1", fp.calls())
	}
}

func TestBuildVariantRequests(t *testing.T) {
	fp := &fakePlanner{fn: distinctRoute}
	req := berlinMunich(5)
	req.StepKm = 8

	set, err := NewBuilder(fp, Options{}, testLogger).Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{StrategyBaseline, StrategyAlternatePolicy, StrategyExcludeFirst, StrategyExcludeFirstTwo, StrategyFlipMajor}
	if got := strategies(set); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("strategies = %v, want %v", got, want)
	}

	byStrategy := make(map[string]navigation.Request)
	baseName := set.Routes[0].UsedObjects[0]
	for _, r := range fp.reqs {
		switch {
		case r.Policy == navigation.AltitudeWeighted:
			byStrategy[StrategyAlternatePolicy] = r
		case r.PrioritizeMajor:
			byStrategy[StrategyFlipMajor] = r
		case len(r.Excluded) == 1:
			byStrategy[StrategyExcludeFirst] = r
		case len(r.Excluded) == 2:
			byStrategy[StrategyExcludeFirstTwo] = r
		}
	}
	if r := byStrategy[StrategyExcludeFirst]; r.Excluded[0] != baseName {
		t.Errorf("exclude-first excluded %v, want [%s]", r.Excluded, baseName)
	}
	if r := byStrategy[StrategyExcludeFirstTwo]; r.Excluded[1] != "second" {
		t.Errorf("exclude-first-two excluded %v", r.Excluded)
	}
	if r := byStrategy[StrategyFlipMajor]; r.StepKm != 12 {
		t.Errorf("flip-major step = %v, want 12", r.StepKm)
	}
	for _, r := range fp.reqs {
		if !r.Time.Equal(obsTime) {
			t.Errorf("variant time = %v, want %v", r.Time, obsTime)
		}
	}
}

func TestBuildAlternatePolicyFromAltitudeWeighted(t *testing.T) {
	fp := &fakePlanner{fn: distinctRoute}
	req := berlinMunich(2)
	req.Policy = navigation.AltitudeWeighted

	if _, err := NewBuilder(fp, Options{}, testLogger).Build(context.Background(), req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	var policies []navigation.Policy
	for _, r := range fp.reqs {
		policies = append(policies, r.Policy)
	}
	if len(policies) != 2 || policies[0] != navigation.AltitudeWeighted || policies[1] != navigation.ClosestBearing {
		t.Errorf("policies = %v, want [altitude-weighted closest-bearing]", policies)
	}
}

func TestBuildDeduplicates(t *testing.T) {
	same := &navigation.Route{
		Waypoints:   []navigation.Waypoint{{Position: munich, Reference: &navigation.Reference{Name: "Vega"}, Reason: navigation.TargetReached}},
		UsedObjects: []string{"Vega"},
	}
	fp := &fakePlanner{fn: func(navigation.Request) (*navigation.Route, error) { return same, nil }}

	set, err := NewBuilder(fp, Options{}, testLogger).Build(context.Background(), berlinMunich(3))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(set.Routes) != 1 {
		t.Errorf("got %d routes, want 1 after dedupe", len(set.Routes))
	}
	if fp.calls() != 3 {
		t.Errorf("planner calls = %d, want 3", fp.calls())
	}
}

func TestBuildBaselineFailure(t *testing.T) {
	fp := &fakePlanner{fn: func(req navigation.Request) (*navigation.Route, error) {
		if req.Policy == navigation.ClosestBearing && !req.PrioritizeMajor {
			return nil, navigation.ErrNoVisibleObjects
		}
		return distinctRoute(req)
	}}

	set, err := NewBuilder(fp, Options{}, testLogger).Build(context.Background(), berlinMunich(5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{StrategyAlternatePolicy, StrategyFlipMajor}
	if got := strategies(set); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("strategies = %v, want %v", got, want)
	}
	if set.Routes[0].Label != "Route 1" || set.Routes[1].Label != "Route 2" {
		t.Errorf("labels = %q, %q", set.Routes[0].Label, set.Routes[1].Label)
	}
}

func TestBuildAllFail(t *testing.T) {
	fp := &fakePlanner{fn: func(req navigation.Request) (*navigation.Route, error) {
		if req.Policy == navigation.ClosestBearing && !req.PrioritizeMajor {
			return nil, navigation.ErrMaxIterationsExceeded
		}
		return nil, navigation.ErrExhaustedReferences
	}}

	_, err := NewBuilder(fp, Options{}, testLogger).Build(context.Background(), berlinMunich(3))
	if !errors.Is(err, navigation.ErrMaxIterationsExceeded) {
		t.Errorf("err = %v, want the baseline's ErrMaxIterationsExceeded", err)
	}
}

func TestBuildInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"too many routes", berlinMunich(6)},
		{"negative routes", berlinMunich(-1)},
		{"bad start", Request{Start: geo.Position{Latitude: 91}, Target: munich, Time: obsTime}},
		{"bad step", Request{Start: berlin, Target: munich, Time: obsTime, StepKm: -1}},
		{"bad policy", Request{Start: berlin, Target: munich, Time: obsTime, Policy: "random"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePlanner{fn: distinctRoute}
			_, err := NewBuilder(fp, Options{}, testLogger).Build(context.Background(), tt.req)
			if !errors.Is(err, navigation.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
			if fp.calls() != 0 {
				t.Errorf("planner called %d times for invalid input", fp.calls())
			}
		})
	}
}

func TestBuildZeroTimeUsesNow(t *testing.T) {
	now := time.Date(2025, 1, 1, 3, 0, 0, 0, time.FixedZone("CET", 3600))
	fp := &fakePlanner{fn: distinctRoute}
	b := NewBuilder(fp, Options{Now: func() time.Time { return now }}, testLogger)

	set, err := b.Build(context.Background(), Request{Start: berlin, Target: munich, MaxRoutes: 3})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !set.ObservationTime.Equal(now) || set.ObservationTime.Location() != time.UTC {
		t.Errorf("ObservationTime = %v, want %v in UTC", set.ObservationTime, now)
	}
	for _, r := range fp.reqs {
		if !r.Time.Equal(now) {
			t.Errorf("variant time = %v, want %v", r.Time, now)
		}
	}
}

func TestRouteIDs(t *testing.T) {
	build := func() *Set {
		fp := &fakePlanner{fn: distinctRoute}
		set, err := NewBuilder(fp, Options{CatalogID: "builtin"}, testLogger).Build(context.Background(), berlinMunich(3))
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return set
	}
	a, b := build(), build()

	ids := make(map[string]bool)
	for i := range a.Routes {
		if a.Routes[i].ID != b.Routes[i].ID {
			t.Errorf("route %d id not stable: %s vs %s", i, a.Routes[i].ID, b.Routes[i].ID)
		}
		id, err := uuid.Parse(a.Routes[i].ID)
		if err != nil {
			t.Fatalf("route %d id %q: %v", i, a.Routes[i].ID, err)
		}
		if id.Version() != 5 {
			t.Errorf("id version = %d, want 5", id.Version())
		}
		if ids[a.Routes[i].ID] {
			t.Errorf("duplicate id %s", a.Routes[i].ID)
		}
		ids[a.Routes[i].ID] = true
	}
}

func TestBuildUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := routecache.NewMemory(time.Minute, 8, testLogger)
	fp := &fakePlanner{fn: distinctRoute}
	b := NewBuilder(fp, Options{Cache: cache, CatalogID: "builtin"}, testLogger)

	first, err := b.Build(ctx, berlinMunich(2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	calls := fp.calls()

	second, err := b.Build(ctx, berlinMunich(2))
	if err != nil {
		t.Fatalf("cached Build: %v", err)
	}
	if fp.calls() != calls {
		t.Errorf("planner called on cache hit: %d -> %d", calls, fp.calls())
	}
	if len(second.Routes) != len(first.Routes) || second.Routes[0].ID != first.Routes[0].ID {
		t.Errorf("cached set differs: %+v vs %+v", second.Routes, first.Routes)
	}
	if s := cache.Stats(); s.Hits != 1 || s.Entries != 1 {
		t.Errorf("cache stats = %+v, want 1 hit, 1 entry", s)
	}

	if _, err := b.Build(ctx, berlinMunich(3)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fp.calls() == calls {
		t.Error("different max routes served from cache")
	}
}

type brokenCache struct{ sets int }

func (c *brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return []byte("{not json"), true, nil
}

func (c *brokenCache) Set(context.Context, string, []byte) error {
	c.sets++
	return errors.New("read-only")
}

func TestBuildIgnoresBadCache(t *testing.T) {
	cache := &brokenCache{}
	fp := &fakePlanner{fn: distinctRoute}
	set, err := NewBuilder(fp, Options{Cache: cache}, testLogger).Build(context.Background(), berlinMunich(1))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(set.Routes) != 1 || fp.calls() != 1 {
		t.Errorf("routes = %d, calls = %d, want 1 and 1", len(set.Routes), fp.calls())
	}
	if cache.sets != 1 {
		t.Errorf("cache Set calls = %d, want 1", cache.sets)
	}
}

func TestBuildSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	fp := &fakePlanner{fn: distinctRoute}

	if _, err := NewBuilder(fp, Options{TracerProvider: tp}, testLogger).Build(context.Background(), berlinMunich(3)); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var root sdktrace.ReadOnlySpan
	var variants []sdktrace.ReadOnlySpan
	for _, s := range sr.Ended() {
		switch s.Name() {
		case "routeset.Build":
			root = s
		case "routeset.variant":
			variants = append(variants, s)
		}
	}
	if root == nil {
		t.Fatal("no routeset.Build span recorded")
	}
	if len(variants) != 3 {
		t.Fatalf("got %d variant spans, want 3", len(variants))
	}
	for _, v := range variants {
		if v.Parent().SpanID() != root.SpanContext().SpanID() {
			t.Errorf("variant span %v not a child of routeset.Build", v.Attributes())
		}
	}
}

func TestCacheKey(t *testing.T) {
	base := berlinMunich(3)
	k1, err := CacheKey(base, "builtin")
	if err != nil {
		t.Fatalf("CacheKey: %v", err)
	}
	if len(k1) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(k1))
	}

	k2, _ := CacheKey(base, "builtin")
	if k1 != k2 {
		t.Error("CacheKey not deterministic")
	}

	later := base
	later.Time = obsTime.Add(time.Minute)
	variants := map[string]struct {
		req     Request
		catalog string
	}{
		"catalog":  {base, "custom.csv"},
		"time":     {later, "builtin"},
		"planets":  {Request{Start: berlin, Target: munich, Time: obsTime, MaxRoutes: 3, PlanetsOnly: true}, "builtin"},
		"swap":     {Request{Start: munich, Target: berlin, Time: obsTime, MaxRoutes: 3}, "builtin"},
		"maxroute": {berlinMunich(2), "builtin"},
	}
	for name, v := range variants {
		k, _ := CacheKey(v.req, v.catalog)
		if k == k1 {
			t.Errorf("%s change did not change the key", name)
		}
	}
}
