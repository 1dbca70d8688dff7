package boxes

import (
	"context"
	"errors"
	"testing"
)

func TestCachedMemoizesSuccess(t *testing.T) {
	calls := 0
	next := RendererFunc(func(ctx context.Context, req Request) (Response, error) {
		calls++
		return Response{BoxText: "+--+\n|" + req.Text + "|\n+--+"}, nil
	})
	c := NewCached(next, 10, "")
	req := Request{Design: "simple", Text: "hi", Size: Size{4, 3}}

	first, err := c.Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Measured == nil || *first.Measured != (Size{4, 3}) {
		t.Errorf("Measured = %+v, want 4x3", first.Measured)
	}
	if _, err := c.Render(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("renderer called %d times, want 1", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if got, want := c.Stats(), (CacheStats{Len: 1, Hits: 1, Misses: 1}); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestCachedSkipsFailures(t *testing.T) {
	calls := 0
	next := RendererFunc(func(ctx context.Context, req Request) (Response, error) {
		calls++
		return Response{}, errors.New("boom")
	})
	c := NewCached(next, 10, "v2")
	req := Request{Design: "simple", Text: "hi"}
	for range 2 {
		if _, err := c.Render(context.Background(), req); err == nil {
			t.Fatal("expected error")
		}
	}
	if calls != 2 || c.Len() != 0 {
		t.Errorf("calls = %d, Len = %d; failures must not be cached", calls, c.Len())
	}
	if st := c.Stats(); st.Failures != 2 || st.Hits != 0 {
		t.Errorf("Stats = %+v, want 2 failures and no hits", st)
	}
}

func TestCachedSkipsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	next := RendererFunc(func(ctx context.Context, req Request) (Response, error) {
		cancel()
		return Response{BoxText: "x"}, nil
	})
	c := NewCached(next, 10, "")
	if _, err := c.Render(ctx, Request{Design: "simple"}); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Error("result of a cancelled render was cached")
	}
}
