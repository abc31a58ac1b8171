package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"docsearch/internal/domain"
)

func testKey(query string, version uint64) Key {
	return Key{Query: query, Category: domain.CategoryInvoices, Version: version}
}

func oneResult(doc string) []domain.Result {
	return []domain.Result{{DocumentID: doc, Score: 1}}
}

func TestGetOrCompute(t *testing.T) {
	c := NewResponseCache(10)
	key := testKey("total due", 1)

	calls := 0
	compute := func() ([]domain.Result, error) {
		calls++
		return oneResult("invoices/invoice_1.txt"), nil
	}

	results, hit, err := c.GetOrCompute(key, compute)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("expected miss on first call")
	}
	if len(results) != 1 || results[0].DocumentID != "invoices/invoice_1.txt" {
		t.Errorf("unexpected results: %v", results)
	}

	results, hit, err = c.GetOrCompute(key, compute)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("expected hit on second call")
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
	if len(results) != 1 {
		t.Errorf("unexpected results on hit: %v", results)
	}
}

func TestGetOrComputeError(t *testing.T) {
	c := NewResponseCache(10)
	key := testKey("boom", 1)
	wantErr := errors.New("compute failed")

	_, _, err := c.GetOrCompute(key, func() ([]domain.Result, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error, got %v", err)
	}

	// Errors are not cached.
	_, hit, err := c.GetOrCompute(key, func() ([]domain.Result, error) {
		return oneResult("a.txt"), nil
	})
	if err != nil || hit {
		t.Errorf("expected fresh successful compute, hit=%v err=%v", hit, err)
	}
}

func TestSingleflightConcurrentMisses(t *testing.T) {
	c := NewResponseCache(10)
	key := testKey("total due acme", 1)

	var computes atomic.Int32
	release := make(chan struct{})

	compute := func() ([]domain.Result, error) {
		computes.Add(1)
		<-release
		return oneResult("invoices/invoice_1.txt"), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([][]domain.Result, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = c.GetOrCompute(key, compute)
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := computes.Load(); n != 1 {
		t.Errorf("compute ran %d times, want 1", n)
	}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if len(results[i]) != 1 || results[i][0].DocumentID != "invoices/invoice_1.txt" {
			t.Errorf("worker %d got %v", i, results[i])
		}
	}
}

func TestVersionSeparatesEntries(t *testing.T) {
	c := NewResponseCache(10)

	old, _, err := c.GetOrCompute(testKey("refund", 1), func() ([]domain.Result, error) {
		return oneResult("old.txt"), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	fresh, hit, err := c.GetOrCompute(testKey("refund", 2), func() ([]domain.Result, error) {
		return oneResult("new.txt"), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("expected miss for new corpus version")
	}
	if old[0].DocumentID == fresh[0].DocumentID {
		t.Error("new version observed pre-reload cached results")
	}
}

func TestPurge(t *testing.T) {
	c := NewResponseCache(10)
	if _, _, err := c.GetOrCompute(testKey("q", 1), func() ([]domain.Result, error) {
		return oneResult("a.txt"), nil
	}); err != nil {
		t.Fatal(err)
	}
	if c.Size() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Size())
	}
	c.Purge()
	if c.Size() != 0 {
		t.Errorf("expected empty cache after purge, got %d", c.Size())
	}
}

func TestEviction(t *testing.T) {
	c := NewResponseCache(2)
	for i := 0; i < 3; i++ {
		query := fmt.Sprintf("query-%d", i)
		if _, _, err := c.GetOrCompute(testKey(query, 1), func() ([]domain.Result, error) {
			return oneResult("a.txt"), nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	if c.Size() != 2 {
		t.Errorf("expected cache bounded at 2 entries, got %d", c.Size())
	}

	// Oldest entry was evicted, so it recomputes.
	_, hit, err := c.GetOrCompute(testKey("query-0", 1), func() ([]domain.Result, error) {
		return oneResult("a.txt"), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("expected evicted entry to miss")
	}
}

func TestAnswerMemoization(t *testing.T) {
	c := NewResponseCache(10)
	key := testKey("total", 1)

	if _, ok := c.Answer(key); ok {
		t.Error("expected no answer before store")
	}

	if _, _, err := c.GetOrCompute(key, func() ([]domain.Result, error) {
		return oneResult("a.txt"), nil
	}); err != nil {
		t.Fatal(err)
	}

	c.StoreAnswer(key, "the total is $450")
	answer, ok := c.Answer(key)
	if !ok || answer != "the total is $450" {
		t.Errorf("Answer = %q, %v", answer, ok)
	}
}
