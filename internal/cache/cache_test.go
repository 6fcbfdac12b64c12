package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/promptdex/internal/scanner"
)

// countingSource returns one document per call, numbered by call count.
type countingSource struct {
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (c *countingSource) Documents(_ context.Context) ([]scanner.Document, error) {
	n := c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.err != nil {
		return nil, c.err
	}
	return []scanner.Document{{ID: "doc", WordCount: int(n)}}, nil
}

func TestSnapshot_ServesCachedScan(t *testing.T) {
	// Given: a snapshot with a long TTL
	src := &countingSource{}
	snap := New(src, "/root", time.Hour, nil)

	// When: reading twice
	first, err := snap.Documents(context.Background())
	require.NoError(t, err)
	second, err := snap.Documents(context.Background())
	require.NoError(t, err)

	// Then: the source was scanned once
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, first, second)
}

func TestSnapshot_CallersGetIndependentCopies(t *testing.T) {
	snap := New(&countingSource{}, "/root", time.Hour, nil)

	first, err := snap.Documents(context.Background())
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, err := snap.Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "doc", second[0].ID)
}

func TestSnapshot_Invalidate(t *testing.T) {
	src := &countingSource{}
	snap := New(src, "/root", time.Hour, nil)

	_, err := snap.Documents(context.Background())
	require.NoError(t, err)

	snap.Invalidate()
	docs, err := snap.Documents(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, 2, docs[0].WordCount)
}

func TestSnapshot_ExpiresAfterTTL(t *testing.T) {
	src := &countingSource{}
	snap := New(src, "/root", 20*time.Millisecond, nil)

	_, err := snap.Documents(context.Background())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := snap.Documents(context.Background())
		return err == nil && src.calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestSnapshot_ErrorsAreNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	snap := New(src, "/root", time.Hour, nil)

	_, err := snap.Documents(context.Background())
	require.Error(t, err)
	_, err = snap.Documents(context.Background())
	require.Error(t, err)

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestSnapshot_ConcurrentMissesShareOneScan(t *testing.T) {
	src := &countingSource{delay: 50 * time.Millisecond}
	snap := New(src, "/root", time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := snap.Documents(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, src.calls.Load(), int32(8))
}

// slowSource blocks for delay unless its context is cancelled first.
type slowSource struct {
	delay time.Duration
	calls atomic.Int32
}

func (s *slowSource) Documents(ctx context.Context) ([]scanner.Document, error) {
	s.calls.Add(1)
	select {
	case <-time.After(s.delay):
		return []scanner.Document{{ID: "doc"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestSnapshot_CancelledCallerDoesNotFailOthers(t *testing.T) {
	// Given: a slow scan started by a caller that gives up early
	src := &slowSource{delay: 200 * time.Millisecond}
	snap := New(src, "/root", time.Hour, nil)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := snap.Documents(leaderCtx)
		leaderErr <- err
	}()
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)

	// When: a second caller joins and the first one cancels
	type result struct {
		docs []scanner.Document
		err  error
	}
	follower := make(chan result, 1)
	go func() {
		docs, err := snap.Documents(context.Background())
		follower <- result{docs, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	// Then: only the cancelled caller fails
	assert.ErrorIs(t, <-leaderErr, context.Canceled)
	res := <-follower
	require.NoError(t, res.err)
	assert.Equal(t, "doc", res.docs[0].ID)

	// And: the finished scan was stored
	_, err := snap.Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
}

type tagSource struct{}

func (tagSource) Documents(context.Context) ([]scanner.Document, error) {
	return []scanner.Document{{ID: "doc", Tags: []string{"go", "testing"}}}, nil
}

func TestSnapshot_TagsAreNotShared(t *testing.T) {
	snap := New(tagSource{}, "/root", time.Hour, nil)

	first, err := snap.Documents(context.Background())
	require.NoError(t, err)
	first[0].Tags[0] = "mutated"

	second, err := snap.Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "testing"}, second[0].Tags)
}
