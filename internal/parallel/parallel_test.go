// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	got, err := Map(context.Background(), 8, items, func(_ context.Context, n int) (int, error) {
		// Later items finish first.
		time.Sleep(time.Duration(100-n) * 10 * time.Microsecond)
		return n * n, nil
	})
	require.NoError(t, err)
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestMapBoundsWorkers(t *testing.T) {
	var running, peak atomic.Int32
	items := make([]int, 50)

	_, err := Map(context.Background(), 3, items, func(_ context.Context, _ int) (struct{}, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return struct{}{}, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestMapError(t *testing.T) {
	boom := errors.New("boom")
	got, err := Map(context.Background(), 2, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}

func TestMapEmpty(t *testing.T) {
	got, err := Map(context.Background(), 0, []string{}, func(_ context.Context, s string) (string, error) {
		return s, nil
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEach(t *testing.T) {
	got := Each(context.Background(), 0, []string{"a", "b", "c"}, func(_ context.Context, s string) string {
		return s + s
	})
	assert.Equal(t, []string{"aa", "bb", "cc"}, got)
}

func TestDefaultWorkers(t *testing.T) {
	assert.Positive(t, DefaultWorkers())
}
