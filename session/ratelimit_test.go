package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenBucketAllowsBurstThenThrottles(t *testing.T) {
	b := newTokenBucket(2, 1)
	require.True(t, b.allow())
	require.True(t, b.allow())
	require.False(t, b.allow(), "bucket should be empty after consuming its burst capacity")
}

func TestTokenBucketRefills(t *testing.T) {
	b := newTokenBucket(1, 100)
	require.True(t, b.allow())
	require.False(t, b.allow())
	time.Sleep(20 * time.Millisecond)
	require.True(t, b.allow(), "bucket should have refilled at least one token")
}
