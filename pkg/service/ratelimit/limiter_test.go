package ratelimit_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/remedian-lab/remedian/pkg/service/ratelimit"
)

func TestLimiterEnforcesHourlyBudget(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	limiter := ratelimit.New(3, ratelimit.WithClock(func() time.Time { return now }))

	for i := 0; i < 3; i++ {
		gt.Bool(t, limiter.IsLimited("user-1")).False()
		limiter.RecordAttempt("user-1")
	}

	gt.Bool(t, limiter.IsLimited("user-1")).True()

	status := limiter.Status("user-1")
	gt.Value(t, status.Limit).Equal(3)
	gt.Value(t, status.Remaining).Equal(0)
	gt.Bool(t, status.Limited).True()
}

func TestLimiterBucketsAreIndependentPerUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	limiter := ratelimit.New(1, ratelimit.WithClock(func() time.Time { return now }))

	limiter.RecordAttempt("user-1")
	gt.Bool(t, limiter.IsLimited("user-1")).True()
	gt.Bool(t, limiter.IsLimited("user-2")).False()
}

func TestLimiterWindowRollover(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 59, 0, 0, time.UTC)
	limiter := ratelimit.New(1, ratelimit.WithClock(func() time.Time { return now }))

	limiter.RecordAttempt("user-1")
	gt.Bool(t, limiter.IsLimited("user-1")).True()

	// a fixed bucket resets at the top of the hour, not a sliding window
	now = time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	gt.Bool(t, limiter.IsLimited("user-1")).False()

	status := limiter.Status("user-1")
	gt.Value(t, status.Remaining).Equal(1)
}

func TestLimiterDisabled(t *testing.T) {
	limiter := ratelimit.New(1, ratelimit.WithDisabled())

	limiter.RecordAttempt("user-1")
	limiter.RecordAttempt("user-1")
	gt.Bool(t, limiter.IsLimited("user-1")).False()

	status := limiter.Status("user-1")
	gt.Value(t, status.Remaining).Equal(1)
	gt.Bool(t, status.Limited).False()
}

func TestLimiterEmptyUserIsAlwaysLimited(t *testing.T) {
	limiter := ratelimit.New(10)

	gt.Bool(t, limiter.IsLimited("")).True()

	status := limiter.Status("")
	gt.Value(t, status.Remaining).Equal(0)
	gt.Bool(t, status.Limited).True()
}

func TestLimiterConcurrentRecording(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	limiter := ratelimit.New(100, ratelimit.WithClock(func() time.Time { return now }))

	const users = 8
	const attemptsPerUser = 50

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		userID := fmt.Sprintf("user-%d", u)
		for i := 0; i < attemptsPerUser; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				limiter.RecordAttempt(userID)
			}()
		}
	}
	wg.Wait()

	for u := 0; u < users; u++ {
		status := limiter.Status(fmt.Sprintf("user-%d", u))
		gt.Value(t, status.Remaining).Equal(50)
	}
}
