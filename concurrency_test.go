package larch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentSingletonRace spawns many resolutions of one unconstructed
// singleton and verifies exactly one construction with every caller observing
// the same instance.
func TestConcurrentSingletonRace(t *testing.T) {
	const goroutines = 64

	var calls atomic.Int32
	c := New()
	mustSingleton(t, c, func() *testLogger {
		calls.Add(1)
		time.Sleep(time.Millisecond) // widen the race window
		return &testLogger{Prefix: "shared"}
	})

	var (
		wg      sync.WaitGroup
		results [goroutines]*testLogger
	)
	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := Resolve[*testLogger](c)
			assert.NoError(t, err)
			results[i] = l
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, l := range results {
		assert.Same(t, results[0], l)
	}
}

// TestConcurrentTransient verifies transient resolutions construct freely and
// independently: every caller gets its own instance.
func TestConcurrentTransient(t *testing.T) {
	const goroutines = 32

	c := New()
	mustTransient(t, c, newTestLogger)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		distinct = make(map[*testLogger]struct{})
	)
	for j := 0; j < goroutines; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := Resolve[*testLogger](c)
			assert.NoError(t, err)
			mu.Lock()
			distinct[l] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, distinct, goroutines)
}

// TestConcurrentGraphResolution resolves a mixed singleton/transient graph
// from many goroutines at once. Run with -race.
func TestConcurrentGraphResolution(t *testing.T) {
	const goroutines = 32

	c := New()
	mustSingleton(t, c, newTestLogger)
	mustSingleton(t, c, newTestConfig)
	mustSingleton(t, c, newTestDatabase)
	mustTransient(t, c, newTestRepo)
	mustTransient(t, c, newTestService)

	logger, err := Resolve[*testLogger](c)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for j := 0; j < goroutines; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc, err := Resolve[*testService](c)
			if !assert.NoError(t, err) {
				return
			}
			assert.Same(t, logger, svc.Logger)
		}()
	}
	wg.Wait()
}

// TestIndependentSingletonsDoNotContend checks that one slow singleton does
// not block construction of an unrelated one.
func TestIndependentSingletonsDoNotContend(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})

	c := New()
	mustSingleton(t, c, func() *testConfig {
		close(slowStarted)
		<-slowRelease
		return &testConfig{}
	})
	mustSingleton(t, c, newTestLogger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Resolve[*testConfig](c)
		assert.NoError(t, err)
	}()

	<-slowStarted

	// The unrelated singleton must construct while the slow one is held up.
	l, err := Resolve[*testLogger](c)
	require.NoError(t, err)
	assert.NotNil(t, l)

	close(slowRelease)
	<-done
}
