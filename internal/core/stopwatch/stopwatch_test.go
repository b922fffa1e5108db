package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tempo/internal/core/clock"
	"tempo/internal/core/model"
	"tempo/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStopwatch(t *testing.T) (*Stopwatch, *testutil.ManualClock) {
	t.Helper()
	manual := testutil.NewManualClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	watch := New(Config{Ticker: manual.Factory()})
	t.Cleanup(watch.Close)
	return watch, manual
}

func waitElapsed(t *testing.T, watch *Stopwatch, want int64) {
	t.Helper()
	require.Eventually(t, func() bool { return watch.Elapsed() == want }, time.Second, time.Millisecond)
}

func TestLapAfter250Ticks(t *testing.T) {
	watch, manual := newTestStopwatch(t)
	require.True(t, watch.Start())
	require.Equal(t, 250, manual.Fire(250))
	waitElapsed(t, watch, 250)

	lap, ok := watch.Lap()
	require.True(t, ok)
	assert.Equal(t, "00:02.50", clock.Centis(lap.Elapsed))
	assert.Equal(t, 1, lap.Number)

	watch.Reset()
	assert.Equal(t, int64(0), watch.Elapsed())
	assert.Empty(t, watch.Laps())
	assert.Equal(t, StateIdle, watch.State())
}

func TestLapsAreMostRecentFirst(t *testing.T) {
	watch, manual := newTestStopwatch(t)
	require.True(t, watch.Start())

	manual.Fire(100)
	waitElapsed(t, watch, 100)
	_, ok := watch.Lap()
	require.True(t, ok)

	manual.Fire(50)
	waitElapsed(t, watch, 150)
	_, ok = watch.Lap()
	require.True(t, ok)

	assert.Equal(t, []model.Lap{
		{Number: 2, Elapsed: 150},
		{Number: 1, Elapsed: 100},
	}, watch.Laps())
}

func TestLapRequiresRunning(t *testing.T) {
	watch, manual := newTestStopwatch(t)
	_, ok := watch.Lap()
	assert.False(t, ok)

	require.True(t, watch.Start())
	manual.Fire(5)
	waitElapsed(t, watch, 5)
	watch.Pause()

	_, ok = watch.Lap()
	assert.False(t, ok)
	assert.Equal(t, StatePaused, watch.State())
	assert.Empty(t, watch.Laps())
}

func TestPauseResumeKeepsElapsed(t *testing.T) {
	watch, manual := newTestStopwatch(t)
	require.True(t, watch.Start())
	assert.False(t, watch.Start())
	manual.Fire(30)
	waitElapsed(t, watch, 30)

	watch.Pause()
	require.True(t, watch.Start())
	manual.Fire(20)
	waitElapsed(t, watch, 50)
	assert.Equal(t, 2, manual.Created())
}
