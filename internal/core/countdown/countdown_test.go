package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tempo/internal/core/model"
	"tempo/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingAlarm struct {
	fired atomic.Int64
}

func (alarm *countingAlarm) Fire() {
	alarm.fired.Add(1)
}

func newTestTimer(t *testing.T) (*Timer, *testutil.ManualClock, *countingAlarm) {
	t.Helper()
	clock := testutil.NewManualClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	timer := New(Config{TickInterval: time.Second, Ticker: clock.Factory()})
	alarm := &countingAlarm{}
	timer.SetAlarm(alarm)
	t.Cleanup(timer.Close)
	return timer, clock, alarm
}

func TestOneHourCompletesAfter3600Ticks(t *testing.T) {
	timer, clock, alarm := newTestTimer(t)
	timer.SetFields("01", "00", "00")
	require.True(t, timer.Start())

	require.Equal(t, 3599, clock.Fire(3599))
	require.Eventually(t, func() bool { return timer.Remaining() == time.Second }, time.Second, time.Millisecond)
	assert.Equal(t, StateRunning, timer.State())
	assert.Equal(t, int64(0), alarm.fired.Load())

	require.Equal(t, 1, clock.Fire(1))
	require.Eventually(t, func() bool { return timer.State() == StateCompleted }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return alarm.fired.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, time.Duration(0), timer.Remaining())

	// The slot is cancelled, so further ticks go nowhere.
	clock.Fire(3)
	assert.Equal(t, int64(1), alarm.fired.Load())
	assert.Equal(t, StateCompleted, timer.State())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	timer, clock, _ := newTestTimer(t)
	timer.SetInput(model.TimerInput{Seconds: 10})
	require.True(t, timer.Start())
	assert.False(t, timer.Start())
	assert.Equal(t, 1, clock.Created())
}

func TestStartWithZeroInputStaysIdle(t *testing.T) {
	timer, clock, _ := newTestTimer(t)
	timer.SetFields("abc", "", "-4")
	assert.False(t, timer.Start())
	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, 0, clock.Created())
}

func TestPauseKeepsRemainingAndIgnoresNewFields(t *testing.T) {
	timer, clock, _ := newTestTimer(t)
	timer.SetInput(model.TimerInput{Minutes: 1})
	require.True(t, timer.Start())
	clock.Fire(10)
	require.Eventually(t, func() bool { return timer.Remaining() == 50*time.Second }, time.Second, time.Millisecond)

	timer.Pause()
	assert.Equal(t, StatePaused, timer.State())

	timer.SetInput(model.TimerInput{Hours: 2})
	require.True(t, timer.Start())
	assert.Equal(t, 50*time.Second, timer.Remaining())
	assert.Equal(t, 2, clock.Created())
}

func TestResetReturnsToIdle(t *testing.T) {
	timer, clock, alarm := newTestTimer(t)
	timer.SetInput(model.TimerInput{Seconds: 2})
	require.True(t, timer.Start())
	clock.Fire(2)
	require.Eventually(t, func() bool { return timer.State() == StateCompleted }, time.Second, time.Millisecond)

	assert.False(t, timer.Start(), "completed timer must be reset before starting again")

	timer.Reset()
	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, model.TimerInput{}, timer.Input())
	assert.Equal(t, time.Duration(0), timer.Remaining())
	require.Eventually(t, func() bool { return alarm.fired.Load() == 1 }, time.Second, time.Millisecond)
}

func TestEventsAreEmitted(t *testing.T) {
	timer, clock, _ := newTestTimer(t)
	events := timer.Subscribe(16)
	timer.SetInput(model.TimerInput{Seconds: 2})
	require.True(t, timer.Start())
	clock.Fire(2)

	var seen []EventType
	for len(seen) < 4 {
		select {
		case event := <-events:
			seen = append(seen, event.Type)
		case <-time.After(time.Second):
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	assert.Equal(t, []EventType{EventStateChange, EventProgress, EventStateChange, EventCompleted}, seen)
}

func TestParseField(t *testing.T) {
	assert.Equal(t, 5, ParseField(" 5 "))
	assert.Equal(t, 0, ParseField("five"))
	assert.Equal(t, 0, ParseField("-1"))
	assert.Equal(t, 0, ParseField(""))
	assert.Equal(t, model.MaxField, ParseField("3000000"))
	assert.Equal(t, model.MaxField, ParseField("99999999999999999999999"))
}

func TestHugeFieldsStartClamped(t *testing.T) {
	timer, clock, _ := newTestTimer(t)
	timer.SetFields("3000000", "0", "0")
	require.True(t, timer.Start())
	assert.Equal(t, time.Duration(model.MaxField)*time.Hour, timer.Remaining())

	require.Equal(t, 1, clock.Fire(1))
	require.Eventually(t, func() bool {
		return timer.Remaining() == time.Duration(model.MaxField)*time.Hour-time.Second
	}, time.Second, time.Millisecond)
	assert.Equal(t, StateRunning, timer.State())
}
