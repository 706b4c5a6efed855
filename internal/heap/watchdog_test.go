package heap

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/bleconsole/internal/errors"
	"github.com/rileyhilliard/bleconsole/internal/logger"
)

type fakeRestarter struct {
	reasons []string
	err     error
}

func (f *fakeRestarter) Restart(reason string) error {
	f.reasons = append(f.reasons, reason)
	return f.err
}

func newTestWatchdog(src Source, r Restarter) (*Watchdog, *logger.BufferLogger, *[]string) {
	log := logger.NewBufferLogger()
	var notes []string
	w := NewWatchdog(src, DefaultThresholds(), r,
		WithGrace(0),
		WithLogger(log),
		WithNotifier(func(s string) { notes = append(notes, s) }),
	)
	return w, log, &notes
}

func TestWatchdogTick(t *testing.T) {
	tests := []struct {
		name    string
		free    uint32
		level   Level
		restart bool
	}{
		{"nominal", 115000, LevelNominal, false},
		{"warning", 85000, LevelWarning, false},
		{"boundary is survivable", 80000, LevelWarning, false},
		{"critical", 70000, LevelCritical, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRestarter{}
			w, log, notes := newTestWatchdog(SourceFunc(func() uint32 { return tt.free }), r)

			level, err := w.Tick()
			assert.Equal(t, tt.level, level)
			if !tt.restart {
				assert.NoError(t, err)
				assert.Empty(t, r.reasons)
				assert.Empty(t, *notes)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrHeap))
			assert.Len(t, r.reasons, 1)
			assert.Equal(t, []string{"Out of heap..!"}, *notes)
			assert.True(t, log.HasLevel("error"))
		})
	}
}

func TestWatchdogLogsTransitionsOnly(t *testing.T) {
	w, log, _ := newTestWatchdog(sequence(115000, 90000, 90000, 90000, 110000), &fakeRestarter{})

	for i := 0; i < 5; i++ {
		_, err := w.Tick()
		require.NoError(t, err)
	}

	msgs := log.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "warn", msgs[0].Level)
	assert.Equal(t, "info", msgs[1].Level)
}

func TestWatchdogRestartFailure(t *testing.T) {
	boom := stderrors.New("exec format error")
	w, _, _ := newTestWatchdog(SourceFunc(func() uint32 { return 1 }), &fakeRestarter{err: boom})

	level, err := w.Tick()
	assert.Equal(t, LevelCritical, level)
	assert.ErrorIs(t, err, boom)
	assert.True(t, errors.IsCode(err, errors.ErrHeap))
}

func TestRestarterFunc(t *testing.T) {
	var got string
	r := RestarterFunc(func(reason string) error {
		got = reason
		return nil
	})
	require.NoError(t, r.Restart("low"))
	assert.Equal(t, "low", got)
}

func TestWatchdogLastFree(t *testing.T) {
	w, _, _ := newTestWatchdog(sequence(130000, 125000), &fakeRestarter{})
	assert.Equal(t, uint32(0), w.LastFree())

	_, _ = w.Tick()
	assert.Equal(t, uint32(130000), w.LastFree())
	_, _ = w.Tick()
	assert.Equal(t, uint32(125000), w.LastFree())
}

func TestWatchdogGraceUsesInjectedSleep(t *testing.T) {
	var events []string
	var slept []time.Duration
	r := RestarterFunc(func(string) error {
		events = append(events, "restart")
		return nil
	})
	w := NewWatchdog(SourceFunc(func() uint32 { return 1000 }), DefaultThresholds(), r,
		WithGrace(time.Second),
		WithLogger(logger.NewBufferLogger()),
		WithSleep(func(d time.Duration) {
			slept = append(slept, d)
			events = append(events, "sleep")
		}),
	)

	level, err := w.Tick()
	require.Error(t, err)
	assert.Equal(t, LevelCritical, level)
	assert.Equal(t, []time.Duration{time.Second}, slept)
	assert.Equal(t, []string{"sleep", "restart"}, events, "grace runs before the restart")
}
