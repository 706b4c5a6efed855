package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/bleconsole/internal/display"
)

func TestThresholdsLevel(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name string
		free uint32
		want Level
	}{
		{"well above floor", 115000, LevelNominal},
		{"exactly floor", 100000, LevelNominal},
		{"just under floor", 99999, LevelWarning},
		{"inside tolerance", 85000, LevelWarning},
		{"floor minus tolerance is survivable", 80000, LevelWarning},
		{"past tolerance", 79999, LevelCritical},
		{"far past tolerance", 70000, LevelCritical},
		{"unknown reading", 0, LevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Level(tt.free))
		})
	}
}

func TestThresholdsLevelNoOverflow(t *testing.T) {
	th := Thresholds{Floor: 10, Tolerance: ^uint32(0)}
	assert.Equal(t, LevelWarning, th.Level(1))
}

func TestThresholdsZone(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		sample uint32
		want   Zone
		bar    display.Color
		bg     display.Color
	}{
		{130000, ZoneNominal, display.Green, display.DarkGrey},
		{120001, ZoneNominal, display.Green, display.DarkGrey},
		{120000, ZoneWarning, display.Yellow, display.DarkGreen},
		{115000, ZoneWarning, display.Yellow, display.DarkGreen},
		{100001, ZoneWarning, display.Yellow, display.DarkGreen},
		{100000, ZoneCritical, display.Red, display.Orange},
		{85000, ZoneCritical, display.Red, display.Orange}, // the watchdog only warns here
		{1, ZoneCritical, display.Red, display.Orange},
		{0, ZoneEmpty, display.White, display.Black},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			z := th.Zone(tt.sample)
			assert.Equal(t, tt.want, z)
			bar, bg := z.Colors()
			assert.Equal(t, tt.bar, bar)
			assert.Equal(t, tt.bg, bg)
		})
	}
}

func TestLevelAndZoneStrings(t *testing.T) {
	assert.Equal(t, "nominal", LevelNominal.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "critical", LevelCritical.String())
	assert.Equal(t, "unknown", Level(9).String())
	assert.Equal(t, "empty", ZoneEmpty.String())
	assert.Equal(t, "unknown", Zone(9).String())
}
