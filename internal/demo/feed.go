// Package demo produces synthetic scan results so the console can run without
// a radio.
package demo

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/rileyhilliard/bleconsole/internal/card"
	"github.com/rileyhilliard/bleconsole/internal/display"
)

var vendors = []string{
	card.VendorApple,
	card.VendorApple,
	card.VendorMicrosoft,
	card.VendorIBM,
	"Samsung Electronics Co. Ltd.",
	"Google",
	"Fitbit, Inc.",
	"Nordic Semiconductor ASA",
	"",
}

var ouis = []string{
	"Apple, Inc.",
	"Espressif Inc.",
	"Texas Instruments",
	"Xiaomi Communications",
	"",
	"",
}

var names = []string{
	"Pixel Watch",
	"iPhone",
	"Surface Pen",
	"Mi Band 3",
	"JBL Flip 4",
	"",
	"",
	"",
}

var appearances = []string{
	"Watch",
	"Phone",
	"Heart rate Sensor",
	"Generic Tag",
	"",
	"",
	"",
}

// knownPool bounds how many addresses are remembered for repeat sightings.
const knownPool = 32

// Feed generates devices. About a third of the devices it returns were
// already seen, so both the known and new icons show up.
type Feed struct {
	rng  *rand.Rand
	seen []string
}

// NewFeed creates a feed. The same seed produces the same devices.
func NewFeed(seed uint64) *Feed {
	return &Feed{rng: rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))}
}

// Next returns one device.
func (f *Feed) Next() *card.Entity {
	e := &card.Entity{
		RSSI:        strconv.Itoa(-30 - f.rng.IntN(66)),
		OUI:         pick(f.rng, ouis),
		Appearance:  pick(f.rng, appearances),
		Name:        pick(f.rng, names),
		Vendor:      pick(f.rng, vendors),
		HasServices: f.rng.IntN(2) == 0,
	}

	if len(f.seen) > 0 && f.rng.IntN(3) == 0 {
		e.Address = f.seen[f.rng.IntN(len(f.seen))]
		e.Known = true
	} else {
		e.Address = f.mac()
		if len(f.seen) < knownPool {
			f.seen = append(f.seen, e.Address)
		} else {
			f.seen[f.rng.IntN(knownPool)] = e.Address
		}
	}

	e.TextColor = display.Anonymous
	if e.Name != "" {
		e.TextColor = display.NamedDevice
	}
	e.BorderColor = display.NotInCache
	if e.Known {
		e.BorderColor = display.InCache
	}
	return e
}

// Cycle returns n devices.
func (f *Feed) Cycle(n int) []*card.Entity {
	out := make([]*card.Entity, n)
	for i := range out {
		out[i] = f.Next()
	}
	return out
}

func (f *Feed) mac() string {
	var b [6]byte
	for i := range b {
		b[i] = byte(f.rng.IntN(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}
