// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"strings"
)

// Bus is a named volume group. Every voice is routed through exactly one
// bus and, implicitly, through BusMaster.
type Bus int

const (
	BusMaster Bus = iota
	BusMusic
	BusSFX
	BusVoice
	BusUI

	busCount
)

var busNames = [busCount]string{
	BusMaster: "master",
	BusMusic:  "music",
	BusSFX:    "sfx",
	BusVoice:  "voice",
	BusUI:     "ui",
}

func (b Bus) Valid() bool { return b >= 0 && b < busCount }

func (b Bus) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Bus(%d)", int(b))
	}
	return busNames[b]
}

// ParseBus maps a case-insensitive bus name to its Bus.
func ParseBus(name string) (Bus, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, n := range busNames {
		if n == name {
			return Bus(b), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBus, name)
}

// Buses lists every bus, master first.
func Buses() []Bus {
	out := make([]Bus, busCount)
	for i := range out {
		out[i] = Bus(i)
	}
	return out
}
