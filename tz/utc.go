package tz

import "sync"

var utcZone = sync.OnceValue(func() *Zone {
	return &Zone{
		Timestamps: []int64{minInstant},
		OffsetMap:  []int{0},
		Offsets:    []Offset{{UTOff: 0, IsDST: false, Desig: "UTC"}},
	}
})

// UTC returns the zone for Coordinated Universal Time: a fixed zero
// offset, no DST, and no leap-second table of its own. Built once and
// shared; safe for concurrent use like any other *Zone.
func UTC() *Zone {
	return utcZone()
}
