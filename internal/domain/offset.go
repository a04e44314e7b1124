package domain

import (
	"fmt"
	"strconv"
)

// OffsetRecord is one entry of the ZIP offset dataset. UTCOffsetHours is the
// standard-time offset (negative = west of UTC); ObservesDST says whether the
// US DST rule applies at all for this location.
type OffsetRecord struct {
	Zip            string `json:"zip,omitempty"`
	UTCOffsetHours int    `json:"utc"`
	ObservesDST    bool   `json:"dst"`
}

// OffsetTable is the in-memory ZIP offset dataset, keyed by normalized
// 5-digit code. Values are read-only after load.
type OffsetTable map[string]OffsetRecord

// Exact returns the record for the given normalized code, with the code
// echoed back on the record.
func (t OffsetTable) Exact(zip string) (OffsetRecord, bool) {
	rec, ok := t[zip]
	if !ok {
		return OffsetRecord{}, false
	}
	rec.Zip = zip
	return rec, true
}

// Nearest probes outward from the numeric value of the given code, one step
// up then one step down per round, and returns the first record found. When
// both directions would hit in the same round the upper (greater) code wins
// because it is probed first. The upper probe stops at 99999, the lower at 0.
func (t OffsetTable) Nearest(zip string) (OffsetRecord, bool) {
	n, err := strconv.Atoi(zip)
	if err != nil {
		return OffsetRecord{}, false
	}

	up, down := n, n
	for up < 99999 || down > 0 {
		if up < 99999 {
			up++
			if rec, ok := t.Exact(fmt.Sprintf("%05d", up)); ok {
				return rec, true
			}
		}
		if down > 0 {
			down--
			if rec, ok := t.Exact(fmt.Sprintf("%05d", down)); ok {
				return rec, true
			}
		}
	}
	return OffsetRecord{}, false
}

// Lookup finds the record for a normalized code, falling back to the nearest
// neighboring code on a miss. Exactly one result per search.
func (t OffsetTable) Lookup(zip string) (OffsetRecord, bool) {
	if rec, ok := t.Exact(zip); ok {
		return rec, true
	}
	return t.Nearest(zip)
}
