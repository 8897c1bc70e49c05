// Package idgen builds the prefixed, zero-padded business identifiers
// (RST00001, ALC0000001, ATT00001, EX0001, LR00001, S001).
package idgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind describes one identifier family.
type Kind struct {
	Prefix string
	Width  int
}

var (
	RosterTemplate = Kind{Prefix: "RST", Width: 5}
	Allocation     = Kind{Prefix: "ALC", Width: 7}
	Attendance     = Kind{Prefix: "ATT", Width: 5}
	Expense        = Kind{Prefix: "EX", Width: 4}
	LeaveRequest   = Kind{Prefix: "LR", Width: 5}
	Staff          = Kind{Prefix: "S", Width: 3}
)

// Format renders n with the kind's prefix. Width is a minimum, larger numbers keep all digits.
func (k Kind) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", k.Prefix, k.Width, n)
}

// Parse returns the numeric suffix of id, or 0 when id is empty or not of this kind.
func (k Kind) Parse(id string) int64 {
	if !strings.HasPrefix(id, k.Prefix) {
		return 0
	}
	n, err := strconv.ParseInt(id[len(k.Prefix):], 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Next returns the number following the current maximum id.
func (k Kind) Next(maxID string) int64 {
	return k.Parse(maxID) + 1
}

// NextID returns the id following the current maximum id.
func (k Kind) NextID(maxID string) string {
	return k.Format(k.Next(maxID))
}

// Block reserves n contiguous ids following maxID, in order.
func (k Kind) Block(maxID string, n int) []string {
	start := k.Next(maxID)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = k.Format(start + int64(i))
	}
	return ids
}
