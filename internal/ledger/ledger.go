// Package ledger implements the completion ledger: an append-mostly,
// deduplicated, sorted set of calendar days on which a habit was marked
// done. Days are stored as YYYY-MM-DD strings, which sort correctly as
// plain strings.
package ledger

import "sort"

// Ledger is a sorted set of day strings. The zero value is an empty,
// usable ledger.
type Ledger []string

// Has reports whether the ledger contains the given day.
func (l Ledger) Has(day string) bool {
	i := sort.SearchStrings(l, day)
	return i < len(l) && l[i] == day
}

// Add inserts a day, keeping the ledger sorted. It returns the updated
// ledger and whether the day was newly added.
func (l Ledger) Add(day string) (Ledger, bool) {
	i := sort.SearchStrings(l, day)
	if i < len(l) && l[i] == day {
		return l, false
	}
	out := make(Ledger, 0, len(l)+1)
	out = append(out, l[:i]...)
	out = append(out, day)
	out = append(out, l[i:]...)
	return out, true
}

// Remove deletes a day. It returns the updated ledger and whether the day
// was present.
func (l Ledger) Remove(day string) (Ledger, bool) {
	i := sort.SearchStrings(l, day)
	if i >= len(l) || l[i] != day {
		return l, false
	}
	out := make(Ledger, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, true
}

// Latest returns the most recent day in the ledger, or "" when empty.
func (l Ledger) Latest() string {
	if len(l) == 0 {
		return ""
	}
	return l[len(l)-1]
}

// Clone returns an independent copy.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// Normalize sorts and deduplicates a ledger loaded from external data,
// which may have been produced by an older writer that did not keep the
// invariant.
func Normalize(days []string) Ledger {
	if len(days) == 0 {
		return nil
	}
	out := make(Ledger, len(days))
	copy(out, days)
	sort.Strings(out)
	dedup := out[:1]
	for _, d := range out[1:] {
		if d != dedup[len(dedup)-1] {
			dedup = append(dedup, d)
		}
	}
	return dedup
}
