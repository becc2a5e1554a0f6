package domain

import "sort"

// Merge appends incoming after existing into a fresh slice. Nothing is
// deduplicated: records sharing an id stay separate entries.
func Merge(existing, incoming []Record) []Record {
	out := make([]Record, 0, len(existing)+len(incoming))
	out = append(out, existing...)
	out = append(out, incoming...)
	return out
}

// DuplicateIDs returns one entry per repeated occurrence of an id, in scan order.
func DuplicateIDs(records []Record) []int {
	seen := make(map[int]struct{}, len(records))
	var dups []int
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			dups = append(dups, r.ID)
			continue
		}
		seen[r.ID] = struct{}{}
	}
	return dups
}

// Less orders by type, then id, then first question line.
func Less(a, b Record) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.FirstQuestion() < b.FirstQuestion()
}

// SortRecords sorts in place; equal keys keep their input order.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return Less(records[i], records[j])
	})
}

type TypeCount struct {
	Type  string
	Count int
}

// CountByType tallies records per type, ordered by type.
func CountByType(records []Record) []TypeCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Type]++
	}
	out := make([]TypeCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TypeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
