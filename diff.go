package hanscan

// DiffResult is the difference between a previous table and the current
// rows of a scope. Rows are matched by value.
type DiffResult struct {
	// Added holds values that are new in the current rows.
	Added []Row

	// Removed holds values that are gone from the current rows.
	Removed []Row

	// Unchanged holds values present in both with the same key. The current
	// row is kept, so Pos reflects the latest first occurrence.
	Unchanged []Row

	// Rekeyed holds values present in both under a different key.
	Rekeyed []RekeyedRow
}

// RekeyedRow is a value whose key changed between two tables.
type RekeyedRow struct {
	Old Row
	New Row
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Unchanged int
	Rekeyed   int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Rekeyed:   len(d.Rekeyed),
	}
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Rekeyed) > 0
}

// DiffRows compares previous with current. Added, Unchanged and Rekeyed
// follow the order of current; Removed follows the order of previous.
// A value repeated within one table is compared on its first row.
func DiffRows(previous, current []Row) *DiffResult {
	result := &DiffResult{}

	prevByValue := make(map[string]Row, len(previous))
	for _, r := range previous {
		if _, ok := prevByValue[r.Value]; !ok {
			prevByValue[r.Value] = r
		}
	}

	seen := make(map[string]struct{}, len(current))
	for _, cur := range current {
		if _, dup := seen[cur.Value]; dup {
			continue
		}
		seen[cur.Value] = struct{}{}

		old, ok := prevByValue[cur.Value]
		switch {
		case !ok:
			result.Added = append(result.Added, cur)
		case old.Key == cur.Key:
			result.Unchanged = append(result.Unchanged, cur)
		default:
			result.Rekeyed = append(result.Rekeyed, RekeyedRow{Old: old, New: cur})
		}
	}

	for _, r := range previous {
		if _, ok := seen[r.Value]; ok {
			continue
		}
		seen[r.Value] = struct{}{}
		result.Removed = append(result.Removed, r)
	}

	return result
}
