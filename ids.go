package commpost

import "sort"

// CompareIDs compares the post IDs found in an archive against the expected
// list. Extra IDs are sorted; missing IDs keep the order of expected.
func CompareIDs(expected, actual []string) (extra, missing []string) {
	want := make(map[string]bool, len(expected))
	for _, id := range expected {
		want[id] = true
	}
	have := make(map[string]bool, len(actual))
	for _, id := range actual {
		have[id] = true
	}

	for id := range have {
		if !want[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)

	seen := make(map[string]bool, len(expected))
	for _, id := range expected {
		if !have[id] && !seen[id] {
			missing = append(missing, id)
		}
		seen[id] = true
	}
	return extra, missing
}

// SortByIDOrder sorts ids by their position in order. IDs absent from order
// sort after all listed ones, alphabetically.
func SortByIDOrder(ids []string, order []string) {
	less := IDOrder(order)
	sort.SliceStable(ids, func(i, j int) bool {
		return less(ids[i], ids[j])
	})
}

// IDOrder returns a less function ranking post IDs by their position in order.
func IDOrder(order []string) func(a, b string) bool {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		if _, ok := pos[id]; !ok {
			pos[id] = i
		}
	}
	return func(a, b string) bool {
		return lessByOrder(pos, a, b)
	}
}

func lessByOrder(pos map[string]int, a, b string) bool {
	pa, aok := pos[a]
	pb, bok := pos[b]
	switch {
	case aok && bok:
		return pa < pb
	case aok != bok:
		return aok
	default:
		return a < b
	}
}
