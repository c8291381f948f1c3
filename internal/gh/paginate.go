package gh

// pageSize is the per_page value used on every paginated endpoint; 100 is the
// GitHub API maximum.
const pageSize = 100

// collectPages drives a page-fetching function to exhaustion or until max
// items have been collected, strictly one page at a time. fetch receives a
// 1-based page number and returns the page's items plus the next page number
// (0 when the response carried no "next" link relation).
func collectPages[T any](max int, fetch func(page int) (items []T, nextPage int, err error)) ([]T, error) {
	var out []T
	page := 1
	for {
		items, next, err := fetch(page)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if next == 0 || (max > 0 && len(out) >= max) {
			return out, nil
		}
		page = next
	}
}

// slicePage applies offset-then-limit slicing; limit 0 means unbounded after
// the offset. Out-of-range windows yield an empty slice, never an error.
func slicePage[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
