package ghaudit

import "context"

// DefaultPageSize is the per_page value used for every listing call.
const DefaultPageSize = 100

// PageFunc fetches a single page. Pages are numbered from 1.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, error)

// Paginate calls fetch for pages 1, 2, ... and concatenates the results in
// page order. It stops after the first page holding fewer than pageSize
// items, so a collection whose size is an exact multiple of pageSize costs
// one extra request that returns an empty page.
//
// There is no upper bound on the number of pages. If any page fails the
// whole call fails and no items are returned.
func Paginate[T any](ctx context.Context, pageSize int, fetch PageFunc[T]) ([]T, error) {
	if pageSize <= 0 {
		return nil, newConfigError("page size", "must be positive")
	}

	var all []T
	for page := 1; ; page++ {
		items, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if len(items) < pageSize {
			return all, nil
		}
	}
}
