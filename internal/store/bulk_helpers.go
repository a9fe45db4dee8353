package store

// lastByID keeps the last occurrence of every ID, in first-seen order. A
// multi-row upsert may not touch the same row twice.
func lastByID[T any](items []T, id func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		key := id(item)
		if i, ok := index[key]; ok {
			out[i] = item

			continue
		}

		index[key] = len(out)
		out = append(out, item)
	}

	return out
}
