package store

// maxListLimit is a defense-in-depth cap on limit values for list queries.
const maxListLimit = 1000

// clampPage normalizes list pagination.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// emptyIfNil keeps NOT NULL array and jsonb columns happy.
func emptyIfNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}

	return labels
}

func propsOrEmpty(props map[string]any) map[string]any {
	if props == nil {
		return map[string]any{}
	}

	return props
}
