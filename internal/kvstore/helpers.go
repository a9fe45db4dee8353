package kvstore

const maxListLimit = 1000

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

func labelsOrEmpty(labels []string) []string {
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
