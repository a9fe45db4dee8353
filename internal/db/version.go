package db

import (
	"strings"

	"github.com/persistorai/graphkernel/internal/db/migrations"
)

// SchemaVersion returns the number of embedded SQL migrations. The doctor
// command and the readiness endpoint report it.
func SchemaVersion() int {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return 0
	}

	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			count++
		}
	}

	return count
}
