package api

import "github.com/persistorai/graphkernel/internal/domain"

// Handler dependencies are the canonical domain interfaces.
type (
	NodeService  = domain.NodeService
	EdgeService  = domain.EdgeService
	BulkService  = domain.BulkService
	StatsService = domain.StatsService
	GraphService = domain.GraphService
	Pinger       = domain.Pinger
)
