package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/persistorai/graphkernel/internal/middleware"
	"github.com/persistorai/graphkernel/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Storage     Pinger
	Hub         *ws.Hub
	Nodes       NodeService
	Edges       EdgeService
	Bulk        BulkService
	Graph       GraphService
	Stats       StatsService
	CORSOrigins []string
	Version     string
	Backend     string
}

// Router-level limits.
const (
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// serviceName names the server in traces.
const serviceName = "graphkernel"

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))

	// No origins means no cross-origin access at all.
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			MaxAge:           1 * time.Hour,
			AllowCredentials: false,
		}))
	}

	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(otelgin.Middleware(serviceName))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	var streams func() int
	if deps.Hub != nil {
		streams = deps.Hub.Count
	}

	health := NewHealthHandler(deps.Storage, streams, log, deps.Version, deps.Backend)
	nodes := NewNodeHandler(deps.Nodes, log)
	edges := NewEdgeHandler(deps.Edges, log)
	bulk := NewBulkHandler(deps.Bulk, log)
	graph := NewGraphHandler(deps.Graph, log)
	stream := NewStreamHandler(deps.Graph, deps.Hub, deps.CORSOrigins, log)
	stats := NewStatsHandler(deps.Stats, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)
	api.GET("/stats", stats.GetStats)

	// Nodes.
	api.GET("/nodes", nodes.List)
	api.POST("/nodes", nodes.Create)
	api.GET("/nodes/:id", nodes.Get)
	api.DELETE("/nodes/:id", nodes.Delete)

	// Edges.
	api.GET("/edges", edges.List)
	api.POST("/edges", edges.Create)
	api.GET("/edges/:id", edges.Get)
	api.DELETE("/edges/:id", edges.Delete)

	// Bulk operations.
	api.POST("/bulk/nodes", bulk.BulkNodes)
	api.POST("/bulk/edges", bulk.BulkEdges)

	// Graph queries.
	api.GET("/graph/neighbors/:id", graph.Neighbors)
	api.GET("/graph/paths/:from/:to", graph.Paths)
	api.GET("/graph/paths/:from/:to/stream", stream.Stream)
	api.GET("/graph/path/:from/:to", graph.Path)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
