package middleware_test

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/httputil"
)

func newQuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func requestIDFromContext(c *gin.Context) string {
	return httputil.RequestIDFrom(c.Request.Context())
}
