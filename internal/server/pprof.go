package server

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer exposes the profiler on its own listener, kept off the
// public router. Reach it over an SSH tunnel.
func StartPprofServer(addr string, logger *zap.Logger) {
	r := gin.New()
	pprof.Register(r)

	go func() {
		logger.Info("pprof listening", zap.String("addr", addr))
		if err := r.Run(addr); err != nil {
			logger.Error("pprof server stopped", zap.Error(err))
		}
	}()
}
