package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/jobboard/internal/interface/middleware"
)

// MetricsModule exposes Prometheus metrics at /metrics. Register it at the root.
type MetricsModule struct {
	Metrics *middleware.Metrics
}

func NewMetricsModule(m *middleware.Metrics) *MetricsModule { return &MetricsModule{Metrics: m} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/metrics", gin.WrapH(m.Metrics.Handler()))
}
