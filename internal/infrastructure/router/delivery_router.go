package router

import (
	"context"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"
)

// DeliveryRouter fans a rendered report out to the registered sinks. Sinks
// fail independently: a failing sink is logged and counted, and the next
// sink still runs.
type DeliveryRouter struct {
	sinks   []repository.ReportSink
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewDeliveryRouter creates an empty router. Metrics may be nil.
func NewDeliveryRouter(logger logger.Logger, m *metrics.Metrics) *DeliveryRouter {
	return &DeliveryRouter{
		sinks:   make([]repository.ReportSink, 0),
		logger:  logger,
		metrics: m,
	}
}

// Register adds a sink to the fan-out.
func (r *DeliveryRouter) Register(sink repository.ReportSink) {
	r.sinks = append(r.sinks, sink)
	r.logger.Info("Registered report sink", "sink", sink.Name())
}

// Deliver hands the report to every sink and returns how many accepted it.
func (r *DeliveryRouter) Deliver(ctx context.Context, report *entity.RunReport, html string) int {
	delivered := 0
	for _, sink := range r.sinks {
		if err := sink.Deliver(ctx, report, html); err != nil {
			r.logger.Error("Report delivery failed", "sink", sink.Name(), "error", err)
			if r.metrics != nil {
				r.metrics.DeliveryFailures.WithLabelValues(sink.Name()).Inc()
			}
			continue
		}
		delivered++
	}
	return delivered
}
