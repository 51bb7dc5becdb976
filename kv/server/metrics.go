package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

const (
	resultOK          = "ok"
	resultRegionError = "region_error"
	resultKeyError    = "key_error"
	resultInternal    = "internal"
)

var (
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "txnkv",
			Subsystem: "server",
			Name:      "command_duration_seconds",
			Help:      "Bucketed histogram of time (s) spent running a request.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"type"})

	commandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "txnkv",
			Subsystem: "server",
			Name:      "command_total",
			Help:      "Counter of requests by outcome.",
		}, []string{"type", "result"})
)

func init() {
	prometheus.MustRegister(commandDuration)
	prometheus.MustRegister(commandCounter)
}

type regionErrorResponse interface {
	GetRegionError() *errorpb.Error
}

// resultOf classifies a response for commandCounter.
func resultOf(resp interface{}) string {
	if r, ok := resp.(regionErrorResponse); ok && r.GetRegionError() != nil {
		return resultRegionError
	}
	switch r := resp.(type) {
	case *kvrpcpb.GetResponse:
		if r.Error != nil {
			return resultKeyError
		}
	case *kvrpcpb.PrewriteResponse:
		if len(r.Errors) > 0 {
			return resultKeyError
		}
	case *kvrpcpb.CommitResponse:
		if r.Error != nil {
			return resultKeyError
		}
	case *kvrpcpb.BatchRollbackResponse:
		if r.Error != nil {
			return resultKeyError
		}
	case *kvrpcpb.CleanupResponse:
		if r.Error != nil {
			return resultKeyError
		}
	case *kvrpcpb.ResolveLockResponse:
		if r.Error != nil {
			return resultKeyError
		}
	}
	return resultOK
}
