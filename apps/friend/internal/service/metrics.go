package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// relationOpsTotal 关系操作计数，result 为 ok 或错误类别
var relationOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "traininglog",
	Subsystem: "relationship",
	Name:      "operations_total",
	Help:      "Relationship mutations by operation and result.",
}, []string{"op", "result"})

func observeOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = KindDataAccess.String()
		if relErr, ok := AsRelationError(err); ok {
			result = relErr.Kind.String()
		}
	}
	relationOpsTotal.WithLabelValues(op, result).Inc()
}
