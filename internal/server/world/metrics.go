package world

import "github.com/prometheus/client_golang/prometheus"

var (
	chunksGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "chunks_generated_total",
		Help:      "Chunk columns generated",
	})
	handlerErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "generation_handler_errors_total",
		Help:      "Column generation handlers that returned an error",
	}, []string{"pass"})
)

func init() {
	prometheus.MustRegister(chunksGenerated, handlerErrors)
}
