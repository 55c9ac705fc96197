package treasure

import "github.com/prometheus/client_golang/prometheus"

// Placement sources.
const (
	SourceWorldGen = "worldgen"
	SourceCommand  = "command"
)

var (
	chestsPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treasure",
		Name:      "chests_placed_total",
		Help:      "Treasure chests placed",
	}, []string{"source"})
	columnsRolled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treasure",
		Name:      "columns_rolled_total",
		Help:      "Generated columns considered for a chest, by outcome",
	}, []string{"outcome"})
	itemsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treasure",
		Name:      "items_generated_total",
		Help:      "Items put into treasure chests",
	}, []string{"item"})
)

func init() {
	prometheus.MustRegister(chestsPlaced, columnsRolled, itemsGenerated)
}
