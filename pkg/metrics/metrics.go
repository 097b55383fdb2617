package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecordsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hackdb", Name: "records_submitted_total", Help: "Number of records accepted by the writer queue."},
	)
	RecordsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hackdb", Name: "records_saved_total", Help: "Number of records persisted."},
	)
	RecordsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hackdb", Name: "records_failed_total", Help: "Number of records not persisted, by reason."},
		[]string{"reason"},
	)
	WriterQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "hackdb", Name: "writer_queue_depth", Help: "Records waiting in the writer queue."},
	)
	MongoConnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hackdb", Name: "mongo_connect_total", Help: "MongoDB connection attempts by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RecordsSubmitted)
	reg.MustRegister(RecordsSaved)
	reg.MustRegister(RecordsFailed)
	reg.MustRegister(WriterQueueDepth)
	reg.MustRegister(MongoConnects)
}
