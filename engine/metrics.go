package engine

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	transfers *prometheus.CounterVec
	duration  prometheus.Histogram
	received  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := metrics{
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "easyhttp_transfers_total",
			Help: "Transfers performed, by result code.",
		}, []string{"code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "easyhttp_transfer_duration_seconds",
			Help:    "Wall time of a transfer.",
			Buckets: prometheus.DefBuckets,
		}),
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "easyhttp_received_bytes_total",
			Help: "Body bytes received from the wire.",
		}),
	}

	for _, c := range []prometheus.Collector{m.transfers, m.duration, m.received} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &m, nil
}

func (m *metrics) observe(code Code, info transferInfo) {
	if m == nil {
		return
	}

	m.transfers.WithLabelValues(strconv.Itoa(int(code))).Inc()
	m.duration.Observe(info.totalTime.Seconds())
	m.received.Add(float64(info.sizeDownload))
}
