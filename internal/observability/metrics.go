package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	snapshotsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "neurowatch",
		Subsystem: "vitals",
		Name:      "snapshots_received_total",
		Help:      "Snapshot updates delivered by the watch-data subscription.",
	})
	snapshotDecodeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "neurowatch",
		Subsystem: "vitals",
		Name:      "snapshot_decode_failures_total",
		Help:      "Snapshot payloads dropped because they did not decode.",
	})
	riskLevelGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "neurowatch",
		Subsystem: "vitals",
		Name:      "risk_level",
		Help:      "Current risk level per identity (0 low, 1 moderate, 2 high).",
	}, []string{"identity"})
)

func init() {
	prometheus.MustRegister(snapshotsReceived, snapshotDecodeFailures, riskLevelGauge)
}

// RecordSnapshotReceived counts one delivered snapshot update.
func RecordSnapshotReceived() {
	snapshotsReceived.Inc()
}

// RecordSnapshotDecodeFailure counts one dropped payload.
func RecordSnapshotDecodeFailure() {
	snapshotDecodeFailures.Inc()
}

// RecordRiskLevel updates the per-identity risk gauge.
func RecordRiskLevel(identityID string, level int) {
	riskLevelGauge.WithLabelValues(identityID).Set(float64(level))
}

// ClearRiskLevel drops the gauge series for an identity that stopped
// reporting, so scrapes do not carry its last level forever.
func ClearRiskLevel(identityID string) {
	riskLevelGauge.DeleteLabelValues(identityID)
}
