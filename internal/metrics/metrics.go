// Package metrics 以 prometheus 記錄帳本操作次數與帳戶數。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coinops/internal/bank"
)

// Recorder 持有獨立的 Registry，避免污染全域 DefaultRegisterer（測試可重複建立）。
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewRecorder 建立記錄器並註冊 operations 計數器與 Go runtime 收集器。
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coinops",
			Name:      "ledger_operations_total",
			Help:      "Ledger operations by operation name and outcome.",
		}, []string{"op", "outcome"}),
	}
	r.registry.MustRegister(r.operations, collectors.NewGoCollector())
	return r
}

// Observe 符合 bank.Observer 簽章，可直接以 bank.WithObserver(r.Observe) 注入。
func (r *Recorder) Observe(op string, err error) {
	r.operations.WithLabelValues(op, bank.KindName(err)).Inc()
}

// TrackAccounts 以 GaugeFunc 回報帳本目前的帳戶數。
func (r *Recorder) TrackAccounts(l *bank.Ledger) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "coinops",
		Name:      "ledger_accounts",
		Help:      "Number of registered accounts.",
	}, func() float64 { return float64(l.Len()) }))
}

// Handler 回傳 /metrics 端點。
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
