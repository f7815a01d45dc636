package telemetry

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/bpcalc/bpcalc/pkg/bp"
)

// Metric names exposed by WriteMetrics.
const (
	metricReadings   = "bpcalc_readings_total"
	metricBands      = "bpcalc_cardiovascular_risk_total"
	metricRejections = "bpcalc_rejections_total"
)

// Gather builds the metric families for the current counters. Every label
// combination is emitted, including zeros, in a fixed order.
func (t *Tracker) Gather() []*dto.MetricFamily {
	t.mu.Lock()
	defer t.mu.Unlock()

	readings := counterFamily(metricReadings, "Blood pressure readings evaluated, by category and validity.")
	for _, c := range bp.Categories() {
		for _, valid := range []bool{true, false} {
			addCounter(readings, t.readings[readingKey{c, valid}],
				"category", c.String(),
				"valid", strconv.FormatBool(valid),
			)
		}
	}

	bands := counterFamily(metricBands, "Valid readings by long-term cardiovascular risk band.")
	for _, b := range bp.Bands() {
		addCounter(bands, t.bands[b], "band", b.String())
	}

	rejections := counterFamily(metricRejections, "Submissions rejected by the form handler, by reason.")
	for _, r := range reasons {
		addCounter(rejections, t.rejections[r], "reason", string(r))
	}

	return []*dto.MetricFamily{readings, bands, rejections}
}

// WriteMetrics writes the counters to w in Prometheus text format.
func (t *Tracker) WriteMetrics(w io.Writer) error {
	for _, mf := range t.Gather() {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("telemetry: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// MetricsHandler serves WriteMetrics over HTTP.
func (t *Tracker) MetricsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var buf bytes.Buffer
		if err := t.WriteMetrics(&buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck
	})
}

func counterFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
}

// addCounter appends one series to mf. labels is a flat name/value list.
func addCounter(mf *dto.MetricFamily, v uint64, labels ...string) {
	m := &dto.Metric{Counter: &dto.Counter{Value: proto.Float64(float64(v))}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	mf.Metric = append(mf.Metric, m)
}
