package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// WriteText writes the gathered metrics in the Prometheus text format
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}

// GetCounter parses metrics in the Prometheus text format and returns the value of
// the counter of the given family with the given label, or -1 if there is none
func GetCounter(r io.Reader, family string, labelKey string, labelValue string) (float64, error) {
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(r)
	if err != nil {
		return -1, err
	}
	for _, f := range families {
		if f.GetName() == family {
			for _, m := range f.GetMetric() {
				for _, l := range m.GetLabel() {
					if l.GetName() == labelKey && l.GetValue() == labelValue {
						return m.GetCounter().GetValue(), nil
					}
				}
			}
		}
	}
	return -1, nil
}

// Summarize returns one [name, value] row per gathered counter and histogram of
// this package
func Summarize(g prometheus.Gatherer) ([][]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var rows [][]string
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), namespace+"_") {
			continue
		}
		for _, m := range f.GetMetric() {
			name := f.GetName() + labels(m)
			switch f.GetType() {
			case dto.MetricType_COUNTER:
				rows = append(rows, []string{name, fmt.Sprintf("%.0f", m.GetCounter().GetValue())})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				avg := 0.0
				if h.GetSampleCount() > 0 {
					avg = h.GetSampleSum() / float64(h.GetSampleCount())
				}
				rows = append(rows, []string{name, fmt.Sprintf("%d samples, avg %.3fs", h.GetSampleCount(), avg)})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i][0] < rows[j][0]
	})
	return rows, nil
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
