// SPDX-License-Identifier: MIT

package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnsTotalLabels(t *testing.T) {
	TurnsTotal.WithLabelValues("2", "dialogflow", "handled").Add(3)

	var m dto.Metric
	require.NoError(t, TurnsTotal.WithLabelValues("2", "dialogflow", "handled").Write(&m))
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(3))

	labels := map[string]string{}
	for _, lp := range m.GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	assert.Equal(t, "2", labels["generation"])
	assert.Equal(t, "dialogflow", labels["front_end"])
	assert.Equal(t, "handled", labels["outcome"])
}

func TestDispatchDurationObserves(t *testing.T) {
	DispatchDuration.WithLabelValues("1", "actions_sdk").Observe(0.02)

	var m dto.Metric
	require.NoError(t, DispatchDuration.WithLabelValues("1", "actions_sdk").(interface {
		Write(*dto.Metric) error
	}).Write(&m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(1))
}
