package promsink_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/aretw0/hooksett/pkg/handlers/promsink"
)

func TestHandler_GaugesMetricRoleValues(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := promsink.New(reg)
	require.NoError(t, err)

	require.NoError(t, h.Save("accuracy", 0.91, domain.RoleMetric))
	require.NoError(t, h.Save("accuracy", 0.94, domain.RoleMetric))

	g, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range g {
		if mf.GetName() != "hooksett_tracked_value" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		assert.InDelta(t, 0.94, mf.GetMetric()[0].GetGauge().GetValue(), 1e-9)
	}
	assert.True(t, found, "gauge family missing")
}

func TestHandler_CountsEverySave(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := promsink.New(reg)
	require.NoError(t, err)

	require.NoError(t, h.Save("model", "run-7", domain.RoleArtifact))
	require.NoError(t, h.Save("model", "run-8", domain.RoleArtifact))
	require.NoError(t, h.Save("loss", 0.2, domain.RoleMetric))

	g, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range g {
		if mf.GetName() != "hooksett_saves_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var name, role string
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "name":
					name = lp.GetValue()
				case "role":
					role = lp.GetValue()
				}
			}
			counts[name+"/"+role] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), counts["model/Artifact"])
	assert.Equal(t, float64(1), counts["loss/Metric"])
}

func TestHandler_NonNumericMetricIsCountedNotGauged(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := promsink.New(reg)
	require.NoError(t, err)

	require.NoError(t, h.Save("notes", "warmup phase", domain.RoleMetric))

	g, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range g {
		if mf.GetName() == "hooksett_tracked_value" {
			assert.Empty(t, mf.GetMetric())
		}
	}
}

func TestNew_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := promsink.New(reg)
	require.NoError(t, err)

	_, err = promsink.New(reg)
	assert.Error(t, err)
}
