package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{id: a, type: Actor, name: A, rootnode: {id: s, type: Sequence, childnodes: [{id: l, type: LeafAction, action: Succeed}]}}`

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	l := loader.New(registry.NewDefault(), loader.WithHooks(m.Hooks()))

	res, err := l.Load(doc)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.LoadedNodes))

	res.Actors()[0].Execute()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodeTicks.WithLabelValues("LeafAction", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodeTicks.WithLabelValues("Sequence", "success")))

	_, err = l.Load(`{id: x}`)
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("error")))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelDebug, false)
	hooks := observability.LogHooks(logger)

	m := observability.NewMetrics(prometheus.NewRegistry())
	l := loader.New(registry.NewDefault(), loader.WithHooks(hooks.Merge(m.Hooks())))

	res, err := l.Load(doc)
	require.NoError(t, err)
	res.Actors()[0].Execute()

	out := buf.String()
	assert.Contains(t, out, "msg=load")
	assert.Contains(t, out, "msg=node_tick")
	assert.Contains(t, out, "node_id=l")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
}
