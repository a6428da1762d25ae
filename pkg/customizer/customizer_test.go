package customizer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/Accessx/pkg"
	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	"github.com/lintang-b-s/Accessx/pkg/metrics"
	"github.com/lintang-b-s/Accessx/pkg/openinghours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const edgeList = `{"from": 0, "to": 1, "attributes": {"length": 13, "highway": "footway"}}
{"from": 1, "to": 2, "attributes": {"length": 100, "highway": "residential"}}

{"from": 2, "to": 3, "attributes": {"length": 10, "highway": "footway", "incline": "0.2"}}
`

func TestReadEdges(t *testing.T) {
	edges, err := ReadEdges(strings.NewReader(edgeList))
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, "residential", edges[1].Attributes.Highway)

	_, err = ReadEdges(strings.NewReader("{not json}\n"))
	assert.Error(t, err)
}

func TestCustomize(t *testing.T) {
	dir := t.TempDir()
	edgesPath := filepath.Join(dir, "edges.jsonl")
	metricPath := filepath.Join(dir, "metric.txt")
	require.NoError(t, os.WriteFile(edgesPath, []byte(edgeList), 0o644))

	c := NewCustomizer(edgesPath, metricPath, openinghours.NewCachedOracle(0), costfunction.DefaultCostOptions(), 2,
		zap.NewNop())
	prefs := costfunction.DefaultPreferences(pkg.WALK).WithReferenceTime(1709582400000)

	metric, err := c.Customize(context.Background(), prefs)
	require.NoError(t, err)
	require.Len(t, metric.GetWeights(), 3)
	assert.InDelta(t, 10.0, metric.GetWeight(0), 1e-9)
	assert.InDelta(t, 1.2*2*(100/pkg.WALK_BASE_SPEED), metric.GetWeight(1), 1e-9)
	assert.True(t, metric.IsExcluded(2))
	assert.Equal(t, 1, metric.NumberOfExcluded())

	read, err := metrics.ReadFromFile(metricPath)
	require.NoError(t, err)
	assert.Equal(t, metric.GetWeights(), read.GetWeights())
	assert.Equal(t, int64(1709582400000), read.GetReferenceTime().UnixMilli())
}
