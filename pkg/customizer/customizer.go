package customizer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
	"github.com/lintang-b-s/Accessx/pkg/metrics"
	"github.com/lintang-b-s/Accessx/pkg/openinghours"
	"go.uber.org/zap"
)

type edgeLine struct {
	From       uint32         `json:"from"`
	To         uint32         `json:"to"`
	Attributes map[string]any `json:"attributes"`
}

/*
Customizer. precompute the edge weights of a pedestrian network for one set of mobility preferences.

the edge list is a JSON lines file, one {"from":..,"to":..,"attributes":{..}} object per edge.
*/
type Customizer struct {
	logger               *zap.Logger
	edgesFilePath        string
	metricOutputFilePath string
	oracle               openinghours.Oracle
	opts                 costfunction.CostOptions
	numWorkers           int
}

func NewCustomizer(edgesFilePath, metricOutputFilePath string, oracle openinghours.Oracle,
	opts costfunction.CostOptions, numWorkers int, logger *zap.Logger) *Customizer {
	return &Customizer{
		edgesFilePath:        edgesFilePath,
		metricOutputFilePath: metricOutputFilePath,
		oracle:               oracle,
		opts:                 opts,
		numWorkers:           numWorkers,
		logger:               logger,
	}
}

func (c *Customizer) Customize(ctx context.Context, prefs costfunction.Preferences) (*metrics.Metric, error) {
	c.logger.Sugar().Infof("Reading edges from %s", c.edgesFilePath)
	f, err := os.Open(c.edgesFilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	edges, err := ReadEdges(f)
	if err != nil {
		return nil, err
	}

	cf, err := costfunction.NewPedestrianCostFunction(prefs, c.opts, c.oracle, c.logger)
	if err != nil {
		return nil, err
	}

	c.logger.Sugar().Infof("Computing weights of %d edges...", len(edges))
	metric, err := metrics.BuildMetric(ctx, cf, edges, cf.ReferenceTime(), c.numWorkers)
	if err != nil {
		return nil, err
	}
	c.logger.Info("edge weights computed", zap.Int("edges", len(edges)),
		zap.Int("excluded", metric.NumberOfExcluded()), zap.Time("reference_time", cf.ReferenceTime()))

	c.logger.Sugar().Infof("Writing metric to %s", c.metricOutputFilePath)
	if err := metric.WriteToFile(c.metricOutputFilePath); err != nil {
		return nil, err
	}
	return metric, nil
}

func ReadEdges(r io.Reader) ([]da.Edge, error) {
	edges := make([]da.Edge, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var el edgeLine
		if err := json.Unmarshal(line, &el); err != nil {
			return nil, fmt.Errorf("edge list line %d: %w", lineNumber, err)
		}
		edges = append(edges, da.Edge{
			From:       da.Index(el.From),
			To:         da.Index(el.To),
			Attributes: da.EdgeAttributesFromMap(el.Attributes),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}
