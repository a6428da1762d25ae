package metrics

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/Accessx/pkg"
	"github.com/lintang-b-s/Accessx/pkg/concurrent"
	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
)

/*
Metric. precomputed edge weights of one mobility profile, weights[i] is the weight of the i-th edge of the edge list
it was built from. excluded edges have weight INF_WEIGHT.
*/
type Metric struct {
	weights       []float64
	referenceTime time.Time
}

func NewMetric(weights []float64, referenceTime time.Time) *Metric {
	return &Metric{weights: weights, referenceTime: referenceTime}
}

// BuildMetric. evaluate costFunction on every edge using numWorkers goroutines.
func BuildMetric(ctx context.Context, costFunction costfunction.CostFunction, edges []da.Edge, referenceTime time.Time,
	numWorkers int) (*Metric, error) {
	weights, err := concurrent.MapOrdered(ctx, numWorkers, edges, func(ctx context.Context, e da.Edge) float64 {
		return costFunction.GetWeight(e.From, e.To, e.Attributes)
	})
	if err != nil {
		return nil, err
	}
	return NewMetric(weights, referenceTime), nil
}

func (met *Metric) GetWeights() []float64 {
	return met.weights
}

func (met *Metric) GetWeight(i da.Index) float64 {
	return met.weights[i]
}

func (met *Metric) IsExcluded(i da.Index) bool {
	return met.weights[i] >= pkg.INF_WEIGHT
}

func (met *Metric) NumberOfExcluded() int {
	n := 0
	for _, w := range met.weights {
		if w >= pkg.INF_WEIGHT {
			n++
		}
	}
	return n
}

func (met *Metric) GetReferenceTime() time.Time {
	return met.referenceTime
}

/*
WriteToFile. text format:

	<number of weights> <reference time, unix millis>
	<weight_0> <weight_1> ... <weight_n-1>
*/
func (met *Metric) WriteToFile(filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)

	if _, err := fmt.Fprintf(w, "%d %d\n", len(met.weights), met.referenceTime.UnixMilli()); err != nil {
		return err
	}
	for i, weight := range met.weights {
		if _, err := w.WriteString(strconv.FormatFloat(weight, 'f', -1, 64)); err != nil {
			return err
		}
		if i < len(met.weights)-1 {
			if err := w.WriteByte(' '); err != nil {
				return err
			}
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}

func ReadFromFile(filename string) (*Metric, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	readLine := func() (string, error) {
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	line, err := readLine()
	if err != nil {
		return nil, err
	}
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid metric header %q", line)
	}
	numWeights, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid metric header %q: %w", line, err)
	}
	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid metric header %q: %w", line, err)
	}

	weights := make([]float64, 0, numWeights)
	if numWeights > 0 {
		line, err = readLine()
		if err != nil {
			return nil, err
		}
		parts = strings.Fields(line)
		if len(parts) != numWeights {
			return nil, fmt.Errorf("expected %d weights, got %d", numWeights, len(parts))
		}
		for _, p := range parts {
			weight, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, err
			}
			weights = append(weights, weight)
		}
	}

	return NewMetric(weights, time.UnixMilli(millis)), nil
}
