package command

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/juju/ratelimit"
	"github.com/montanaflynn/stats"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/talent-plan/txnkv/kv/server/api"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"go.uber.org/atomic"
)

const (
	benchRawPut = "raw-put"
	benchRawGet = "raw-get"
	benchTxnPut = "txn-put"
)

// BenchResult summarizes a benchmark run. Latencies are in milliseconds.
type BenchResult struct {
	Op          string  `json:"op"`
	Count       int     `json:"count"`
	Errors      int     `json:"errors"`
	Concurrency int     `json:"concurrency"`
	Duration    string  `json:"duration"`
	QPS         float64 `json:"qps"`
	Min         float64 `json:"min"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	P95         float64 `json:"p95"`
	P99         float64 `json:"p99"`
	Max         float64 `json:"max"`
}

// NewBenchCommand returns the bench subcommand of the root command.
func NewBenchCommand() *cobra.Command {
	m := &cobra.Command{
		Use:   "bench",
		Short: "run a load against the store and summarize latencies",
		Args:  cobra.NoArgs,
		RunE:  benchCommandFunc,
	}
	m.Flags().String("op", benchRawPut, "operation: raw-put, raw-get or txn-put")
	m.Flags().Int("count", 1000, "number of operations")
	m.Flags().Int("concurrency", 8, "number of workers")
	m.Flags().Float64("rate", 0, "operations per second, unlimited when 0")
	m.Flags().Int("value-size", 16, "value size in bytes")
	m.Flags().String("key-prefix", "bench_", "key prefix")
	return m
}

type benchOp func(c *client, key, value []byte) error

func benchOpOf(name string, ts *atomic.Uint64) (benchOp, error) {
	switch name {
	case benchRawPut:
		return func(c *client, key, value []byte) error {
			return c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
				ctx, cancel := c.ctx()
				defer cancel()
				resp, err := c.kv.RawPut(ctx, &kvrpcpb.RawPutRequest{Context: rctx, Key: key, Value: value})
				if err != nil {
					return nil, err
				}
				return resp.RegionError, rawError(resp.Error)
			})
		}, nil
	case benchRawGet:
		return func(c *client, key, _ []byte) error {
			return c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
				ctx, cancel := c.ctx()
				defer cancel()
				resp, err := c.kv.RawGet(ctx, &kvrpcpb.RawGetRequest{Context: rctx, Key: key})
				if err != nil {
					return nil, err
				}
				return resp.RegionError, rawError(resp.Error)
			})
		}, nil
	case benchTxnPut:
		return func(c *client, key, value []byte) error {
			startTs := ts.Add(2) - 1
			keyErrs, err := c.putKey(key, value, startTs, startTs+1, 3000)
			if err == nil && len(keyErrs) > 0 {
				err = errors.New(keyErrs[0])
			}
			return err
		}, nil
	}
	return nil, errors.Errorf("unknown bench op %q", name)
}

func benchCommandFunc(cmd *cobra.Command, _ []string) error {
	opName, _ := cmd.Flags().GetString("op")
	count, _ := cmd.Flags().GetInt("count")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	rate, _ := cmd.Flags().GetFloat64("rate")
	valueSize, _ := cmd.Flags().GetInt("value-size")
	prefix, _ := cmd.Flags().GetString("key-prefix")
	if count <= 0 || concurrency <= 0 || valueSize <= 0 {
		return errors.New("count, concurrency and value-size must be positive")
	}
	ts := atomic.NewUint64(nowTs())
	op, err := benchOpOf(opName, ts)
	if err != nil {
		return err
	}

	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	// Warm the region cache so workers share it read only.
	if _, err := c.loadRegions(); err != nil {
		return err
	}

	var bucket *ratelimit.Bucket
	if rate > 0 {
		bucket = ratelimit.NewBucketWithRate(rate, int64(concurrency))
	}
	value := bytes.Repeat([]byte{'v'}, valueSize)
	latencies := make([]float64, count)
	failed := make([]bool, count)
	next := atomic.NewInt64(-1)

	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < concurrency; w++ {
		// Each worker routes with its own copy of the region cache.
		wc := *c
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Inc())
				if i >= count {
					return
				}
				if bucket != nil {
					bucket.Wait(1)
				}
				key := []byte(fmt.Sprintf("%s%010d", prefix, i))
				begin := time.Now()
				err := op(&wc, key, value)
				latencies[i] = float64(time.Since(begin)) / float64(time.Millisecond)
				failed[i] = err != nil
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	result := &BenchResult{
		Op:          opName,
		Count:       count,
		Concurrency: concurrency,
		Duration:    elapsed.String(),
		QPS:         float64(count) / elapsed.Seconds(),
	}
	for _, f := range failed {
		if f {
			result.Errors++
		}
	}
	if err := summarize(result, latencies); err != nil {
		return err
	}
	return printResult(cmd, result)
}

func summarize(result *BenchResult, latencies []float64) error {
	data := stats.Float64Data(latencies)
	var err error
	if result.Min, err = data.Min(); err != nil {
		return errors.WithStack(err)
	}
	if result.Max, err = data.Max(); err != nil {
		return errors.WithStack(err)
	}
	if result.Mean, err = data.Mean(); err != nil {
		return errors.WithStack(err)
	}
	if result.Median, err = data.Median(); err != nil {
		return errors.WithStack(err)
	}
	if result.P95, err = data.Percentile(95); err != nil {
		return errors.WithStack(err)
	}
	if result.P99, err = data.Percentile(99); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
