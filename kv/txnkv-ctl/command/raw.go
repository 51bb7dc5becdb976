package command

import (
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/talent-plan/txnkv/kv/server/api"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// Pair is the output form of a key value pair.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewRawCommand returns the raw subcommand of the root command.
func NewRawCommand() *cobra.Command {
	m := &cobra.Command{
		Use:   "raw <subcommand>",
		Short: "read and write raw keys",
	}
	m.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "get the value of a raw key",
		Args:  cobra.ExactArgs(1),
		RunE:  rawGetCommandFunc,
	})
	m.AddCommand(&cobra.Command{
		Use:   "put <key> <value>",
		Short: "put a raw key",
		Args:  cobra.ExactArgs(2),
		RunE:  rawPutCommandFunc,
	})
	m.AddCommand(&cobra.Command{
		Use:   "delete <key>",
		Short: "delete a raw key",
		Args:  cobra.ExactArgs(1),
		RunE:  rawDeleteCommandFunc,
	})
	scan := &cobra.Command{
		Use:   "scan [start-key]",
		Short: "scan raw keys from start-key on",
		Args:  cobra.MaximumNArgs(1),
		RunE:  rawScanCommandFunc,
	}
	scan.Flags().Uint32("limit", 10, "max number of pairs")
	scan.Flags().Bool("key-only", false, "omit values")
	m.AddCommand(scan)
	return m
}

func rawError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func rawGetCommandFunc(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	key := []byte(args[0])
	var resp *kvrpcpb.RawGetResponse
	err = c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		var err error
		resp, err = c.kv.RawGet(ctx, &kvrpcpb.RawGetRequest{Context: rctx, Key: key})
		if err != nil {
			return nil, err
		}
		return resp.RegionError, rawError(resp.Error)
	})
	if err != nil {
		return err
	}
	if resp.NotFound {
		return errors.Errorf("key %q not found", key)
	}
	return printResult(cmd, &Pair{Key: args[0], Value: string(resp.Value)})
}

func rawPutCommandFunc(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	key := []byte(args[0])
	err = c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		resp, err := c.kv.RawPut(ctx, &kvrpcpb.RawPutRequest{Context: rctx, Key: key, Value: []byte(args[1])})
		if err != nil {
			return nil, err
		}
		return resp.RegionError, rawError(resp.Error)
	})
	if err != nil {
		return err
	}
	return printResult(cmd, "Success!")
}

func rawDeleteCommandFunc(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	key := []byte(args[0])
	err = c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		resp, err := c.kv.RawDelete(ctx, &kvrpcpb.RawDeleteRequest{Context: rctx, Key: key})
		if err != nil {
			return nil, err
		}
		return resp.RegionError, rawError(resp.Error)
	})
	if err != nil {
		return err
	}
	return printResult(cmd, "Success!")
}

func rawScanCommandFunc(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetUint32("limit")
	keyOnly, _ := cmd.Flags().GetBool("key-only")
	var start []byte
	if len(args) > 0 {
		start = []byte(args[0])
	}
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	pairs, err := c.scanRegions(start, limit, func(rctx *kvrpcpb.Context, start []byte, limit uint32) ([]*kvrpcpb.KvPair, *errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		resp, err := c.kv.RawScan(ctx, &kvrpcpb.RawScanRequest{Context: rctx, StartKey: start, Limit: limit, KeyOnly: keyOnly})
		if err != nil {
			return nil, nil, err
		}
		return resp.Kvs, resp.RegionError, rawError(resp.Error)
	})
	if err != nil {
		return err
	}
	return printResult(cmd, toPairs(pairs))
}

type scanFunc func(ctx *kvrpcpb.Context, start []byte, limit uint32) ([]*kvrpcpb.KvPair, *errorpb.Error, error)

// scanRegions runs scan region by region from start on until limit pairs are collected or the
// keyspace ends.
func (c *client) scanRegions(start []byte, limit uint32, scan scanFunc) ([]*kvrpcpb.KvPair, error) {
	var pairs []*kvrpcpb.KvPair
	cur := start
	for uint32(len(pairs)) < limit {
		var (
			batch []*kvrpcpb.KvPair
			end   []byte
		)
		err := c.route(cur, func(rctx *kvrpcpb.Context, region *api.RegionInfo) (*errorpb.Error, error) {
			kvs, regionErr, err := scan(rctx, cur, limit-uint32(len(pairs)))
			if err != nil || regionErr != nil {
				return regionErr, err
			}
			_, regionEnd, err := regionRange(region)
			batch, end = kvs, regionEnd
			return nil, err
		})
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, batch...)
		if len(end) == 0 {
			break
		}
		cur = end
	}
	return pairs, nil
}

func toPairs(kvs []*kvrpcpb.KvPair) []*Pair {
	pairs := make([]*Pair, 0, len(kvs))
	for _, kv := range kvs {
		pairs = append(pairs, &Pair{Key: string(kv.Key), Value: string(kv.Value), Error: keyErrorString(kv.Error)})
	}
	return pairs
}
