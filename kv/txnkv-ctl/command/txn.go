package command

import (
	"math"
	"time"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/talent-plan/txnkv/kv/server/api"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

const physicalShiftBits = 18

// Lock is the output form of a lock.
type Lock struct {
	Key     string `json:"key"`
	Primary string `json:"primary"`
	Version uint64 `json:"version"`
	TTL     uint64 `json:"ttl"`
	Kind    string `json:"kind"`
}

// TxnResult is the output of writing transactional commands.
type TxnResult struct {
	StartVersion  uint64   `json:"start_version,omitempty"`
	CommitVersion uint64   `json:"commit_version,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// NewTxnCommand returns the txn subcommand of the root command.
func NewTxnCommand() *cobra.Command {
	m := &cobra.Command{
		Use:   "txn <subcommand>",
		Short: "read and repair transactional data",
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "read a key at a version",
		Args:  cobra.ExactArgs(1),
		RunE:  txnGetCommandFunc,
	}
	get.Flags().Uint64("version", 0, "read version, latest when 0")
	m.AddCommand(get)

	scan := &cobra.Command{
		Use:   "scan [start-key]",
		Short: "scan keys at a version",
		Args:  cobra.MaximumNArgs(1),
		RunE:  txnScanCommandFunc,
	}
	scan.Flags().Uint64("version", 0, "read version, latest when 0")
	scan.Flags().Uint32("limit", 10, "max number of pairs")
	scan.Flags().Bool("key-only", false, "omit values")
	m.AddCommand(scan)

	put := &cobra.Command{
		Use:   "put <key> <value>",
		Short: "write a key in a single key transaction",
		Args:  cobra.ExactArgs(2),
		RunE:  txnPutCommandFunc,
	}
	put.Flags().Uint64("start-version", 0, "start version, now when 0")
	put.Flags().Uint64("commit-version", 0, "commit version, start version + 1 when 0")
	put.Flags().Uint64("ttl", 3000, "lock ttl in milliseconds")
	m.AddCommand(put)

	scanLock := &cobra.Command{
		Use:   "scan-lock [start-key]",
		Short: "list locks started at or before a version",
		Args:  cobra.MaximumNArgs(1),
		RunE:  txnScanLockCommandFunc,
	}
	scanLock.Flags().Uint64("max-version", 0, "max lock version, latest when 0")
	scanLock.Flags().Uint32("limit", 0, "max number of locks, unlimited when 0")
	m.AddCommand(scanLock)

	rollback := &cobra.Command{
		Use:   "rollback <start-version> <key>...",
		Short: "roll back keys of a transaction",
		Args:  cobra.MinimumNArgs(2),
		RunE:  txnRollbackCommandFunc,
	}
	m.AddCommand(rollback)

	cleanup := &cobra.Command{
		Use:   "cleanup <start-version> <primary-key>",
		Short: "roll back a transaction whose primary lock expired",
		Args:  cobra.ExactArgs(2),
		RunE:  txnCleanupCommandFunc,
	}
	cleanup.Flags().Uint64("current-ts", 0, "current timestamp, now when 0")
	m.AddCommand(cleanup)

	resolve := &cobra.Command{
		Use:   "resolve <start-version> [commit-version]",
		Short: "commit or, without commit-version, roll back every lock of a transaction",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  txnResolveCommandFunc,
	}
	m.AddCommand(resolve)
	return m
}

// nowTs returns a timestamp whose physical part is the current time in milliseconds.
func nowTs() uint64 {
	return uint64(time.Now().UnixNano()/int64(time.Millisecond)) << physicalShiftBits
}

func versionOrLatest(v uint64) uint64 {
	if v == 0 {
		return math.MaxUint64
	}
	return v
}

func parseVersion(s string) (uint64, error) {
	v, err := parseUint64(s)
	if err != nil || v == 0 {
		return 0, errors.Errorf("invalid version %q", s)
	}
	return v, nil
}

func txnGetCommandFunc(cmd *cobra.Command, args []string) error {
	version, _ := cmd.Flags().GetUint64("version")
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	key := []byte(args[0])
	var resp *kvrpcpb.GetResponse
	err = c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		var err error
		resp, err = c.kv.KvGet(ctx, &kvrpcpb.GetRequest{Context: rctx, Key: key, Version: versionOrLatest(version)})
		if err != nil {
			return nil, err
		}
		return resp.RegionError, nil
	})
	if err != nil {
		return err
	}
	if resp.Error == nil && resp.NotFound {
		return errors.Errorf("key %q not found", key)
	}
	return printResult(cmd, &Pair{Key: args[0], Value: string(resp.Value), Error: keyErrorString(resp.Error)})
}

func txnScanCommandFunc(cmd *cobra.Command, args []string) error {
	version, _ := cmd.Flags().GetUint64("version")
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
		resp, err := c.kv.KvScan(ctx, &kvrpcpb.ScanRequest{
			Context:  rctx,
			StartKey: start,
			Limit:    limit,
			Version:  versionOrLatest(version),
			KeyOnly:  keyOnly,
		})
		if err != nil {
			return nil, nil, err
		}
		return resp.Pairs, resp.RegionError, nil
	})
	if err != nil {
		return err
	}
	return printResult(cmd, toPairs(pairs))
}

func txnPutCommandFunc(cmd *cobra.Command, args []string) error {
	startTs, _ := cmd.Flags().GetUint64("start-version")
	commitTs, _ := cmd.Flags().GetUint64("commit-version")
	ttl, _ := cmd.Flags().GetUint64("ttl")
	if startTs == 0 {
		startTs = nowTs()
	}
	if commitTs == 0 {
		commitTs = startTs + 1
	}
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	keyErrs, err := c.putKey([]byte(args[0]), []byte(args[1]), startTs, commitTs, ttl)
	if err != nil {
		return err
	}
	result := &TxnResult{StartVersion: startTs, Errors: keyErrs}
	if len(keyErrs) == 0 {
		result.CommitVersion = commitTs
	}
	return printResult(cmd, result)
}

// putKey prewrites and commits key as its own primary. Key errors are returned as strings.
func (c *client) putKey(key, value []byte, startTs, commitTs, ttl uint64) ([]string, error) {
	var keyErrs []string
	err := c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		resp, err := c.kv.KvPrewrite(ctx, &kvrpcpb.PrewriteRequest{
			Context:      rctx,
			Mutations:    []*kvrpcpb.Mutation{{Op: kvrpcpb.Op_Put, Key: key, Value: value}},
			PrimaryLock:  key,
			StartVersion: startTs,
			LockTtl:      ttl,
		})
		if err != nil || resp.RegionError != nil {
			return regionErrOf(resp), err
		}
		for _, e := range resp.Errors {
			keyErrs = append(keyErrs, keyErrorString(e))
		}
		return nil, nil
	})
	if err != nil || len(keyErrs) > 0 {
		return keyErrs, err
	}
	err = c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		resp, err := c.kv.KvCommit(ctx, &kvrpcpb.CommitRequest{
			Context:       rctx,
			StartVersion:  startTs,
			Keys:          [][]byte{key},
			CommitVersion: commitTs,
		})
		if err != nil {
			return nil, err
		}
		if resp.Error != nil {
			keyErrs = append(keyErrs, keyErrorString(resp.Error))
		}
		return resp.RegionError, nil
	})
	return keyErrs, err
}

func regionErrOf(resp *kvrpcpb.PrewriteResponse) *errorpb.Error {
	if resp == nil {
		return nil
	}
	return resp.RegionError
}

// forRegions calls fn for every region from the one holding start to the end of the keyspace,
// stopping early when fn reports done.
func (c *client) forRegions(start []byte, fn func(rctx *kvrpcpb.Context, start []byte) (done bool, regionErr *errorpb.Error, err error)) error {
	cur := start
	for {
		var (
			done bool
			end  []byte
		)
		err := c.route(cur, func(rctx *kvrpcpb.Context, region *api.RegionInfo) (*errorpb.Error, error) {
			var regionErr *errorpb.Error
			var err error
			done, regionErr, err = fn(rctx, cur)
			if err != nil || regionErr != nil {
				return regionErr, err
			}
			_, end, err = regionRange(region)
			return nil, err
		})
		if err != nil {
			return err
		}
		if done || len(end) == 0 {
			return nil
		}
		cur = end
	}
}

func txnScanLockCommandFunc(cmd *cobra.Command, args []string) error {
	maxVersion, _ := cmd.Flags().GetUint64("max-version")
	limit, _ := cmd.Flags().GetUint32("limit")
	var start []byte
	if len(args) > 0 {
		start = []byte(args[0])
	}
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	locks := make([]*Lock, 0)
	err = c.forRegions(start, func(rctx *kvrpcpb.Context, start []byte) (bool, *errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		req := &kvrpcpb.ScanLockRequest{Context: rctx, MaxVersion: versionOrLatest(maxVersion), StartKey: start}
		if limit > 0 {
			req.Limit = limit - uint32(len(locks))
		}
		resp, err := c.kv.KvScanLock(ctx, req)
		if err != nil {
			return false, nil, err
		}
		if resp.RegionError != nil {
			return false, resp.RegionError, nil
		}
		if resp.Error != nil {
			return false, nil, errors.New(keyErrorString(resp.Error))
		}
		for _, l := range resp.Locks {
			locks = append(locks, &Lock{
				Key:     string(l.Key),
				Primary: string(l.PrimaryLock),
				Version: l.LockVersion,
				TTL:     l.LockTtl,
				Kind:    l.LockType.String(),
			})
		}
		return limit > 0 && uint32(len(locks)) >= limit, nil, nil
	})
	if err != nil {
		return err
	}
	return printResult(cmd, locks)
}

func txnRollbackCommandFunc(cmd *cobra.Command, args []string) error {
	startTs, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	result := &TxnResult{StartVersion: startTs}
	for _, k := range args[1:] {
		key := []byte(k)
		err := c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
			ctx, cancel := c.ctx()
			defer cancel()
			resp, err := c.kv.KvBatchRollback(ctx, &kvrpcpb.BatchRollbackRequest{Context: rctx, StartVersion: startTs, Keys: [][]byte{key}})
			if err != nil {
				return nil, err
			}
			if resp.Error != nil {
				result.Errors = append(result.Errors, keyErrorString(resp.Error))
			}
			return resp.RegionError, nil
		})
		if err != nil {
			return err
		}
	}
	return printResult(cmd, result)
}

func txnCleanupCommandFunc(cmd *cobra.Command, args []string) error {
	startTs, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	currentTs, _ := cmd.Flags().GetUint64("current-ts")
	if currentTs == 0 {
		currentTs = nowTs()
	}
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	key := []byte(args[1])
	result := &TxnResult{StartVersion: startTs}
	err = c.route(key, func(rctx *kvrpcpb.Context, _ *api.RegionInfo) (*errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		resp, err := c.kv.KvCleanup(ctx, &kvrpcpb.CleanupRequest{Context: rctx, Key: key, StartVersion: startTs, CurrentTs: currentTs})
		if err != nil {
			return nil, err
		}
		if resp.Error != nil {
			result.Errors = append(result.Errors, keyErrorString(resp.Error))
		}
		result.CommitVersion = resp.CommitVersion
		return resp.RegionError, nil
	})
	if err != nil {
		return err
	}
	return printResult(cmd, result)
}

func txnResolveCommandFunc(cmd *cobra.Command, args []string) error {
	startTs, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	var commitTs uint64
	if len(args) == 2 {
		if commitTs, err = parseVersion(args[1]); err != nil {
			return err
		}
	}
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	result := &TxnResult{StartVersion: startTs, CommitVersion: commitTs}
	err = c.forRegions(nil, func(rctx *kvrpcpb.Context, _ []byte) (bool, *errorpb.Error, error) {
		ctx, cancel := c.ctx()
		defer cancel()
		resp, err := c.kv.KvResolveLock(ctx, &kvrpcpb.ResolveLockRequest{Context: rctx, StartVersion: startTs, CommitVersion: commitTs})
		if err != nil {
			return false, nil, err
		}
		if resp.Error != nil {
			result.Errors = append(result.Errors, keyErrorString(resp.Error))
		}
		return false, resp.RegionError, nil
	})
	if err != nil {
		return err
	}
	return printResult(cmd, result)
}
