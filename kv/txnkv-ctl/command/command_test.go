package command

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/talent-plan/txnkv/kv/server"
	"github.com/talent-plan/txnkv/kv/server/api"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/proto/pkg/txnkvpb"
	"google.golang.org/grpc"
)

type store struct {
	global []string
	stop   func()
}

func startStore(t *testing.T) *store {
	conf := config.NewTestConfig()
	rs := regionstore.NewRegionStorage(storage.NewMemStorage(), conf)
	require.Nil(t, rs.Start())

	grpcServer := grpc.NewServer()
	txnkvpb.RegisterTxnKvServer(grpcServer, server.NewServer(rs))
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(t, err)
	go grpcServer.Serve(l)

	status := httptest.NewServer(api.NewHandler(rs, conf))
	return &store{
		global: []string{"--addr", l.Addr().String(), "--status-addr", status.URL},
		stop: func() {
			status.Close()
			grpcServer.Stop()
			rs.Stop()
		},
	}
}

// run executes one command line and returns its output.
func (s *store) run(t *testing.T, args ...string) (string, error) {
	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOutput(buf)
	root.SetArgs(append(args, s.global...))
	err := root.Execute()
	return buf.String(), err
}

func (s *store) runJSON(t *testing.T, out interface{}, args ...string) {
	output, err := s.run(t, args...)
	require.Nil(t, err, output)
	require.Nil(t, json.Unmarshal([]byte(output), out), output)
}

func TestRawCommands(t *testing.T) {
	s := startStore(t)
	defer s.stop()

	var msg string
	s.runJSON(t, &msg, "raw", "put", "k1", "v1")
	assert.Equal(t, "Success!", msg)
	s.runJSON(t, &msg, "raw", "put", "k2", "v2")

	var pair Pair
	s.runJSON(t, &pair, "raw", "get", "k1")
	assert.Equal(t, Pair{Key: "k1", Value: "v1"}, pair)

	var pairs []*Pair
	s.runJSON(t, &pairs, "raw", "scan", "k", "--limit", "1")
	assert.Equal(t, []*Pair{{Key: "k1", Value: "v1"}}, pairs)
	pairs = nil
	s.runJSON(t, &pairs, "raw", "scan", "--key-only")
	assert.Equal(t, []*Pair{{Key: "k1"}, {Key: "k2"}}, pairs)

	s.runJSON(t, &msg, "raw", "delete", "k1")
	_, err := s.run(t, "raw", "get", "k1")
	assert.NotNil(t, err)

	// Empty values are refused by the store.
	_, err = s.run(t, "raw", "put", "k3", "")
	assert.NotNil(t, err)
}

func TestTxnCommands(t *testing.T) {
	s := startStore(t)
	defer s.stop()

	var result TxnResult
	s.runJSON(t, &result, "txn", "put", "a", "1", "--start-version", "10", "--commit-version", "20")
	assert.Equal(t, TxnResult{StartVersion: 10, CommitVersion: 20}, result)

	var pair Pair
	s.runJSON(t, &pair, "txn", "get", "a")
	assert.Equal(t, "1", pair.Value)
	_, err := s.run(t, "txn", "get", "a", "--version", "15")
	assert.NotNil(t, err)

	// A write older than the committed one conflicts.
	result = TxnResult{}
	s.runJSON(t, &result, "txn", "put", "a", "2", "--start-version", "15")
	assert.Len(t, result.Errors, 1)
	assert.Zero(t, result.CommitVersion)

	// Leave a lock behind by prewriting through the API of the put command with a bad commit.
	result = TxnResult{}
	s.runJSON(t, &result, "txn", "put", "b", "1", "--start-version", "30", "--commit-version", "30")
	assert.Len(t, result.Errors, 1)

	var locks []*Lock
	s.runJSON(t, &locks, "txn", "scan-lock", "--max-version", "40")
	require.Len(t, locks, 1)
	assert.Equal(t, &Lock{Key: "b", Primary: "b", Version: 30, TTL: 3000, Kind: "Put"}, locks[0])

	pair = Pair{}
	s.runJSON(t, &pair, "txn", "get", "b", "--version", "35")
	assert.True(t, strings.Contains(pair.Error, "locked"), pair.Error)

	result = TxnResult{}
	s.runJSON(t, &result, "txn", "resolve", "30", "31")
	assert.Empty(t, result.Errors)
	s.runJSON(t, &locks, "txn", "scan-lock")
	assert.Len(t, locks, 0)

	var pairs []*Pair
	s.runJSON(t, &pairs, "txn", "scan", "--version", "40")
	assert.Equal(t, []*Pair{{Key: "a", Value: "1"}, {Key: "b", Value: "1"}}, pairs)

	// A lock which outlived its ttl is cleaned up.
	result = TxnResult{}
	s.runJSON(t, &result, "txn", "put", "c", "1", "--start-version", strconv.FormatUint(1<<physicalShiftBits, 10),
		"--commit-version", strconv.FormatUint(1<<physicalShiftBits, 10), "--ttl", "1")
	require.Len(t, result.Errors, 1)
	result = TxnResult{}
	s.runJSON(t, &result, "txn", "cleanup", strconv.FormatUint(1<<physicalShiftBits, 10), "c")
	assert.Empty(t, result.Errors)
	s.runJSON(t, &locks, "txn", "scan-lock")
	assert.Len(t, locks, 0)

	result = TxnResult{}
	s.runJSON(t, &result, "txn", "rollback", "50", "d")
	assert.Empty(t, result.Errors)
	result = TxnResult{}
	s.runJSON(t, &result, "txn", "put", "d", "1", "--start-version", "50")
	assert.Len(t, result.Errors, 1)

	_, err = s.run(t, "txn", "rollback", "x", "d")
	assert.NotNil(t, err)
}

func TestRegionCommands(t *testing.T) {
	s := startStore(t)
	defer s.stop()

	var regions api.RegionsInfo
	s.runJSON(t, &regions, "region")
	require.Equal(t, 1, regions.Count)
	id := strconv.FormatUint(regions.Regions[0].ID, 10)

	var split api.SplitOutput
	s.runJSON(t, &split, "region", "split", id, "m")
	assert.Equal(t, "6d", split.Left.EndKey)
	assert.Equal(t, "6d", split.Right.StartKey)

	// Commands route keys on both sides of the split.
	var msg string
	s.runJSON(t, &msg, "raw", "put", "a", "1")
	s.runJSON(t, &msg, "raw", "put", "z", "2")
	var pairs []*Pair
	s.runJSON(t, &pairs, "raw", "scan")
	assert.Equal(t, []*Pair{{Key: "a", Value: "1"}, {Key: "z", Value: "2"}}, pairs)
	var result TxnResult
	s.runJSON(t, &result, "txn", "put", "y", "1", "--start-version", "10", "--commit-version", "30")
	s.runJSON(t, &result, "txn", "put", "b", "1", "--start-version", "20", "--commit-version", "20")
	var locks []*Lock
	s.runJSON(t, &locks, "txn", "scan-lock")
	assert.Len(t, locks, 1)

	var region api.RegionInfo
	s.runJSON(t, &region, "region", "add-peer", id, "2")
	assert.Len(t, region.Peers, 2)
	var peerID uint64
	for _, p := range region.Peers {
		if p.StoreId == 2 {
			peerID = p.Id
		}
	}
	require.NotZero(t, peerID)
	s.runJSON(t, &region, "region", "remove-peer", id, strconv.FormatUint(peerID, 10))
	assert.Len(t, region.Peers, 1)

	_, err := s.run(t, "region", "999")
	assert.NotNil(t, err)
	_, err = s.run(t, "region", "abc")
	assert.NotNil(t, err)
}

func TestStoreAndFormat(t *testing.T) {
	s := startStore(t)
	defer s.stop()

	var stats api.StoreStats
	s.runJSON(t, &stats, "store")
	assert.Equal(t, uint64(1), stats.StoreID)

	output, err := s.run(t, "--format", "yaml", "raw", "put", "k", "v")
	require.Nil(t, err)
	output, err = s.run(t, "--format", "yaml", "raw", "get", "k")
	require.Nil(t, err)
	var pair Pair
	require.Nil(t, yaml.Unmarshal([]byte(output), &pair))
	assert.Equal(t, Pair{Key: "k", Value: "v"}, pair)

	_, err = s.run(t, "--format", "xml", "store")
	assert.NotNil(t, err)
}

func TestRunLine(t *testing.T) {
	s := startStore(t)
	defer s.stop()

	buf := new(bytes.Buffer)
	require.Nil(t, RunLine(buf, s.global, `raw put "a key" 'a value'`))
	buf.Reset()
	require.Nil(t, RunLine(buf, s.global, `raw get "a key"`))
	var pair Pair
	require.Nil(t, json.Unmarshal(buf.Bytes(), &pair))
	assert.Equal(t, Pair{Key: "a key", Value: "a value"}, pair)

	assert.Nil(t, RunLine(buf, s.global, "   "))
	assert.NotNil(t, RunLine(buf, s.global, "shell"))
	assert.NotNil(t, RunLine(buf, s.global, `raw get "unterminated`))
}

func TestBench(t *testing.T) {
	s := startStore(t)
	defer s.stop()

	for _, op := range []string{benchRawPut, benchRawGet, benchTxnPut} {
		var result BenchResult
		s.runJSON(t, &result, "bench", "--op", op, "--count", "50", "--concurrency", "4")
		assert.Equal(t, 50, result.Count, op)
		assert.Zero(t, result.Errors, op)
		assert.True(t, result.Min <= result.Median && result.Median <= result.Max, op)
	}

	var result BenchResult
	s.runJSON(t, &result, "bench", "--count", "10", "--concurrency", "2", "--rate", "1000")
	assert.Equal(t, 10, result.Count)

	_, err := s.run(t, "bench", "--op", "scan")
	assert.NotNil(t, err)
}
