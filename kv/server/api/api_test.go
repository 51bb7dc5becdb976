package api

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/talent-plan/txnkv/kv/storage"
)

type testServer struct {
	t  *testing.T
	rs *regionstore.RegionStorage
	ts *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	conf := config.NewTestConfig()
	rs := regionstore.NewRegionStorage(storage.NewMemStorage(), conf)
	require.Nil(t, rs.Start())
	return &testServer{t: t, rs: rs, ts: httptest.NewServer(NewHandler(rs, conf))}
}

func (s *testServer) close() {
	s.ts.Close()
	s.rs.Stop()
}

// do sends a request with body encoded as JSON and decodes the response into out.
func (s *testServer) do(method, path string, body interface{}, out interface{}) int {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.Nil(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, s.ts.URL+path, reader)
	require.Nil(s.t, err)
	resp, err := http.DefaultClient.Do(req)
	require.Nil(s.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.Nil(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestStatus(t *testing.T) {
	s := newTestServer(t)
	defer s.close()

	var status Status
	require.Equal(t, http.StatusOK, s.do("GET", "/status", nil, &status))
	assert.Equal(t, uint64(1), status.StoreID)
	assert.Equal(t, config.EngineMem, status.Engine)
	assert.Equal(t, 1, status.RegionCount)
	assert.Equal(t, 1, status.LeaderCount)

	var stats StoreStats
	require.Equal(t, http.StatusOK, s.do("GET", apiPrefix+"/store", nil, &stats))
	assert.NotZero(t, stats.MemTotal)
	assert.Empty(t, stats.DBPath)

	require.Equal(t, http.StatusOK, s.do("GET", "/metrics", nil, nil))
}

func TestRegionAdmin(t *testing.T) {
	s := newTestServer(t)
	defer s.close()

	var regions RegionsInfo
	require.Equal(t, http.StatusOK, s.do("GET", apiPrefix+"/regions", nil, &regions))
	require.Equal(t, 1, regions.Count)
	first := regions.Regions[0]
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, "", first.StartKey)

	var missing map[string]interface{}
	assert.Equal(t, http.StatusNotFound, s.do("GET", apiPrefix+"/regions/42", nil, &missing))
	assert.Equal(t, http.StatusBadRequest, s.do("GET", apiPrefix+"/regions/x", nil, &missing))

	var split SplitOutput
	input := SplitInput{SplitKey: hex.EncodeToString([]byte("m"))}
	require.Equal(t, http.StatusOK, s.do("POST", apiPrefix+"/regions/1/split", input, &split))
	assert.Equal(t, uint64(1), split.Left.ID)
	assert.Equal(t, hex.EncodeToString([]byte("m")), split.Left.EndKey)
	assert.Equal(t, hex.EncodeToString([]byte("m")), split.Right.StartKey)
	assert.Equal(t, first.Epoch.Version+1, split.Left.Epoch.Version)

	// The epoch from before the split is stale.
	input = SplitInput{SplitKey: hex.EncodeToString([]byte("c")), Epoch: first.Epoch}
	var stale map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, s.do("POST", apiPrefix+"/regions/1/split", input, &stale))
	assert.Equal(t, "state.region", stale["code"])

	assert.Equal(t, http.StatusBadRequest, s.do("POST", apiPrefix+"/regions/1/split", SplitInput{SplitKey: "zz"}, &stale))

	var region RegionInfo
	require.Equal(t, http.StatusOK, s.do("POST", apiPrefix+"/regions/1/peers", PeerInput{StoreID: 2}, &region))
	require.Len(t, region.Peers, 2)
	added := region.Peers[1]
	assert.Equal(t, uint64(2), added.StoreId)
	assert.Equal(t, split.Left.Epoch.ConfVer+1, region.Epoch.ConfVer)

	require.Equal(t, http.StatusOK, s.do("POST", apiPrefix+"/regions/1/transfer-leader", PeerInput{PeerID: added.Id}, &region))
	assert.Equal(t, added.Id, region.Leader.Id)

	require.Equal(t, http.StatusOK, s.do("POST", apiPrefix+"/regions/1/transfer-leader", PeerInput{PeerID: region.Peers[0].Id}, &region))
	require.Equal(t, http.StatusOK, s.do("DELETE", apiPrefix+"/regions/1/peers/"+strconv.FormatUint(added.Id, 10), nil, &region))
	assert.Len(t, region.Peers, 1)
	assert.Equal(t, http.StatusBadRequest, s.do("DELETE", apiPrefix+"/regions/1/peers/99", nil, &stale))
}

func TestSetLogLevel(t *testing.T) {
	s := newTestServer(t)
	defer s.close()

	var level string
	require.Equal(t, http.StatusOK, s.do("POST", apiPrefix+"/log", "warning", &level))
	assert.Equal(t, "warn", level)
	require.Equal(t, http.StatusOK, s.do("POST", apiPrefix+"/log", "info", &level))
	var bad map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, s.do("POST", apiPrefix+"/log", "loud", &bad))
}
