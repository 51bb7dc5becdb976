package resp

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/talent-plan/txnkv/kv/server"
	"github.com/talent-plan/txnkv/kv/storage"
)

type client struct {
	conn net.Conn
	r    *bufio.Reader
}

func (c *client) do(t *testing.T, args ...string) interface{} {
	buf := []byte("*" + strconv.Itoa(len(args)) + "\r\n")
	for _, arg := range args {
		buf = append(buf, "$"+strconv.Itoa(len(arg))+"\r\n"+arg+"\r\n"...)
	}
	_, err := c.conn.Write(buf)
	require.Nil(t, err)
	reply, err := c.read()
	require.Nil(t, err)
	return reply
}

type respError string

// read parses one reply: strings and bulks as string, integers as int, nil bulks as nil, arrays as []interface{}.
func (c *client) read() (interface{}, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if len(line) < 3 {
		return nil, fmt.Errorf("short reply %q", line)
	}
	body := line[1 : len(line)-2]
	switch line[0] {
	case '+':
		return body, nil
	case '-':
		return respError(body), nil
	case ':':
		return strconv.Atoi(body)
	case '$':
		n, err := strconv.Atoi(body)
		if err != nil || n < 0 {
			return nil, err
		}
		data := make([]byte, n+2)
		if _, err := io.ReadFull(c.r, data); err != nil {
			return nil, err
		}
		return string(data[:n]), nil
	case '*':
		n, err := strconv.Atoi(body)
		if err != nil {
			return nil, err
		}
		items := make([]interface{}, 0, n)
		for i := 0; i < n; i++ {
			item, err := c.read()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}
	return nil, fmt.Errorf("unknown reply %q", line)
}

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(t, err)
	addr := l.Addr().String()
	require.Nil(t, l.Close())
	return addr
}

func startGateway(t *testing.T) (*client, *regionstore.RegionStorage, func()) {
	rs := regionstore.NewRegionStorage(storage.NewMemStorage(), config.NewTestConfig())
	require.Nil(t, rs.Start())
	gw := NewGateway(freeAddr(t), server.NewServer(rs), rs)
	require.Nil(t, gw.Start())

	conn, err := net.DialTimeout("tcp", gw.addr, 3*time.Second)
	require.Nil(t, err)
	c := &client{conn: conn, r: bufio.NewReader(conn)}
	return c, rs, func() {
		conn.Close()
		gw.Stop()
		rs.Stop()
	}
}

func TestGatewayCommands(t *testing.T) {
	c, _, stop := startGateway(t)
	defer stop()

	assert.Equal(t, "PONG", c.do(t, "PING"))
	assert.Equal(t, "hello", c.do(t, "ping", "hello"))

	assert.Nil(t, c.do(t, "GET", "k1"))
	assert.Equal(t, "OK", c.do(t, "SET", "k1", "v1"))
	assert.Equal(t, "OK", c.do(t, "set", "k2", "v2"))
	assert.Equal(t, "v1", c.do(t, "GET", "k1"))
	assert.Equal(t, 2, c.do(t, "EXISTS", "k1", "k2", "k3"))

	assert.Equal(t, []interface{}{"k1", "v1", "k2", "v2"}, c.do(t, "SCAN", "k"))
	assert.Equal(t, []interface{}{"k2", "v2"}, c.do(t, "SCAN", "k2", "5"))
	assert.Equal(t, []interface{}{"k1", "v1"}, c.do(t, "SCAN", "", "1"))

	assert.Equal(t, 1, c.do(t, "DEL", "k1", "k3"))
	assert.Nil(t, c.do(t, "GET", "k1"))
	assert.Equal(t, 1, c.do(t, "EXISTS", "k2"))

	assert.Equal(t, "OK", c.do(t, "QUIT"))
}

func TestGatewayErrors(t *testing.T) {
	c, _, stop := startGateway(t)
	defer stop()

	assert.IsType(t, respError(""), c.do(t, "GET"))
	assert.IsType(t, respError(""), c.do(t, "SET", "k"))
	assert.IsType(t, respError(""), c.do(t, "DEL"))
	assert.IsType(t, respError(""), c.do(t, "SCAN", "a", "-1"))
	assert.IsType(t, respError(""), c.do(t, "HSET", "h", "f", "v"))
	// Empty keys and values are refused by the raw API.
	assert.IsType(t, respError(""), c.do(t, "SET", "", "v"))
	assert.IsType(t, respError(""), c.do(t, "SET", "k", ""))
	// The connection is still usable.
	assert.Equal(t, "PONG", c.do(t, "PING"))
}

func TestGatewayScanAcrossRegions(t *testing.T) {
	c, rs, stop := startGateway(t)
	defer stop()

	for _, key := range []string{"a", "b", "c", "d", "e"} {
		require.Equal(t, "OK", c.do(t, "SET", key, key+key))
	}
	first := rs.Regions()[0]
	_, right, err := rs.SplitRegion(first.Region.Id, first.Region.RegionEpoch, []byte("c"))
	require.Nil(t, err)
	_, _, err = rs.SplitRegion(right.Region.Id, right.Region.RegionEpoch, []byte("e"))
	require.Nil(t, err)
	require.Len(t, rs.Regions(), 3)

	assert.Equal(t, []interface{}{"b", "bb", "c", "cc", "d", "dd", "e", "ee"}, c.do(t, "SCAN", "b"))
	assert.Equal(t, []interface{}{"a", "aa", "b", "bb", "c", "cc"}, c.do(t, "SCAN", "", "3"))
	assert.Equal(t, []interface{}{}, c.do(t, "SCAN", "f"))

	// Writes are routed to the new regions.
	assert.Equal(t, "OK", c.do(t, "SET", "f", "ff"))
	assert.Equal(t, "ff", c.do(t, "GET", "f"))
	assert.Equal(t, 2, c.do(t, "DEL", "a", "e"))
	assert.Equal(t, []interface{}{"b", "bb", "c", "cc", "d", "dd", "f", "ff"}, c.do(t, "SCAN", ""))
}
