// Package resp serves the raw API over the Redis protocol, so redis-cli and redis client libraries can read and write
// raw keys. Keys are routed to the region containing them before every call.
package resp

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/talent-plan/txnkv/kv/server"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/tidwall/redcon"
	"go.uber.org/zap"
)

// Routing is retried when a region changed between lookup and execution.
const maxRouteAttempts = 3

const defaultScanLimit = 100

type Gateway struct {
	addr   string
	server *server.Server
	rs     *regionstore.RegionStorage

	mu  sync.Mutex
	srv *redcon.Server
}

func NewGateway(addr string, server *server.Server, rs *regionstore.RegionStorage) *Gateway {
	return &Gateway{addr: addr, server: server, rs: rs}
}

// Start listens on the gateway address and serves in the background. It returns once the listener is up.
func (g *Gateway) Start() error {
	srv := redcon.NewServer(g.addr, g.handle,
		func(conn redcon.Conn) bool {
			log.Debugf("resp: accept %s", conn.RemoteAddr())
			return true
		},
		func(conn redcon.Conn, err error) {
			if err != nil {
				log.Debugf("resp: connection %s closed: %v", conn.RemoteAddr(), err)
			}
		})
	signal := make(chan error, 1)
	go func() {
		if err := srv.ListenServeAndSignal(signal); err != nil {
			log.With(zap.String("addr", g.addr), zap.Error(err)).Warn("resp gateway stopped")
		}
	}()
	if err := <-signal; err != nil {
		return errors.Annotatef(err, "listen resp gateway on %s", g.addr)
	}
	g.mu.Lock()
	g.srv = srv
	g.mu.Unlock()
	log.Infof("resp gateway listening on %s", g.addr)
	return nil
}

func (g *Gateway) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.srv == nil {
		return nil
	}
	err := g.srv.Close()
	g.srv = nil
	return err
}

func (g *Gateway) handle(conn redcon.Conn, cmd redcon.Command) {
	name := strings.ToLower(string(cmd.Args[0]))
	args := cmd.Args[1:]
	switch name {
	case "ping":
		if len(args) > 0 {
			conn.WriteBulk(args[0])
			return
		}
		conn.WriteString("PONG")
	case "quit":
		conn.WriteString("OK")
		conn.Close()
	case "get":
		if len(args) != 1 {
			wrongArgs(conn, name)
			return
		}
		value, err := g.get(args[0])
		if err != nil {
			writeErr(conn, err)
			return
		}
		if value == nil {
			conn.WriteNull()
			return
		}
		conn.WriteBulk(value)
	case "set":
		if len(args) != 2 {
			wrongArgs(conn, name)
			return
		}
		if err := g.put(args[0], args[1]); err != nil {
			writeErr(conn, err)
			return
		}
		conn.WriteString("OK")
	case "del":
		if len(args) == 0 {
			wrongArgs(conn, name)
			return
		}
		n, err := g.del(args)
		if err != nil {
			writeErr(conn, err)
			return
		}
		conn.WriteInt(n)
	case "exists":
		if len(args) == 0 {
			wrongArgs(conn, name)
			return
		}
		n, err := g.exists(args)
		if err != nil {
			writeErr(conn, err)
			return
		}
		conn.WriteInt(n)
	case "scan":
		if len(args) < 1 || len(args) > 2 {
			wrongArgs(conn, name)
			return
		}
		limit := defaultScanLimit
		if len(args) == 2 {
			n, err := strconv.Atoi(string(args[1]))
			if err != nil || n < 0 {
				conn.WriteError("ERR limit is not a non-negative integer")
				return
			}
			limit = n
		}
		pairs, err := g.scan(args[0], limit)
		if err != nil {
			writeErr(conn, err)
			return
		}
		conn.WriteArray(len(pairs) * 2)
		for _, pair := range pairs {
			conn.WriteBulk(pair.Key)
			conn.WriteBulk(pair.Value)
		}
	default:
		conn.WriteError("ERR unknown command '" + name + "'")
	}
}

func wrongArgs(conn redcon.Conn, name string) {
	conn.WriteError("ERR wrong number of arguments for '" + name + "' command")
}

func writeErr(conn redcon.Conn, err error) {
	conn.WriteError("ERR " + err.Error())
}

// routeError carries a region error which survived all routing attempts.
type routeError struct {
	err *errorpb.Error
}

func (e *routeError) Error() string {
	return "region error: " + e.err.String()
}

// route calls fn with a context for the region holding key, looking the region up again while fn reports a
// region error.
func (g *Gateway) route(key []byte, fn func(ctx *kvrpcpb.Context, info *regionstore.RegionInfo) (*errorpb.Error, error)) error {
	var last *errorpb.Error
	for i := 0; i < maxRouteAttempts; i++ {
		info := g.rs.RegionForKey(key)
		if info == nil {
			return errors.Errorf("no region for key %q", key)
		}
		ctx := &kvrpcpb.Context{
			RegionId:    info.Region.Id,
			RegionEpoch: info.Region.RegionEpoch,
			Peer:        info.Leader,
		}
		regionErr, err := fn(ctx, info)
		if err != nil {
			return err
		}
		if regionErr == nil {
			return nil
		}
		last = regionErr
	}
	return &routeError{err: last}
}

func keyError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func (g *Gateway) get(key []byte) (value []byte, err error) {
	err = g.route(key, func(ctx *kvrpcpb.Context, _ *regionstore.RegionInfo) (*errorpb.Error, error) {
		resp, err := g.server.RawGet(context.Background(), &kvrpcpb.RawGetRequest{Context: ctx, Key: key})
		if err != nil {
			return nil, err
		}
		if resp.RegionError != nil {
			return resp.RegionError, nil
		}
		value = resp.Value
		return nil, keyError(resp.Error)
	})
	return
}

func (g *Gateway) put(key, value []byte) error {
	return g.route(key, func(ctx *kvrpcpb.Context, _ *regionstore.RegionInfo) (*errorpb.Error, error) {
		resp, err := g.server.RawPut(context.Background(), &kvrpcpb.RawPutRequest{Context: ctx, Key: key, Value: value})
		if err != nil {
			return nil, err
		}
		return resp.RegionError, keyError(resp.Error)
	})
}

func (g *Gateway) exists(keys [][]byte) (int, error) {
	n := 0
	for _, key := range keys {
		value, err := g.get(key)
		if err != nil {
			return 0, err
		}
		if value != nil {
			n++
		}
	}
	return n, nil
}

// del removes keys and counts the ones that existed.
func (g *Gateway) del(keys [][]byte) (int, error) {
	n := 0
	for _, key := range keys {
		value, err := g.get(key)
		if err != nil {
			return n, err
		}
		if value == nil {
			continue
		}
		err = g.route(key, func(ctx *kvrpcpb.Context, _ *regionstore.RegionInfo) (*errorpb.Error, error) {
			resp, err := g.server.RawDelete(context.Background(), &kvrpcpb.RawDeleteRequest{Context: ctx, Key: key})
			if err != nil {
				return nil, err
			}
			return resp.RegionError, keyError(resp.Error)
		})
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// scan collects up to limit pairs from start on, moving to the next region when one is exhausted.
func (g *Gateway) scan(start []byte, limit int) ([]*kvrpcpb.KvPair, error) {
	var pairs []*kvrpcpb.KvPair
	cur := start
	for len(pairs) < limit {
		var (
			batch  []*kvrpcpb.KvPair
			endKey []byte
		)
		err := g.route(cur, func(ctx *kvrpcpb.Context, info *regionstore.RegionInfo) (*errorpb.Error, error) {
			resp, err := g.server.RawScan(context.Background(), &kvrpcpb.RawScanRequest{
				Context:  ctx,
				StartKey: cur,
				Limit:    uint32(limit - len(pairs)),
			})
			if err != nil {
				return nil, err
			}
			if resp.RegionError != nil {
				return resp.RegionError, nil
			}
			batch, endKey = resp.Kvs, info.Region.EndKey
			return nil, keyError(resp.Error)
		})
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, batch...)
		if len(endKey) == 0 {
			break
		}
		cur = endKey
	}
	return pairs, nil
}
