package server

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/transaction/commands"
	"github.com/talent-plan/txnkv/kv/transaction/latches"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/txnkvpb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ txnkvpb.TxnKvServer = new(Server)

// Server is a txnkv server, it 'faces outwards', sending and receiving messages from clients.
type Server struct {
	storage storage.Storage

	// Serializes commands when storage runs them outside of region loops.
	Latches *latches.Latches
}

func NewServer(storage storage.Storage) *Server {
	return &Server{
		storage: storage,
		Latches: latches.NewLatches(),
	}
}

// Storage returns the storage the server runs requests against.
func (server *Server) Storage() storage.Storage {
	return server.storage
}

// exec runs fn against the storage, inside the addressed region when the storage has regions.
func (server *Server) exec(ctx *kvrpcpb.Context, keys [][]byte, fn storage.ExecFunc) error {
	if exec, ok := server.storage.(storage.Executor); ok {
		return exec.Exec(ctx, keys, fn)
	}
	reader, err := server.storage.Reader(ctx)
	if err != nil {
		return err
	}
	modifies, err := fn(nil, reader)
	reader.Close()
	if err != nil || len(modifies) == 0 {
		return err
	}
	return server.storage.Write(ctx, modifies)
}

// runCommand runs cmd and records it. Internal failures become gRPC errors with codes.Internal.
func (server *Server) runCommand(ctx context.Context, method string, cmd commands.Command) (interface{}, error) {
	if span := opentracing.SpanFromContext(ctx); span != nil {
		span = opentracing.StartSpan(method, opentracing.ChildOf(span.Context()))
		defer span.Finish()
	}
	start := time.Now()
	resp, err := commands.RunCommand(cmd, server.storage, server.Latches)
	commandDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		commandCounter.WithLabelValues(method, resultInternal).Inc()
		log.With(zap.String("method", method), zap.Error(err)).Error("command failed")
		return nil, status.Error(codes.Internal, err.Error())
	}
	commandCounter.WithLabelValues(method, resultOf(resp)).Inc()
	return resp, nil
}

// regionErrorOf returns the region error wrapped in err, or nil.
func regionErrorOf(err error) *errorpb.Error {
	if regionErr, ok := err.(*storage.RegionError); ok {
		return regionErr.RequestErr
	}
	return nil
}

// internalError logs and converts an error from the storage layer.
func internalError(method string, err error) error {
	commandCounter.WithLabelValues(method, resultInternal).Inc()
	log.With(zap.String("method", method), zap.Error(err)).Error("request failed")
	return status.Error(codes.Internal, err.Error())
}
