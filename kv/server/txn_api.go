package server

import (
	"context"

	"github.com/talent-plan/txnkv/kv/transaction/commands"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// The functions below are Server's transactional API. Each request becomes a command, see the commands package.

func (server *Server) KvGet(ctx context.Context, req *kvrpcpb.GetRequest) (*kvrpcpb.GetResponse, error) {
	cmd := commands.NewGet(req)
	resp, err := server.runCommand(ctx, "KvGet", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.GetResponse), nil
}

func (server *Server) KvScan(ctx context.Context, req *kvrpcpb.ScanRequest) (*kvrpcpb.ScanResponse, error) {
	cmd := commands.NewScan(req)
	resp, err := server.runCommand(ctx, "KvScan", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.ScanResponse), nil
}

func (server *Server) KvBatchGet(ctx context.Context, req *kvrpcpb.BatchGetRequest) (*kvrpcpb.BatchGetResponse, error) {
	cmd := commands.NewBatchGet(req)
	resp, err := server.runCommand(ctx, "KvBatchGet", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.BatchGetResponse), nil
}

func (server *Server) KvPrewrite(ctx context.Context, req *kvrpcpb.PrewriteRequest) (*kvrpcpb.PrewriteResponse, error) {
	cmd := commands.NewPrewrite(req)
	resp, err := server.runCommand(ctx, "KvPrewrite", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.PrewriteResponse), nil
}

func (server *Server) KvCommit(ctx context.Context, req *kvrpcpb.CommitRequest) (*kvrpcpb.CommitResponse, error) {
	cmd := commands.NewCommit(req)
	resp, err := server.runCommand(ctx, "KvCommit", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.CommitResponse), nil
}

func (server *Server) KvBatchRollback(ctx context.Context, req *kvrpcpb.BatchRollbackRequest) (*kvrpcpb.BatchRollbackResponse, error) {
	cmd := commands.NewRollback(req)
	resp, err := server.runCommand(ctx, "KvBatchRollback", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.BatchRollbackResponse), nil
}

func (server *Server) KvCleanup(ctx context.Context, req *kvrpcpb.CleanupRequest) (*kvrpcpb.CleanupResponse, error) {
	cmd := commands.NewCleanup(req)
	resp, err := server.runCommand(ctx, "KvCleanup", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.CleanupResponse), nil
}

func (server *Server) KvScanLock(ctx context.Context, req *kvrpcpb.ScanLockRequest) (*kvrpcpb.ScanLockResponse, error) {
	cmd := commands.NewScanLock(req)
	resp, err := server.runCommand(ctx, "KvScanLock", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.ScanLockResponse), nil
}

func (server *Server) KvResolveLock(ctx context.Context, req *kvrpcpb.ResolveLockRequest) (*kvrpcpb.ResolveLockResponse, error) {
	cmd := commands.NewResolveLock(req)
	resp, err := server.runCommand(ctx, "KvResolveLock", &cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*kvrpcpb.ResolveLockResponse), nil
}
