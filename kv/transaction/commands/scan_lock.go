package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// ScanLock lists the locks of the region started at or before MaxVersion, for recovery tooling.
type ScanLock struct {
	ReadOnly
	CommandBase
	request *kvrpcpb.ScanLockRequest
}

func NewScanLock(request *kvrpcpb.ScanLockRequest) ScanLock {
	return ScanLock{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.MaxVersion,
		},
		request: request,
	}
}

func (sl *ScanLock) Keys() [][]byte {
	return keyOrNone(sl.request.StartKey)
}

func (sl *ScanLock) EmptyResponse() interface{} {
	return new(kvrpcpb.ScanLockResponse)
}

func (sl *ScanLock) Read(txn *mvcc.RoTxn) (interface{}, [][]byte, error) {
	response := new(kvrpcpb.ScanLockResponse)
	kls, err := mvcc.ScanLocks(txn, sl.request.StartKey, nil, sl.request.MaxVersion, int(sl.request.Limit))
	if err != nil {
		return nil, nil, err
	}
	for _, kl := range kls {
		response.Locks = append(response.Locks, kl.Lock.Info(kl.Key))
	}
	return response, nil, nil
}
