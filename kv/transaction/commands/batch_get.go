package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// BatchGet reads several keys at one timestamp. Missing keys are left out of the response.
type BatchGet struct {
	ReadOnly
	CommandBase
	request *kvrpcpb.BatchGetRequest
}

func NewBatchGet(request *kvrpcpb.BatchGetRequest) BatchGet {
	return BatchGet{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.Version,
		},
		request: request,
	}
}

func (bg *BatchGet) Keys() [][]byte {
	return bg.request.Keys
}

func (bg *BatchGet) EmptyResponse() interface{} {
	return new(kvrpcpb.BatchGetResponse)
}

func (bg *BatchGet) Read(txn *mvcc.RoTxn) (interface{}, [][]byte, error) {
	response := new(kvrpcpb.BatchGetResponse)
	for _, key := range bg.request.Keys {
		value, err := txn.Get(key)
		if err != nil {
			keyErr, err := keyError(err)
			if err != nil {
				return nil, nil, err
			}
			response.Pairs = append(response.Pairs, &kvrpcpb.KvPair{Key: key, Error: keyErr})
			continue
		}
		if value != nil {
			response.Pairs = append(response.Pairs, &kvrpcpb.KvPair{Key: key, Value: value})
		}
	}
	return response, nil, nil
}
