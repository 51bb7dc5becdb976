package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

type Get struct {
	ReadOnly
	CommandBase
	request *kvrpcpb.GetRequest
}

func NewGet(request *kvrpcpb.GetRequest) Get {
	return Get{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.Version,
		},
		request: request,
	}
}

func (g *Get) Keys() [][]byte {
	return [][]byte{g.request.Key}
}

func (g *Get) EmptyResponse() interface{} {
	return new(kvrpcpb.GetResponse)
}

func (g *Get) Read(txn *mvcc.RoTxn) (interface{}, [][]byte, error) {
	response := new(kvrpcpb.GetResponse)
	value, err := txn.Get(g.request.Key)
	if err != nil {
		response.Error, err = keyError(err)
		return response, nil, err
	}

	if value == nil {
		response.NotFound = true
	} else {
		response.Value = value
	}
	return response, nil, nil
}
