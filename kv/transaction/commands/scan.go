package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

type Scan struct {
	ReadOnly
	CommandBase
	request *kvrpcpb.ScanRequest
}

func NewScan(request *kvrpcpb.ScanRequest) Scan {
	return Scan{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.Version,
		},
		request: request,
	}
}

func (s *Scan) Keys() [][]byte {
	return keyOrNone(s.request.StartKey)
}

func (s *Scan) EmptyResponse() interface{} {
	return new(kvrpcpb.ScanResponse)
}

func (s *Scan) Read(txn *mvcc.RoTxn) (interface{}, [][]byte, error) {
	response := new(kvrpcpb.ScanResponse)

	scanner := mvcc.NewScanner(s.request.StartKey, txn)
	defer scanner.Close()
	limit := s.request.Limit
	for {
		if limit == 0 {
			// We've scanned up to the requested limit.
			return response, nil, nil
		}
		limit -= 1

		key, value, err := scanner.Next()
		if err != nil {
			// Key error (e.g., key is locked) is saved as an error in the scan for the client to handle.
			if e, ok := err.(*mvcc.KeyError); ok {
				pair := new(kvrpcpb.KvPair)
				pair.Key = key
				pair.Error = &e.KeyError
				response.Pairs = append(response.Pairs, pair)
				continue
			}
			// Any other kind of error, we can't handle so quit the scan.
			return nil, nil, err
		}
		if key == nil {
			// Reached the end of the region.
			return response, nil, nil
		}

		pair := kvrpcpb.KvPair{}
		pair.Key = key
		if !s.request.KeyOnly {
			pair.Value = value
		}
		response.Pairs = append(response.Pairs, &pair)
	}
}
