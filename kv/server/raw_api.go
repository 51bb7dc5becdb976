package server

import (
	"bytes"
	"context"
	"time"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

// The functions below are Server's Raw API. Raw data lives in its own column family and shares only the region
// checks with the transactional API.

// rawCF maps the column family of a raw request, only the raw column family is reachable.
func rawCF(cf string) (string, error) {
	switch cf {
	case "", engine_util.CfRaw:
		return engine_util.CfRaw, nil
	}
	return "", errors.Errorf("invalid column family %q for raw request", cf)
}

func checkRawKey(cf string, key []byte) (string, error) {
	if len(key) == 0 {
		return "", errors.New("empty key is not allowed")
	}
	return rawCF(cf)
}

// finishRaw records a raw request. A region error is set in the response, any other error fails the call.
func finishRaw(method string, start time.Time, regionErr **errorpb.Error, err error) error {
	commandDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err == nil {
		commandCounter.WithLabelValues(method, resultOK).Inc()
		return nil
	}
	if re := regionErrorOf(err); re != nil {
		*regionErr = re
		commandCounter.WithLabelValues(method, resultRegionError).Inc()
		return nil
	}
	return internalError(method, err)
}

func rejectRaw(method string) {
	commandCounter.WithLabelValues(method, resultKeyError).Inc()
}

// RawGet return the corresponding Get response based on RawGetRequest's CF and Key fields
func (server *Server) RawGet(_ context.Context, req *kvrpcpb.RawGetRequest) (*kvrpcpb.RawGetResponse, error) {
	resp := new(kvrpcpb.RawGetResponse)
	cf, err := checkRawKey(req.Cf, req.Key)
	if err != nil {
		rejectRaw("RawGet")
		resp.Error = err.Error()
		return resp, nil
	}

	start := time.Now()
	err = server.exec(req.Context, [][]byte{req.Key}, func(_ *metapb.Region, reader storage.StorageReader) ([]storage.Modify, error) {
		value, err := reader.GetCF(cf, req.Key)
		if err != nil {
			return nil, err
		}
		resp.Value = value
		resp.NotFound = value == nil
		return nil, nil
	})
	if err := finishRaw("RawGet", start, &resp.RegionError, err); err != nil {
		return nil, err
	}
	return resp, nil
}

// RawPut puts the target data into storage and returns the corresponding response
func (server *Server) RawPut(_ context.Context, req *kvrpcpb.RawPutRequest) (*kvrpcpb.RawPutResponse, error) {
	resp := new(kvrpcpb.RawPutResponse)
	cf, err := checkRawKey(req.Cf, req.Key)
	if err == nil && len(req.Value) == 0 {
		err = errors.New("empty value is not allowed")
	}
	if err != nil {
		rejectRaw("RawPut")
		resp.Error = err.Error()
		return resp, nil
	}

	start := time.Now()
	err = server.exec(req.Context, [][]byte{req.Key}, func(_ *metapb.Region, _ storage.StorageReader) ([]storage.Modify, error) {
		return []storage.Modify{{Data: storage.Put{Key: req.Key, Value: req.Value, Cf: cf}}}, nil
	})
	if err := finishRaw("RawPut", start, &resp.RegionError, err); err != nil {
		return nil, err
	}
	return resp, nil
}

// RawDelete delete the target data from storage and returns the corresponding response
func (server *Server) RawDelete(_ context.Context, req *kvrpcpb.RawDeleteRequest) (*kvrpcpb.RawDeleteResponse, error) {
	resp := new(kvrpcpb.RawDeleteResponse)
	cf, err := checkRawKey(req.Cf, req.Key)
	if err != nil {
		rejectRaw("RawDelete")
		resp.Error = err.Error()
		return resp, nil
	}

	start := time.Now()
	err = server.exec(req.Context, [][]byte{req.Key}, func(_ *metapb.Region, _ storage.StorageReader) ([]storage.Modify, error) {
		return []storage.Modify{{Data: storage.Delete{Key: req.Key, Cf: cf}}}, nil
	})
	if err := finishRaw("RawDelete", start, &resp.RegionError, err); err != nil {
		return nil, err
	}
	return resp, nil
}

// RawScan scan the data starting from the start key up to limit. and return the corresponding result. The scan stops
// at the end of the region.
func (server *Server) RawScan(_ context.Context, req *kvrpcpb.RawScanRequest) (*kvrpcpb.RawScanResponse, error) {
	resp := new(kvrpcpb.RawScanResponse)
	cf, err := rawCF(req.Cf)
	if err != nil {
		rejectRaw("RawScan")
		resp.Error = err.Error()
		return resp, nil
	}

	var keys [][]byte
	if len(req.StartKey) > 0 {
		keys = [][]byte{req.StartKey}
	}
	start := time.Now()
	err = server.exec(req.Context, keys, func(region *metapb.Region, reader storage.StorageReader) ([]storage.Modify, error) {
		startKey, endKey := req.StartKey, []byte(nil)
		if region != nil {
			if bytes.Compare(startKey, region.StartKey) < 0 {
				startKey = region.StartKey
			}
			endKey = region.EndKey
		}
		iter := reader.IterCF(cf)
		defer iter.Close()
		for iter.Seek(startKey); iter.Valid() && uint32(len(resp.Kvs)) < req.Limit; iter.Next() {
			item := iter.Item()
			key := item.KeyCopy(nil)
			if len(endKey) > 0 && bytes.Compare(key, endKey) >= 0 {
				break
			}
			pair := &kvrpcpb.KvPair{Key: key}
			if !req.KeyOnly {
				value, err := item.ValueCopy(nil)
				if err != nil {
					return nil, err
				}
				pair.Value = value
			}
			resp.Kvs = append(resp.Kvs, pair)
		}
		return nil, nil
	})
	if err := finishRaw("RawScan", start, &resp.RegionError, err); err != nil {
		return nil, err
	}
	return resp, nil
}
