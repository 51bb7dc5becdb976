package mvcc

import (
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/util/codec"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// Write is a representation of a committed write to backing storage.
// A serialized version is stored in the "write" CF of our engine when a write is committed. That allows MvccTxn to find
// the status of a key at a given timestamp. A rollback is a Write at the transaction's start timestamp.
type Write struct {
	StartTS uint64
	Kind    WriteKind
	// The committed value when it is short enough to live in the write record.
	ShortValue []byte
}

func (wr *Write) ToBytes() []byte {
	buf := make([]byte, 0, 1+10+len(wr.ShortValue)+2)
	buf = append(buf, byte(wr.Kind))
	buf = codec.EncodeUvarint(buf, wr.StartTS)
	if wr.ShortValue != nil {
		buf = append(buf, shortValuePrefix)
		buf = codec.EncodeCompactBytes(buf, wr.ShortValue)
	}
	return buf
}

func ParseWrite(value []byte) (*Write, error) {
	if value == nil {
		return nil, nil
	}
	if len(value) < 2 {
		return nil, errors.Errorf("mvcc/write/ParseWrite: value is too short, found %d bytes", len(value))
	}
	write := &Write{Kind: WriteKind(value[0])}
	if !write.Kind.valid() {
		return nil, errors.Errorf("mvcc/write/ParseWrite: unknown write kind %d", value[0])
	}
	left, startTs, err := codec.DecodeUvarint(value[1:])
	if err != nil {
		return nil, err
	}
	write.StartTS = startTs
	write.ShortValue, err = parseShortValue(left)
	if err != nil {
		return nil, err
	}
	return write, nil
}

const (
	shortValuePrefix = 'v'
	// ShortValueMaxLen is the longest value stored inline in locks and writes.
	ShortValueMaxLen = 64
)

func parseShortValue(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if b[0] != shortValuePrefix {
		return nil, errors.Errorf("mvcc: unexpected trailing byte %d", b[0])
	}
	left, value, err := codec.DecodeCompactBytes(b[1:])
	if err != nil {
		return nil, err
	}
	if len(left) != 0 {
		return nil, errors.Errorf("mvcc: %d trailing bytes after short value", len(left))
	}
	return append([]byte{}, value...), nil
}

type WriteKind int

const (
	WriteKindPut      WriteKind = 1
	WriteKindDelete   WriteKind = 2
	WriteKindRollback WriteKind = 3
	WriteKindLock     WriteKind = 4
)

func (wk WriteKind) valid() bool {
	return wk >= WriteKindPut && wk <= WriteKindLock
}

func (wk WriteKind) String() string {
	switch wk {
	case WriteKindPut:
		return "put"
	case WriteKindDelete:
		return "delete"
	case WriteKindRollback:
		return "rollback"
	case WriteKindLock:
		return "lock"
	}
	return "unknown"
}

func (wk WriteKind) ToProto() kvrpcpb.Op {
	switch wk {
	case WriteKindPut:
		return kvrpcpb.Op_Put
	case WriteKindDelete:
		return kvrpcpb.Op_Del
	case WriteKindRollback:
		return kvrpcpb.Op_Rollback
	case WriteKindLock:
		return kvrpcpb.Op_Lock
	}

	return -1
}

// WriteKindFromProto maps a mutation op to the kind of lock it takes. Rollback is not a
// mutation, ok is false for it.
func WriteKindFromProto(op kvrpcpb.Op) (kind WriteKind, ok bool) {
	switch op {
	case kvrpcpb.Op_Put:
		return WriteKindPut, true
	case kvrpcpb.Op_Del:
		return WriteKindDelete, true
	case kvrpcpb.Op_Lock:
		return WriteKindLock, true
	}
	return 0, false
}
