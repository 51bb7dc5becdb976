package codec

import (
	"encoding/binary"

	"github.com/pingcap/errors"
)

const (
	encGroupSize = 8
	encMarker    = byte(0xFF)
	encPad       = byte(0x0)
)

var pads = make([]byte, encGroupSize)

// EncodeKey encodes a user key and appends an encoded timestamp to a key. Keys and timestamps are encoded so that
// timestamped keys are sorted first by key (ascending), then by timestamp (descending). The encoding is based on
// https://github.com/facebook/mysql-5.6/wiki/MyRocks-record-format#memcomparable-format.
func EncodeKey(key []byte, ts uint64) []byte {
	b := make([]byte, 0, (len(key)/encGroupSize+1)*(encGroupSize+1)+8)
	b = EncodeBytes(b, key)
	return EncodeUintDesc(b, ts)
}

// DecodeKey splits a key produced by EncodeKey into the user key and the timestamp.
func DecodeKey(encoded []byte) ([]byte, uint64, error) {
	left, key, err := DecodeBytes(encoded)
	if err != nil {
		return nil, 0, err
	}
	_, ts, err := DecodeUintDesc(left)
	if err != nil {
		return nil, 0, err
	}
	return key, ts, nil
}

// EncodeBytes appends the memcomparable form of data to b:
//
//	[group1][marker1]...[groupN][markerN]
//	group is 8 bytes slice which is padding with 0.
//	marker is `0xFF - padding 0 count`
//
// For example:
//
//	[] -> [0, 0, 0, 0, 0, 0, 0, 0, 247]
//	[1, 2, 3] -> [1, 2, 3, 0, 0, 0, 0, 0, 250]
//	[1, 2, 3, 4, 5, 6, 7, 8] -> [1, 2, 3, 4, 5, 6, 7, 8, 255, 0, 0, 0, 0, 0, 0, 0, 0, 247]
func EncodeBytes(b []byte, data []byte) []byte {
	dLen := len(data)
	for idx := 0; idx <= dLen; idx += encGroupSize {
		remain := dLen - idx
		padCount := 0
		if remain >= encGroupSize {
			b = append(b, data[idx:idx+encGroupSize]...)
		} else {
			padCount = encGroupSize - remain
			b = append(b, data[idx:]...)
			b = append(b, pads[:padCount]...)
		}
		b = append(b, encMarker-byte(padCount))
	}
	return b
}

// DecodeBytes decodes bytes which is encoded by EncodeBytes before,
// returns the leftover bytes and decoded value if no error.
func DecodeBytes(b []byte) ([]byte, []byte, error) {
	data := make([]byte, 0, len(b))
	for {
		if len(b) < encGroupSize+1 {
			return nil, nil, errors.New("insufficient bytes to decode value")
		}
		group := b[:encGroupSize]
		marker := b[encGroupSize]
		padCount := encMarker - marker
		if padCount > encGroupSize {
			return nil, nil, errors.Errorf("invalid marker byte, group bytes %q", b[:encGroupSize+1])
		}
		realGroupSize := encGroupSize - padCount
		data = append(data, group[:realGroupSize]...)
		for _, v := range group[realGroupSize:] {
			if v != encPad {
				return nil, nil, errors.Errorf("invalid padding byte, group bytes %q", b[:encGroupSize+1])
			}
		}
		b = b[encGroupSize+1:]
		if padCount != 0 {
			return b, data, nil
		}
	}
}

// EncodeUintDesc appends v inverted, so larger values sort first.
func EncodeUintDesc(b []byte, v uint64) []byte {
	var data [8]byte
	binary.BigEndian.PutUint64(data[:], ^v)
	return append(b, data[:]...)
}

func DecodeUintDesc(b []byte) ([]byte, uint64, error) {
	if len(b) < 8 {
		return nil, 0, errors.New("insufficient bytes to decode value")
	}
	return b[8:], ^binary.BigEndian.Uint64(b[:8]), nil
}

func EncodeUvarint(b []byte, v uint64) []byte {
	var data [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(data[:], v)
	return append(b, data[:n]...)
}

func DecodeUvarint(b []byte) ([]byte, uint64, error) {
	v, n := binary.Uvarint(b)
	if n <= 0 {
		return nil, 0, errors.New("invalid uvarint")
	}
	return b[n:], v, nil
}

// EncodeCompactBytes appends data prefixed by its uvarint length.
func EncodeCompactBytes(b []byte, data []byte) []byte {
	b = EncodeUvarint(b, uint64(len(data)))
	return append(b, data...)
}

func DecodeCompactBytes(b []byte) ([]byte, []byte, error) {
	b, n, err := DecodeUvarint(b)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(b)) < n {
		return nil, nil, errors.Errorf("insufficient bytes to decode value, expected %d, got %d", n, len(b))
	}
	return b[n:], b[:n], nil
}
