package engine_util

// DBIterator walks the keys of one column family in ascending order. Keys are returned without
// the column family prefix.
type DBIterator interface {
	Item() DBItem
	Valid() bool
	// Next moves to the following key, check Valid before reading Item.
	Next()
	// Seek moves to the first key at or after the given key.
	Seek([]byte)
	Close()
}

// DBItem is the key value pair under an iterator. Key and Value may be reused once the iterator
// moves, copy them to keep them.
type DBItem interface {
	Key() []byte
	KeyCopy(dst []byte) []byte
	Value() ([]byte, error)
	ValueSize() int
	ValueCopy(dst []byte) ([]byte, error)
}
