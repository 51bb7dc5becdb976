// Package transaction lowers the transactional requests of the txnkv API (prewrite, commit, rollback, cleanup,
// resolve and the snapshot reads) into reads and writes of the underlying Storage.
//
// Two kinds of transactions are in play. Client transactions span many requests and are driven by the client through
// the two phase commit protocol. Mvcc transactions (mvcc.MvccTxn) are internal: they collect the writes of a single
// request so that the request is applied atomically.
//
// `commands` holds one Command per request kind. `mvcc` implements locks, writes and the scanner on top of the
// column families. `latches` serializes commands for storages which do not run commands in a region apply loop.
//
// ## Encoding user key/values
//
// Every committed version of a key is kept. The `default` CF maps a key encoded with the transaction's start timestamp
// to the value, unless the value is short, in which case it lives in the lock and then the write record.
//
// The `lock` CF is keyed by the plain user key, so a key is locked for all timestamps. A lock holds the primary key of
// its transaction, the mutation kind, the start timestamp, the ttl and possibly the short value.
//
// The `write` CF maps a key encoded with the commit timestamp to the start timestamp and kind of the write. A rolled
// back transaction leaves a rollback write encoded with its start timestamp.
//
// A secondary lock whose primary already committed is read as committed; its own write record is written later by
// the client or through ResolveLock.
package transaction
