package txnkv

/*
txnkv is the transactional storage core of a sharded key/value store. It offers a raw key/value API and a
Percolator-style two phase commit API over multi-version data, on top of a pluggable local engine.

The keyspace is split into regions. Every region is a contiguous key range with an epoch which changes when the
region splits or its membership changes. Requests name the region and epoch they were routed with, and are refused
with a region error when the store's view differs, so clients can refresh their routing and retry. Commands of one
region are applied in a single total order by the region's apply loop.

The `txnkv` module is organized into the following packages:

* `kv/server`: the gRPC service, plus an HTTP status and admin API (`kv/server/api`) and an optional Redis protocol
  gateway for raw keys (`kv/server/resp`).
* `kv/regionstore`: the region directory, epoch checks and the per-region apply loops.
* `kv/transaction`: the multi-version store (`mvcc`), the transactional commands (`commands`) and per-key latches
  (`latches`).
* `kv/storage`: the engine interface and its badger, leveldb, bolt and in-memory implementations.
* `kv/txnkv-server`, `kv/txnkv-ctl`: the store binary and its control tool.
* `proto`: the protocol definitions and the Go code for using them.
* `log`: leveled logging on zap.
*/
