package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/log"
)

const (
	EngineMem     = "mem"
	EngineBadger  = "badger"
	EngineLevelDB = "leveldb"
	EngineBolt    = "bolt"
)

type Config struct {
	StoreAddr  string `toml:"store-addr"`
	StatusAddr string `toml:"status-addr"`
	// RedisAddr enables the RESP gateway for raw mode when set.
	RedisAddr string `toml:"redis-addr"`
	StoreID   uint64 `toml:"store-id"`

	Log log.Config `toml:"log"`

	Engine string `toml:"engine"`
	DBPath string `toml:"db-path"` // Directory to store the data in. Should exist and be writable.

	Badger BadgerConfig `toml:"badger"`
	Region RegionConfig `toml:"region"`
	Server ServerConfig `toml:"server"`
}

type BadgerConfig struct {
	NumCompactors    int      `toml:"num-compactors"`
	ValueThreshold   ByteSize `toml:"value-threshold"`
	VlogFileSize     ByteSize `toml:"vlog-file-size"`
	MaxTableSize     ByteSize `toml:"max-table-size"`
	NumMemTables     int      `toml:"num-mem-tables"`
	NumL0Tables      int      `toml:"num-L0-tables"`
	NumL0TablesStall int      `toml:"num-L0-tables-stall"`
	SyncWrites       bool     `toml:"sync-writes"`
}

type RegionConfig struct {
	// Capacity of each region's apply queue.
	ApplyQueueSize int `toml:"apply-queue-size"`
	// How long a request waits for its region to apply it.
	RequestTimeout Duration `toml:"request-timeout"`
	// Identity of the region created when the store is empty.
	BootstrapRegionID uint64 `toml:"bootstrap-region-id"`
	BootstrapPeerID   uint64 `toml:"bootstrap-peer-id"`
}

type ServerConfig struct {
	MaxProcs              int      `toml:"max-procs"`
	GrpcMaxRecvMsgSize    ByteSize `toml:"grpc-max-recv-msg-size"`
	GrpcInitialWindowSize ByteSize `toml:"grpc-initial-window-size"`
	GrpcKeepaliveMinTime  Duration `toml:"grpc-keepalive-min-time"`
}

// ByteSize is a size written as a human readable string such as "64MB".
type ByteSize uint64

func (b *ByteSize) UnmarshalText(text []byte) error {
	v, err := units.RAMInBytes(string(text))
	if err != nil {
		return errors.Annotatef(err, "invalid size %q", text)
	}
	*b = ByteSize(v)
	return nil
}

func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(units.BytesSize(float64(b))), nil
}

// Duration is a time.Duration written as a string such as "3s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return errors.Trace(err)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (c *Config) Validate() error {
	switch c.Engine {
	case EngineMem, EngineBadger, EngineLevelDB, EngineBolt:
	default:
		return errors.Errorf("unknown engine %q", c.Engine)
	}
	if c.Engine != EngineMem && c.DBPath == "" {
		return errors.Errorf("db-path must be set for engine %s", c.Engine)
	}
	if c.StoreID == 0 {
		return errors.New("store-id must be greater than 0")
	}
	if c.Region.ApplyQueueSize <= 0 {
		return errors.New("apply-queue-size must be greater than 0")
	}
	if c.Region.RequestTimeout.Duration <= 0 {
		return errors.New("request-timeout must be greater than 0")
	}
	if c.Region.BootstrapRegionID == 0 || c.Region.BootstrapPeerID == 0 {
		return errors.New("bootstrap region and peer id must be greater than 0")
	}
	if c.Engine == EngineBadger && !c.Badger.SyncWrites {
		log.Warnf("badger sync-writes is disabled, " +
			"acknowledged writes may be lost on crash.")
	}
	return nil
}

const (
	KB uint64 = 1024
	MB uint64 = 1024 * 1024
)

func getLogLevel() (logLevel string) {
	logLevel = "info"
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		logLevel = l
	}
	return
}

func NewDefaultConfig() *Config {
	return &Config{
		StoreAddr:  "127.0.0.1:20160",
		StatusAddr: "127.0.0.1:20180",
		StoreID:    1,
		Log:        log.Config{Level: getLogLevel()},
		Engine:     EngineBadger,
		DBPath:     "/tmp/txnkv",
		Badger: BadgerConfig{
			NumCompactors:    1,
			ValueThreshold:   256,
			VlogFileSize:     ByteSize(256 * MB),
			MaxTableSize:     ByteSize(64 * MB),
			NumMemTables:     3,
			NumL0Tables:      4,
			NumL0TablesStall: 8,
			SyncWrites:       true,
		},
		Region: RegionConfig{
			ApplyQueueSize:    4096,
			RequestTimeout:    Duration{3 * time.Second},
			BootstrapRegionID: 1,
			BootstrapPeerID:   1,
		},
		Server: ServerConfig{
			GrpcMaxRecvMsgSize:    ByteSize(10 * MB),
			GrpcInitialWindowSize: ByteSize(1 << 30),
			GrpcKeepaliveMinTime:  Duration{2 * time.Second},
		},
	}
}

func NewTestConfig() *Config {
	c := NewDefaultConfig()
	c.StoreAddr = "127.0.0.1:0"
	c.StatusAddr = ""
	c.Engine = EngineMem
	c.DBPath = ""
	c.Badger.SyncWrites = false
	c.Region.ApplyQueueSize = 128
	c.Region.RequestTimeout = Duration{time.Second}
	return c
}

// LoadFile overlays the TOML file at path on c.
func (c *Config) LoadFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Annotatef(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warnf("config file %s contains unknown keys %v", path, undecoded)
	}
	return nil
}
