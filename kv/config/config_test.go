package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.Nil(t, NewDefaultConfig().Validate())
	require.Nil(t, NewTestConfig().Validate())
}

func TestValidate(t *testing.T) {
	c := NewTestConfig()
	c.Engine = "rocksdb"
	assert.NotNil(t, c.Validate())

	c = NewTestConfig()
	c.Engine = EngineLevelDB
	assert.NotNil(t, c.Validate())

	c = NewTestConfig()
	c.StoreID = 0
	assert.NotNil(t, c.Validate())

	c = NewTestConfig()
	c.Region.RequestTimeout = Duration{}
	assert.NotNil(t, c.Validate())
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "txnkv-config")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "txnkv.toml")
	content := `
store-addr = "127.0.0.1:30160"
engine = "leveldb"
db-path = "/tmp/txnkv-test"

[log]
level = "debug"

[badger]
vlog-file-size = "128MB"

[region]
request-timeout = "500ms"
`
	require.Nil(t, ioutil.WriteFile(path, []byte(content), 0644))

	c := NewDefaultConfig()
	require.Nil(t, c.LoadFile(path))
	assert.Equal(t, "127.0.0.1:30160", c.StoreAddr)
	assert.Equal(t, EngineLevelDB, c.Engine)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, ByteSize(128*MB), c.Badger.VlogFileSize)
	assert.Equal(t, 500*time.Millisecond, c.Region.RequestTimeout.Duration)
	// Untouched keys keep their defaults.
	assert.Equal(t, 4096, c.Region.ApplyQueueSize)
	require.Nil(t, c.Validate())

	assert.NotNil(t, c.LoadFile(filepath.Join(dir, "missing.toml")))
}
