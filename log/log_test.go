package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevelByString(t *testing.T) {
	old := GetLevel()
	defer level.SetLevel(old)

	SetLevelByString("debug")
	assert.Equal(t, zapcore.DebugLevel, GetLevel())
	SetLevelByString("WARNING")
	assert.Equal(t, zapcore.WarnLevel, GetLevel())
	SetLevelByString("not-a-level")
	assert.Equal(t, zapcore.WarnLevel, GetLevel())
}
