package utils

import (
	"testing"

	"dineslot/config"

	"go.uber.org/zap"
)

func TestInitCacheUnreachableLeavesClientNil(t *testing.T) {
	prevLogger, prevAddr := Logger, config.AppConfig.RedisAddr
	t.Cleanup(func() {
		Logger = prevLogger
		config.AppConfig.RedisAddr = prevAddr
		CacheClient = nil
	})
	Logger = zap.NewNop()
	config.AppConfig.RedisAddr = "127.0.0.1:1"

	InitCache()
	if CacheClient != nil {
		t.Fatal("CacheClient set although Redis is unreachable")
	}
}
