// FILE: example/simple/main.go
package main

import (
	"errors"
	"time"

	louislog "github.com/Bilbo1Gaming/louis-log"
)

func main() {
	logger, err := louislog.NewBuilder().
		MainProcess("demo").
		SubProcess("simple").
		StoragePath("./logs").
		SplitBy("day").
		Strategy("batch").
		BatchSize(8).
		Build()
	if err != nil {
		panic(err)
	}

	stop := logger.InstallShutdownHook()
	defer stop()

	logger.Info("service starting")
	logger.Success("cache warmed", map[string]any{"entries": 1200, "took_ms": 84})
	logger.Warn("disk usage above 80%")
	logger.Error("upstream request failed", errors.New("connection refused"))
	logger.Debug("request trace", map[string]any{
		"method": "GET",
		"path":   "/healthz",
		"took":   3 * time.Millisecond,
	})

	_ = logger.Shutdown("normal exit")
}
