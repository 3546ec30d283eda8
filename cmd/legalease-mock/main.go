// Command legalease-mock serves the stand-in LegalEase backend on $PORT
// (default 5000):
//
//	go run ./cmd/legalease-mock
package main

import (
	"context"
	"os"

	"legalease-client/internal/bootstrap"
	"legalease-client/internal/shared/config"
	"legalease-client/internal/shared/server"
	"legalease-client/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetDebug(cfg.Env != "production")

	r, err := bootstrap.BuildMockRouter(context.Background(), cfg)
	if err != nil {
		telemetry.Error("mock.init_failed", map[string]any{"err": err})
		os.Exit(1)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("mock.listening", map[string]any{"addr": addr, "store": cfg.ObjectStoreType})
	if err := r.Run(addr); err != nil {
		telemetry.Error("mock.server_error", map[string]any{"err": err})
		os.Exit(1)
	}
}
