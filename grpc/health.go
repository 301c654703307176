package grpc

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// LedgerServiceName is the service name probes can ask the health endpoint about.
const LedgerServiceName = "ledger.v1.Accounts"

// HealthServer reports SERVING while the ledger accepts transfers.
type HealthServer struct {
	log    *slog.Logger
	server *health.Server
}

func NewHealthServer(log *slog.Logger) *HealthServer {
	server := health.NewServer()
	server.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	server.SetServingStatus(LedgerServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return &HealthServer{log: log, server: server}
}

func (h *HealthServer) Register(s *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(s, h.server)
}

// Shutdown flips every service to NOT_SERVING. Later status updates are ignored.
func (h *HealthServer) Shutdown() {
	h.log.Info("Health status switched to NOT_SERVING")
	h.server.Shutdown()
}
