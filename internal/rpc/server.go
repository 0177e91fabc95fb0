package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/taltos-portal/internal/content"
)

const namespace = "content"

// New builds the JSON-RPC 2.0 server for the content namespace.
func New(logger *slog.Logger, manager *content.Manager) *zenrpc.Server {
	rpcService := NewContentService(manager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register(namespace, rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "taltos-portal", nil))

	return rpcServer
}
