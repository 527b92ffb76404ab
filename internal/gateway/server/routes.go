package server

import (
	"net/http"

	"go.uber.org/zap"

	"sarf/internal/gateway/handler"
	"sarf/internal/gateway/handler/rpc"
	"sarf/internal/gateway/middleware"
	"sarf/internal/telemetry"
)

func NewMux(
	lexiconHandler *handler.LexiconHandler,
	rpcHandler *rpc.LexiconHandler,
	metrics *telemetry.Metrics,
	allowedOrigins []string,
	log *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// RPC Handlers
	mux.Handle(rpc.NewLexiconServiceHandler(rpcHandler))

	// JSON Handlers
	mux.HandleFunc("/roots", lexiconHandler.HandleRoots)
	mux.HandleFunc("/schemes", lexiconHandler.HandleSchemes)
	mux.HandleFunc("/generate_all", lexiconHandler.HandleGenerateAll)
	mux.HandleFunc("/verify", lexiconHandler.HandleVerify)
	mux.HandleFunc("/identify", lexiconHandler.HandleIdentify)
	mux.HandleFunc("/manage", lexiconHandler.HandleManage)
	mux.HandleFunc("/add_scheme", lexiconHandler.HandleAddScheme)
	mux.HandleFunc("/delete_scheme", lexiconHandler.HandleDeleteScheme)
	mux.HandleFunc("/save", lexiconHandler.HandleSave)
	mux.HandleFunc("/ws/lexicon", lexiconHandler.HandleWatch)

	// Ops Handlers
	mux.HandleFunc("/healthz", lexiconHandler.HandleHealth)
	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}

	// Middleware
	return middleware.Logging(log, middleware.CORS(allowedOrigins, mux))
}
