package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	sdkmath "cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gorilla/mux"

	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/logger"
	"github.com/elys-network/zll/internal/node"
	"github.com/elys-network/zll/internal/state"
	"github.com/elys-network/zll/internal/types"
	"github.com/elys-network/zll/internal/utils"
)

var webLogger = logger.GetForComponent("web_server")

const defaultReceiptsLimit = 20

// Venue is the read-only view of a running market the API serves.
type Venue interface {
	Status() node.Status
	Market() string
	Pool() string
	LpToken() string
	MarketOperator() (types.MarketOperatorResponse, error)
	LiquidityPool() (types.LiquidityPoolResponse, error)
	MarketPhase() (types.MarketPhaseResponse, error)
	MarketPhasesInfo() (types.MarketPhasesInfoResponse, error)
	BorrowingTerms(pledged types.Asset) (types.BorrowingTermsResponse, error)
	PoolState() (types.PoolResponse, error)
	Pair() (types.PairInfo, error)
	Decimals(info types.AssetInfo) (uint8, error)
	ResolveAsset(name string) (types.AssetInfo, error)
	RecentReceipts(limit int) []types.CallReceipt
}

var _ Venue = (*node.Node)(nil)

// WebServer serves the venue's JSON API.
type WebServer struct {
	router    *mux.Router
	port      string
	venue     Venue
	startedAt time.Time
}

// NewWebServer creates a new web server instance
func NewWebServer(port string, venue Venue) *WebServer {
	if port == "" {
		port = "8080"
	}

	server := &WebServer{
		router:    mux.NewRouter(),
		port:      port,
		venue:     venue,
		startedAt: time.Now(),
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (ws *WebServer) setupRoutes() {
	ws.router.HandleFunc("/health", ws.handleHealth).Methods("GET")

	api := ws.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", ws.handleHealth).Methods("GET")
	api.HandleFunc("/market/operator", ws.handleGetMarketOperator).Methods("GET")
	api.HandleFunc("/market/liquidity-pool", ws.handleGetLiquidityPool).Methods("GET")
	api.HandleFunc("/market/phase", ws.handleGetMarketPhase).Methods("GET")
	api.HandleFunc("/market/phases-info", ws.handleGetMarketPhasesInfo).Methods("GET")
	api.HandleFunc("/market/borrowing-terms", ws.handleGetBorrowingTerms).Methods("GET")
	api.HandleFunc("/pool", ws.handleGetPool).Methods("GET")
	api.HandleFunc("/pair", ws.handleGetPair).Methods("GET")
	api.HandleFunc("/receipts", ws.handleGetReceipts).Methods("GET")
	api.HandleFunc("/receipts/summary", ws.handleGetReceiptSummary).Methods("GET")

	// Add CORS middleware
	ws.router.Use(ws.corsMiddleware)
	ws.router.Use(ws.loggingMiddleware)
}

// Handler exposes the router, for embedding and tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

// Server returns the http.Server Start runs, so callers can shut it down.
func (ws *WebServer) Server() *http.Server {
	return &http.Server{
		Addr:         ":" + ws.port,
		Handler:      ws.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Start starts the web server
func (ws *WebServer) Start() error {
	webLogger.Info().Str("port", ws.port).Msg("Starting web server")
	return ws.Server().ListenAndServe()
}

// handleHealth reports runtime stats, the chain head and, when configured, the database.
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := ws.venue.Status()

	dbEnabled := state.DB != nil
	dbHealthy := false
	if dbEnabled {
		dbHealthy = state.TestDBConnection() == nil
	}
	hasErrors := dbEnabled && !dbHealthy

	overallStatus := "OK"
	if hasErrors {
		overallStatus = "DEGRADED"
	}

	response := map[string]interface{}{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"system": map[string]interface{}{
			"version":            runtime.Version(),
			"goroutines_count":   runtime.NumGoroutine(),
			"total_alloc_bytes":  memStats.TotalAlloc,
			"heap_objects_count": memStats.HeapObjects,
			"alloc_bytes":        memStats.Alloc,
			"sys_bytes":          memStats.Sys,
			"gc_cycles":          memStats.NumGC,
			"uptime_seconds":     int64(time.Since(ws.startedAt).Seconds()),
		},
		"component": map[string]interface{}{
			"name":    "zll-venue",
			"version": "1.0.0",
		},
		"venue_status": map[string]interface{}{
			"chain_id":         status.ChainID,
			"height":           status.Height,
			"block_time":       status.Time,
			"phase":            status.Phase,
			"market":           ws.venue.Market(),
			"liquidity_pool":   ws.venue.Pool(),
			"liquidity_token":  ws.venue.LpToken(),
			"database_enabled": dbEnabled,
			"database_healthy": dbHealthy,
		},
	}

	statusCode := http.StatusOK
	if hasErrors {
		statusCode = http.StatusServiceUnavailable
	}
	ws.writeJSONResponse(w, statusCode, response)
}

func (ws *WebServer) handleGetMarketOperator(w http.ResponseWriter, r *http.Request) {
	resp, err := ws.venue.MarketOperator()
	ws.writeQueryResult(w, "market operator", resp, err)
}

func (ws *WebServer) handleGetLiquidityPool(w http.ResponseWriter, r *http.Request) {
	resp, err := ws.venue.LiquidityPool()
	ws.writeQueryResult(w, "liquidity pool", resp, err)
}

func (ws *WebServer) handleGetMarketPhase(w http.ResponseWriter, r *http.Request) {
	resp, err := ws.venue.MarketPhase()
	ws.writeQueryResult(w, "market phase", resp, err)
}

func (ws *WebServer) handleGetMarketPhasesInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := ws.venue.MarketPhasesInfo()
	ws.writeQueryResult(w, "market phases info", resp, err)
}

// handleGetBorrowingTerms expects ?amount=<base units> and either ?denom= or ?token=.
func (ws *WebServer) handleGetBorrowingTerms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount, ok := sdkmath.NewIntFromString(query.Get("amount"))
	if !ok {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	name := query.Get("denom")
	if token := query.Get("token"); token != "" {
		if name != "" {
			ws.writeErrorResponse(w, http.StatusBadRequest, "Use either denom or token, not both")
			return
		}
		name = token
	}
	if name == "" {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Missing denom or token")
		return
	}

	info, err := ws.venue.ResolveAsset(name)
	if err != nil {
		ws.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	terms, err := ws.venue.BorrowingTerms(types.NewAsset(info, amount))
	ws.writeQueryResult(w, "borrowing terms", terms, err)
}

// poolAssetView adds the display amount to a reserve.
type poolAssetView struct {
	types.Asset
	Display  float64 `json:"display"`
	Decimals uint8   `json:"decimals"`
}

func (ws *WebServer) handleGetPool(w http.ResponseWriter, r *http.Request) {
	pool, err := ws.venue.PoolState()
	if err != nil {
		ws.writeQueryResult(w, "pool", nil, err)
		return
	}

	assets := make([]poolAssetView, 0, len(pool.Assets))
	for _, asset := range pool.Assets {
		view := poolAssetView{Asset: asset}
		if view.Decimals, err = ws.venue.Decimals(asset.Info); err == nil {
			view.Display, err = utils.ToDisplay(asset.Amount, view.Decimals)
		}
		if err != nil {
			webLogger.Warn().Err(err).Str("asset", asset.Info.String()).Msg("Failed to compute display amount")
		}
		assets = append(assets, view)
	}

	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"assets":      assets,
		"total_share": pool.TotalShare,
	})
}

func (ws *WebServer) handleGetPair(w http.ResponseWriter, r *http.Request) {
	resp, err := ws.venue.Pair()
	ws.writeQueryResult(w, "pair", resp, err)
}

// handleGetReceipts serves persisted receipts when a database is configured,
// otherwise the chain's in-memory window.
func (ws *WebServer) handleGetReceipts(w http.ResponseWriter, r *http.Request) {
	limit := defaultReceiptsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	source := "memory"
	var receipts []types.CallReceipt
	if state.DB != nil {
		var err error
		if receipts, err = state.GetRecentCallReceipts(r.Context(), limit); err != nil {
			webLogger.Error().Err(err).Msg("Failed to get recent call receipts")
			ws.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve receipts")
			return
		}
		source = "database"
	} else {
		receipts = ws.venue.RecentReceipts(limit)
	}

	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"receipts": receipts,
		"count":    len(receipts),
		"limit":    limit,
		"source":   source,
	})
}

func (ws *WebServer) handleGetReceiptSummary(w http.ResponseWriter, r *http.Request) {
	if state.DB == nil {
		ws.writeErrorResponse(w, http.StatusServiceUnavailable, "Receipt database is not configured")
		return
	}

	summary, err := state.GetReceiptSummary(r.Context())
	if err != nil {
		webLogger.Error().Err(err).Msg("Failed to get receipt summary")
		ws.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve receipt summary")
		return
	}
	activity, err := state.GetContractActivity(r.Context())
	if err != nil {
		webLogger.Error().Err(err).Msg("Failed to get contract activity")
		ws.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve contract activity")
		return
	}

	ws.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"summary":  summary,
		"activity": activity,
	})
}

// writeQueryResult maps contract errors onto HTTP statuses.
func (ws *WebServer) writeQueryResult(w http.ResponseWriter, what string, data interface{}, err error) {
	if err == nil {
		ws.writeJSONResponse(w, http.StatusOK, data)
		return
	}

	statusCode := statusFor(err)
	if statusCode == http.StatusInternalServerError {
		webLogger.Error().Err(err).Msg("Failed to query " + what)
	}
	ws.writeErrorResponse(w, statusCode, err.Error())
}

var badRequestErrors = []error{
	types.ErrInvalidZeroAmount,
	types.ErrDoublingAssets,
	types.ErrAssetMismatch,
	types.ErrInvalidAsset,
	types.ErrOverflow,
	types.ErrDivideByZero,
	sdkerrors.ErrInvalidAddress,
	sdkerrors.ErrInvalidCoins,
}

func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, host.ErrQuery) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeJSONResponse writes a JSON response
func (ws *WebServer) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		webLogger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeErrorResponse writes an error response
func (ws *WebServer) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := map[string]interface{}{
		"error":     true,
		"message":   message,
		"timestamp": time.Now().UTC(),
	}

	ws.writeJSONResponse(w, statusCode, response)
}

// corsMiddleware adds CORS headers
func (ws *WebServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (ws *WebServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		webLogger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", wrapper.statusCode).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
