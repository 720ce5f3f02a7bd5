package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kola-market/market-cli/internal/market"
	"github.com/kola-market/market-cli/internal/model"
	"github.com/kola-market/market-cli/internal/recommender"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := loadStore(cmd)
		if err != nil {
			return err
		}
		rec := newRecommender(store)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet},
		}))
		r.Use(rateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst))

		api := &apiServer{store: store, rec: rec}
		r.Get("/health", api.health)
		r.Get("/api/regions", api.regions)
		r.Get("/api/products", api.products)
		r.Get("/api/recommendations/{region}", api.recommendations)
		r.Get("/api/quarterly/{region}", api.quarterly)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().String("data", "", "dataset file path (default: bundled dataset)")
	rootCmd.AddCommand(serveCmd)
}

// rateLimiter applies a process-wide token bucket to all requests.
func rateLimiter(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type apiServer struct {
	store *market.Store
	rec   *recommender.Recommender
}

func (s *apiServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Regions())
}

func (s *apiServer) products(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Products())
}

func (s *apiServer) recommendations(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	month := int(time.Now().Month())
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be an integer")
			return
		}
		month = m
	}

	limit := recommender.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = l
	}

	recs, err := s.rec.Recommend(r.Context(), region, month, limit)
	if err != nil {
		s.writeRecommendError(w, region, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"location":        region,
		"target_month":    month,
		"recommendations": recs,
	})
}

func (s *apiServer) quarterly(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")

	quarter := r.URL.Query().Get("quarter")
	if quarter == "" {
		quarter = model.QuarterForMonth(int(time.Now().Month()))
	}

	recs, err := s.rec.RecommendQuarter(r.Context(), region, quarter, recommender.DefaultLimit)
	if err != nil {
		s.writeRecommendError(w, region, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"location":        region,
		"target_quarter":  quarter,
		"recommendations": recs,
	})
}

// writeRecommendError maps recommender failures to HTTP statuses: unknown
// regions are 404, other invalid input is 400, the rest 500.
func (s *apiServer) writeRecommendError(w http.ResponseWriter, region string, err error) {
	if recommender.IsInvalidInput(err) {
		status := http.StatusBadRequest
		if s.store.Region(region) == nil {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	zap.L().Error("recommendation request failed",
		zap.String("region", region),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
