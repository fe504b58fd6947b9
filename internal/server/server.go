package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/scenectl/internal/observability"
	"github.com/danmuck/scenectl/internal/resolver"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const Version = "0.1.0"

// Inspector serves read access to a scene root over HTTP, plus saving of
// game-object descriptions.
type Inspector struct {
	ID       string
	Addr     string
	Appeared time.Time

	resolver *resolver.Resolver
	router   *gin.Engine
	httpSrv  *http.Server
}

func Appear(id, addr string, corsOrigins []string, r *resolver.Resolver) *Inspector {
	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestID())
	router.Use(observability.RequestLogger(log.Logger))
	router.Use(observability.RequestMetricsMiddleware(id))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  normalizeOrigins(corsOrigins),
		AllowMethods:  []string{"GET", "PUT"},
		AllowHeaders:  []string{"Origin", "Content-Type", observability.RequestIDHeader},
		ExposeHeaders: []string{observability.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	_ = router.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Inspector{
		ID:       id,
		Addr:     addr,
		Appeared: time.Now(),
		resolver: r,
		router:   router,
		httpSrv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *Inspector) HTTPRouter() *gin.Engine {
	return s.router
}

// Serve registers routes and blocks until Shutdown or a listener error.
// Shutdown called first makes Serve return immediately.
func (s *Inspector) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("inspector", s.ID).Str("addr", s.Addr).Str("root", rootLabel(s.resolver)).Msg("inspector listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Inspector) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

type labeled interface {
	Label() string
}

func rootLabel(r *resolver.Resolver) string {
	if l, ok := r.FileSystem().(labeled); ok {
		return l.Label()
	}
	return ""
}
