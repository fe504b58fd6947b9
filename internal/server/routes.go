package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/danmuck/scenectl/internal/descriptor"
	"github.com/danmuck/scenectl/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/hack-pad/hackpadfs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

func (s *Inspector) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"root":    rootLabel(s.resolver),
			"workers": s.resolver.Workers(),
			"version": Version,
		})
	})

	s.router.GET("/level", s.getLevel)
	s.router.GET("/level/descriptions", s.getLevelDescriptions)
	s.router.GET("/gameobject", s.getGameObject)
	s.router.PUT("/gameobject", s.putGameObject)
}

func (s *Inspector) getLevel(c *gin.Context) {
	path, ok := requirePath(c)
	if !ok {
		return
	}
	level, err := s.resolver.LoadLevel(c.Request.Context(), path)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.FromLevel(level))
}

func (s *Inspector) getLevelDescriptions(c *gin.Context) {
	path, ok := requirePath(c)
	if !ok {
		return
	}
	level, objects, err := s.resolver.LoadLevelDescriptions(path)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.FromDescriptions(level, objects))
}

func (s *Inspector) getGameObject(c *gin.Context) {
	path, ok := requirePath(c)
	if !ok {
		return
	}
	obj, err := s.resolver.LoadGameObject(path)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.FromGameObject(obj))
}

// putGameObject takes a TOML game-object body and stores it at its id.
func (s *Inspector) putGameObject(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := descriptor.ParseGameObject(string(body))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := s.resolver.SaveGameObject(d); err != nil {
		writeError(c, err)
		return
	}
	log.Info().Str("inspector", s.ID).Str("path", d.ID).Msg("game object stored")
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "path": d.ID})
}

func requirePath(c *gin.Context) (string, bool) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter path is required"})
		return "", false
	}
	return path, true
}

func writeError(c *gin.Context, err error) {
	c.JSON(StatusFor(err), gin.H{
		"error": err.Error(),
		"kind":  dataerr.KindOf(err).String(),
		"path":  dataerr.PathOf(err),
	})
}

// StatusFor maps a pipeline error to an HTTP status.
func StatusFor(err error) int {
	switch dataerr.KindOf(err) {
	case dataerr.KindFileSystem:
		switch {
		case errors.Is(err, hackpadfs.ErrNotExist):
			return http.StatusNotFound
		case errors.Is(err, dataerr.ErrEmptyPath),
			errors.Is(err, dataerr.ErrAbsolutePath),
			errors.Is(err, dataerr.ErrPathEscapesRoot):
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	case dataerr.KindDeserialization, dataerr.KindSerialization, dataerr.KindAssetDecode:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
