package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anime-shed/random-art-go/internal/config"
	apperrors "github.com/anime-shed/random-art-go/internal/errors"
	"github.com/anime-shed/random-art-go/internal/logger"
	"github.com/anime-shed/random-art-go/internal/state"
)

// NewHandler wires the routes: the art page itself and a health probe.
func NewHandler(st *state.SharedState, cfg *config.Config) http.Handler {
	r := gin.Default()
	r.SetHTMLTemplate(pageTemplates)

	r.GET("/health", healthCheck(st))
	r.GET("/", showArt(st, cfg))

	return r
}

func showArt(st *state.SharedState, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		userAgent := c.Request.UserAgent()
		if userAgent == "" {
			userAgent = "<unknown agent>"
		}
		realIP := c.GetHeader("X-Real-Ip")
		if realIP == "" {
			realIP = "<unknown ip>"
		}
		logger.WithFields(logrus.Fields{
			"user_agent": userAgent,
			"real_ip":    realIP,
		}).Info("serving art")

		entry := st.PickRandom()
		link, err := st.ResolveOrLookup(ctx, entry)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"source": entry.SourceURL.String(),
				"kind":   entry.Kind.String(),
			}).Error("failed to resolve art link")
			renderError(c, cfg, err)
			return
		}

		sourceURL := entry.SourceURL.String()
		if link.ReplacementSource != nil {
			sourceURL = link.ReplacementSource.String()
		}

		logger.WithFields(logrus.Fields{
			"source":             sourceURL,
			"kind":               entry.Kind.String(),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("art resolved")

		c.HTML(http.StatusOK, "art", artPage{
			Title:      cfg.SiteTitle,
			EmbedTitle: cfg.EmbedTitle,
			EmbedDesc:  cfg.EmbedDesc,
			EmbedColor: cfg.EmbedColor,
			ImageURL:   link.ImageURL,
			SourceURL:  sourceURL,
		})
	}
}

func renderError(c *gin.Context, cfg *config.Config, err error) {
	c.HTML(apperrors.GetStatusCode(err), "error", errorPage{
		Title:      cfg.SiteTitle,
		EmbedTitle: cfg.EmbedTitle,
		EmbedDesc:  cfg.EmbedDesc,
		EmbedColor: cfg.EmbedColor,
		Message:    err.Error(),
	})
}

func healthCheck(st *state.SharedState) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "available",
			"version": config.Version,
			"arts":    st.Len(),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
