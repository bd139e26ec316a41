package api

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockpulse/internal/logger"
	"stockpulse/internal/repository"
	"stockpulse/internal/service"
)

type ApiHandler struct {
	Db                    *sql.DB
	QuoteService          service.QuoteService
	EarningsService       service.EarningsService
	PredictionService     service.PredictionService
	ChartService          service.ChartService
	WatchlistRepository   repository.WatchlistRepository
	UserAccountRepository repository.UserAccountRepository

	JwtSecret         string
	TokenTTL          time.Duration
	DefaultPastWindow int
	DefaultHorizon    int
}

func (m ApiHandler) StartApi(port int) error {
	return m.router().Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stockpulse"})
	})
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]bool{"ok": true})
	})
	router.GET("/quote", m.quote)
	router.GET("/earnings", m.earnings)
	router.GET("/stats", m.yearStats)
	router.POST("/predict", m.predict)
	router.POST("/chart", m.chart)

	auth := router.Group("/auth")
	auth.POST("/register", m.register)
	auth.POST("/login", m.login)
	auth.GET("/me", m.requireUser, m.me)

	watchlist := router.Group("/watchlist", m.requireUser)
	watchlist.GET("", m.listWatchlist)
	watchlist.POST("", m.addToWatchlist)
	watchlist.DELETE("/:symbol", m.removeFromWatchlist)

	return router
}

func returnErrorJson(err error, c *gin.Context) {
	logger.Error(err)
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.NewString()
	lg := zap.S().With(
		"requestID", requestID,
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
	)
	ctx := context.WithValue(c.Request.Context(), logger.ContextKey, lg)
	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Request-ID", requestID)

	start := time.Now().UTC()
	c.Next()
	lg.Infow("request handled",
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
