package router

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-post-service/internal/adapter/gin/handler"
	"user-post-service/internal/adapter/gin/middleware"
)

//go:embed openapi.json
var openAPIDoc []byte

// SwaggerDocPath is where the OpenAPI document is served.
const SwaggerDocPath = "/swagger/user-post.swagger.json"

// Options holds the optional parts of the router.
type Options struct {
	ServiceName string
	// Registry receives the HTTP metrics and is exposed on /metrics.
	// A fresh registry is used when nil.
	Registry *prometheus.Registry
	// RateLimiter is skipped when nil.
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	v *validator.Validate,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg, "user_post")

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(metrics.Handler())
	router.Use(middleware.Recovery(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/swagger/*any", gin.WrapH(swaggerHandler()))

	api := router.Group("")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Handler())
	}

	users := api.Group("/users")
	{
		users.POST("", middleware.Body(v, handler.UserRules, log), userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:uuid", userHandler.GetUser)
		users.PUT("/:uuid", userHandler.UpdateUser)
		users.DELETE("/:uuid", userHandler.DeleteUser)
	}

	posts := api.Group("/posts")
	{
		posts.POST("", middleware.Body(v, handler.PostRules, log), postHandler.CreatePost)
		posts.GET("", postHandler.ListPosts)
	}

	return router
}

func swaggerHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(SwaggerDocPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAPIDoc)
	})
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL(SwaggerDocPath)))
	return mux
}
