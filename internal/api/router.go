package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthscore/internal/logger"
	"healthscore/internal/ratelimit"
)

type RouterConfig struct {
	AssessmentHandler *AssessmentHandler
	AdminKey          string
	AdminLimiter      *ratelimit.LoginLimiter
	Logger            *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	// ClientIP feeds the admin lockout, so forwarded headers are not trusted
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	if h := cfg.AssessmentHandler; h != nil {
		api.GET("/questions", h.Questions)

		api.POST("/users/:userID/assessments", h.Submit)
		api.GET("/users/:userID/assessments", h.ListForUser)
		api.GET("/users/:userID/dashboard", h.Dashboard)

		api.GET("/assessments/:id", h.Get)
		api.DELETE("/assessments/:id", h.Delete)

		admin := api.Group("/admin")
		{
			limiter := cfg.AdminLimiter
			if limiter == nil {
				limiter = ratelimit.NewLoginLimiter(ratelimit.NewMemoryStore())
			}
			admin.Use(AdminGuard(cfg.AdminKey, limiter, cfg.Logger))
			admin.GET("/analytics", h.AdminAnalytics)
		}
	}

	return r
}

type Server struct {
	Engine *gin.Engine
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg)}
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.Engine
}
