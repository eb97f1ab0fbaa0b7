// Package router assembles the gin engine and its routes.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	adminhandler "ielts_backend/internal/feature/admin/transport/handler"
	adminmw "ielts_backend/internal/feature/admin/transport/middleware"
	authhandler "ielts_backend/internal/feature/auth/transport/handler"
	authmw "ielts_backend/internal/feature/auth/transport/middleware"
	essayshandler "ielts_backend/internal/feature/essays/transport/handler"
	scoringhandler "ielts_backend/internal/feature/scoring/transport/handler"
	"ielts_backend/internal/platform/http/handler"
	"ielts_backend/internal/platform/http/middleware"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/platform/metrics"
	"ielts_backend/internal/shared/ratelimiter"
)

// Handlers groups the feature handlers mounted by NewRouter.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Account *authhandler.AccountHandler
	Scoring *scoringhandler.ScoringHandler
	Essays  *essayshandler.EssaysHandler
	Admin   *adminhandler.AdminHandler
}

// Options configures the cross-cutting middleware.
type Options struct {
	Logger     zerolog.Logger
	JWTSecret  string
	Revocation jwtmw.RevocationChecker
	// Users reloads the caller on every signed-in route.
	Users       authmw.UserLookup
	CORSOrigins []string
	// Limiter throttles the auth and scoring endpoints. Nil disables it.
	Limiter ratelimiter.Limiter
}

// NewRouter returns the engine serving every route of the API.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recover(opts.Logger), middleware.RequestLogger(opts.Logger), metrics.Middleware())

	corsCfg := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if opts.Limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.RateLimit(opts.Limiter), h}
	}

	// Public
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/register", limited(h.Auth.Signup)...)
	r.POST("/verify", limited(h.Auth.Verify)...)
	r.POST("/login", limited(h.Auth.Login)...)
	r.GET("/main/topics", h.Essays.ListTopics)
	r.GET("/main/topic/:topicId/essays", h.Essays.TopicView)

	authRequired := jwtmw.AuthRequired(opts.JWTSecret, opts.Revocation)

	main := r.Group("/main", authRequired, authmw.RequireActive(opts.Users))
	{
		main.POST("/user/logout", h.Auth.Logout)
		main.GET("/user/me", h.Account.Me)
		main.POST("/user/storage", h.Account.StoreCredential)
		main.GET("/user/info", h.Account.Info)
		main.DELETE("/user/delete", h.Account.Delete)
		main.POST("/response", limited(h.Scoring.Score)...)
		main.POST("/topic/:topicId/essays", h.Essays.Publish)
	}

	admin := r.Group("/admin", authRequired, adminmw.RequireSuperuser(opts.Users))
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.PATCH("/users/:id", h.Admin.UpdateUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.GET("/topics", h.Admin.ListTopics)
		admin.POST("/topics", h.Admin.CreateTopic)
		admin.PATCH("/topics/:id", h.Admin.UpdateTopic)
		admin.DELETE("/topics/:id", h.Admin.DeleteTopic)
	}

	return r
}
