// Package di wires repositories, use cases and handlers into a runnable server.
package di

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"ielts_backend/internal/app/router"
	adminhandler "ielts_backend/internal/feature/admin/transport/handler"
	adminmw "ielts_backend/internal/feature/admin/transport/middleware"
	adminusecase "ielts_backend/internal/feature/admin/usecase"
	authadapters "ielts_backend/internal/feature/auth/adapters"
	authentity "ielts_backend/internal/feature/auth/domain/entity"
	authhandler "ielts_backend/internal/feature/auth/transport/handler"
	authmw "ielts_backend/internal/feature/auth/transport/middleware"
	authusecase "ielts_backend/internal/feature/auth/usecase"
	essaysadapters "ielts_backend/internal/feature/essays/adapters"
	essayentity "ielts_backend/internal/feature/essays/domain/entity"
	essayshandler "ielts_backend/internal/feature/essays/transport/handler"
	essaysusecase "ielts_backend/internal/feature/essays/usecase"
	scoringadapters "ielts_backend/internal/feature/scoring/adapters"
	"ielts_backend/internal/feature/scoring/adapters/gemini"
	scoringhandler "ielts_backend/internal/feature/scoring/transport/handler"
	scoringusecase "ielts_backend/internal/feature/scoring/usecase"
	"ielts_backend/internal/platform/cache"
	"ielts_backend/internal/platform/config"
	jwtmw "ielts_backend/internal/platform/jwt"
	"ielts_backend/internal/platform/mailer"
	"ielts_backend/internal/platform/metrics"
	"ielts_backend/internal/platform/session"
	"ielts_backend/internal/shared/ratelimiter"
)

var (
	_ adminmw.UserLookup            = (authusecase.UserRepository)(nil)
	_ authmw.UserLookup             = (authusecase.UserRepository)(nil)
	_ authusecase.TokenRevoker      = (*session.RevocationRedis)(nil)
	_ jwtmw.RevocationChecker       = (*session.RevocationRedis)(nil)
	_ adminusecase.TopicStore       = (*cache.CachingTopicRepository)(nil)
	_ essaysusecase.TopicRepository = (*cache.CachingTopicRepository)(nil)
	_ authusecase.CodeSender        = (*mailer.Mailer)(nil)
	_ authusecase.CodeSender        = mailer.NoopSender{}
	_ scoringusecase.Recorder       = metrics.ScoringRecorder{}
)

// Models lists the tables migrated at startup.
func Models() []any {
	return []any{&authentity.User{}, &essayentity.Topic{}, &essayentity.Essay{}}
}

// SuperuserPromoter grants superuser rights by email.
type SuperuserPromoter interface {
	PromoteSuperuser(ctx context.Context, email string) error
}

// App holds the assembled HTTP engine and the services used at boot.
type App struct {
	Engine *gin.Engine
	Admin  SuperuserPromoter
}

// NewApp builds the application on top of an open database. rdb may be nil,
// in which case topics are not cached and logout does not revoke tokens.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger zerolog.Logger) (*App, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("di: config and database are required")
	}

	// Repository
	users := authadapters.NewUserGorm(db)
	topicStore := essaysadapters.NewTopicGorm(db)
	essays := essaysadapters.NewEssayGorm(db)
	topics := cache.NewCachingTopicRepository(rdb, cfg.Cache.TopicTTL, topicStore, "topics")

	var (
		revoker    authusecase.TokenRevoker
		revocation jwtmw.RevocationChecker
	)
	if rdb != nil {
		r := session.NewRevocationRedis(rdb, "auth")
		revoker, revocation = r, r
	}

	var codes authusecase.CodeSender = mailer.NoopSender{}
	if cfg.SMTP.Enabled() {
		codes = mailer.NewMailer(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP is not configured; verification codes are only logged")
	}

	var limiter ratelimiter.Limiter
	if cfg.HTTP.RateLimit > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateWindow)
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(users, jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration), codes, revoker)
	accountUC := authusecase.NewAccountUsecase(users)
	essaysUC := essaysusecase.NewEssaysUsecase(topics, essays)
	scoringUC := scoringusecase.NewScoringUsecase(
		gemini.NewClient(gemini.Config{
			DefaultModel: cfg.Gemini.DefaultModel,
			Timeout:      cfg.Gemini.Timeout,
			BaseURL:      cfg.Gemini.BaseURL,
		}),
		scoringadapters.NewCredentialStore(users),
		metrics.ScoringRecorder{},
	)
	adminUC := adminusecase.NewAdminUsecase(users, topics)

	// Handler
	engine := router.NewRouter(router.Options{
		Logger:      logger,
		JWTSecret:   cfg.JWT.Secret,
		Revocation:  revocation,
		Users:       users,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
	}, router.Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Account: authhandler.NewAccountHandler(accountUC),
		Scoring: scoringhandler.NewScoringHandler(scoringUC),
		Essays:  essayshandler.NewEssaysHandler(essaysUC),
		Admin:   adminhandler.NewAdminHandler(adminUC),
	})

	return &App{Engine: engine, Admin: adminUC}, nil
}
