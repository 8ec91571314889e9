package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"solo-sparks/internal/auth"
	"solo-sparks/internal/config"
	"solo-sparks/internal/logging"
	"solo-sparks/internal/metrics"
	"solo-sparks/internal/progress"
	redisdb "solo-sparks/internal/redis"
	"solo-sparks/internal/recommend"
)

// services bundles what the user-facing handlers need.
type services struct {
	recommend *recommend.Service
	progress  *progress.Service
	cache     *redisdb.RecommendationCache
	rdb       *redis.Client
	log       logrus.FieldLogger
}

func newServices(cfg *config.Config, rdb *redis.Client, log logrus.FieldLogger) *services {
	ttl := time.Duration(cfg.Recommend.CacheTTLSeconds) * time.Second
	return &services{
		recommend: recommend.NewService(cfg.Recommend.Limit, log),
		progress:  progress.NewService(log),
		cache:     redisdb.NewRecommendationCache(rdb, ttl),
		rdb:       rdb,
		log:       log,
	}
}

func SetupRouter(cfg *config.Config, rdb *redis.Client, log logrus.FieldLogger) *gin.Engine {
	if log == nil {
		log = logging.Discard()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log), metrics.GinMiddleware())

	subpath := cfg.Server.Subpath // e.g. "/sparks"; empty mounts at the root
	svc := newServices(cfg, rdb, log)

	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))
		group.GET("/metrics", gin.WrapH(promhttp.Handler()))

		// First admin account, only while no users exist
		group.POST("/setup", SetupHandler())

		// Auth
		group.POST("/auth/register", RegisterHandler(cfg, rdb))
		group.POST("/auth/login", LoginHandler(cfg, rdb))
		group.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb, false), LogoutHandler(rdb))
		group.GET("/auth/me", auth.AuthMiddleware(cfg, rdb, false), MeHandler())

		// Admin: users
		admin := group.Group("", auth.AuthMiddleware(cfg, rdb, true))
		registerAdminRoutes(admin, rdb)

		// Self-service
		authed := group.Group("", auth.AuthMiddleware(cfg, rdb, false))
		registerUserRoutes(authed, svc)
	}
	return r
}

func registerAdminRoutes(g *gin.RouterGroup, rdb *redis.Client) {
	g.GET("/users", ListUsersHandler())
	g.POST("/users", CreateUserHandler())
	g.GET("/users/online", OnlineUserCountHandler(rdb))
	g.GET("/users/:id", GetUserByIdHandler())
	g.PUT("/users/:id", UpdateUserByIdHandler())
	g.DELETE("/users/:id", DeleteUserByIdHandler(rdb))
}

// registerUserRoutes mounts every route that acts on the signed-in user.
func registerUserRoutes(g *gin.RouterGroup, svc *services) {
	g.GET("/users/me", GetMeHandler())
	g.PUT("/users/me", UpdateMeHandler())
	g.DELETE("/users/me", DeleteMeHandler(svc))

	g.GET("/profile", GetProfileHandler())
	g.POST("/profile", SaveProfileHandler(svc))

	g.GET("/mood", ListMoodsHandler())
	g.POST("/mood", LogMoodHandler(svc))

	g.GET("/quests", ListQuestsHandler(svc))
	g.POST("/quests", AssignQuestHandler(svc))
	g.GET("/quests/:id", GetQuestHandler())
	g.POST("/quests/:id/complete", CompleteQuestHandler(svc))

	g.GET("/progress", ProgressHandler(svc))
	g.GET("/points", PointsHandler())

	g.GET("/rewards", ListRewardsHandler())
	g.POST("/rewards", RedeemRewardHandler())
}
