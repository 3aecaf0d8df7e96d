package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-contacts-api/internal/core/auth"
	"go-contacts-api/internal/core/cache"
	"go-contacts-api/internal/repo"
	"go-contacts-api/internal/service"
	"go-contacts-api/internal/transport/http/handler"
	mdw "go-contacts-api/internal/transport/http/middleware"
)

// NewAPIEngine 组装中间件与全部路由。guard 可为 nil。
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, guard *cache.Guard) *gin.Engine {
	r := gin.New()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddAllowHeaders("Authorization")

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		cors.New(corsCfg),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 依赖装配；nil 指针不能直接塞进接口
	userRepo := repo.NewUserRepo(db)
	contactRepo := repo.NewContactRepo(db)
	var rg service.ResetGuard
	if guard != nil {
		rg = guard
	}
	authSvc := service.NewAuthService(db, userRepo, contactRepo, jwter, rg, l)
	userSvc := service.NewUserService(db, userRepo, contactRepo, l)
	contactSvc := service.NewContactService(userRepo, contactRepo)

	authH := handler.NewAuthHandler(authSvc, userSvc, l)
	userH := handler.NewUserHandler(userSvc, l)
	contactH := handler.NewContactHandler(contactSvc)

	// 公共入口，按 IP 适度再收紧
	public := r.Group("/auth")
	public.Use(mdw.RateLimitPerIP(5, 10))
	{
		public.POST("/register", authH.Register)
		public.POST("/login", authH.Login)
		public.POST("/forgot-password", authH.ForgotPassword)
		public.POST("/reset-password", authH.ResetPassword)
	}

	// 鉴权分组：每个请求都回库确认用户仍存在
	authed := r.Group("")
	authed.Use(mdw.AuthJWT(jwter, userRepo))
	{
		authed.GET("/auth/profile", authH.Profile)
		// 前端启动时探测令牌是否仍有效
		authed.GET("/auth/verify", authH.Profile)

		authed.GET("/contacts", contactH.List)
		authed.GET("/contacts/:id", contactH.Get)
		authed.POST("/contacts", contactH.Create)
		authed.PUT("/contacts/:id", contactH.Update)
		authed.DELETE("/contacts/:id", contactH.Delete)

		authed.GET("/user/profile", userH.Profile)
		authed.PUT("/user/profile", userH.UpdateProfile)
		authed.DELETE("/user/account", userH.DeleteAccount)
	}

	return r
}
