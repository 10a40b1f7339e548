package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rag-backend/internal/handler"
	"rag-backend/internal/middleware"
	"rag-backend/internal/service"
)

// Services 路由依赖的服务层
type Services struct {
	Auth    service.AuthService
	Lookup  *service.LookupService
	Scrape  *service.ScrapeService
	Archive *service.ArchiveService
}

// NewRouter 注册中间件与全部路由
func NewRouter(svcs Services, metrics *middleware.Metrics) *gin.Engine {
	// 1. 初始化 Handler
	authH := handler.NewAuthHandler(svcs.Auth)
	teamH := handler.NewTeamHandler(svcs.Lookup)
	invH := handler.NewInvestmentHandler(svcs.Lookup)
	sectorH := handler.NewSectorHandler(svcs.Lookup)
	consH := handler.NewConsultationHandler(svcs.Lookup)
	scrapeH := handler.NewScrapeHandler(svcs.Scrape)
	docH := handler.NewDocumentHandler(svcs.Archive)

	// 2. 中间件 (Recovery 在最外层，才能把 ErrAbortHandler 交还给 net/http)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())

	// CORS 配置
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", middleware.TraceHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 3. 公开接口
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/healthz")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/auth/token", authH.Token)

	// 4. 鉴权接口
	protected := r.Group("/")
	protected.Use(middleware.BearerAuth(svcs.Auth))
	{
		protected.GET("/ping", authH.Ping)

		api := protected.Group("/api")
		api.GET("/team", teamH.Get)
		api.GET("/team/insights", teamH.Insights)
		api.GET("/investments", invH.Get)
		api.GET("/investments/insights", invH.Insights)
		api.GET("/sectors", sectorH.Get)
		api.GET("/consultations", consH.List)
		api.GET("/scrape", scrapeH.Scrape)
		api.GET("/documents/download", docH.Download)
	}

	return r
}
