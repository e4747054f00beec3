package controller

import (
	"art-critique-service/cache"
	"art-critique-service/canister"
	"art-critique-service/conf"
	"art-critique-service/controller/handler"
	"art-critique-service/controller/respond"
	"art-critique-service/docs"
	"art-critique-service/models/dao"
	"art-critique-service/pinning"
	"art-critique-service/service/critique_service"
	"art-critique-service/service/gallery_service"
	"art-critique-service/wallet"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupGatewayRouter setup gateway service router
func SetupGatewayRouter(store canister.Store, snapshots *cache.SnapshotCache, pin *pinning.Client, sessions *wallet.SessionContext) *gin.Engine {
	// Set Swagger host from config
	if conf.Cfg.Gateway.SwaggerBaseUrl != "" {
		docs.SwaggerInfo.Host = conf.Cfg.Gateway.SwaggerBaseUrl
	}

	// Create Gin engine
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all origins, can be configured to specific domains
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control", "X-Requested-With", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Add timing middleware
	r.Use(respond.TimingMiddleware())

	// Resolve wallet sessions for every request
	r.Use(handler.SessionMiddleware(sessions))

	// Build services
	profileDAO := dao.NewProfileDAO()
	gallery := gallery_service.NewGalleryService(store, snapshots, pin, profileDAO)
	engagement := critique_service.NewEngagementService(store, profileDAO)
	approvals := wallet.NewApprovalRegistry()
	reward := critique_service.NewRewardService(store, approvals)
	purchase := critique_service.NewPurchaseService(store, profileDAO, approvals)

	// Create handlers
	artworkHandler := handler.NewArtworkHandler(gallery, engagement, reward, purchase, pin)
	profileHandler := handler.NewProfileHandler(gallery, pin)
	sessionHandler := handler.NewSessionHandler(sessions)
	statsHandler := handler.NewStatsHandler(sessions, snapshots)

	// API v1 route group
	v1 := r.Group("/api/v1")
	{
		// Artwork routes
		artworks := v1.Group("/artworks")
		{
			// Gallery feed (cursor pagination)
			artworks.GET("", artworkHandler.ListArtworks)

			// Upload artwork (pin + create)
			artworks.POST("", artworkHandler.UploadArtwork)

			// Artwork detail (artwork + critiques + escrow balance)
			artworks.GET("/:artworkId", artworkHandler.GetArtworkDetail)

			// Like / unlike
			artworks.POST("/:artworkId/like", artworkHandler.LikeArtwork)
			artworks.DELETE("/:artworkId/like", artworkHandler.UnlikeArtwork)

			// Critiques
			artworks.POST("/:artworkId/critiques", artworkHandler.PostCritique)
			artworks.POST("/:artworkId/critiques/:critiqueId/upvote", artworkHandler.UpvoteCritique)
			artworks.POST("/:artworkId/critiques/:critiqueId/reward", artworkHandler.RewardCritique)
		}

		// Marketplace routes
		market := v1.Group("/market")
		{
			// For-sale listings
			market.GET("", artworkHandler.MarketListings)

			// NFT detail shares the artwork detail view
			market.GET("/:artworkId", artworkHandler.GetArtworkDetail)

			// Purchase
			market.POST("/:artworkId/purchase", artworkHandler.PurchaseArtwork)
		}

		// Profile routes
		v1.GET("/studio", profileHandler.GetStudio)
		v1.PUT("/profiles", profileHandler.UpdateProfile)
		v1.GET("/profiles/:principal", profileHandler.GetProfile)

		// Gateway statistics
		v1.GET("/stats", statsHandler.GetStats)

		// Session routes
		session := v1.Group("/session")
		{
			session.POST("/challenge", sessionHandler.IssueChallenge)
			session.POST("/connect", sessionHandler.Connect)
			session.GET("/me", sessionHandler.Me)
			session.POST("/disconnect", sessionHandler.Disconnect)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "gateway",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName("swagger")))

	return r
}
