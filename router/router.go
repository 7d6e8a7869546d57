package router

import (
	"time"

	"budget/api"
	"budget/config"
	_ "budget/docs"
	"budget/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 家庭信息
			authorized.GET("/auth/profile", authHandler.GetProfile)

			// 账户与投影
			accountHandler := api.NewAccountHandler()
			projectionHandler := api.NewProjectionHandler(cfg)
			potHandler := api.NewPotHandler()
			accounts := authorized.Group("/accounts")
			{
				accounts.POST("", accountHandler.Create)
				accounts.GET("", accountHandler.List)
				accounts.GET("/:id", accountHandler.Get)
				accounts.PUT("/:id", accountHandler.Update)
				accounts.DELETE("/:id", accountHandler.Delete)
				accounts.GET("/:id/projection", projectionHandler.GetProjection)
				accounts.GET("/:id/drawdown", projectionHandler.GetDrawdown)
				accounts.GET("/:id/pots", potHandler.ListByAccount)
			}

			// 周期性收支项目
			itemHandler := api.NewRecurringItemHandler()
			items := authorized.Group("/items")
			{
				items.POST("", itemHandler.Create)
				items.GET("", itemHandler.List)
				items.PUT("/:id", itemHandler.Update)
				items.DELETE("/:id", itemHandler.Deactivate)
			}

			// 储蓄罐
			pots := authorized.Group("/pots")
			{
				pots.POST("", potHandler.Create)
				pots.POST("/:id/payments", potHandler.Pay)
			}

			// 预算周期
			budgetHandler := api.NewBudgetHandler()
			budget := authorized.Group("/budget")
			{
				budget.POST("/cycles", budgetHandler.EnsureCycle)
				budget.POST("/paid", budgetHandler.MarkPaid)
				budget.GET("/progress", budgetHandler.GetProgress)
			}

			// 导出相关
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
