// server/internal/api/routes/routes.go
package routes

import (
	"log/slog"

	"asset-hub-api-server/config"
	"asset-hub-api-server/internal/api/handlers"
	"asset-hub-api-server/internal/api/middleware"
	"asset-hub-api-server/internal/auth"
	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/models"
	"asset-hub-api-server/internal/s3"
	"asset-hub-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires repositories and handlers and returns the route table.
// Every dependency is passed in explicitly so tests can substitute doubles.
func SetupRouter(
	mongoDB *database.Mongo,
	tokens *auth.TokenManager,
	uploader *s3.Uploader,
	wsHub *socket.Hub,
	cfg config.Config,
	logger *slog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(logger))
	router.Use(cors.Default())

	assetRepo := database.NewRepository[models.Asset](mongoDB.DB, database.CollectionAssets)
	userRepo := database.NewRepository[models.User](mongoDB.DB, database.CollectionUsers)
	locationRepo := database.NewRepository[models.Location](mongoDB.DB, database.CollectionLocations)
	assignmentRepo := database.NewRepository[models.Assignment](mongoDB.DB, database.CollectionAssignments)
	requestRepo := database.NewRepository[models.Request](mongoDB.DB, database.CollectionRequests)

	authHandler := &handlers.AuthHandler{Users: userRepo, Tokens: tokens, Cfg: cfg}
	assetHandler := &handlers.AssetHandler{
		Assets:      assetRepo,
		Assignments: assignmentRepo,
		Locations:   locationRepo,
		Users:       userRepo,
		Hub:         wsHub,
		Uploader:    uploader,
	}
	userHandler := &handlers.UserHandler{Users: userRepo, Assignments: assignmentRepo}
	locationHandler := &handlers.LocationHandler{Locations: locationRepo}
	assignmentHandler := &handlers.AssignmentHandler{Assignments: assignmentRepo}
	requestHandler := &handlers.RequestHandler{
		Requests:    requestRepo,
		Assets:      assetRepo,
		Assignments: assignmentRepo,
		Locations:   locationRepo,
		Hub:         wsHub,
	}
	dashboardHandler := &handlers.DashboardHandler{Assets: assetRepo}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Tokens: tokens}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
		}

		// === PROTECTED ROUTES ===
		authed := apiV1.Group("/")
		authed.Use(middleware.Authenticate(tokens))
		{
			authed.GET("/auth/me", authHandler.Me)

			// Reads available to every signed-in role
			authed.GET("/assets", assetHandler.ListAssets)
			authed.GET("/assets/:id", assetHandler.GetAsset)
			authed.GET("/locations", locationHandler.ListLocations)
			authed.GET("/locations/:id", locationHandler.GetLocation)

			// Asset requests by regular users
			requests := authed.Group("/requests")
			{
				requests.POST("/", requestHandler.CreateRequest)
				requests.GET("/my", requestHandler.ListMyRequests)
			}

			// Operational routes for facilitators and admins
			ops := authed.Group("/")
			ops.Use(middleware.Authorize(models.RoleAdmin, models.RoleFacilitator))
			{
				assets := ops.Group("/assets")
				{
					assets.POST("/", assetHandler.CreateAsset)
					assets.PUT("/:id", assetHandler.UpdateAsset)
					assets.POST("/:id/assign", assetHandler.AssignAsset)
					assets.POST("/:id/return", assetHandler.ReturnAsset)
					assets.POST("/:id/photo", assetHandler.UploadPhoto)
					assets.GET("/:id/history", assignmentHandler.GetAssetHistory)
				}

				ops.GET("/assignments", assignmentHandler.ListAssignments)

				dashboard := ops.Group("/dashboard")
				{
					dashboard.GET("/stats", dashboardHandler.GetStats)
					dashboard.GET("/stats/locations", dashboardHandler.GetStatsByLocation)
					dashboard.GET("/stats/conditions", dashboardHandler.GetConditionStats)
				}
			}

			// Administration
			admin := authed.Group("/admin")
			admin.Use(middleware.Authorize(models.RoleAdmin))
			{
				admin.DELETE("/assets/:id", assetHandler.DeleteAsset)

				users := admin.Group("/users")
				{
					users.GET("/", userHandler.ListUsers)
					users.GET("/:id", userHandler.GetUser)
					users.GET("/:id/assignments", userHandler.GetUserAssignments)
					users.PUT("/:id", userHandler.UpdateUser)
					users.DELETE("/:id", userHandler.DeleteUser)
				}

				locations := admin.Group("/locations")
				{
					locations.POST("/", locationHandler.CreateLocation)
					locations.PUT("/:id", locationHandler.UpdateLocation)
					locations.DELETE("/:id", locationHandler.DeleteLocation)
				}

				adminRequests := admin.Group("/requests")
				{
					adminRequests.GET("/", requestHandler.ListRequests)
					adminRequests.POST("/:id/approve", requestHandler.ApproveRequest)
					adminRequests.POST("/:id/reject", requestHandler.RejectRequest)
				}
			}
		}
	}

	return router
}
