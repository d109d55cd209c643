package controller

import (
	"github.com/gin-gonic/gin"

	"sondeo-backend/internal/service"
	"sondeo-backend/utilities"
)

// RegisterRoutes registers all route groups and their endpoints.
func RegisterRoutes(r *gin.Engine,
	authService service.AuthService,
	userService service.UserService,
	surveyService service.SurveyService,
	responseService service.ResponseService,
	exportService service.ExportService,
) {
	authCtrl := NewAuthController(authService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authCtrl.Register)
		authRoutes.POST("/login", authCtrl.Login)
		authRoutes.POST("/refresh", authCtrl.Refresh)
	}

	surveyCtrl := NewSurveyController(surveyService)
	responseCtrl := NewResponseController(responseService)
	exportCtrl := NewExportController(exportService)
	userCtrl := NewUserController(userService)

	protected := r.Group("/")
	protected.Use(utilities.AuthMiddleware())
	{
		protected.GET("/categories", surveyCtrl.GetCategories)
		protected.GET("/categories/:id/surveys", surveyCtrl.GetSurveysByCategory)
		protected.GET("/surveys/:id/questions", surveyCtrl.GetQuestions)

		protected.POST("/responses", responseCtrl.SubmitResponse)
		protected.GET("/users/:id/results", responseCtrl.GetUserResults)
		protected.GET("/responses/:id/export", exportCtrl.ExportResult)
	}

	admin := r.Group("/")
	admin.Use(utilities.AuthMiddleware(), utilities.AdminOnly())
	{
		admin.GET("/responses", responseCtrl.GetResponses)
		admin.GET("/users", userCtrl.GetAllUsers)
	}
}
