package api

import (
	"net/http"

	"alphacloud/assessment-portal/internal/auth"
	"alphacloud/assessment-portal/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every portal endpoint onto the engine.
func SetupRoutes(
	router *gin.Engine,
	codec auth.TokenCodec,
	defaultClientID string,
	authService service.AuthService,
	questionnaireService service.QuestionnaireService,
	reviewService service.ReviewService,
	uploadService service.UploadService,
	templateService service.TemplateService,
	notificationService service.NotificationService,
	reportService service.ReportService,
) {
	authHandler := NewAuthHandler(authService)
	questionnaireHandler := NewQuestionnaireHandler(questionnaireService, defaultClientID)
	assessmentHandler := NewAssessmentHandler(reviewService)
	uploadHandler := NewUploadHandler(uploadService, defaultClientID)
	submittedHandler := NewSubmittedHandler(questionnaireService, defaultClientID)
	templateHandler := NewTemplateHandler(templateService)
	notificationHandler := NewNotificationHandler(notificationService)
	reportHandler := NewReportHandler(reportService, defaultClientID)

	router.Use(RequestIDMiddleware())
	router.HandleMethodNotAllowed = true
	router.NoMethod(methodNotAllowed)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		// The wizard endpoints predate the token flow and stay open; the
		// portal runs on a private network.
		apiV1.GET("/questionnaire", questionnaireHandler.Get)
		apiV1.POST("/questionnaire", questionnaireHandler.Save)

		apiV1.POST("/file-upload", uploadHandler.Upload)

		apiV1.GET("/submitted-assessments", submittedHandler.List)
		apiV1.POST("/submitted-assessments", submittedHandler.Action)
		apiV1.DELETE("/submitted-assessments", submittedHandler.Delete)

		apiV1.POST("/pdf-export", reportHandler.Export)
		apiV1.POST("/pdf-parser", templateHandler.Parse)

		apiV1.GET("/template-manager", templateHandler.Manage)
		apiV1.POST("/template-manager", templateHandler.Upload)
		apiV1.DELETE("/template-manager", templateHandler.Delete)

		apiV1.POST("/email-notifications", notificationHandler.Send)
	}

	// The review phase is the one surface behind the token codec.
	protected := apiV1.Group("")
	protected.Use(TokenAuthMiddleware(codec))
	{
		protected.GET("/assessment", assessmentHandler.Get)
		protected.POST("/assessment", assessmentHandler.Update)
	}
}
