package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/educompact/school-records/internal/app/controllers"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	staffController *controllers.StaffController,
	reportController *controllers.ReportController,
	uploadController *controllers.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	storagePath string,
) {
	router.Use(middleware.RequestLogger())

	// Uploaded documents are served directly from disk.
	router.Static("/uploads", storagePath)

	// API version group
	v1 := router.Group("/api/v1")

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	// Every record endpoint requires a valid token; mutations additionally
	// require the administrator role.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.GET("/:id", studentController.GetStudent)

			studentsWriteProtected := students.Group("")
			studentsWriteProtected.Use(authMiddleware.WriteAccessRequired())
			{
				studentsWriteProtected.POST("", studentController.CreateStudent)
				studentsWriteProtected.PUT("/:id", studentController.UpdateStudent)
				studentsWriteProtected.DELETE("/:id", studentController.DeleteStudent)
			}
		}

		staff := authenticated.Group("/staff")
		{
			staff.GET("", staffController.ListStaff)
			staff.GET("/:id", staffController.GetStaff)

			staffWriteProtected := staff.Group("")
			staffWriteProtected.Use(authMiddleware.WriteAccessRequired())
			{
				staffWriteProtected.POST("", staffController.CreateStaff)
				staffWriteProtected.PUT("/:id", staffController.UpdateStaff)
				staffWriteProtected.DELETE("/:id", staffController.DeleteStaff)
			}
		}

		reports := authenticated.Group("/reports")
		{
			reports.GET("", reportController.GetReports)
			reports.GET("/export", reportController.ExportReport)
		}

		uploads := authenticated.Group("/upload")
		uploads.Use(authMiddleware.WriteAccessRequired())
		{
			uploads.POST("", uploadController.UploadFile)
			uploads.DELETE("", uploadController.DeleteFile)
		}
	}

	// Fallback for unknown routes
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, dto.NewErrorResponse("Route not found"))
	})
}
