package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/controllers"
	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	catalogController *controllers.CatalogController,
	assignmentController *controllers.AssignmentController,
	submissionController *controllers.SubmissionController,
	careerController *controllers.CareerController,
	payrollController *controllers.PayrollController,
	dashboardController *controllers.DashboardController,
	fileController *controllers.FileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register/request-otp", authController.RequestOTP)
		auth.POST("/register/verify-otp", authController.VerifyOTP)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
		auth.POST("/activate", authController.Activate)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// Public catalog browsing
	v1.GET("/courses", catalogController.ListCourses)
	v1.GET("/courses/:id", catalogController.GetCourse)
	v1.GET("/internships", catalogController.ListInternships)
	v1.GET("/internships/:id", catalogController.GetInternship)
	v1.GET("/projects", catalogController.ListProjects)
	v1.GET("/projects/:id", catalogController.GetProject)

	// Public careers page and contact form
	v1.GET("/careers", careerController.ListCareers)
	v1.GET("/careers/:id", careerController.GetCareer)
	v1.POST("/contact", careerController.SubmitContact)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.GET("/announcements", careerController.ListAnnouncements)

		// Assignment workflow: students act on their own, staff on all
		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("/mine", assignmentController.ListMine)
			assignments.GET("/:id", assignmentController.Get)
			assignments.GET("/:id/invoice", assignmentController.Invoice)
			assignments.POST("/:id/requirement", assignmentController.SubmitRequirement)

			staff := assignments.Group("")
			staff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleEmployee))
			{
				staff.GET("", assignmentController.List)
				staff.POST("", assignmentController.Assign)
				staff.PATCH("/:id/status", assignmentController.AdvanceStatus)
				staff.POST("/:id/payments", assignmentController.RecordPayment)
				staff.PATCH("/:id/progress", assignmentController.UpdateProgress)
				staff.POST("/:id/files", assignmentController.AttachDeliveryFile)
			}
		}

		submissions := authenticated.Group("/submissions")
		{
			submissions.POST("", submissionController.Create)
			submissions.GET("/mine", submissionController.ListMine)
			submissions.GET("/:id", submissionController.Get)

			staff := submissions.Group("")
			staff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleEmployee))
			{
				staff.GET("", submissionController.List)
				staff.PATCH("/:id/review", submissionController.Review)
			}
		}

		files := authenticated.Group("/files")
		{
			files.POST("", fileController.Upload)
			files.GET("/download", fileController.Download)
			files.DELETE("", fileController.Delete)
		}

		// Payslips are visible to their owner; generation is admin-only below
		payroll := authenticated.Group("/payroll")
		{
			payroll.GET("/payslips", payrollController.ListPayslips)
			payroll.GET("/payslips/:id", payrollController.GetPayslip)
			payroll.GET("/payslips/:id/pdf", payrollController.PayslipPDF)
		}

		// --- Admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/users/invite", userController.Invite)
			admin.GET("/users", userController.List)
			admin.GET("/users/:id", userController.Get)
			admin.PATCH("/users/:id/status", userController.SetStatus)

			admin.POST("/courses", catalogController.CreateCourse)
			admin.PUT("/courses/:id", catalogController.UpdateCourse)
			admin.DELETE("/courses/:id", catalogController.DeleteCourse)
			admin.POST("/internships", catalogController.CreateInternship)
			admin.PUT("/internships/:id", catalogController.UpdateInternship)
			admin.DELETE("/internships/:id", catalogController.DeleteInternship)
			admin.POST("/projects", catalogController.CreateProject)
			admin.PUT("/projects/:id", catalogController.UpdateProject)
			admin.DELETE("/projects/:id", catalogController.DeleteProject)
			admin.PUT("/projects/:id/thumbnail", catalogController.SetProjectThumbnail)

			admin.POST("/careers", careerController.CreateCareer)
			admin.PUT("/careers/:id", careerController.UpdateCareer)
			admin.DELETE("/careers/:id", careerController.DeleteCareer)

			admin.POST("/offers", careerController.CreateOffer)
			admin.GET("/offers", careerController.ListOffers)
			admin.GET("/offers/:id", careerController.GetOffer)
			admin.POST("/offers/:id/send", careerController.SendOffer)
			admin.PATCH("/offers/:id/status", careerController.UpdateOfferStatus)
			admin.GET("/offers/:id/letter", careerController.OfferLetter)

			admin.POST("/announcements", careerController.CreateAnnouncement)
			admin.PUT("/announcements/:id", careerController.UpdateAnnouncement)
			admin.DELETE("/announcements/:id", careerController.DeleteAnnouncement)

			admin.GET("/contact", careerController.ListInquiries)

			admin.PUT("/payroll/structures", payrollController.UpsertSalaryStructure)
			admin.GET("/payroll/structures/:employeeId", payrollController.GetSalaryStructure)
			admin.POST("/payroll/payslips", payrollController.GeneratePayslip)
			admin.POST("/payroll/employees", payrollController.CreateEmployeeProfile)
			admin.GET("/payroll/employees", payrollController.ListEmployeeProfiles)
			admin.GET("/payroll/employees/:userId", payrollController.GetEmployeeProfile)

			admin.GET("/dashboard/counts", dashboardController.Counts)
			admin.GET("/dashboard/reports/:name", dashboardController.ExportReport)
		}
	}
}
