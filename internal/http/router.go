package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dkenzh/buildops/internal/http/middleware"
	"github.com/dkenzh/buildops/internal/model"
)

// NewRouter builds the gin engine with all routes registered. Role
// allow-lists are applied per route: reads are open to any
// authenticated caller, most writes need admin or manager, hard
// deletes need admin.
func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(handler.log))
	router.Use(cors.Default())

	elevated := middleware.RequireRoles(model.RoleAdmin, model.RoleManager)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)

	authGroup := router.Group("/auth")
	authGroup.POST("/register", handler.register)
	authGroup.POST("/login", handler.login)
	authGroup.GET("/me", authMiddleware, handler.me)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	users := protected.Group("/users")
	users.GET("", elevated, handler.listUsers)
	users.PUT("/:id/status", adminOnly, handler.setUserStatus)

	companies := protected.Group("/companies")
	companies.GET("", handler.listCompanies)
	companies.GET("/:id", handler.getCompany)
	companies.POST("", elevated, handler.createCompany)
	companies.PUT("/:id", elevated, handler.updateCompany)
	companies.DELETE("/:id", adminOnly, handler.deleteCompany)

	projects := protected.Group("/projects")
	projects.GET("", handler.listProjects)
	projects.GET("/:id", handler.getProject)
	projects.POST("", elevated, handler.createProject)
	projects.PUT("/:id", elevated, handler.updateProject)
	projects.DELETE("/:id", adminOnly, handler.deleteProject)

	categories := protected.Group("/categories")
	categories.GET("", handler.listCategories)
	categories.POST("", elevated, handler.createCategory)
	categories.DELETE("/:id", adminOnly, handler.deleteCategory)

	finances := protected.Group("/finances")
	finances.GET("", handler.listTransactions)
	finances.GET("/summary", handler.financialSummary)
	finances.GET("/chart-data", handler.chartData)
	finances.GET("/category-expenses", handler.categoryExpenses)
	finances.GET("/export", handler.exportFinances)
	finances.GET("/export/pdf", handler.exportFinancesPDF)
	finances.GET("/:id", handler.getTransaction)
	finances.POST("", handler.createTransaction)
	finances.PUT("/:id", handler.updateTransaction)
	finances.DELETE("/:id", adminOnly, handler.deleteTransaction)
	finances.PUT("/:id/approve", elevated, handler.approveTransaction)
	finances.PUT("/:id/reject", elevated, handler.rejectTransaction)

	approvals := protected.Group("/approvals")
	approvals.GET("/pending", elevated, handler.pendingApprovals)
	approvals.PUT("/finances/:id/approve", elevated, handler.approveTransaction)
	approvals.PUT("/finances/:id/reject", elevated, handler.rejectTransaction)

	resources := protected.Group("/resources")
	resources.GET("", handler.listResources)
	resources.GET("/:id", handler.getResource)
	resources.POST("", elevated, handler.createResource)
	resources.PUT("/:id", elevated, handler.updateResource)
	resources.DELETE("/:id", elevated, handler.deactivateResource)
	resources.POST("/project/:projectId/allocate", elevated, handler.allocateResource)
	resources.GET("/project/:projectId/allocations", handler.listProjectAllocations)
	resources.PUT("/project-allocation/:id", elevated, handler.updateAllocation)
	resources.DELETE("/project-allocation/:id", elevated, handler.deallocateResource)

	attendance := protected.Group("/attendance")
	attendance.GET("", handler.listAttendance)
	attendance.GET("/report", handler.attendanceReport)
	attendance.GET("/:id", handler.getAttendance)
	attendance.POST("", handler.createAttendance)
	attendance.PUT("/:id", handler.updateAttendance)
	attendance.DELETE("/:id", elevated, handler.deleteAttendance)

	materials := protected.Group("/materials")
	materials.GET("/requests", handler.listMaterialRequests)
	materials.POST("/requests", handler.createMaterialRequest)
	materials.PUT("/requests/:id/approve", elevated, handler.approveMaterialRequest)
	materials.PUT("/requests/:id/reject", elevated, handler.rejectMaterialRequest)
	materials.DELETE("/requests/:id", adminOnly, handler.deleteMaterialRequest)
	materials.GET("/purchases", handler.listMaterialPurchases)
	materials.POST("/purchases", elevated, handler.createMaterialPurchase)
	materials.DELETE("/purchases/:id", adminOnly, handler.deleteMaterialPurchase)
	materials.GET("/expenses", handler.listMaterialExpenses)

	return router
}
