package router

import (
	"time"

	"crewbooks/internal/config"
	"crewbooks/internal/handler"
	"crewbooks/internal/infra"
	"crewbooks/internal/leave"
	"crewbooks/internal/middleware"
	"crewbooks/internal/repository"
	"crewbooks/internal/service"
	"crewbooks/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, hrCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	saleRepo := repository.NewSaleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	documentRepo := repository.NewInvoiceDocumentRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	saleSvc := service.NewSaleService(saleRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, documentRepo, dispatcher)
	leaveSvc := service.NewLeaveService(leaveRepo, rdb, dispatcher, leave.Policy(cfg.LeaveBalancePolicy))
	eventSvc := service.NewEventService(eventRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	salesH := handler.NewSalesHandler(saleSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc, cfg.PDFStoragePath)
	leavesH := handler.NewLeavesHandler(leaveSvc)
	eventsH := handler.NewEventsHandler(eventSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, hrCB))

	v1 := r.Group("/v1")
	{
		v1.POST("/sales", salesH.CreateSale)
		v1.GET("/sales", salesH.ListSales)
		v1.GET("/sales/:id", salesH.GetSale)
		v1.POST("/sales/:id/payments", salesH.RecordPayment)

		v1.POST("/invoices", invoicesH.CreateInvoice)
		v1.GET("/invoices", invoicesH.ListInvoices)
		v1.GET("/invoices/:id", invoicesH.GetInvoice)
		v1.GET("/invoices/:id/pdf", invoicesH.DownloadPDF)

		v1.POST("/leaves", leavesH.ApplyLeave)
		v1.GET("/leaves", leavesH.ListLeaves)
		v1.GET("/leaves/balances/:employee_id", leavesH.GetBalances)

		v1.POST("/events", eventsH.CreateEvent)
		v1.GET("/events", eventsH.ListEvents)
		v1.GET("/events/:id", eventsH.GetEvent)
		v1.PUT("/events/:id/days", eventsH.UpdateActiveDays)
		v1.POST("/events/:id/days/fill", eventsH.FillDays)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
