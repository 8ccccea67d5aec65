package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/billfold/internal/analytics"
	analyticsdomain "github.com/smallbiznis/billfold/internal/analytics/domain"
	"github.com/smallbiznis/billfold/internal/config"
	"github.com/smallbiznis/billfold/internal/customer"
	customerdomain "github.com/smallbiznis/billfold/internal/customer/domain"
	"github.com/smallbiznis/billfold/internal/invoice"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
	obsmetrics "github.com/smallbiznis/billfold/internal/observability/metrics"
	"github.com/smallbiznis/billfold/internal/product"
	productdomain "github.com/smallbiznis/billfold/internal/product/domain"
	"github.com/smallbiznis/billfold/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	pdf.Module,
	product.Module,
	customer.Module,
	invoice.Module,
	analytics.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	productSvc   productdomain.Service
	customerSvc  customerdomain.Service
	invoiceSvc   invoicedomain.Service
	analyticsSvc analyticsdomain.Service
	pdfProvider  *pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	ProductSvc   productdomain.Service
	CustomerSvc  customerdomain.Service
	InvoiceSvc   invoicedomain.Service
	AnalyticsSvc analyticsdomain.Service
	PDFProvider  *pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		productSvc:   p.ProductSvc,
		customerSvc:  p.CustomerSvc,
		invoiceSvc:   p.InvoiceSvc,
		analyticsSvc: p.AnalyticsSvc,
		pdfProvider:  p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	products := api.Group("/products")
	products.POST("", s.CreateProduct)
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProduct)
	products.PUT("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.DeleteProduct)

	customers := api.Group("/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomer)
	customers.PUT("/:id", s.UpdateCustomer)
	customers.DELETE("/:id", s.DeleteCustomer)

	invoices := api.Group("/invoices")
	invoices.POST("", s.CreateInvoice)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/:id", s.GetInvoice)
	invoices.GET("/:id/receipt", s.GetInvoiceReceipt)

	api.GET("/analytics", s.GetAnalytics)
}
