package routes

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"frontdesk-backend/controllers"
	"frontdesk-backend/middleware"
	"frontdesk-backend/utils"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Rooms     *controllers.RoomController
	Billing   *controllers.BillingController
	Inventory *controllers.InventoryController
	Prices    *controllers.PriceController
	Reports   *controllers.ReportController
	Health    *controllers.HealthController
	Realtime  http.Handler
}

type Options struct {
	CorsOrigins []string
	PublicDir   string
	Storage     middleware.Pinger
	Logger      *logrus.Logger
}

// SetupRouter mounts the front-desk API under /api and serves the dashboard
// from PublicDir for every other path.
func SetupRouter(h Handlers, opts Options) *gin.Engine {
	utils.RegisterValidation()

	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Logger != nil {
		r.Use(middleware.Logger(opts.Logger))
	}

	origins := opts.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)
	if h.Realtime != nil {
		ws := gin.WrapH(h.Realtime)
		r.GET("/ws", ws)
		api.GET("/ws", ws)
	}

	data := api.Group("")
	if opts.Storage != nil {
		data.Use(middleware.RequireStorage(opts.Storage))
	}
	{
		data.GET("/rooms", h.Rooms.GetRooms)
		data.POST("/checkin", h.Rooms.CheckIn)
		data.POST("/clean-room", h.Rooms.CleanRoom)

		data.POST("/checkout", h.Billing.Checkout)
		data.POST("/undo-checkout", h.Billing.UndoCheckout)

		data.GET("/inventory", h.Inventory.GetInventory)
		data.POST("/inventory/price", h.Inventory.UpsertItem)
		data.POST("/inventory/bulk", h.Inventory.BulkUpsert)
		data.POST("/inventory/import", h.Inventory.Import)

		data.GET("/prices", h.Prices.GetPrices)
		data.POST("/prices", h.Prices.UpdatePrices)

		data.GET("/transactions", h.Reports.GetTransactions)
		data.GET("/reports", h.Reports.GetReports)
	}

	if opts.PublicDir != "" {
		if st, err := os.Stat(opts.PublicDir); err == nil && st.IsDir() {
			files := http.FileServer(gin.Dir(opts.PublicDir, false))
			r.NoRoute(gin.WrapH(files))
		}
	}

	return r
}
