package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
	"github.com/pumpsoft/fuel_station_backend/pkg/config"
	"github.com/shopspring/decimal"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// The identity header is optional at the group level; handlers that write
	// data reject requests without it.
	v1 := r.Group("/api/v1", middleware.EmployeeIdentity(false))

	registerPumpRoutes(v1, services.Pump)

	// Everything below is scoped to one pump.
	pumpScoped := v1.Group("/pumps/:pump_id")
	registerAccountRoutes(pumpScoped, services.Account)
	registerVoucherRoutes(pumpScoped, services.Voucher)
	registerLedgerRoutes(pumpScoped, services.Ledger, services.Reconciliation)
	registerFinancialYearRoutes(pumpScoped, services.FinancialYear)
	registerEmployeeRoutes(pumpScoped, services.Employee)
	registerCustomerRoutes(pumpScoped, services.Customer)
}

// registerCustomValidators wires the binding tags the DTOs rely on into gin's
// validator engine. Safe to call more than once.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("decimalgtzero", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})
}
