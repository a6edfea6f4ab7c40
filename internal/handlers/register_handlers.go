package handlers

import (
	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/instituteapps/coa_backend/internal/core/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, container *services.Container) {
	registerValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")
	registerAccountRoutes(v1, container.Account)
	registerLedgerRoutes(v1, container.Ledger)
}

// registerValidators adds the custom binding validations used by the DTOs.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountkind", func(fl validator.FieldLevel) bool {
			return domain.AccountKind(fl.Field().String()).IsValid()
		})
	}
}
