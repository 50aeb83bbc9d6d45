package handlers

import (
	"net/http"

	"btb_landing_go/db"
	"btb_landing_go/services"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the lead archive is reachable and how leads are delivered
func HealthHandler(c echo.Context) error {
	status := http.StatusOK
	database := "ok"

	if db.DB == nil {
		database = "disabled"
	} else if sqlDB, err := db.DB.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
		database = "unavailable"
		status = http.StatusServiceUnavailable
	}

	mailer := "demo"
	if !services.IsDemoSender(services.Mailer) {
		mailer = services.Mailer.Provider()
	}

	return c.JSON(status, echo.Map{
		"status":   http.StatusText(status),
		"database": database,
		"mailer":   mailer,
	})
}
