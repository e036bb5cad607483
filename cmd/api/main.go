package main

import (
	"fmt"
	"net/http"

	"github.com/talenthub-id/ess-gateway-go/internal/config"
	appHTTP "github.com/talenthub-id/ess-gateway-go/internal/handler/http"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/database"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/frappe"
	"github.com/talenthub-id/ess-gateway-go/internal/pkg/jwt"
	"github.com/talenthub-id/ess-gateway-go/internal/repository/postgresql"
	attendanceService "github.com/talenthub-id/ess-gateway-go/internal/service/attendance"
	authService "github.com/talenthub-id/ess-gateway-go/internal/service/auth"
	holidayService "github.com/talenthub-id/ess-gateway-go/internal/service/holiday"
	leaveService "github.com/talenthub-id/ess-gateway-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	frappeClient, err := frappe.NewClient(cfg.Frappe.BaseURL, cfg.Frappe.APIKey, cfg.Frappe.APISecret, cfg.Frappe.Timezone)
	if err != nil {
		fmt.Println("Error configuring backend client:", err)
		return
	}

	sessionRepo := postgresql.NewSessionRepository(db)
	records := frappe.NewRecords(frappeClient)
	applications := frappe.NewApplications(frappeClient)
	directory := frappe.NewDirectory(frappeClient)
	holidays := frappe.NewHolidays(frappeClient)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(directory, sessionRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(records, frappeClient.Location())
	leaveSvc := leaveService.NewLeaveService(applications)
	holidaySvc := holidayService.NewHolidayService(holidays)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		holidayHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
