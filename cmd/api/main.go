package main

import (
	"fmt"
	"net/http"

	"github.com/pointagehq/attendance-backend-go/internal/config"
	appHTTP "github.com/pointagehq/attendance-backend-go/internal/handler/http"
	"github.com/pointagehq/attendance-backend-go/internal/pkg/database"
	"github.com/pointagehq/attendance-backend-go/internal/pkg/jwt"
	"github.com/pointagehq/attendance-backend-go/internal/repository/postgresql"
	authService "github.com/pointagehq/attendance-backend-go/internal/service/auth"
	statsService "github.com/pointagehq/attendance-backend-go/internal/service/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchEventRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	scheduleRepo := postgresql.NewShiftScheduleRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(userRepo, JWTService)
	statsSvc := statsService.NewStatisticsService(
		punchRepo,
		userRepo,
		teamRepo,
		scheduleRepo,
		cfg.Stats.GracePeriod,
		cfg.Stats.WorkerLimit,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	statsHandler := appHTTP.NewStatsHandler(statsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		statsHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
