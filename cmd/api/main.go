package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/grocerymart/backoffice-go/internal/config"
	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	appHTTP "github.com/grocerymart/backoffice-go/internal/handler/http"
	"github.com/grocerymart/backoffice-go/internal/pkg/cache"
	"github.com/grocerymart/backoffice-go/internal/pkg/clock"
	"github.com/grocerymart/backoffice-go/internal/pkg/database"
	"github.com/grocerymart/backoffice-go/internal/pkg/jwt"
	"github.com/grocerymart/backoffice-go/internal/pkg/storage"
	"github.com/grocerymart/backoffice-go/internal/repository/postgresql"
	allocationService "github.com/grocerymart/backoffice-go/internal/service/allocation"
	attendanceService "github.com/grocerymart/backoffice-go/internal/service/attendance"
	serviceAuth "github.com/grocerymart/backoffice-go/internal/service/auth"
	leaveService "github.com/grocerymart/backoffice-go/internal/service/leave"
	payrollService "github.com/grocerymart/backoffice-go/internal/service/payroll"
	rosterService "github.com/grocerymart/backoffice-go/internal/service/roster"
	staffService "github.com/grocerymart/backoffice-go/internal/service/staff"
	taskTypeService "github.com/grocerymart/backoffice-go/internal/service/tasktype"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	storeClock, err := clock.New(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid store timezone:", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)

	staffRepo := postgresql.NewStaffRepository(db)
	taskTypeRepo := postgresql.NewTaskTypeRepository(db)
	templateRepo := postgresql.NewTemplateRepository(db)
	dayScheduleRepo := postgresql.NewDayScheduleRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)

	var calendarCache roster.CalendarCache = cache.NoopCalendarCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCalendarCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CalendarTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis unavailable, calendar cache disabled", "addr", cfg.Redis.Addr, "error", err)
			_ = redisCache.Close()
		} else {
			calendarCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := serviceAuth.NewAuthService(staffRepo, JWTService)
	staffSvc := staffService.NewStaffService(staffRepo)
	taskTypeSvc := taskTypeService.NewTaskTypeService(taskTypeRepo)
	rosterSvc := rosterService.NewRosterService(
		txManager,
		storeClock,
		templateRepo,
		dayScheduleRepo,
		allocationRepo,
		staffRepo,
		taskTypeRepo,
		attendanceRepo,
		calendarCache,
	)
	allocationSvc := allocationService.NewAllocationService(storeClock, allocationRepo, attendanceRepo)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, storeClock, attendanceRepo, staffRepo, calendarCache)
	leaveSvc := leaveService.NewLeaveService(txManager, storeClock, fileStorage, leaveRequestRepo, attendanceRepo, calendarCache)
	payrollSvc := payrollService.NewPayrollService(txManager, storeClock, expenseRepo, staffRepo, attendanceRepo)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
			UploadsPath:    cfg.Storage.BasePath,
		},
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc),
			Staff:      appHTTP.NewStaffHandler(staffSvc),
			TaskType:   appHTTP.NewTaskTypeHandler(taskTypeSvc),
			Roster:     appHTTP.NewRosterHandler(rosterSvc, storeClock),
			MyTask:     appHTTP.NewMyTaskHandler(allocationSvc, storeClock),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:      appHTTP.NewLeaveHandler(leaveSvc),
			Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		},
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server running", "addr", "http://localhost"+port, "timezone", cfg.App.Timezone)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
