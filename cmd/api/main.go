package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SAMSGit/sams_api/internal/cache"
	"github.com/SAMSGit/sams_api/internal/config"
	"github.com/SAMSGit/sams_api/internal/database"
	"github.com/SAMSGit/sams_api/internal/handler"
	"github.com/SAMSGit/sams_api/internal/middleware"
	"github.com/SAMSGit/sams_api/internal/models"
	"github.com/SAMSGit/sams_api/internal/repository"
	"github.com/SAMSGit/sams_api/internal/service"
	"github.com/SAMSGit/sams_api/internal/utils"
)

// main is the application entrypoint for the SAMS API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting sams api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	tokenStore := cache.NewTokenStore(redisClient)

	// 4. Initialize repositories
	principalRepo := repository.NewPrincipalRepository(db)
	adminUserRepo := repository.NewAdminUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	feeRepo := repository.NewFeeStructureRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// 5. Initialize services
	authSvc := service.NewAuthService(principalRepo, tokenStore)
	adminUserSvc := service.NewAdminUserService(adminUserRepo)

	// 5a. Provision the initial superuser on an empty database
	if err := bootstrapSuperuser(principalRepo, adminUserSvc, &cfg.Bootstrap); err != nil {
		log.Error().Err(err).Msg("superuser bootstrap failed")
		fmt.Fprintf(os.Stderr, "superuser bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	// 6. Initialize handlers
	handlers := &Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		AdminUser:    handler.NewAdminUserHandler(adminUserSvc),
		Classroom:    handler.NewClassroomHandler(classroomRepo),
		Student:      handler.NewStudentHandler(studentRepo),
		Attendance:   handler.NewAttendanceHandler(attendanceRepo),
		Grade:        handler.NewGradeHandler(gradeRepo),
		FeeStructure: handler.NewFeeStructureHandler(feeRepo),
		Payment:      handler.NewPaymentHandler(paymentRepo),
	}

	// 7. Initialize middleware
	authMw := middleware.NewAuthMiddleware(authSvc)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, authMw, db)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Auth         *handler.AuthHandler
	AdminUser    *handler.AdminUserHandler
	Classroom    *handler.ClassroomHandler
	Student      *handler.StudentHandler
	Attendance   *handler.AttendanceHandler
	Grade        *handler.GradeHandler
	FeeStructure *handler.FeeStructureHandler
	Payment      *handler.PaymentHandler
}

// setupRoutes registers all routes. Classroom reads are public and classroom
// and admin-user writes require a staff account; every other resource only
// requires an authenticated caller.
func setupRoutes(router *gin.Engine, handlers *Handlers, authMw *middleware.AuthMiddleware, db *sqlx.DB) {
	router.GET("/v1/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			utils.Error(c, 503, "UNHEALTHY", "database unreachable")
			return
		}
		utils.Success(c, 200, "OK", gin.H{"status": "healthy"})
	})

	auth := router.Group("/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", authMw.Handle(), handlers.Auth.Logout)
		auth.GET("/me", authMw.Handle(), handlers.Auth.Me)
	}

	classrooms := router.Group("/v1/classrooms")
	{
		classrooms.GET("", authMw.HandleOptional(), handlers.Classroom.ListClassrooms)
		classrooms.GET("/:id", authMw.HandleOptional(), handlers.Classroom.GetClassroom)

		staffOnly := classrooms.Group("", authMw.Handle(), authMw.RequireStaff())
		staffOnly.POST("", handlers.Classroom.CreateClassroom)
		staffOnly.PUT("/:id", handlers.Classroom.UpdateClassroom)
		staffOnly.PATCH("/:id", handlers.Classroom.PatchClassroom)
		staffOnly.DELETE("/:id", handlers.Classroom.DeleteClassroom)
	}

	adminUsers := router.Group("/v1/admin-users")
	adminUsers.Use(authMw.Handle())
	{
		adminUsers.GET("", handlers.AdminUser.ListAdminUsers)
		adminUsers.GET("/:id", handlers.AdminUser.GetAdminUser)

		staffOnly := adminUsers.Group("", authMw.RequireStaff())
		staffOnly.POST("", handlers.AdminUser.CreateAdminUser)
		staffOnly.PUT("/:id", handlers.AdminUser.ReplaceAdminUser)
		staffOnly.PATCH("/:id", handlers.AdminUser.UpdateAdminUser)
		staffOnly.DELETE("/:id", handlers.AdminUser.DeleteAdminUser)
	}

	students := router.Group("/v1/students")
	students.Use(authMw.Handle())
	{
		students.GET("", handlers.Student.ListStudents)
		students.GET("/:id", handlers.Student.GetStudent)
		students.POST("", handlers.Student.CreateStudent)
		students.PUT("/:id", handlers.Student.UpdateStudent)
		students.PATCH("/:id", handlers.Student.PatchStudent)
		students.DELETE("/:id", handlers.Student.DeleteStudent)
	}

	attendance := router.Group("/v1/attendance")
	attendance.Use(authMw.Handle())
	{
		attendance.GET("", handlers.Attendance.ListAttendance)
		attendance.GET("/:id", handlers.Attendance.GetAttendance)
		attendance.POST("", handlers.Attendance.CreateAttendance)
		attendance.PUT("/:id", handlers.Attendance.UpdateAttendance)
		attendance.PATCH("/:id", handlers.Attendance.PatchAttendance)
		attendance.DELETE("/:id", handlers.Attendance.DeleteAttendance)
	}

	grades := router.Group("/v1/grades")
	grades.Use(authMw.Handle())
	{
		grades.GET("", handlers.Grade.ListGrades)
		grades.GET("/:id", handlers.Grade.GetGrade)
		grades.POST("", handlers.Grade.CreateGrade)
		grades.PUT("/:id", handlers.Grade.UpdateGrade)
		grades.PATCH("/:id", handlers.Grade.PatchGrade)
		grades.DELETE("/:id", handlers.Grade.DeleteGrade)
	}

	fees := router.Group("/v1/fee-structure")
	fees.Use(authMw.Handle())
	{
		fees.GET("", handlers.FeeStructure.ListFeeStructures)
		fees.GET("/:id", handlers.FeeStructure.GetFeeStructure)
		fees.POST("", handlers.FeeStructure.CreateFeeStructure)
		fees.PUT("/:id", handlers.FeeStructure.UpdateFeeStructure)
		fees.PATCH("/:id", handlers.FeeStructure.PatchFeeStructure)
		fees.DELETE("/:id", handlers.FeeStructure.DeleteFeeStructure)
	}

	payments := router.Group("/v1/payments")
	payments.Use(authMw.Handle())
	{
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
		payments.POST("", handlers.Payment.CreatePayment)
		payments.PUT("/:id", handlers.Payment.UpdatePayment)
		payments.PATCH("/:id", handlers.Payment.PatchPayment)
		payments.DELETE("/:id", handlers.Payment.DeletePayment)
	}
}

// bootstrapSuperuser provisions the first super admin account when the
// principals table is empty and bootstrap credentials are configured.
// The bootstrap account has no creator, so its created_by_name reads
// as "System".
func bootstrapSuperuser(principals *repository.PrincipalRepository, admins *service.AdminUserService, cfg *config.BootstrapConfig) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	count, err := principals.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = admins.Create(&service.CreateAdminUserRequest{
		Username:    cfg.AdminUsername,
		Email:       cfg.AdminEmail,
		Password:    cfg.AdminPassword,
		Role:        models.RoleSuperAdmin,
		Status:      models.StatusActive,
		IsStaff:     true,
		IsSuperuser: true,
	}, nil)
	if err != nil {
		return err
	}
	log.Info().Str("username", cfg.AdminUsername).Msg("initial superuser provisioned")
	return nil
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
