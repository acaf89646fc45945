package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/config"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/database"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/handler"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/middleware"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/observability"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/router"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/service"
	cloud "github.com/Ahmadlawal020/schoolmanagementbe/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.ClassSection{},
		&models.Subject{},
		&models.Timetable{},
		&models.DaySchedule{},
		&models.Period{},
		&models.Assessment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Attendance{},
		&models.AttendanceMark{},
		&models.Event{},
		&models.Fee{},
		&models.Payment{},
		&models.StudentFee{},
		&models.Settings{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, schedule caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	} else {
		logger.Warn().Msg("nats url not configured, domain events disabled")
	}
	publisher := service.NewNATSPublisher(natsConn, cfg.NATSSubjectPrefix, logger)

	var uploader *cloud.Service
	if cfg.CloudinaryCloudName != "" {
		uploader, err = cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
	} else {
		logger.Warn().Msg("cloudinary not configured, uploads disabled")
	}

	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg, logger)
	userService := service.NewUserService(userRepo, subjectRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, validate, publisher, logger)
	classService := service.NewClassService(classRepo, userRepo, studentRepo, subjectRepo, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, userRepo, validate, logger)
	timetableService := service.NewTimetableService(timetableRepo, classRepo, subjectRepo, redisClient, cfg.ScheduleCacheTTL, validate, logger)
	assessmentService := service.NewAssessmentService(assessmentRepo, studentRepo, subjectRepo, classRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, classRepo, subjectRepo, studentRepo, userRepo, publisher, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, classRepo, studentRepo, validate, logger)
	eventService := service.NewEventService(eventRepo, publisher, validate, logger)
	feeService := service.NewFeeService(feeRepo, studentRepo, publisher, validate, logger)
	settingsService := service.NewSettingsService(settingsRepo, classRepo, validate, logger)

	deps := router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		ClassHandler:      handler.NewClassHandler(classService, logger),
		SubjectHandler:    handler.NewSubjectHandler(subjectService, logger),
		TimetableHandler:  handler.NewTimetableHandler(timetableService, logger),
		AssessmentHandler: handler.NewAssessmentHandler(assessmentService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		EventHandler:      handler.NewEventHandler(eventService, logger),
		FeeHandler:        handler.NewFeeHandler(feeService, logger),
		SettingsHandler:   handler.NewSettingsHandler(settingsService, logger),
		ReadyCheck:        handler.ReadyCheck(db, redisClient),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	}

	if uploader != nil {
		uploadService := service.NewUploadService(uploader, 10, logger)
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    12 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
