package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/office_management_sample/internal/config"
	"github.com/locvowork/office_management_sample/internal/database"
	"github.com/locvowork/office_management_sample/internal/handler"
	"github.com/locvowork/office_management_sample/internal/logger"
	"github.com/locvowork/office_management_sample/internal/repository"
	"github.com/locvowork/office_management_sample/internal/service"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

// LoadEnvironment loads the env config and initializes logging. Every
// entry point calls it first.
func LoadEnvironment(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")
	return nil
}

// DatabaseConfig builds the connection settings from the loaded env config.
func DatabaseConfig() database.Config {
	env := config.DefaultEnvConfig
	return database.Config{
		URL:             env.DATABASE_URL,
		Host:            env.DB_HOST,
		Port:            env.DB_PORT,
		User:            env.DB_USER,
		Password:        env.DB_PASSWORD,
		DBName:          env.DB_NAME,
		SSLMode:         env.DB_SSL_MODE,
		MaxOpenConns:    env.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    env.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: env.DB_CONN_MAX_LIFETIME,
	}
}

// OpenDatabase connects to PostgreSQL with the loaded env config.
func OpenDatabase(ctx context.Context) (*sql.DB, error) {
	db, err := database.NewPostgresDB(ctx, DatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.InfoLog(ctx, "Database connection established successfully")
	return db, nil
}

func (a *App) Initialize(ctx context.Context) error {
	if err := LoadEnvironment(ctx); err != nil {
		return err
	}

	db, err := OpenDatabase(ctx)
	if err != nil {
		return err
	}
	a.DB = db

	// Initialize dependencies
	officeSvc := service.NewOfficeService(
		repository.NewDepartmentRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewSalaryRepository(db),
		repository.NewBusinessRepository(db),
	)
	officeHandler := handler.NewOfficeHandler(officeSvc)

	a.RegisterMiddlewares()
	a.RegisterRoutes(officeHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoLog(c.Request().Context(), "%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(officeHandler *handler.OfficeHandler) {
	a.Echo.GET("/departments", officeHandler.ListDepartmentsHandler)
	a.Echo.GET("/departments/:id", officeHandler.GetDepartmentHandler)
	a.Echo.DELETE("/departments/:id", officeHandler.DeleteDepartmentHandler)

	a.Echo.GET("/employees", officeHandler.ListEmployeesHandler)
	a.Echo.GET("/employees/:id", officeHandler.GetEmployeeHandler)
	a.Echo.DELETE("/employees/:id", officeHandler.DeleteEmployeeHandler)

	a.Echo.GET("/businesses", officeHandler.ListBusinessesHandler)
	a.Echo.GET("/summary", officeHandler.SummaryHandler)

	exportGroup := a.Echo.Group("/export")
	exportGroup.GET("/office.xlsx", officeHandler.ExportHandler)
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
