package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"qatmarket/cmd"
	httpadapter "qatmarket/internal/adapters/in/http"
	"qatmarket/internal/adapters/out/postgres/driverrepo"
	"qatmarket/internal/adapters/out/postgres/ledgerrepo"
	"qatmarket/internal/adapters/out/postgres/notificationrepo"
	"qatmarket/internal/adapters/out/postgres/orderrepo"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := root.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err := startWebServer(&root, config.HTTPPort); err != nil {
		log.Fatalf("Web server stopped: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&ledgerrepo.EntryDTO{},
		&notificationrepo.NotificationDTO{},
		&driverrepo.DriverDTO{},
	)
}

func startWebServer(root *cmd.CompositionRoot, port string) error {
	withdrawHandler, err := root.CreateWithdrawWalletCommandHandler()
	if err != nil {
		return err
	}

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateTopUpWalletCommandHandler(),
		withdrawHandler,
		root.CreateMarkNotificationReadCommandHandler(),
		root.CreateCreateDriverCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrdersByParticipantQueryHandler(),
		root.CreateGetWalletBalanceQueryHandler(),
		root.CreateGetWalletTransactionsQueryHandler(),
		root.CreateGetNotificationsQueryHandler(),
		root.CreateGetAvailableDriversQueryHandler(),
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	return e.Start(fmt.Sprintf("0.0.0.0:%s", port))
}
