package cmd

import (
	"fmt"
	"log/slog"

	"qatmarket/internal/adapters/out/postgres"
	"qatmarket/internal/adapters/out/push"
	"qatmarket/internal/core/application/usecases/commands"
	"qatmarket/internal/core/application/usecases/queries"
	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/core/domain/services"
	"qatmarket/internal/core/ports"
	"qatmarket/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers
// together from the configuration.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	policy     commands.Policy
	adminID    kernel.UUID
	calculator services.PaymentCalculator
	fanout     services.NotificationFanout
	dispatcher services.DriverDispatcher
	transport  ports.NotificationTransport
	batchSize  int
}

// NewCompositionRoot builds the object graph. Returns an error when the
// configured policy or admin identity is invalid.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	policy, err := commands.NewPolicy(
		config.DeliveryFee,
		config.WashingFee,
		config.RefundWindow,
		config.MinTopUpAmount,
		config.MinWithdrawalAmount,
		config.MaxWithdrawalAmount,
		config.WithdrawalFeePercent,
	)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("build policy: %w", err)
	}

	adminID, err := kernel.UUIDFromString(config.AdminID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("parse admin id: %w", err)
	}

	calculator, err := services.NewPaymentCalculator(config.PlatformFeePercent)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("build payment calculator: %w", err)
	}

	fanout, err := services.NewNotificationFanout(adminID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("build notification fanout: %w", err)
	}

	transport, err := push.NewWebhookTransport(config.PushGatewayURL, config.PushTimeout, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("build push transport: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		adminID:    adminID,
		calculator: calculator,
		fanout:     fanout,
		dispatcher: services.NewFirstAvailableDispatcher(),
		transport:  transport,
		batchSize:  config.NotificationBatchSize,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.calculator, c.fanout, c.dispatcher, c.policy)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.calculator, c.fanout, c.dispatcher, c.policy)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.calculator, c.fanout, c.dispatcher, c.policy)
}

func (c *CompositionRoot) CreateTopUpWalletCommandHandler() commands.TopUpWalletCommandHandler {
	var f commands.WalletUoWFactory = FuncWalletUoWFactory(func() commands.WalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTopUpWalletCommandHandler(f, c.policy)
}

func (c *CompositionRoot) CreateWithdrawWalletCommandHandler() (commands.WithdrawWalletCommandHandler, error) {
	var f commands.WalletUoWFactory = FuncWalletUoWFactory(func() commands.WalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewWithdrawWalletCommandHandler(f, c.policy, c.adminID)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateDeliverNotificationsCommandHandler() commands.DeliverNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverNotificationsCommandHandler(f, c.transport, c.batchSize)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDeliverNotificationsCommandHandler(), logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByParticipantQueryHandler() queries.GetOrdersByParticipantQueryHandler {
	return queries.NewGetOrdersByParticipantQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletBalanceQueryHandler() queries.GetWalletBalanceQueryHandler {
	return queries.NewGetWalletBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletTransactionsQueryHandler() queries.GetWalletTransactionsQueryHandler {
	return queries.NewGetWalletTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDriversQueryHandler() queries.GetAvailableDriversQueryHandler {
	return queries.NewGetAvailableDriversQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}
