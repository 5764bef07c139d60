package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/niksmo/electrostyle/config"
	"github.com/niksmo/electrostyle/internal/adapter"
	"github.com/niksmo/electrostyle/internal/adapter/catalog"
	"github.com/niksmo/electrostyle/internal/adapter/httphandler"
	"github.com/niksmo/electrostyle/internal/adapter/kafka"
	"github.com/niksmo/electrostyle/internal/adapter/notify"
	"github.com/niksmo/electrostyle/internal/adapter/storage"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/niksmo/electrostyle/internal/core/service"
	"github.com/niksmo/electrostyle/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"golang.org/x/sync/errgroup"
)

type serdes struct {
	order        schema.Serde
	notification schema.Serde
}

type broker struct {
	tlsConfig     *tls.Config
	serdes        serdes
	orders        kafka.OrdersProducer
	notifications kafka.NotificationsProducer
	processor     port.OrdersProcessor
	view          *kafka.OrdersView
}

type outbound struct {
	sqldb     *storage.SQLDB
	storages  port.LocalStorageProvider
	publisher port.OrderPublisher
	reader    port.OrderReader
	notifier  port.Notifier
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	broker     *broker
	outbound   outbound
	service    service.Service
	httpServer httphandler.HTTPServer
	group      *errgroup.Group
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	if cfg.Broker.Enabled {
		app.initBroker()
	}
	app.initOutboundAdapters()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initBroker() {
	const op = "App.initBroker"

	b := &broker{}
	if tlsFiles := app.cfg.Broker.TLS; tlsFiles.Enabled() {
		tlsConfig, err := adapter.MakeTLSConfig(tlsFiles.CA, tlsFiles.Cert, tlsFiles.Key)
		if err != nil {
			app.fallDown(op, err)
		}
		b.tlsConfig = tlsConfig
		kafka.ApplyGokaTLS(tlsConfig)
	}

	app.broker = b
	app.initSerdes()
	app.initProducers()

	seedBrokers := app.cfg.Broker.SeedBrokers
	ordersTopic := app.cfg.Broker.Topics.Orders
	groupTable := app.cfg.Broker.Consumers.OrdersGroup

	processor, err := kafka.NewOrdersProcessor(
		seedBrokers, ordersTopic, groupTable, b.serdes.order,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewOrdersView(seedBrokers, groupTable, b.serdes.order)
	if err != nil {
		app.fallDown(op, err)
	}

	b.processor = processor
	b.view = view
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srOpts := []sr.ClientOpt{sr.URLs(urls...)}
	if app.broker.tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.broker.tlsConfig))
	}

	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	orderSubject := app.cfg.Broker.Topics.Orders + "-value"
	orderSerde, err := schema.NewSerdeOrderV1(
		ctx,
		schema.SubjectOpt(orderSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	notificationSubject := app.cfg.Broker.Topics.Notifications + "-value"
	notificationSerde, err := schema.NewSerdeNotificationV1(
		ctx,
		schema.SubjectOpt(notificationSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.serdes.order = orderSerde
	app.broker.serdes.notification = notificationSerde
}

func (app *App) initProducers() {
	const op = "App.initProducers"

	ctx := app.ctx
	b := app.broker
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics

	ordersProducer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.Orders, b.tlsConfig),
		kafka.ProducerEncoderOpt(b.serdes.order),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	notificationsProducer, err := kafka.NewNotificationsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.Notifications, b.tlsConfig),
		kafka.ProducerEncoderOpt(b.serdes.notification),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	b.orders = ordersProducer
	b.notifications = notificationsProducer
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	out := &app.outbound

	switch driver := app.cfg.Storage.Driver; driver {
	case config.DriverMemory:
		book := storage.NewMemoryOrderBook()
		out.storages = storage.NewMemoryLocalStorage()
		out.publisher = book
		out.reader = book
	default:
		sqldb, err := storage.NewSQLDB(app.ctx, driver, app.cfg.Storage.DSN)
		if err != nil {
			app.fallDown(op, err)
		}
		repo := storage.NewOrdersRepository(sqldb)
		out.sqldb = &sqldb
		out.storages = storage.NewSQLLocalStorage(sqldb)
		out.publisher = repo
		out.reader = repo
	}

	out.notifier = notify.NewLogNotifier(slog.Default())

	if b := app.broker; b != nil {
		out.publisher = b.orders
		out.reader = b.view
		out.notifier = b.notifications
	}
}

func (app *App) initInboundAdapters() {
	var ordersProc port.OrdersProcessor
	if b := app.broker; b != nil {
		ordersProc = b.processor
	}
	app.service = service.New(ordersProc)

	storeCfg := service.StoreConfig{
		WriteAttempts: app.cfg.Storage.WriteAttempts,
		WriteBackoff:  app.cfg.Storage.WriteBackoff,
	}

	submitDelay := app.cfg.Checkout.SubmitDelay

	router := httphandler.NewRouter(
		httphandler.Deps{
			Catalog:  service.NewCatalog(catalog.Static{}),
			Filter:   service.FilterController{},
			Checkout: service.NewCheckout(app.outbound.publisher, submitDelay),
			Orders:   app.outbound.reader,
			Sessions: service.NewSessions(
				app.outbound.storages, app.outbound.notifier, storeCfg,
				service.MaxLiveSessionsOpt(app.cfg.Session.MaxLive),
				service.SessionIdleTimeoutOpt(app.cfg.Session.IdleTimeout),
			),
		},
		httphandler.SessionConfig{
			CookieName: app.cfg.Session.CookieName,
			MaxAge:     app.cfg.Session.MaxAge,
		},
	)

	app.httpServer = httphandler.NewHTTPServer(
		httphandler.ServerConfig{
			Addr:           app.cfg.HTTPServerAddr,
			HandlerTimeout: submitDelay + httpHandlerTimeout,
		},
		router,
	)
}

// httpHandlerTimeout is the handler budget on top of the checkout delay.
const httpHandlerTimeout = 5 * time.Second

func (app *App) Run(stopFn context.CancelFunc) {
	g, ctx := errgroup.WithContext(app.ctx)
	app.group = g

	g.Go(func() error {
		app.service.Run(ctx, stopFn)
		return nil
	})

	if b := app.broker; b != nil {
		g.Go(func() error {
			defer stopFn()
			return b.view.Run(ctx)
		})
	}

	g.Go(func() error {
		app.httpServer.Run(stopFn)
		return nil
	})

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	const op = "App.Close"
	log := slog.With("op", op)

	log.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()

	if b := app.broker; b != nil {
		b.orders.Close()
		b.notifications.Close()
	}

	if app.group != nil {
		if err := app.group.Wait(); err != nil {
			log.Error("component stopped with error", "err", err)
		}
	}

	if app.outbound.sqldb != nil {
		app.outbound.sqldb.Close()
	}

	log.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
