package app

import (
	"net/http"

	"kasmoni-app-go/internal/config"
	"kasmoni-app-go/internal/db"
	activitydomain "kasmoni-app-go/internal/domain/activity"
	banksdomain "kasmoni-app-go/internal/domain/banks"
	groupsdomain "kasmoni-app-go/internal/domain/groups"
	membersdomain "kasmoni-app-go/internal/domain/members"
	paymentsdomain "kasmoni-app-go/internal/domain/payments"
	reportsdomain "kasmoni-app-go/internal/domain/reports"
	scheduledomain "kasmoni-app-go/internal/domain/schedule"
	slotsdomain "kasmoni-app-go/internal/domain/slots"
	usersdomain "kasmoni-app-go/internal/domain/users"
	activityrepo "kasmoni-app-go/internal/repository/postgres/activity"
	banksrepo "kasmoni-app-go/internal/repository/postgres/banks"
	groupsrepo "kasmoni-app-go/internal/repository/postgres/groups"
	membersrepo "kasmoni-app-go/internal/repository/postgres/members"
	paymentsrepo "kasmoni-app-go/internal/repository/postgres/payments"
	reportsrepo "kasmoni-app-go/internal/repository/postgres/reports"
	schedulerepo "kasmoni-app-go/internal/repository/postgres/schedule"
	slotsrepo "kasmoni-app-go/internal/repository/postgres/slots"
	usersrepo "kasmoni-app-go/internal/repository/postgres/users"
	"kasmoni-app-go/internal/transport/httpserver"
	"kasmoni-app-go/internal/transport/httpserver/handler"
	"kasmoni-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	groupsService := groupsdomain.NewService(groupsrepo.NewPostgres(dbConn))
	membersService := membersdomain.NewService(membersrepo.NewPostgres(dbConn))
	banksService := banksdomain.NewService(banksrepo.NewPostgres(dbConn))
	scheduleService := scheduledomain.NewService(schedulerepo.NewPostgres(dbConn), groupsService)
	slotsService := slotsdomain.NewService(slotsrepo.NewPostgres(dbConn), groupsService)
	paymentsService := paymentsdomain.NewService(paymentsrepo.NewPostgres(dbConn), slotsService, groupsService, scheduleService, log)
	reportsService := reportsdomain.NewService(reportsrepo.NewPostgres(dbConn), groupsService, cfg.Dashboard.CacheTTL)
	activityService := activitydomain.NewService(activityrepo.NewPostgres(dbConn), log)
	usersService := usersdomain.NewService(usersrepo.NewPostgres(dbConn), cfg.Auth)

	handlers := handler.New(
		groupsService,
		membersService,
		banksService,
		scheduleService,
		slotsService,
		paymentsService,
		reportsService,
		activityService,
		usersService,
		log,
	)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, usersService)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
