package main

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/frontdesk/visitor-pass/internal/api"
	"github.com/frontdesk/visitor-pass/internal/api/handler"
	"github.com/frontdesk/visitor-pass/internal/authz"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
	"github.com/frontdesk/visitor-pass/internal/core/service"
	"github.com/frontdesk/visitor-pass/internal/infrastructure/artifact"
	"github.com/frontdesk/visitor-pass/internal/infrastructure/config"
	mongodb "github.com/frontdesk/visitor-pass/internal/infrastructure/db/mongo"
	redisdb "github.com/frontdesk/visitor-pass/internal/infrastructure/db/redis"
	"github.com/frontdesk/visitor-pass/internal/infrastructure/notify"
	"github.com/frontdesk/visitor-pass/internal/infrastructure/queue"
	"github.com/frontdesk/visitor-pass/internal/passcode"
	"github.com/frontdesk/visitor-pass/pkg/logger"
)

// app is the fully wired object graph shared by every subcommand.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	mongoClient *mongo.Client
	db          *mongo.Database
	redis       *goredis.Client
	dispatcher  *queue.Dispatcher

	authorizer   ports.Authorizer
	auth         *service.AuthService
	users        *service.UserService
	visitors     *service.VisitorService
	appointments *service.AppointmentService
	passes       *service.PassService
	checkLogs    *service.CheckLogService
	scans        *service.ScanService
	reports      *service.ReportService
}

// wire connects to the stores and builds all services. withRedis controls
// whether the scan guard is connected; maintenance commands skip it.
func wire(ctx context.Context, cfg *config.Config, log zerolog.Logger, withRedis bool) (*app, error) {
	a := &app{cfg: cfg, log: log}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	a.mongoClient, a.db = client, db

	visitorRepo := mongodb.NewVisitorRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	passRepo := mongodb.NewPassRepository(db)
	checkLogRepo := mongodb.NewCheckLogRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	if err := mongodb.EnsureIndexes(ctx, visitorRepo, appointmentRepo, passRepo, checkLogRepo, userRepo); err != nil {
		a.close(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	var guard ports.ScanGuard
	if withRedis && cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			a.close(context.Background())
			return nil, err
		}
		a.redis = rdb
		guard = redisdb.NewScanGuard(rdb, cfg.Pass.ScanDedupWindow)
	}

	enforcer, err := authz.NewEnforcer(cfg.PolicyPath)
	if err != nil {
		a.close(context.Background())
		return nil, err
	}
	a.authorizer = enforcer

	senders := notify.Build(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: "Visitor Pass",
		UseTLS:   cfg.SMTP.UseTLS,
	}, notify.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		From:       cfg.Twilio.From,
	}, logger.For("notify"))
	a.dispatcher = queue.NewDispatcher(cfg.Notify.Workers, cfg.Notify.Buffer, senders, logger.For("dispatcher"))

	codec := passcode.NewCodec(cfg.Pass.SigningKey)
	if !codec.Signed() {
		log.Warn().Msg("PASS_SIGNING_KEY not set, pass payloads are unsigned")
	}
	renderer := artifact.NewPDFRenderer(cfg.UploadDir, cfg.BaseURL)

	a.auth = service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	a.users = service.NewUserService(userRepo, enforcer, log)
	a.visitors = service.NewVisitorService(visitorRepo, appointmentRepo, enforcer, a.dispatcher, log)
	a.appointments = service.NewAppointmentService(appointmentRepo, visitorRepo, userRepo, enforcer, a.dispatcher, log)
	a.passes = service.NewPassService(service.PassDeps{
		Passes:       passRepo,
		Visitors:     visitorRepo,
		Appointments: appointmentRepo,
		Encoder:      codec,
		Renderer:     renderer,
		Authorizer:   enforcer,
		Notifier:     a.dispatcher,
	}, service.PassPolicy{
		DefaultExpiryHours: cfg.Pass.DefaultExpiryHours,
		MaxExpiryHours:     cfg.Pass.MaxExpiryHours,
	}, log)
	a.checkLogs = service.NewCheckLogService(checkLogRepo, visitorRepo, passRepo, enforcer, log)
	a.scans = service.NewScanService(codec, a.passes, a.checkLogs, guard, enforcer, log)
	a.reports = service.NewReportService(visitorRepo, appointmentRepo, passRepo, checkLogRepo, enforcer)

	return a, nil
}

func (a *app) routerDeps() api.Deps {
	checks := map[string]handler.CheckFunc{"mongodb": handler.MongoCheck(a.db)}
	if a.redis != nil {
		checks["redis"] = handler.RedisCheck(a.redis)
	}
	return api.Deps{
		Log:             a.log,
		JWTSecret:       a.cfg.JWTSecret,
		Authorizer:      a.authorizer,
		Auth:            a.auth,
		Users:           a.users,
		Visitors:        a.visitors,
		Appointments:    a.appointments,
		Passes:          a.passes,
		CheckLogs:       a.checkLogs,
		Scans:           a.scans,
		Reports:         a.reports,
		HealthChecks:    checks,
		UploadDir:       a.cfg.UploadDir,
		PublicRateLimit: a.cfg.PublicRateLimit,
	}
}

// close releases connections. Queued notifications are drained first.
func (a *app) close(ctx context.Context) error {
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.mongoClient != nil {
		errs = append(errs, a.mongoClient.Disconnect(ctx))
	}
	return errors.Join(errs...)
}
