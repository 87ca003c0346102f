package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/database/mongoclient"
	"github.com/x-xyz/auctionapi/base/database/redisclient"
	"github.com/x-xyz/auctionapi/base/log"
	"github.com/x-xyz/auctionapi/base/metrics"
	bValidator "github.com/x-xyz/auctionapi/base/validator"
	_ "github.com/x-xyz/auctionapi/docs"
	"github.com/x-xyz/auctionapi/domain"
	"github.com/x-xyz/auctionapi/domain/keys"
	mmiddleware "github.com/x-xyz/auctionapi/middleware"
	"github.com/x-xyz/auctionapi/service/broadcast"
	"github.com/x-xyz/auctionapi/service/cache"
	"github.com/x-xyz/auctionapi/service/cache/provider/layered"
	"github.com/x-xyz/auctionapi/service/cache/provider/local"
	cacheRedis "github.com/x-xyz/auctionapi/service/cache/provider/redis"
	"github.com/x-xyz/auctionapi/service/query"
	"github.com/x-xyz/auctionapi/service/redis"
	auction_delivery "github.com/x-xyz/auctionapi/stores/auction/delivery/http"
	auction_repository "github.com/x-xyz/auctionapi/stores/auction/repository"
	auction_usecase "github.com/x-xyz/auctionapi/stores/auction/usecase"
	auth_middleware "github.com/x-xyz/auctionapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/auctionapi/stores/auth/usecase"
	hc_delivery "github.com/x-xyz/auctionapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/auctionapi/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/auctionapi/stores/healthcheck/usecase"
	tournament_delivery "github.com/x-xyz/auctionapi/stores/tournament/delivery/http"
	tournament_repository "github.com/x-xyz/auctionapi/stores/tournament/repository"
	tournament_usecase "github.com/x-xyz/auctionapi/stores/tournament/usecase"
	user_delivery "github.com/x-xyz/auctionapi/stores/user/delivery/http"
	user_repository "github.com/x-xyz/auctionapi/stores/user/repository"
	user_usecase "github.com/x-xyz/auctionapi/stores/user/usecase"
)

var configFile = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config file")

func init() {
	pflag.Parse()

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("redis.channelPrefix", keys.PfxAuctionEvent)
	viper.SetDefault("auction.workers", 64)
	viper.SetDefault("auction.queueLength", 1024)
	viper.SetDefault("auction.taskTimeout", 3*time.Second)
	viper.SetDefault("auction.persistRetries", 3)
	viper.SetDefault("auction.persistBackoff", 100*time.Millisecond)
	viper.SetDefault("auction.restoreWorkers", 8)
	viper.SetDefault("cache.sizeMB", 16)
	viper.SetDefault("cache.ttl", 30*time.Second)

	viper.SetEnvPrefix("AUCTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// @title						Auction API
// @version					1.0
// @description				Live bidding rounds for a multi-team player draft
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/ws" },
	}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(metrics.New("http"))
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:            viper.GetString("mongo.uri"),
		AuthDBName:     viper.GetString("mongo.authDBName"),
		DBName:         viper.GetString("mongo.dbName"),
		EnableSSL:      viper.GetBool("mongo.enableSSL"),
		SetSafe:        true,
		PoolMultiplier: 2,
	})
	q := query.New(mongoClient, metrics.New("mongo"))
	ensureIndexes(context, q)

	// init Redis service
	context.Info("init redis")
	redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	redisSvc := redis.New("redis", metrics.New("redis"), &redis.Pools{
		Src: redisPool,
	})

	tournamentCache := cache.New(cache.ServiceConfig{
		TTL:    viper.GetDuration("cache.ttl"),
		Prefix: keys.PfxTournament,
		Provider: layered.New(
			local.New(keys.PfxTournament, viper.GetInt("cache.sizeMB")),
			cacheRedis.New(redisSvc),
		),
	})

	hub := broadcast.NewHub(metrics.New("ws"))
	notifier := broadcast.Fanout(hub, broadcast.NewRedis(redisSvc, viper.GetString("redis.channelPrefix")))

	workerPool := goroutines.NewPool(
		viper.GetInt("auction.workers"),
		goroutines.WithTaskQueueLength(viper.GetInt("auction.queueLength")),
		goroutines.WithPreAllocWorkers(8),
	)

	// repositories
	tournamentRepo := tournament_repository.NewTournament(q)
	playerRepo := tournament_repository.NewPlayer(q)
	assignmentRepo := tournament_repository.NewAssignment(q)
	snapshotRepo := auction_repository.NewSnapshot(q)
	userRepo := user_repository.New(q)
	hcRepo := hc_repo.New(mongoClient, redisSvc)

	// usecases
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	tournament := tournament_usecase.NewTournament(&tournament_usecase.TournamentUseCaseCfg{
		TournamentRepo: tournamentRepo,
		PlayerRepo:     playerRepo,
		AssignmentRepo: assignmentRepo,
		UserRepo:       userRepo,
		Cache:          tournamentCache,
	})
	users := user_usecase.New(&user_usecase.UserUseCaseCfg{
		UserRepo:    userRepo,
		Tournaments: tournament,
	})
	engine := auction_usecase.NewEngine(&auction_usecase.EngineCfg{
		Snapshots:      snapshotRepo,
		Tournaments:    tournament,
		Notifier:       notifier,
		Runner:         workerPool,
		Metrics:        metrics.New("auction"),
		TaskTimeout:    viper.GetDuration("auction.taskTimeout"),
		PersistRetries: viper.GetInt("auction.persistRetries"),
		PersistBackoff: viper.GetDuration("auction.persistBackoff"),
		RestoreWorkers: viper.GetInt("auction.restoreWorkers"),
	})
	hc := hc_usecase.New(hcRepo)

	// restore live auctions before any bid can be accepted
	context.Info("restore auctions")
	if err := engine.Restore(context); err != nil {
		context.WithField("err", err).Panic("engine.Restore failed")
	}

	authMiddleware := auth_middleware.New(auth)
	hc_delivery.New(e, hc)
	tournament_delivery.New(e, tournament, engine, authMiddleware, metrics.New("tournament"))
	auction_delivery.New(e, engine, tournament, authMiddleware, hub)
	user_delivery.New(e, users, authMiddleware, metrics.New("user"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}

	engine.Close()
	hub.Close()
	workerPool.Release()
	if err := redisPool.Close(); err != nil {
		log.Log().WithField("err", err).Error("redisPool.Close failed")
	}
	if err := mongoClient.Disconnect(5 * time.Second); err != nil {
		log.Log().WithField("err", err).Error("mongoClient.Disconnect failed")
	}
}

func ensureIndexes(c ctx.Ctx, q query.Mongo) {
	for _, indexes := range []map[domain.Table][]query.Index{
		tournament_repository.Indexes(),
		auction_repository.Indexes(),
		user_repository.Indexes(),
	} {
		for table, idx := range indexes {
			if err := q.EnsureIndexes(c, table, idx); err != nil {
				c.WithFields(log.Fields{"table": table, "err": err}).Panic("q.EnsureIndexes failed")
			}
		}
	}
}
