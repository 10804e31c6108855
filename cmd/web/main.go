package main

import (
	"context"
	"time"

	"stylemart/internal/config"
	"stylemart/internal/domain/model"
	"stylemart/internal/flash"
	"stylemart/internal/handler"
	"stylemart/internal/infra/db"
	infraRepo "stylemart/internal/infra/repository"
	"stylemart/internal/logger"
	"stylemart/internal/server"
	"stylemart/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Category{},
		&model.Product{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderLine{},
		&model.Session{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartLineRepo := infraRepo.NewCartLineGormRepository(gormDB)
	sessionRepo := infraRepo.NewSessionGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, profileRepo, sessionRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartLineRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, profileRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	//期限切れセッションの掃除
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			n, err := sessionRepo.DeleteExpired(context.Background(), time.Now())
			if err != nil {
				log.Warn("session cleanup failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("expired sessions deleted", zap.Int64("count", n))
			}
		}
	}()

	//flash（署名付きcookie）
	flashes := flash.NewStore(cfg.SessionSecret, cfg.CookieSecure)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, flashes, cfg, log)
	catalogH := handler.NewCatalogHandler(catalogUC, cartUC, flashes, log)
	cartH := handler.NewCartHandler(cartUC, flashes, log)
	orderH := handler.NewOrderHandler(orderUC, cartUC, authUC, flashes, log)
	adminH := handler.NewAdminHandler(authUC, adminOrderUC, flashes, cfg, log)

	//Server起動
	e, err := server.New(cfg, log)
	if err != nil {
		log.Fatal("server init failed", zap.Error(err))
	}

	server.RegisterRoutes(e, authUC, flashes, authH, catalogH, cartH, orderH, adminH)

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := server.Start(e, cfg); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
