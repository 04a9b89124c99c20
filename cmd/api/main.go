package main

import (
	"os"
	"time"

	"mealdash/internal/config"
	"mealdash/internal/domain/model"
	"mealdash/internal/handler"
	"mealdash/internal/infra/db"
	infraRepo "mealdash/internal/infra/repository"
	"mealdash/internal/infra/seed"
	"mealdash/internal/payment"
	"mealdash/internal/server"
	"mealdash/internal/usecase"
	"mealdash/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	setupLogger(cfg)

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Meal{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	if err := seed.Meals(gormDB); err != nil {
		log.Fatal().Err(err).Msg("meal seed failed")
	}
	if err := seed.Admin(gormDB); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	mealRepo := infraRepo.NewMealGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	pay := payment.NewDemoProcessor()

	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo))
	mealUC := usecase.NewMealUsecase(mealRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, mealRepo, cfg.MaxQtyPerLine)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, pay, cfg.DeliveryWindow, cfg.ServiceFee, cfg.PaymentTimeout)
	statusUC := usecase.NewOrderStatusUsecase(txManager)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Meal:       handler.NewMealHandler(mealUC),
		Cart:       handler.NewCartHandler(cartUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(orderUC, statusUC),
		AdminMeal:  handler.NewAdminMealHandler(mealUC),
		AdminAudit: handler.NewAdminAuditHandler(auditUC),
	}

	if err := server.Start(cfg, handlers); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.GoEnv == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	log.Logger = log.Logger.With().Str("service", "mealdash-api").Logger()
}
