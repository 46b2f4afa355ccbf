package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"marketplace_backend/internal/app/di"
	"marketplace_backend/internal/app/router"
	authhandler "marketplace_backend/internal/feature/auth/transport/handler"
	authusecase "marketplace_backend/internal/feature/auth/usecase"
	offeradapters "marketplace_backend/internal/feature/offers/adapters"
	offerhandler "marketplace_backend/internal/feature/offers/transport/handler"
	offerusecase "marketplace_backend/internal/feature/offers/usecase"
	paymenthandler "marketplace_backend/internal/feature/payment/transport/handler"
	paymentusecase "marketplace_backend/internal/feature/payment/usecase"
	infradb "marketplace_backend/internal/platform/db"
	infraredis "marketplace_backend/internal/platform/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	// db
	db := infradb.OpenDB()

	// Redis (optional: token lookups fall back to the DB without it)
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("redis unavailable, running without token cache", "error", err)
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// External collaborators
	imageHost := di.NewImageHost()
	paymentGateway := di.NewPaymentGateway()

	// Repository
	userRepo := di.NewUserRepository(rdb, db)
	offerRepo := offeradapters.NewOfferMySQL(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, imageHost)
	offersUC := offerusecase.NewOffersUsecase(offerRepo, imageHost)
	paymentsUC := paymentusecase.NewPaymentUsecase(paymentGateway)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	offersH := offerhandler.NewOfferHandler(offersUC)
	paymentsH := paymenthandler.NewPaymentHandler(paymentsUC)

	r := router.NewRouter(authH, offersH, paymentsH, authUC)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
