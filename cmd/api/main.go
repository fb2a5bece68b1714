package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/you/excursion-booking/internal/handlers"
	"github.com/you/excursion-booking/internal/repository"
	"github.com/you/excursion-booking/internal/service"
	"github.com/you/excursion-booking/pkg/auth"
	"github.com/you/excursion-booking/pkg/config"
	"github.com/you/excursion-booking/pkg/db"
	"github.com/you/excursion-booking/pkg/mq"
	"github.com/you/excursion-booking/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load(".env")
	cfg := must(config.Load())

	logger := must(zap.NewProduction())
	defer logger.Sync()

	shutdownTracer := obs.InitTracer("booking-api")

	gdb := db.Open(cfg.PGDSN)

	users := repository.NewUserRepo(gdb)
	suppliers := repository.NewSupplierRepo(gdb)
	excursions := repository.NewExcursionRepo(gdb)
	cars := repository.NewCarRepo(gdb)
	ledger := repository.NewBookingRepo(gdb)
	for _, m := range []interface{ Migrate() error }{users, suppliers, excursions, cars, ledger} {
		must(0, m.Migrate())
	}

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	signer := auth.NewSigner(cfg.JWTSecret, time.Duration(cfg.JWTExpireHr)*time.Hour)
	identity := service.NewIdentitySvc(users, signer, cfg.DBTimeout)
	inventory := service.NewInventorySvc(suppliers, excursions, cars, cfg.DBTimeout)
	bookings := service.NewBookingSvc(ledger, pub, logger, cfg.DBTimeout)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handlers.Router(identity, inventory, bookings),
	}
	go func() {
		logger.Info("api listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = shutdownTracer(ctx)
	logger.Info("api stopped")
}
