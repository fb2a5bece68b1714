package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/you/excursion-booking/internal/events"
	"github.com/you/excursion-booking/internal/notifier"
	"github.com/you/excursion-booking/internal/worker"
	"github.com/you/excursion-booking/pkg/config"
	"github.com/you/excursion-booking/pkg/mq"
)

func main() {
	_ = godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var cons *mq.Consumer
	for {
		cons, err = mq.NewConsumer(mq.ConsumerConfig{
			URL:      cfg.RabbitURL,
			Exchange: cfg.BookingExchange,
			Queue:    cfg.NotifyQueue,
			Keys:     []string{events.RKBookingConfirmed},
			Prefetch: 16,
			DLXName:  cfg.NotifyDLX,
			DLXQueue: cfg.NotifyDLQ,
		})
		if err == nil {
			break
		}
		logger.Warn("connect failed, retrying", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	n := notifier.NewConsole(logger)
	w := worker.NewConsumer(cons, n, logger)
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error("run", zap.Error(err))
		}
	}()

	logger.Info("notification worker started",
		zap.String("queue", cfg.NotifyQueue), zap.String("exchange", cfg.BookingExchange))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
}
