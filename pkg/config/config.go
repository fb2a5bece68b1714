package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGDSN     string        `envconfig:"PG_DSN" required:"true"`
	DBTimeout time.Duration `envconfig:"DB_TIMEOUT" default:"5s"`

	// JWT
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireHr int    `envconfig:"JWT_EXPIRE_HR" default:"12"`

	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// RabbitMQ for booking events
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	NotifyQueue     string `envconfig:"NOTIFY_QUEUE" default:"notification.q"`
	NotifyDLX       string `envconfig:"NOTIFY_DLX" default:"notification.dlx"`
	NotifyDLQ       string `envconfig:"NOTIFY_DLQ" default:"notification.q.dlq"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
