package main

import (
	"context"

	"github.com/kendall-kelly/table-orders-api/config"
	"github.com/kendall-kelly/table-orders-api/controllers"
	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// application holds the wired services and whatever needs closing on shutdown
type application struct {
	controllers *controllers.Controllers
	publisher   *events.AMQPPublisher
}

func newApplication(ctx context.Context, cfg *config.Config, db *gorm.DB, log *logrus.Logger) (*application, error) {
	estimator, err := services.NewRandomEstimator(cfg.CookingTimeMin, cfg.CookingTimeMax)
	if err != nil {
		return nil, err
	}

	app := &application{}

	var dispatcher events.Dispatcher = events.NopDispatcher{}
	if cfg.EventsEnabled() {
		publisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			// orders still work without a broker
			log.WithError(err).Warn("Order events disabled")
		} else {
			app.publisher = publisher
			dispatcher = publisher
			log.WithField("exchange", cfg.AMQPExchange).Info("Publishing order events to RabbitMQ")
		}
	}

	var images services.ImageService
	if cfg.ImagesEnabled() {
		storage, err := services.NewS3Service(ctx, cfg)
		if err != nil {
			return nil, err
		}
		images = services.NewS3ImageService(storage)
		log.WithField("bucket", cfg.AWSS3Bucket).Info("Menu images stored in S3")
	}

	app.controllers = controllers.New(controllers.Dependencies{
		DB:         db,
		Images:     images,
		Estimator:  estimator,
		Dispatcher: dispatcher,
		Log:        log,
	})
	return app, nil
}

// Close releases the broker connection, if any
func (a *application) Close() {
	if a.publisher != nil {
		_ = a.publisher.Close()
	}
}
