package cmd

import (
	"context"
	"time"

	"dineslot/config"
	"dineslot/database"
	capacityRepo "dineslot/database/repository/capacity"
	reservationRepo "dineslot/database/repository/reservation"
	venueRepo "dineslot/database/repository/venue"
	"dineslot/services/availability"
	"dineslot/services/booking"
	"dineslot/services/capacity"
	"dineslot/services/events"
	"dineslot/utils"

	"go.uber.org/zap"
)

// app holds the components shared by every command.
type app struct {
	logger       *zap.Logger
	venues       venueRepo.VenueRepository
	reservations reservationRepo.ReservationRepository
	slots        capacityRepo.SlotCapacityRepository
	capacity     *capacity.Manager
	housekeeper  *capacity.Housekeeper
	events       *events.AsyncPublisher
}

// bootstrap loads configuration and connects to MongoDB.
func bootstrap(ctx context.Context) (*app, error) {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	db := database.DB()

	a := &app{
		logger:       logger,
		venues:       venueRepo.NewMongoVenueRepo(db),
		reservations: reservationRepo.NewMongoReservationRepo(db),
		slots:        capacityRepo.NewMongoSlotCapacityRepo(db),
	}
	a.capacity = capacity.NewManager(a.slots, logger.Named("capacity"))
	a.housekeeper = &capacity.Housekeeper{
		Repo:          a.slots,
		Reservations:  a.reservations,
		RetentionDays: config.AppConfig.SlotRetentionDays,
		Location:      config.Location(),
		Logger:        logger.Named("housekeeping"),
	}
	return a, nil
}

// ensureIndexes creates the indexes of every collection.
func (a *app) ensureIndexes(ctx context.Context) error {
	if err := a.venues.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := a.reservations.EnsureIndexes(ctx); err != nil {
		return err
	}
	return a.slots.EnsureIndexes(ctx)
}

// calculator builds the availability calculator, backed by the Redis cache when it is reachable.
func (a *app) calculator() *availability.Calculator {
	return &availability.Calculator{
		Spaces:       a.venues,
		Restaurants:  a.venues,
		Reservations: a.reservations,
		Cache:        availability.NewCache(utils.GetCacheClient(), a.logger.Named("cache")),
		CacheTTL:     config.AvailabilityCacheTTL(),
		Location:     config.Location(),
		Logger:       a.logger.Named("availability"),
	}
}

func (a *app) publisher() booking.EventPublisher {
	if config.AppConfig.RabbitMQURL == "" {
		a.logger.Info("RABBITMQ_URL not set, reservation events are disabled")
		return events.NoopPublisher{}
	}
	if a.events == nil {
		logger := a.logger.Named("events")
		a.events = events.NewAsyncPublisher(events.NewRabbitPublisher(config.AppConfig.RabbitMQURL, logger), 256, 10*time.Second, logger)
	}
	return a.events
}

func (a *app) reservationService(calc *availability.Calculator) *booking.DefaultReservationService {
	return &booking.DefaultReservationService{
		Spaces:       a.venues,
		Restaurants:  a.venues,
		Reservations: a.reservations,
		Capacity:     a.capacity,
		Events:       a.publisher(),
		Availability: calc,
		Policy:       config.BookingPolicy(),
		Now:          time.Now,
		Location:     config.Location(),
		Logger:       a.logger.Named("booking"),
	}
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.events != nil {
		if err := a.events.Close(ctx); err != nil {
			a.logger.Warn("reservation events still queued at shutdown", zap.Error(err))
		}
	}
	if err := database.Close(ctx); err != nil {
		a.logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
	}
	_ = a.logger.Sync()
}
