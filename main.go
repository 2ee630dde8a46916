package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	exceptionRepo "slotify/database/repository/exception"
	invoiceRepo "slotify/database/repository/invoice"
	schedulerRepo "slotify/database/repository/scheduler"
	templateRepo "slotify/database/repository/template"
	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/billing"
	bookingSvc "slotify/services/booking"
	"slotify/services/notification"
	"slotify/services/scheduling"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	templates := templateRepo.NewMongoTemplateRepo()
	slots := timeslotRepo.NewMongoTimeSlotRepo()
	exceptions := exceptionRepo.NewMongoExceptionRepo()
	scheduler := schedulerRepo.NewMongoSchedulerRepo()
	invoices := invoiceRepo.NewMongoInvoiceRepo()

	// services.
	cacheTTL := time.Duration(config.AppConfig.TemplateCacheTTL) * time.Second
	templateCache := utils.NewTemplateCache(utils.GetCacheClient(), cacheTTL)
	schedulingService := scheduling.NewService(templates, slots, exceptions, templateCache)

	queueClient := cron.NewClient()
	invoiceService := billing.NewStripeInvoiceService()
	notificationService := notification.NewDefaultNotificationService()
	stateMachine := bookingSvc.NewDefaultStateMachine(scheduler, slots, invoiceService, invoices, notificationService)
	bookingService := bookingSvc.NewService(stateMachine, scheduler)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Booking:   handlers.NewBookingHandler(bookingService, stateMachine, scheduler, invoices, logger),
		Template:  handlers.NewTemplateHandler(schedulingService, templates, queueClient),
		Slot:      handlers.NewSlotHandler(schedulingService, slots),
		Exception: handlers.NewExceptionHandler(exceptions, schedulingService),
	}
	routes.SetupRoutes(router, handlerBundle)

	// background regeneration worker + health monitor.
	cron.InitSlotWorker(schedulingService, templates)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("mongo disconnect: %v", err)
	}
}
