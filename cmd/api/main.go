package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thearchitech/waitlist-api/internal/infra/database"
	"github.com/thearchitech/waitlist-api/internal/infra/http/handlers"
	"github.com/thearchitech/waitlist-api/internal/infra/http/middleware"
	"github.com/thearchitech/waitlist-api/internal/infra/mail"
	"github.com/thearchitech/waitlist-api/internal/infra/queue"
	"github.com/thearchitech/waitlist-api/internal/infra/worker"
	"github.com/thearchitech/waitlist-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "guest"),
		getenv("RABBITMQ_PASS", "guest"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repository
	waitlistRepo := database.NewWaitlistRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(getenv("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		mailPort,
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		getenv("MAIL_FROM", "no-reply@thearchitech.app"),
	)

	// 3. Workers (welcome emails off the queue, gauge off a ticker)
	emailWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go emailWorker.Start(queue.QueueName)

	gaugeWorker := worker.NewWaitlistSizeWorker(waitlistRepo)
	go gaugeWorker.Start(context.Background())

	// 4. UseCases
	joinUC := usecase.NewJoinWaitlistUseCase(waitlistRepo, producer)
	lookupUC := usecase.NewLookupEntryUseCase(waitlistRepo)

	// 5. Handlers
	waitlistHandler := handlers.NewWaitlistHandler(joinUC, lookupUC)
	statsHandler := handlers.NewStatsHandler(waitlistRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Post("/api/waitlist", waitlistHandler.HandleJoin)
	r.Get("/api/waitlist", waitlistHandler.HandleLookup)
	r.Get("/api/stats", statsHandler.Handle)
	r.Get("/api/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Route not found","message":"The requested endpoint does not exist"}`))
	})

	port := ":" + getenv("PORT", "8080")
	log.Printf("🔥 Waitlist API running on port %s", port)
	log.Fatal(http.ListenAndServe(port, r))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
