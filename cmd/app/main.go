package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/BuzzLyutic/tasknest-backend/internal/config"
	"github.com/BuzzLyutic/tasknest-backend/internal/handler"
	"github.com/BuzzLyutic/tasknest-backend/internal/notify"
	"github.com/BuzzLyutic/tasknest-backend/internal/repo"
	"github.com/BuzzLyutic/tasknest-backend/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.") // Fatal потому что дальнейшая работа теряет смысл
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	// Инициализация Firebase из base64-креденшелов
	creds, err := cfg.ServiceAccountJSON()
	if err != nil {
		log.Fatal("Failed to load Firebase credentials: ", err)
	}
	fbApp, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsJSON(creds))
	if err != nil {
		log.Fatal("Failed to init Firebase app: ", err)
	}
	msgClient, err := fbApp.Messaging(context.Background())
	if err != nil {
		log.Fatal("Failed to init Firebase messaging: ", err)
	}
	logger.Info("Firebase messaging client ready")

	store := repo.NewPgStore(pool)
	dispatcher := notify.NewDispatcher(msgClient, store, logger)
	taskService := service.NewTaskService(store, dispatcher, cfg.CoinsReward)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", taskHandler.Health)
	r.Post("/assign-task", taskHandler.AssignTask)
	r.Post("/approve-task", taskHandler.ApproveTask)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
