package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/wedlux/planner-service/internal/api"
	infraauth "github.com/wedlux/planner-service/internal/infrastructure/auth"
	"github.com/wedlux/planner-service/internal/infrastructure/client"
	"github.com/wedlux/planner-service/internal/repository"
	"github.com/wedlux/planner-service/internal/usecase"
	"github.com/wedlux/planner-service/internal/worker"
)

func main() {
	var wg sync.WaitGroup

	pgConfig := client.Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		User:     envOr("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   envOr("DB_NAME", "planner"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
	}

	rabbitMQURL := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASSWORD", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"))

	// Запускаем миграции
	if err := runMigrations(pgConfig.URL()); err != nil {
		log.Fatal("❌ Ошибка миграций:", err)
	}

	// Подключаемся к БД
	postgres, err := client.NewPostgresClient(pgConfig)
	if err != nil {
		log.Fatal("❌ Ошибка подключения к БД:", err)
	}
	defer postgres.Close()
	fmt.Println("✅ Подключение к БД установлено")

	// Подключаемся к RabbitMQ
	rabbitMQ, err := client.NewRabbitMQClient(rabbitMQURL)
	if err != nil {
		log.Fatal("❌ Ошибка подключения к RabbitMQ:", err)
	}
	defer rabbitMQ.Close()
	fmt.Println("✅ Подключение к RabbitMQ установлено")

	// Инициализируем репозитории
	pool := postgres.GetPool()
	userRepo := repository.NewUserRepository(pool)
	weddingRepo := repository.NewWeddingRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	taskAuditRepo := repository.NewTaskAuditRepository(pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(pool)

	// Инициализируем сервисы
	jwtManager := infraauth.NewJWTManager()
	passwordManager := infraauth.NewPasswordManager()
	taskService := usecase.NewTaskService(taskRepo, weddingRepo, userRepo, rabbitMQ)
	weddingService := usecase.NewWeddingService(weddingRepo)
	authService := usecase.NewAuthService(userRepo, refreshTokenRepo, passwordManager, jwtManager)

	// Запускаем воркер для обработки аудит-сообщений
	auditWorker := worker.NewAuditWorker(rabbitMQURL, taskAuditRepo)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Println("Запуск Audit Worker...")
		auditWorker.Start(workerCtx)
	}()

	// Запускаем HTTP сервер
	router := api.NewRouter(taskService, weddingService, authService, jwtManager, postgres)
	httpPort := envOr("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Printf("Запуск HTTP сервера на порту %s...\n", httpPort)
		fmt.Println("📋 Ресурс задач: http://localhost:" + httpPort + "/api/tasks")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	}()

	fmt.Println("✅ Сервис планирования свадеб готов к работе!")
	fmt.Println("Для остановки нажмите Ctrl+C")

	// Ждем сигнал завершения
	waitForShutdown(server, workerCancel)
	wg.Wait()
	fmt.Println("✅ Приложение завершено корректно")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func waitForShutdown(server *http.Server, workerCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Ожидаем сигнал завершения (Ctrl+C)...")
	<-sigChan

	fmt.Println("Завершение работы...")

	// Останавливаем воркер
	workerCancel()

	// Даем время для graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP сервера: %v", err)
	}
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	fmt.Println("✅ Миграции выполнены успешно")
	return nil
}
