package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"wayfinder-backend/config"
	"wayfinder-backend/handlers"
	"wayfinder-backend/services"
)

func main() {
	// .env + 환경 변수
	cfg := config.Load()

	// DB 연결 (실패해도 내장/파일 도면으로 계속 실행)
	if cfg.DatabaseEnabled() {
		if err := services.InitDatabase(cfg); err != nil {
			log.Printf("⚠️  DB 초기화 실패, DB 없이 실행합니다: %v", err)
		}
	} else {
		log.Println("⚠️  DB_DRIVER 미설정, DB 없이 실행합니다.")
	}

	// 로깅 시스템 초기화
	services.InitLogging(cfg.LogFlushSize, cfg.LogFlushInterval)
	defer services.StopLogging() // 종료 시 남은 로그 저장

	// 층 도면 등록
	registry := services.NewFloorRegistry()
	registry.LoadAll(cfg.FloorPlanDir)

	navigation := services.NewNavigationService(registry, handlers.Manager.BroadcastMessage)
	stopJanitor := navigation.StartSessionJanitor(cfg.SessionSweepInterval, cfg.SessionIdleTimeout)
	defer stopJanitor()
	handlers.InitNavigation(navigation)

	app := fiber.New()

	app.Use(recover.New()) // 핸들러 panic 시 500 응답
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	go handlers.Manager.Start()
	defer handlers.Manager.Stop()

	handlers.SetupRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 서버 종료 중...")
		_ = app.Shutdown()
	}()

	addr := ":" + cfg.Port
	log.Printf("🚀 서버 시작: http://localhost%s", addr)
	log.Printf("📡 WebSocket: ws://localhost%s/websocket/web", addr)
	log.Printf("🧭 경로 API: POST http://localhost%s/api/navigation/route", addr)
	log.Printf("💾 로그 API: GET http://localhost%s/api/logs/*", addr)
	if err := app.Listen(addr); err != nil {
		log.Printf("❌ 서버 오류: %v", err)
	}
}
