// Package main, akis backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1. Config'i yükle
//   2. Database'i başlat (embedded migration'larla)
//   3. Upload dizinini oluştur
//   4. Repository'leri oluştur (DB bağlantısı ile)
//   5. Service'leri oluştur (repository'ler ile)
//   6. Handler'ları oluştur (service'ler ile)
//   7. Middleware'ları oluştur
//   8. HTTP router'ı kur, route'ları bağla
//   9. CORS yapılandır
//  10. HTTP Server'ı başlat
//  11. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akinalp/akis/config"
	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/handlers"
	"github.com/akinalp/akis/middleware"
	"github.com/akinalp/akis/pkg/ratelimit"
	"github.com/akinalp/akis/repository"
	"github.com/akinalp/akis/services"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] akis server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d, multi_kind=%v)", cfg.Server.Port, cfg.Reactions.AllowMultiKind)

	// ─── 2. Database ───
	//
	// Migration dosyaları binary'ye gömülü (go:embed) — deploy edilen tek
	// dosya çalışma dizininden bağımsız olarak şemasını kurabilir.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Upload Dizini ───
	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create upload directory: %v", err)
	}

	// ─── 4. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	postRepo := repository.NewSQLitePostRepo(db.Conn)
	reactionRepo := repository.NewSQLiteReactionRepo(db.Conn)

	// ─── 5. Service Layer ───
	authService := services.NewAuthService(
		userRepo,
		sessionRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	postService := services.NewPostService(postRepo)
	uploadService := services.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxSize)
	reactionService := services.NewReactionService(reactionRepo, postRepo, userRepo, cfg.Reactions.AllowMultiKind)
	feedService := services.NewFeedService(postRepo, reactionRepo, userRepo)

	// Login brute-force koruması: IP başına 5 deneme / 2 dakika
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)
	defer loginLimiter.Stop()

	// ─── 6. Handler Layer ───
	authHandler := handlers.NewAuthHandler(authService, loginLimiter)
	postHandler := handlers.NewPostHandler(postService, uploadService, feedService, cfg.Upload.MaxSize)
	reactionHandler := handlers.NewReactionHandler(reactionService, feedService)
	feedHandler := handlers.NewFeedHandler(feedService)

	// ─── 7. Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	// Chain helper'ları:
	//   auth     — token zorunlu, yoksa 401
	//   optional — token varsa viewer kimliği context'e girer, yoksa anonim
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	optional := func(handler http.HandlerFunc) http.Handler {
		return authMw.Optional(http.HandlerFunc(handler))
	}

	// ─── 8. HTTP Router ───
	//
	// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
	// tanımlanmalı. "/api/posts/user/{id}" → "/api/posts/{id}" öncesinde,
	// yoksa router "user" kelimesini bir post ID olarak yorumlar.
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"akis"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// User
	mux.Handle("GET /api/users/me", auth(authHandler.Me))

	// Posts — okuma herkese açık, yazma token ister, düzenleme/silme sahiplik ister
	mux.Handle("POST /api/posts", auth(postHandler.Create))
	mux.HandleFunc("GET /api/posts", postHandler.List)
	mux.Handle("GET /api/posts/user/{id}", optional(postHandler.UserPosts))
	mux.HandleFunc("GET /api/posts/{id}", postHandler.Get)
	mux.Handle("PATCH /api/posts/{id}", auth(postHandler.Update))
	mux.Handle("DELETE /api/posts/{id}", auth(postHandler.Delete))

	// Reactions — toggle token ister; aggregate herkese açık ama token
	// varsa response'a viewer_kind eklenir
	mux.Handle("POST /api/posts/{id}/reactions", auth(reactionHandler.Toggle))
	mux.Handle("GET /api/posts/{id}/reactions", optional(reactionHandler.Aggregate))

	// Feed — anonim okunabilir, token varsa viewer_kind dolu gelir
	mux.Handle("GET /api/feed", optional(feedHandler.Feed))

	// Static file serving — yüklenen medyaya erişim
	//
	// http.StripPrefix: URL'den "/api/uploads/" kısmını çıkarır.
	// http.FileServer: Kalan path'i upload dizininde dosya olarak arar.
	// Örnek: GET /api/uploads/abc123_photo.jpg → ./data/uploads/abc123_photo.jpg
	//
	// Path traversal koruması:
	// http.FileServer zaten ".." path'lerini reddeder.
	// Ek güvenlik için sadece dosya isimlerini kabul edip subdirectory'leri reddediyoruz.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// ─── 9. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // web dev server
			"http://localhost:5173", // Vite dev
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 10. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 11. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Yeni request kabul etmeyi durdur, mevcut request'lerin bitmesini bekle (5sn timeout).
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
