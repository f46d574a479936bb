// Package app はアプリケーションの起動とワイヤリングを提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/RocinRykor/Movie-API/internal/auth"
	"github.com/RocinRykor/Movie-API/internal/config"
	"github.com/RocinRykor/Movie-API/internal/database"
	"github.com/RocinRykor/Movie-API/internal/handler"
	"github.com/RocinRykor/Movie-API/internal/image"
	"github.com/RocinRykor/Movie-API/internal/logger"
	"github.com/RocinRykor/Movie-API/internal/metrics"
	"github.com/RocinRykor/Movie-API/internal/middleware"
	"github.com/RocinRykor/Movie-API/internal/movie"
	"github.com/RocinRykor/Movie-API/internal/repository"
	"github.com/RocinRykor/Movie-API/internal/seed"
	"github.com/RocinRykor/Movie-API/internal/storage"
	"github.com/RocinRykor/Movie-API/internal/user"
)

// Init はアプリケーションの初期化を行う。
// .envファイル（存在する場合）と環境変数からConfigを読み込み、
// JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. .envファイルの読み込み（存在しない場合は環境変数のみ使用）
	_ = godotenv.Load()

	// 2. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 3. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandSeed:
		return runSeed(cfg, args[1:])
	default:
		return runServe(cfg)
	}
}

// tokenVerifierAdapter はauth.TokenIssuerをmiddleware.TokenVerifierに適合させる。
type tokenVerifierAdapter struct {
	issuer *auth.TokenIssuer
}

func (a *tokenVerifierAdapter) Verify(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := a.issuer.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{
		UserID:   claims.UserID,
		Username: claims.Subject,
	}, nil
}

// runServe はAPIサーバーモードで起動する。
// DB接続とオブジェクトストレージを開き、全依存関係をワイヤリングし、
// HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. オブジェクトストレージ接続
	storeCtx, storeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.NewMinioStore(storeCtx, storage.MinioConfig{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
	})
	storeCancel()
	if err != nil {
		return fmt.Errorf("failed to connect to object storage: %w", err)
	}

	slog.Info("object storage connection established",
		slog.String("bucket", cfg.StorageBucket),
	)

	// 3. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	movieRepo := repository.NewPostgresMovieRepo(db)
	favRepo := repository.NewPostgresFavoriteRepo(db)

	// 4. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 5. ドメインサービスの初期化
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(userRepo, hasher, issuer)

	movieService := movie.NewService(movieRepo)
	userService := user.NewService(userRepo, movieRepo, favRepo, hasher)
	imageService := image.NewService(store, collector)

	// 6. レート制限の初期化（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.LoginRate = rate.Limit(float64(cfg.RateLimitLogin) / 60.0)
	rateLimiterCfg.LoginBurst = cfg.RateLimitLogin

	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		TokenVerifier:     &tokenVerifierAdapter{issuer: issuer},
		UserLoader:        userService,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),

		AuthService:  authService,
		MovieService: movieService,
		UserService:  userService,
		ImageService: imageService,

		HealthChecker:    db,
		MetricsGatherer:  registry,
		MetricsCollector: collector,
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runSeed はJSONカタログファイルから映画データを投入する。
// 使用方法: seed <カタログファイルのパス>
func runSeed(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("seed requires a catalog file path argument")
	}
	path := args[0]

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	movieRepo := repository.NewPostgresMovieRepo(db)
	importer := seed.NewImporter(movieRepo)

	count, err := importer.Import(context.Background(), f)
	if err != nil {
		return fmt.Errorf("seed failed after %d movies: %w", count, err)
	}

	slog.Info("seed completed",
		slog.String("file", path),
		slog.Int("count", count),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
