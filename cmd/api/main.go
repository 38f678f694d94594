package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fhuszti/portfolio-medias-go/internal/cache"
	"github.com/fhuszti/portfolio-medias-go/internal/catalog"
	"github.com/fhuszti/portfolio-medias-go/internal/config"
	"github.com/fhuszti/portfolio-medias-go/internal/handler/api"
	"github.com/fhuszti/portfolio-medias-go/internal/integrity"
	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	cMiddleware "github.com/fhuszti/portfolio-medias-go/internal/middleware"
	"github.com/fhuszti/portfolio-medias-go/internal/optimiser"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
	"github.com/fhuszti/portfolio-medias-go/internal/renderer"
	"github.com/fhuszti/portfolio-medias-go/internal/storage"
	"github.com/fhuszti/portfolio-medias-go/internal/task"
	mediaSvc "github.com/fhuszti/portfolio-medias-go/internal/usecase/media"
	msuuid "github.com/fhuszti/portfolio-medias-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/netutil"
)

// multipart framing around the file part
const formOverhead = 1 << 20

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	primary, mirror := initTrees(ctx, cfg)

	store, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to open media catalog: %v", err)
		os.Exit(1)
	}

	specs, err := optimiser.LoadSpecsFile(cfg.ImageSpecsFile)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to load image specs: %v", err)
		os.Exit(1)
	}
	quality := cfg.ImageQuality
	if quality == 0 {
		quality = optimiser.DefaultQuality
	}
	transformer := optimiser.NewTransformer(optimiser.NewWebPEncoder(), quality)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoopCache()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and mirror retries are disabled")
	}

	r := initRouter(ctx)

	uploaderSvc := mediaSvc.NewMediaUploader(primary, mirror, transformer, specs, msuuid.NewID,
		mediaSvc.UploadConfig{MaxFileSize: cfg.MaxUploadBytes})
	moverSvc := mediaSvc.NewMediaMover(primary, mirror)
	deleterSvc := mediaSvc.NewMediaDeleter(primary, mirror)
	librarySvc := mediaSvc.NewMediaLibrary(uploaderSvc, moverSvc, deleterSvc, store, ca, dispatcher,
		mediaSvc.Timeouts{Base: cfg.RequestTimeoutBase, PerMB: cfg.RequestTimeoutMB})
	getMediaSvc := mediaSvc.NewMediaGetter(store)
	listMediaSvc := mediaSvc.NewMediaLister(store)
	rendererSvc := renderer.NewHTTPRenderer(ca, cfg.CacheTTL)
	integritySvc := integrity.NewChecker(cfg.DataDir, listMediaSvc)

	r.Get("/healthz", api.HealthHandler())
	r.Handle("/uploads/*", http.StripPrefix(mediaSvc.PublicPrefix, http.FileServer(http.Dir(cfg.UploadsRoot))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/integrity", api.IntegrityHandler(integritySvc))

		r.Get("/media", api.ListMediaHandler(listMediaSvc))
		r.With(cMiddleware.WithMaxBodySize(cfg.MaxUploadBytes+formOverhead)).
			Post("/media/upload", api.UploadMediaHandler(librarySvc))
		r.With(cMiddleware.WithMediaID()).
			Get("/media/{id}", api.GetMediaHandler(rendererSvc, getMediaSvc))
		r.With(cMiddleware.WithMediaID()).
			Post("/media/{id}/move", api.MoveMediaHandler(librarySvc))
		r.With(cMiddleware.WithMediaID()).
			Delete("/media/{id}", api.DeleteMediaHandler(librarySvc))
	})

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.WatchCatalog {
		go func() {
			if err := store.Watch(watchCtx); err != nil {
				logger.Warnf(ctx, "⚠️  Catalog watcher stopped: %v", err)
			}
		}()
	}

	logger.Infof(ctx, "uploads capped at %s, %d concurrent connections", humanize.IBytes(uint64(cfg.MaxUploadBytes)), cfg.MaxConnections)
	listenRouter(ctx, r, cfg, stopWatch)
}

func initTrees(ctx context.Context, cfg *config.Settings) (port.Tree, port.Tree) {
	primary, err := storage.NewLocalTree("primary", cfg.UploadsRoot)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize uploads tree: %v", err)
		os.Exit(1)
	}

	mirror, err := storage.NewMirrorTree(ctx, storage.MirrorOptions{
		Backend:        cfg.MirrorBackend,
		Root:           cfg.MirrorRoot,
		MinioEndpoint:  cfg.MinioEndpoint,
		MinioAccessKey: cfg.MinioAccessKey,
		MinioSecretKey: cfg.MinioSecretKey,
		MinioUseSSL:    cfg.MinioUseSSL,
		Bucket:         cfg.MirrorBucket,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize mirror tree: %v", err)
		os.Exit(1)
	}
	if mirror == nil {
		logger.Warn(ctx, "⚠️  No mirror configured, uploads are only written to the primary tree")
	}

	return primary, mirror
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, stopWatch context.CancelFunc) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Errorf(ctx, "❌  Listen error: %v", err)
		os.Exit(1)
	}
	ln = netutil.LimitListener(ln, cfg.MaxConnections)

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Serve error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")
	stopWatch()

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")
}
