// launching the server, generator client, archive and kafka producer
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/adstudio/config"
	"github.com/ds124wfegd/adstudio/internal/database"
	"github.com/ds124wfegd/adstudio/internal/pkg/compositor"
	"github.com/ds124wfegd/adstudio/internal/pkg/generator"
	"github.com/ds124wfegd/adstudio/internal/pkg/imageio"
	"github.com/ds124wfegd/adstudio/internal/pkg/kafka"
	"github.com/ds124wfegd/adstudio/internal/pkg/storage"
	"github.com/ds124wfegd/adstudio/internal/service"
	"github.com/ds124wfegd/adstudio/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(logrus.StandardLogger().WriterLevel(logrus.ErrorLevel), "", 0),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewHandler builds the full HTTP stack. The generator is injected so tests and
// alternative model backends can replace it.
func NewHandler(cfg *config.Config, gen generator.Generator, producer kafka.Producer) http.Handler {
	imageio.SetMaxPixels(cfg.Server.MaxPixels)
	fonts := compositor.LoadFonts(cfg.Fonts.Path, cfg.Fonts.HeadlineSize, cfg.Fonts.LabelSize)

	var repo database.RenderRepository
	if cfg.Storage.Archive {
		repo = database.NewRenderRepository(storage.NewFileStorage(cfg.Storage.BasePath))
	}

	adService := service.NewAdService(gen, compositor.NewCompositor(fonts), repo, producer)
	return transport.InitRoutes(transport.NewAdHandler(adService), cfg.Server.MaxUploadMB<<20)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.SetOutput(os.Stdout)
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	gen := generator.NewHTTPGenerator(generator.Options{
		BaseURL: cfg.Generator.BaseURL,
		APIKey:  cfg.Generator.APIKey,
		Timeout: cfg.Generator.Timeout,
	})

	producer := kafka.NewLogProducer()
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer producer.Close()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, NewHandler(cfg, gen, producer)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithField("addr", cfg.Server.Host+":"+cfg.Server.Port).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
