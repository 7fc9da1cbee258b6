package main

import (
	"context"
	"crypto/tls"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/domain/repository"
	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
	"github.com/jhoicas/taller-facturx/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/taller-facturx/internal/infrastructure/pdf"
	"github.com/jhoicas/taller-facturx/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/taller-facturx/internal/interfaces/http"
	"github.com/jhoicas/taller-facturx/pkg/config"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("archive_driver", cfg.Archive.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	var (
		workshopRepo repository.WorkshopRepository
		archiveRepo  repository.ArchiveRepository
	)
	switch cfg.Archive.Driver {
	case config.ArchiveDriverMemory:
		log.Warn().Msg("registro de archivo en memoria: los documentos se pierden al reiniciar")
		workshopRepo = memory.NewWorkshopRepository()
		archiveRepo = memory.NewArchiveRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		workshopRepo = postgres.NewWorkshopRepository(pool)
		archiveRepo = postgres.NewArchiveRepository(pool)
	}

	// Sello de archivo: solo si hay certificado configurado.
	var sealCert tls.Certificate
	if cfg.Archive.SealEnabled() {
		sealCert, err = infrafx.LoadSealCertificate(cfg.Archive.SealCertPath, cfg.Archive.SealKeyPath, cfg.Archive.SealCertPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("certificado de sellado")
		}
		log.Info().Str("subject", sealCert.Leaf.Subject.CommonName).Msg("sello de archivo activo")
	}

	einvoiceUC := billing.NewEInvoiceUseCase(
		workshopRepo,
		archiveRepo,
		infrafx.NewGeneratorService(infrafx.NewXMLBuilderService()),
		infrafx.NewValidatorService(),
		infrafx.NewSealService(),
		billing.EInvoiceOptions{
			SealCert:         sealCert,
			BatchConcurrency: cfg.Batch.Concurrency,
			BatchMaxItems:    cfg.Batch.MaxItems,
		},
		log,
	)
	pdfUC := billing.NewPDFUseCase(einvoiceUC, infrapdf.NewMarotoPDFGenerator(), infrapdf.EmbedXML)
	workshopUC := billing.NewWorkshopUseCase(workshopRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Taller Factur-X API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		EInvoiceUC: einvoiceUC,
		PDFUC:      pdfUC,
		WorkshopUC: workshopUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
