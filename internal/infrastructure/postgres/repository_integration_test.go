//go:build integration

// Pruebas contra un PostgreSQL real levantado con testcontainers.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/...
package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain"
	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
	"github.com/jhoicas/taller-facturx/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-facturx/pkg/config"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("taller_facturx_test"),
		tcpostgres.WithUsername("taller"),
		tcpostgres.WithPassword("taller"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "las migraciones son idempotentes")
	return pool
}

func TestPostgres_Repositorios(t *testing.T) {
	ctx := context.Background()
	pool := newPool(t)

	t.Run("perfil del taller", func(t *testing.T) {
		repo := postgres.NewWorkshopRepository(pool)

		missing, err := repo.GetByID(ctx, "w-none")
		require.NoError(t, err)
		assert.Nil(t, missing)

		w := &entity.Workshop{ID: "w-1", Name: "Garage du Centre", SIRET: "73282932000074", CountryCode: "FR"}
		require.NoError(t, repo.Upsert(ctx, w))
		w.IBAN, w.BIC = "FR7630006000011234567890189", "AGRIFRPP"
		require.NoError(t, repo.Upsert(ctx, w))

		got, err := repo.GetByID(ctx, "w-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "AGRIFRPP", got.BIC)
		assert.Empty(t, got.VATID)
	})

	t.Run("archivo", func(t *testing.T) {
		repo := postgres.NewArchiveRepository(pool)
		digest := domfx.Digest([]byte("<x/>"))
		base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, &entity.ArchiveRecord{
				WorkshopID:    "w-1",
				InvoiceNumber: fmt.Sprintf("F-%d", i),
				DocumentType:  entity.DocumentTypeInvoice,
				TypeCode:      "380",
				IssueDate:     base,
				Currency:      "EUR",
				NetTotal:      decimal.RequireFromString("279.90"),
				VATTotal:      decimal.RequireFromString("55.98"),
				GrossTotal:    decimal.RequireFromString("335.88"),
				Digest:        digest,
				XML:           []byte("<x/>"),
				CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			}))
		}

		err := repo.Create(ctx, &entity.ArchiveRecord{
			WorkshopID: "w-1", InvoiceNumber: "F-0", DocumentType: entity.DocumentTypeInvoice,
			TypeCode: "380", IssueDate: base, Currency: "EUR", Digest: digest, XML: []byte("<y/>"),
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		got, err := repo.GetByNumber(ctx, "w-1", "F-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []byte("<x/>"), got.XML)
		assert.Equal(t, "335.88", got.GrossTotal.StringFixed(2))
		assert.Empty(t, got.Seal)

		list, err := repo.ListByWorkshop(ctx, "w-1", 2, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "F-2", list[0].InvoiceNumber, "más reciente primero")
		assert.Nil(t, list[0].XML, "el listado no carga el XML")
	})
}

func TestPostgres_EmisionArchivaBytesExactos(t *testing.T) {
	ctx := context.Background()
	pool := newPool(t)

	uc := billing.NewEInvoiceUseCase(
		postgres.NewWorkshopRepository(pool),
		postgres.NewArchiveRepository(pool),
		infrafx.NewGeneratorService(nil),
		infrafx.NewValidatorService(),
		infrafx.NewSealService(),
		billing.EInvoiceOptions{},
		logger.Nop(),
	)
	req := dto.GenerateEInvoiceRequest{
		Invoice: dto.InvoiceInput{
			Number:    "F-2024-0042",
			IssueDate: "2024-03-15",
			NetTotal:  decimal.RequireFromString("100.00"),
			VATTotal:  decimal.RequireFromString("20.00"),
		},
		Buyer:  dto.PartyInput{Name: "Client Y"},
		Seller: &dto.SellerInput{PartyInput: dto.PartyInput{Name: "Garage du Centre"}},
	}

	resp, err := uc.Generate(ctx, "w-9", req)
	require.NoError(t, err)

	xmlBytes, digest, err := uc.ArchivedXML(ctx, "w-9", "F-2024-0042")
	require.NoError(t, err)
	assert.Equal(t, resp.XML, string(xmlBytes))
	assert.Equal(t, resp.Digest, digest)

	_, err = uc.Generate(ctx, "w-9", req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
