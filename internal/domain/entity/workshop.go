package entity

import "time"

// Workshop taller emisor (tenant). Sus datos alimentan el vendedor de cada factura.
type Workshop struct {
	ID          string
	Name        string
	SIRET       string // SIREN (9) o SIRET (14 dígitos)
	VATID       string // número de IVA intracomunitario
	Address     string // texto libre; se normaliza al generar
	CountryCode string
	Phone       string
	Email       string
	IBAN        string
	BIC         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
