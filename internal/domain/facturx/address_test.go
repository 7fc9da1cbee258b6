package facturx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want facturx.Address
	}{
		{
			name: "calle y localidad en segmentos separados",
			raw:  "12 rue de la Paix, 75002 Paris",
			want: facturx.Address{Street: "12 rue de la Paix", PostalCode: "75002", City: "Paris"},
		},
		{
			name: "varias líneas de calle",
			raw:  "Bâtiment B, ZI des Garennes, 69800 Saint-Priest",
			want: facturx.Address{Street: "Bâtiment B, ZI des Garennes", PostalCode: "69800", City: "Saint-Priest"},
		},
		{
			name: "todo en un segmento",
			raw:  "3 avenue Foch 13001 Marseille",
			want: facturx.Address{Street: "3 avenue Foch", PostalCode: "13001", City: "Marseille"},
		},
		{
			name: "solo código postal y ciudad",
			raw:  "  31000   Toulouse ",
			want: facturx.Address{PostalCode: "31000", City: "Toulouse"},
		},
		{
			name: "sin patrón postal",
			raw:  "Unformatted blob with no postal pattern",
			want: facturx.Address{City: "Unformatted blob with no postal pattern"},
		},
		{
			name: "último segmento sin código",
			raw:  "Unit 4, Dublin",
			want: facturx.Address{Street: "Unit 4", City: "Dublin"},
		},
		{
			name: "segmentos vacíos ignorados",
			raw:  "5 place Bellecour,, 69002 Lyon,",
			want: facturx.Address{Street: "5 place Bellecour", PostalCode: "69002", City: "Lyon"},
		},
		{
			name: "vacía",
			raw:  "",
			want: facturx.Address{},
		},
		{
			name: "solo separadores",
			raw:  " , , ",
			want: facturx.Address{Street: ", ,"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, facturx.NormalizeAddress(tt.raw))
		})
	}
}
