package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stock-backend/internal/models"
)

func TestNetWeight(t *testing.T) {
	bag := &models.Container{ID: 1, Type: models.ContainerBag, Weight: 0.5}

	tests := []struct {
		name      string
		gross     float64
		container *models.Container
		count     int
		want      float64
	}{
		{name: "ok/unknown container passes gross through", gross: 42.37, container: nil, count: 3, want: 42.37},
		{name: "ok/subtracts tare", gross: 100, container: bag, count: 4, want: 98},
		{name: "ok/no decimal drift", gross: 0.3, container: &models.Container{Weight: 0.1}, count: 2, want: 0.1},
		{name: "ok/zero containers", gross: 10, container: bag, count: 0, want: 10},
		{name: "ok/negative result is not clamped", gross: 1, container: bag, count: 5, want: -1.5},
		{name: "ok/rounded to two decimals", gross: 10.005, container: &models.Container{Weight: 0.001}, count: 1, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NetWeight(tt.gross, tt.container, tt.count))
		})
	}
}
