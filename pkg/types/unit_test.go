package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitInputValidate(t *testing.T) {
	valid := UnitInput{
		Name:          "Domo Luna",
		Capacity:      "4",
		PricePerNight: "100000",
	}

	tests := []struct {
		name    string
		mutate  func(*UnitInput)
		wantKey string
	}{
		{
			name:   "valid input",
			mutate: func(in *UnitInput) {},
		},
		{
			name:    "missing name",
			mutate:  func(in *UnitInput) { in.Name = "" },
			wantKey: "name",
		},
		{
			name:    "missing capacity",
			mutate:  func(in *UnitInput) { in.Capacity = "" },
			wantKey: "capacity",
		},
		{
			name:    "non-numeric capacity",
			mutate:  func(in *UnitInput) { in.Capacity = "four" },
			wantKey: "capacity",
		},
		{
			name:    "zero capacity",
			mutate:  func(in *UnitInput) { in.Capacity = "0" },
			wantKey: "capacity",
		},
		{
			name:    "negative capacity",
			mutate:  func(in *UnitInput) { in.Capacity = "-2" },
			wantKey: "capacity",
		},
		{
			name:    "missing price",
			mutate:  func(in *UnitInput) { in.PricePerNight = "" },
			wantKey: "pricePerNight",
		},
		{
			name:    "zero price",
			mutate:  func(in *UnitInput) { in.PricePerNight = "0" },
			wantKey: "pricePerNight",
		},
		{
			name:    "non-numeric price",
			mutate:  func(in *UnitInput) { in.PricePerNight = "cheap" },
			wantKey: "pricePerNight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			errs := in.Validate()
			if tt.wantKey == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}

func TestUnitRecordRoundTrip(t *testing.T) {
	u := &Unit{
		ID:            2,
		Name:          "Domo Luna",
		Capacity:      4,
		PricePerNight: 100000,
		Features:      []string{"jacuzzi", "wifi"},
		Available:     true,
	}

	got, ok := UnitFromRecord(u.Record())
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestUnitFromRecordDefaults(t *testing.T) {
	// A record without the available flag comes from older data; such units
	// accept bookings.
	u, ok := UnitFromRecord(Record{"id": 1, "name": "Tienda Safari"})
	require.True(t, ok)
	assert.True(t, u.Available)

	_, ok = UnitFromRecord(Record{"name": "no id"})
	assert.False(t, ok)
}

func TestUnitFromRecordFeatureShapes(t *testing.T) {
	// SQLite JSON columns decode features as []any.
	u, ok := UnitFromRecord(Record{
		"id":       1,
		"features": []any{"jacuzzi", "wifi"},
	})
	require.True(t, ok)
	assert.Equal(t, []string{"jacuzzi", "wifi"}, u.Features)
}
