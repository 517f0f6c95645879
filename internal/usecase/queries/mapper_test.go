//go:build unit

package queries

import (
	"encoding/json"
	"testing"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMaterialViewKeepsCourtID(t *testing.T) {
	courtID := uuid.New()
	m := court.ReconstructMaterial(uuid.New(), court.MaterialCone, true, court.MaterialReserved, &courtID)

	v, err := ToMaterialView(m)
	require.NoError(t, err)
	require.NotNil(t, v.CourtID)
	assert.Equal(t, courtID, *v.CourtID)
	assert.NotSame(t, m.CourtID(), v.CourtID)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"court_id":"`+courtID.String()+`"`)
}

func TestToMaterialViewOmitsMissingCourt(t *testing.T) {
	m := court.ReconstructMaterial(uuid.New(), court.MaterialBall, true, court.MaterialAvailable, nil)

	v, err := ToMaterialView(m)
	require.NoError(t, err)
	assert.Nil(t, v.CourtID)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "court_id")
}

func TestToReservationViewKeepsPackID(t *testing.T) {
	factory := reservation.NewFactory(clock.NewMockClock(builder.FixedNow), reservation.NewTablePriceCalculator())

	t.Run("pack funded", func(t *testing.T) {
		p := builder.NewPackBuilder().MustBuildDomain()
		r, err := builder.NewReservationBuilder().WithPack(p).
			WithStart(builder.FixedNow.Add(48 * time.Hour)).BuildDomain(factory)
		require.NoError(t, err)

		v, err := ToReservationView(r)
		require.NoError(t, err)
		require.NotNil(t, v.PackID)
		assert.Equal(t, p.ID(), *v.PackID)
		assert.Equal(t, r.SessionNumber(), v.SessionNumber)
	})

	t.Run("individual", func(t *testing.T) {
		r, err := builder.NewReservationBuilder().
			WithStart(builder.FixedNow.Add(48 * time.Hour)).BuildDomain(factory)
		require.NoError(t, err)

		v, err := ToReservationView(r)
		require.NoError(t, err)
		assert.Nil(t, v.PackID)
	})
}
