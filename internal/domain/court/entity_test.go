//go:build unit

package court_test

import (
	"strings"
	"testing"

	"court-booking/internal/domain/court"
	"court-booking/internal/testutil/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.CourtBuilder)
	errIs  error
}

func TestCourt(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		c, err := builder.NewCourtBuilder().WithName("  Pista Norte  ").BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Pista Norte", c.Name())
		assert.Equal(t, uuid.Nil, c.ID())
		assert.NoError(t, c.CheckAvailable())

		id := uuid.New()
		withID := c.WithID(id)
		assert.Equal(t, id, withID.ID())
		assert.Equal(t, uuid.Nil, c.ID(), "WithID must not mutate the receiver")
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "child size", mutate: func(b *builder.CourtBuilder) { b.WithSize(court.SizeChild) }},
			{name: "3vs3 size", mutate: func(b *builder.CourtBuilder) { b.WithSize(court.SizeThreeVsThree) }},
			{
				name:   "blank name",
				mutate: func(b *builder.CourtBuilder) { b.WithName("   ") },
				errIs:  court.ErrEmptyCourtName,
			},
			{
				name:   "name too long",
				mutate: func(b *builder.CourtBuilder) { b.WithName(strings.Repeat("x", court.MaxCourtNameLength+1)) },
				errIs:  court.ErrCourtNameTooLong,
			},
			{
				name:   "unknown size",
				mutate: func(b *builder.CourtBuilder) { b.WithSize("mini") },
				errIs:  court.ErrInvalidSize,
			},
			{
				name:   "zero players",
				mutate: func(b *builder.CourtBuilder) { b.WithMaxPlayers(0) },
				errIs:  court.ErrInvalidMaxPlayers,
			},
		})
	})

	t.Run("unavailable court", func(t *testing.T) {
		c := builder.NewCourtBuilder().AsUnavailable().MustBuildDomain()
		require.ErrorIs(t, c.CheckAvailable(), court.ErrCourtUnavailable)
	})
}

func TestMaterialAttachment(t *testing.T) {
	indoor := builder.NewCourtBuilder().MustBuildDomain().WithID(uuid.New())
	outdoor := builder.NewCourtBuilder().AsOutdoor().MustBuildDomain().WithID(uuid.New())

	cases := []struct {
		name     string
		court    *court.Court
		material *builder.MaterialBuilder
		attached int
		errIs    error
	}{
		{name: "ball on indoor court", court: indoor, material: builder.NewMaterialBuilder()},
		{name: "indoor-only cone on indoor court", court: indoor, material: builder.NewMaterialBuilder().WithType(court.MaterialCone).IndoorOnly()},
		{name: "twelfth ball", court: indoor, material: builder.NewMaterialBuilder(), attached: 11},
		{
			name:     "thirteenth ball",
			court:    indoor,
			material: builder.NewMaterialBuilder(),
			attached: 12,
			errIs:    court.ErrCapacityExceeded,
		},
		{
			name:     "third basket",
			court:    indoor,
			material: builder.NewMaterialBuilder().WithType(court.MaterialBasket),
			attached: 2,
			errIs:    court.ErrCapacityExceeded,
		},
		{
			name:     "twenty-first cone",
			court:    indoor,
			material: builder.NewMaterialBuilder().WithType(court.MaterialCone),
			attached: 20,
			errIs:    court.ErrCapacityExceeded,
		},
		{
			name:     "indoor-only material on outdoor court",
			court:    outdoor,
			material: builder.NewMaterialBuilder().IndoorOnly(),
			errIs:    court.ErrEnvironmentIncompatible,
		},
		{
			name:     "reserved material",
			court:    indoor,
			material: builder.NewMaterialBuilder().WithStatus(court.MaterialReserved),
			errIs:    court.ErrMaterialUnavailable,
		},
		{
			name:     "damaged material is checked before quota",
			court:    outdoor,
			material: builder.NewMaterialBuilder().WithStatus(court.MaterialDamaged).IndoorOnly(),
			attached: 12,
			errIs:    court.ErrMaterialUnavailable,
		},
		{
			name:     "environment is checked before quota",
			court:    outdoor,
			material: builder.NewMaterialBuilder().IndoorOnly(),
			attached: 12,
			errIs:    court.ErrEnvironmentIncompatible,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.material.MustBuildDomain()
			err := m.AttachTo(tc.court, tc.attached)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.material.Status, m.Status())
				assert.Nil(t, m.CourtID())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, court.MaterialReserved, m.Status())
			require.NotNil(t, m.CourtID())
			if diff := cmp.Diff(tc.court.ID(), *m.CourtID()); diff != "" {
				t.Errorf("court id mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewMaterial(t *testing.T) {
	_, err := builder.NewMaterialBuilder().WithType("racket").BuildDomain()
	require.ErrorIs(t, err, court.ErrInvalidMaterialType)

	_, err = builder.NewMaterialBuilder().WithStatus("lost").BuildDomain()
	require.ErrorIs(t, err, court.ErrInvalidMaterialStatus)

	assert.Equal(t, 12, court.MaterialBall.MaxPerCourt())
	assert.Equal(t, 2, court.MaterialBasket.MaxPerCourt())
	assert.Equal(t, 20, court.MaterialCone.MaxPerCourt())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewCourtBuilder().With(tc.mutate).BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}
