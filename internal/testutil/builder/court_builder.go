//go:build unit || integration

package builder

import (
	"court-booking/internal/domain/court"

	"github.com/google/uuid"
)

type CourtBuilder struct {
	Name       string
	Available  bool
	Outdoor    bool
	Size       court.Size
	MaxPlayers int
}

func NewCourtBuilder() *CourtBuilder {
	return &CourtBuilder{
		Name:       "Pista Central",
		Available:  true,
		Outdoor:    false,
		Size:       court.SizeAdult,
		MaxPlayers: 10,
	}
}

func (b *CourtBuilder) With(mutate func(*CourtBuilder)) *CourtBuilder {
	mutate(b)
	return b
}

func (b *CourtBuilder) BuildDomain() (*court.Court, error) {
	return court.NewCourt(b.Name, b.Available, b.Outdoor, b.Size, b.MaxPlayers)
}

func (b *CourtBuilder) MustBuildDomain() *court.Court {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}

// Fluent builder methods
func (b *CourtBuilder) WithSize(size court.Size) *CourtBuilder {
	b.Size = size
	return b
}

func (b *CourtBuilder) WithMaxPlayers(n int) *CourtBuilder {
	b.MaxPlayers = n
	return b
}

func (b *CourtBuilder) WithName(name string) *CourtBuilder {
	b.Name = name
	return b
}

func (b *CourtBuilder) UniqueName() *CourtBuilder {
	b.Name = "Pista " + uuid.NewString()[:8]
	return b
}

func (b *CourtBuilder) AsOutdoor() *CourtBuilder {
	b.Outdoor = true
	return b
}

func (b *CourtBuilder) AsUnavailable() *CourtBuilder {
	b.Available = false
	return b
}

type MaterialBuilder struct {
	Type           court.MaterialType
	OutdoorCapable bool
	Status         court.MaterialStatus
}

func NewMaterialBuilder() *MaterialBuilder {
	return &MaterialBuilder{
		Type:           court.MaterialBall,
		OutdoorCapable: true,
		Status:         court.MaterialAvailable,
	}
}

func (b *MaterialBuilder) With(mutate func(*MaterialBuilder)) *MaterialBuilder {
	mutate(b)
	return b
}

func (b *MaterialBuilder) BuildDomain() (*court.Material, error) {
	return court.NewMaterial(b.Type, b.OutdoorCapable, b.Status)
}

func (b *MaterialBuilder) MustBuildDomain() *court.Material {
	m, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return m
}

func (b *MaterialBuilder) WithType(t court.MaterialType) *MaterialBuilder {
	b.Type = t
	return b
}

func (b *MaterialBuilder) WithStatus(s court.MaterialStatus) *MaterialBuilder {
	b.Status = s
	return b
}

func (b *MaterialBuilder) IndoorOnly() *MaterialBuilder {
	b.OutdoorCapable = false
	return b
}
