package court

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidMaterialType     = errors.New("invalid material type")
	ErrInvalidMaterialStatus   = errors.New("invalid material status")
	ErrCapacityExceeded        = errors.New("court already holds the maximum of this material type")
	ErrEnvironmentIncompatible = errors.New("indoor material cannot be attached to an outdoor court")
	ErrMaterialUnavailable     = errors.New("material is not available")
)

type Material struct {
	id             uuid.UUID
	materialType   MaterialType
	outdoorCapable bool
	status         MaterialStatus
	courtID        *uuid.UUID
}

func NewMaterial(materialType MaterialType, outdoorCapable bool, status MaterialStatus) (*Material, error) {
	if !materialType.IsValid() {
		return nil, ErrInvalidMaterialType
	}
	if !status.IsValid() {
		return nil, ErrInvalidMaterialStatus
	}
	return &Material{
		materialType:   materialType,
		outdoorCapable: outdoorCapable,
		status:         status,
	}, nil
}

func ReconstructMaterial(id uuid.UUID, materialType MaterialType, outdoorCapable bool, status MaterialStatus, courtID *uuid.UUID) *Material {
	return &Material{
		id:             id,
		materialType:   materialType,
		outdoorCapable: outdoorCapable,
		status:         status,
		courtID:        courtID,
	}
}

// CheckAttachment applies the attachment rules in order: status, environment,
// then the per-type quota given how many of this type the court already holds.
func CheckAttachment(c *Court, m *Material, attachedOfType int) error {
	if m.status != MaterialAvailable {
		return ErrMaterialUnavailable
	}
	if c.outdoor && !m.outdoorCapable {
		return ErrEnvironmentIncompatible
	}
	if attachedOfType >= m.materialType.MaxPerCourt() {
		return ErrCapacityExceeded
	}
	return nil
}

// AttachTo binds the material to the court and marks it reserved.
func (m *Material) AttachTo(c *Court, attachedOfType int) error {
	if err := CheckAttachment(c, m, attachedOfType); err != nil {
		return err
	}
	courtID := c.ID()
	m.courtID = &courtID
	m.status = MaterialReserved
	return nil
}

// WithID returns a copy carrying the storage-assigned id.
func (m *Material) WithID(id uuid.UUID) *Material {
	cp := *m
	cp.id = id
	return &cp
}

func (m *Material) ID() uuid.UUID          { return m.id }
func (m *Material) Type() MaterialType     { return m.materialType }
func (m *Material) OutdoorCapable() bool   { return m.outdoorCapable }
func (m *Material) Status() MaterialStatus { return m.status }
func (m *Material) CourtID() *uuid.UUID    { return m.courtID }
