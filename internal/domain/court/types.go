package court

type Size string

const (
	SizeChild        Size = "child"
	SizeAdult        Size = "adult"
	SizeThreeVsThree Size = "three_vs_three"
)

func (s Size) String() string {
	return string(s)
}

func (s Size) IsValid() bool {
	switch s {
	case SizeChild, SizeAdult, SizeThreeVsThree:
		return true
	default:
		return false
	}
}

type MaterialType string

const (
	MaterialBall   MaterialType = "ball"
	MaterialBasket MaterialType = "basket"
	MaterialCone   MaterialType = "cone"
)

func (t MaterialType) String() string {
	return string(t)
}

func (t MaterialType) IsValid() bool {
	switch t {
	case MaterialBall, MaterialBasket, MaterialCone:
		return true
	default:
		return false
	}
}

// MaxPerCourt is the attachment quota of a material type on a single court.
func (t MaterialType) MaxPerCourt() int {
	switch t {
	case MaterialBall:
		return 12
	case MaterialBasket:
		return 2
	case MaterialCone:
		return 20
	default:
		return 0
	}
}

type MaterialStatus string

const (
	MaterialAvailable MaterialStatus = "available"
	MaterialReserved  MaterialStatus = "reserved"
	MaterialDamaged   MaterialStatus = "damaged"
)

func (s MaterialStatus) String() string {
	return string(s)
}

func (s MaterialStatus) IsValid() bool {
	switch s {
	case MaterialAvailable, MaterialReserved, MaterialDamaged:
		return true
	default:
		return false
	}
}
