package reservation

type Funding string

const (
	FundingIndividual  Funding = "individual"
	FundingSessionPack Funding = "session_pack"
)

func (f Funding) String() string {
	return string(f)
}

func (f Funding) IsValid() bool {
	switch f {
	case FundingIndividual, FundingSessionPack:
		return true
	default:
		return false
	}
}

type AudienceKind string

const (
	AudienceChild  AudienceKind = "child"
	AudienceAdult  AudienceKind = "adult"
	AudienceFamily AudienceKind = "family"
)

func (k AudienceKind) String() string {
	return string(k)
}

func (k AudienceKind) IsValid() bool {
	switch k {
	case AudienceChild, AudienceAdult, AudienceFamily:
		return true
	default:
		return false
	}
}
