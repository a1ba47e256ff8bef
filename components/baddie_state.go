package components

// BaddieState is the per-kind local state of a baddie's behaviour. Each kind
// owns exactly one implementation, created by NewBaddieState; behaviours type
// assert to their own state and treat any other type as a programming error.
type BaddieState interface {
	baddieState()
}

// NoState is used by kinds whose behaviour only needs the shared cooldown.
type NoState struct{}

// Crab2State holds the secondary weapon timer of an Oth Crab 2.
type Crab2State struct {
	SprayCooldown float64
}

// RazorMode is the phase of an Oth Razor.
type RazorMode int

const (
	RazorLaunchHoming RazorMode = iota // fresh launch; becomes RazorHoming
	RazorLaunchBounce                  // fresh launch; becomes RazorBouncing
	RazorHoming
	RazorBouncing
)

// RazorState holds the phase of an Oth Razor.
type RazorState struct {
	Mode RazorMode
}

// SnapdragonCycleLength is the number of steps in the Snapdragon attack cycle.
const SnapdragonCycleLength = 9

// SnapdragonState holds the position in the Snapdragon attack cycle.
type SnapdragonState struct {
	Step int
}

// GunshipPhase is the phase of an Oth Gunship.
type GunshipPhase int

const (
	GunshipIntro GunshipPhase = iota
	GunshipFlee
	GunshipPursue
	GunshipLineUp
	GunshipCPlusDrive
	GunshipDogfight
	GunshipTripleShot
	GunshipHyperRocket
	GunshipHomingShots
	GunshipBarrage
)

// GunshipState holds the phase of an Oth Gunship.
type GunshipState struct {
	Phase GunshipPhase
}

func (*NoState) baddieState()         {}
func (*Crab2State) baddieState()      {}
func (*RazorState) baddieState()      {}
func (*SnapdragonState) baddieState() {}
func (*GunshipState) baddieState()    {}

// NewBaddieState returns the zero local state for a kind.
func NewBaddieState(kind BaddieKind) BaddieState {
	switch kind {
	case BaddieOthCrab2:
		return &Crab2State{}
	case BaddieOthRazor:
		return &RazorState{}
	case BaddieOthSnapdragon:
		return &SnapdragonState{}
	case BaddieOthGunship:
		return &GunshipState{}
	default:
		return &NoState{}
	}
}
