package gameserver

// Stage is the lifecycle stage of a session. Transitions only go forward.
type Stage uint32

const (
	StageLobbyForming Stage = iota
	StageHeroPick
	StageGeneratingWorld
	StageRunningGame
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageLobbyForming:
		return "LOBBY_FORMING"
	case StageHeroPick:
		return "HERO_PICK"
	case StageGeneratingWorld:
		return "GENERATING_WORLD"
	case StageRunningGame:
		return "RUNNING_GAME"
	case StageFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// PlayerState tracks one player through the session.
type PlayerState uint8

const (
	PlayerConnecting PlayerState = iota
	PlayerHeroPickPending
	PlayerReady
	PlayerInGame
)

func (s PlayerState) String() string {
	switch s {
	case PlayerConnecting:
		return "CONNECTING"
	case PlayerHeroPickPending:
		return "HERO_PICK_PENDING"
	case PlayerReady:
		return "READY"
	case PlayerInGame:
		return "IN_GAME"
	default:
		return "UNKNOWN"
	}
}

// Finish reasons.
const (
	ReasonWinner       = "winner"
	ReasonIdleTimeout  = "idle timeout"
	ReasonShutdown     = "shutdown"
	ReasonWorldFailure = "world generation failed"
)
