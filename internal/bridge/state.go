package bridge

// State is the launcher's startup state. Transitions happen once, in
// order, during startup; StateReady is terminal until process exit.
type State int32

const (
	StateUninitialized State = iota
	StatePortAllocated
	StateBackendSpawned
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StatePortAllocated:
		return "PortAllocated"
	case StateBackendSpawned:
		return "BackendSpawned"
	case StateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}
