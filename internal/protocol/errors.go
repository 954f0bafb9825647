package protocol

const (
	// Transport/request validation.
	ErrBadRequest = "E_BAD_REQUEST"

	// The scenario failed input validation.
	ErrInvalidScenario = "E_INVALID_SCENARIO"

	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:      {},
	ErrInvalidScenario: {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
