package handlers

import "net/http"

// ErrorCode is the machine-readable error discriminator clients switch on.
type ErrorCode string

const (
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED_EXCEPTION"
	ErrValidation         ErrorCode = "VALIDATION_ERROR"
	ErrSessionMissing     ErrorCode = "SESSION_MISSING"
	ErrSessionInactive    ErrorCode = "SESSION_INACTIVE"
	ErrPlayerMissing      ErrorCode = "PLAYER_MISSING"
	ErrRankConflict       ErrorCode = "RANK_CONFLICT"
	ErrRankMissing        ErrorCode = "RANK_MISSING"
	ErrRankAlreadyPresent ErrorCode = "RANK_ALREADY_PRESENT"
	ErrRankNotPresent     ErrorCode = "RANK_NOT_PRESENT"
	ErrTagConflict        ErrorCode = "TAG_CONFLICT"
	ErrTagMissing         ErrorCode = "TAG_MISSING"
	ErrTagAlreadyPresent  ErrorCode = "TAG_ALREADY_PRESENT"
	ErrTagNotPresent      ErrorCode = "TAG_NOT_PRESENT"
	ErrMapMissing         ErrorCode = "MAP_MISSING"
	ErrPunishmentMissing  ErrorCode = "PUNISHMENT_MISSING"
	ErrNoteMissing        ErrorCode = "NOTE_MISSING"
	ErrAnonymous          ErrorCode = "ANONYMOUS"
)

// statusOf maps error codes to their HTTP status.
func statusOf(code ErrorCode) int {
	switch code {
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrSessionMissing, ErrPlayerMissing, ErrRankMissing, ErrTagMissing,
		ErrMapMissing, ErrPunishmentMissing, ErrNoteMissing:
		return http.StatusNotFound
	case ErrRankConflict, ErrRankAlreadyPresent, ErrRankNotPresent,
		ErrTagConflict, ErrTagAlreadyPresent, ErrTagNotPresent:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
