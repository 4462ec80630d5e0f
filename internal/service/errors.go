package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("invalid parameters")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserBan                 = errors.New("account is banned")
	ErrUserEmailExist          = errors.New("email already registered")
	ErrPasswordIncorrect       = errors.New("incorrect password")
	ErrMissingLoginCredentials = errors.New("missing login credentials")
	ErrFileNotSupported        = errors.New("unsupported file type")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCheckinNotFound         = errors.New("checkin not found")
	ErrCheckinFutureDate       = errors.New("cannot check in for a future date")
	ErrMoodOutOfRange          = errors.New("mood must be between 1 and 10")
	ErrTimeBlockNotFound       = errors.New("time block not found")
	ErrTimeBlockInvalidRange   = errors.New("time block range is invalid")
	ErrConversationNotFound    = errors.New("conversation not found")
	ErrChatSelf                = errors.New("cannot start a chat with yourself")
	ErrNotConversationMember   = errors.New("not a member of this conversation")
	UnauthorizedError          = errors.New("permission denied")
	UnExpectedError            = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserBan:                 Unauthorized,
	ErrUserEmailExist:          BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrFileNotSupported:        BadRequest,
	ErrCategoryNotFound:        NotFound,
	ErrCheckinNotFound:         NotFound,
	ErrCheckinFutureDate:       BadRequest,
	ErrMoodOutOfRange:          BadRequest,
	ErrTimeBlockNotFound:       NotFound,
	ErrTimeBlockInvalidRange:   BadRequest,
	ErrConversationNotFound:    NotFound,
	ErrChatSelf:                BadRequest,
	ErrNotConversationMember:   Unauthorized,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
