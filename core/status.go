package core

// Status is the closed vocabulary of API outcome codes.
type Status string

const (
	StatusOK            Status = "OK"
	StatusError         Status = "ERROR"
	StatusUnauthorized  Status = "UNAUTHORIZED"
	StatusNotFound      Status = "NOT_FOUND"
	StatusBadRequest    Status = "BAD_REQUEST"
	StatusConflict      Status = "CONFLICT"
	StatusInternalError Status = "INTERNAL_ERROR"
)

// Success/info message keys.
const (
	MsgUserCreated   = "user.created"
	MsgLoginSuccess  = "login.success"
	MsgLogoutSuccess = "logout.success"
)

// Error message keys. The "error." prefix is applied by Message, not here.
const (
	MsgInvalidCredentials = "invalid_credentials"
	MsgUserNotFound       = "user_not_found"
	MsgEmailExists        = "email_already_exists"
	MsgUsernameExists     = "username_already_exists"
	MsgUnauthorized       = "unauthorized"
	MsgBadRequest         = "bad_request"
	MsgInternalError      = "internal_error"
)

// IsError reports whether s is an error-class status.
func (s Status) IsError() bool {
	switch s {
	case StatusError, StatusUnauthorized, StatusNotFound, StatusBadRequest, StatusConflict, StatusInternalError:
		return true
	default:
		return false
	}
}

// Message returns the message for key under status, namespacing error-class
// statuses with "error.".
func Message(status Status, key string) string {
	if status.IsError() {
		return "error." + key
	}
	return key
}

// AuthResult is the unified envelope returned by auth operations.
type AuthResult struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   bool   `json:"error"`
}

func resultOK(key string, data any) AuthResult {
	return AuthResult{Status: StatusOK, Message: Message(StatusOK, key), Data: data}
}

func resultError(status Status, key string) AuthResult {
	return AuthResult{Status: status, Message: Message(status, key), Error: true}
}
