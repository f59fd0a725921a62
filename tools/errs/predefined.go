package errs

// gateway protocol error codes
const (
	ServerInternalError = 500

	NoCredentialError = 1101
	InvalidTokenError = 1102
	TokenExpiredError = 1103

	PermissionError = 1201
	BadFrameError   = 1301
)

var (
	ErrNoCredential = &CodeError{Code: NoCredentialError, Msg: "no credential supplied"}
	ErrInvalidToken = &CodeError{Code: InvalidTokenError, Msg: "invalid token"}
	ErrTokenExpired = &CodeError{Code: TokenExpiredError, Msg: "token expired"}
	ErrPermission   = &CodeError{Code: PermissionError, Msg: "permission denied"}
	ErrBadFrame     = &CodeError{Code: BadFrameError, Msg: "malformed frame"}
)
