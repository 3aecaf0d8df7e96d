package service

import "strings"

// Error 业务错误，Code 直接取 HTTP 语义，到传输层统一映射
type Error struct {
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "service error"
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &Error{Code: 400, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Code: 401, Msg: msg} }
func NotFound(msg string) error     { return &Error{Code: 404, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Code: 500, Msg: msg, Err: err}
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
