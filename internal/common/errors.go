package common

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误，Code 取自下方的错误码
// Message 可以返回给调用方，Err 只留在日志里
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装底层错误，附带错误码和对外消息
func WrapError(code, message string, err error) error {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewError 创建不带底层原因的 AppError
func NewError(code, message string) error {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// CodeOf 返回错误链上最外层 AppError 的错误码，没有则为 ErrCodeInternal
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// MessageOf 返回可以展示给调用方的消息
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Internal server error"
}

// HasCode 判断错误是否带有指定错误码
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// 错误码定义
const (
	ErrCodeDatabase      = "DATABASE_ERROR"
	ErrCodeAIProcessing  = "AI_PROCESSING_ERROR"
	ErrCodeDegradedFetch = "DEGRADED_FETCH"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternal      = "INTERNAL_ERROR"
)
