package service

import (
	"errors"

	"rag-backend/internal/data"
)

// 错误类别，handler 按类别映射 HTTP 状态码
var (
	ErrMissingParameter  = errors.New("missing parameter")
	ErrNotFound          = errors.New("not found")
	ErrDirectoryNotFound = errors.New("documents directory not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrArchive           = errors.New("archive error")
)

// Error 带面向用户提示语的业务错误
// Msg 原样返回给前端，Err 只记日志
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap 使 errors.Is 同时命中类别与底层原因
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func missingParam(name string) error {
	return &Error{Kind: ErrMissingParameter, Msg: "Query parameter '" + name + "' is required"}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func storeFailure(msg string, err error) error {
	return &Error{Kind: data.ErrStore, Msg: msg, Err: err}
}

// Message 取出面向用户的提示语，非业务错误返回 fallback
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}
