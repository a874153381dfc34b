package edam

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// ErrorCode values of the EDAM error enum that notetoc looks at.
type ErrorCode int32

const (
	ErrorCodePermissionDenied ErrorCode = 3
	ErrorCodeInvalidAuth      ErrorCode = 8
	ErrorCodeAuthExpired      ErrorCode = 9
	ErrorCodeRateLimitReached ErrorCode = 19
)

type UserException struct {
	ErrorCode ErrorCode
	Parameter string
}

func (e *UserException) Error() string {
	return fmt.Sprintf("EDAMUserException(errorCode=%d, parameter=%s)", e.ErrorCode, e.Parameter)
}

func (e *UserException) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "EDAMUserException")
	w.i32("errorCode", 1, int32(e.ErrorCode))
	w.optStr("parameter", 2, e.Parameter)
	return w.close()
}

func (e *UserException) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		switch {
		case id == 1 && t == thrift.I32:
			v, err := p.ReadI32(ctx)
			e.ErrorCode = ErrorCode(v)
			return true, err
		case id == 2 && t == thrift.STRING:
			v, err := p.ReadString(ctx)
			e.Parameter = v
			return true, err
		}
		return false, nil
	})
}

type SystemException struct {
	ErrorCode         ErrorCode
	Message           string
	RateLimitDuration int32
}

func (e *SystemException) Error() string {
	return fmt.Sprintf("EDAMSystemException(errorCode=%d, message=%s, rateLimitDuration=%d)", e.ErrorCode, e.Message, e.RateLimitDuration)
}

func (e *SystemException) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "EDAMSystemException")
	w.i32("errorCode", 1, int32(e.ErrorCode))
	w.optStr("message", 2, e.Message)
	if e.RateLimitDuration != 0 {
		w.i32("rateLimitDuration", 3, e.RateLimitDuration)
	}
	return w.close()
}

func (e *SystemException) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		switch {
		case id == 1 && t == thrift.I32:
			v, err := p.ReadI32(ctx)
			e.ErrorCode = ErrorCode(v)
			return true, err
		case id == 2 && t == thrift.STRING:
			v, err := p.ReadString(ctx)
			e.Message = v
			return true, err
		case id == 3 && t == thrift.I32:
			v, err := p.ReadI32(ctx)
			e.RateLimitDuration = v
			return true, err
		}
		return false, nil
	})
}

type NotFoundException struct {
	Identifier string
	Key        string
}

func (e *NotFoundException) Error() string {
	return fmt.Sprintf("EDAMNotFoundException(identifier=%s, key=%s)", e.Identifier, e.Key)
}

func (e *NotFoundException) Write(ctx context.Context, p thrift.TProtocol) error {
	w := newStructWriter(ctx, p, "EDAMNotFoundException")
	w.optStr("identifier", 1, e.Identifier)
	w.optStr("key", 2, e.Key)
	return w.close()
}

func (e *NotFoundException) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, t thrift.TType) (bool, error) {
		if t != thrift.STRING {
			return false, nil
		}
		var err error
		switch id {
		case 1:
			e.Identifier, err = p.ReadString(ctx)
		case 2:
			e.Key, err = p.ReadString(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}
