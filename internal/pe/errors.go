package pe

import "errors"

var (
	// ErrInvalidArgument is returned when the path is missing, does not exist
	// or does not name an .exe file.
	ErrInvalidArgument = errors.New("参数无效")

	// ErrIO is returned for seek, read, write or flush failures.
	ErrIO = errors.New("I/O错误")

	// ErrMalformedHeader is returned when the file is too short to hold the
	// fields the header offsets point at.
	ErrMalformedHeader = errors.New("PE头格式错误")

	// ErrInvalidState is returned when a Patcher method is called out of order.
	ErrInvalidState = errors.New("修改器状态错误")
)
