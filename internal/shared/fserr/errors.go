package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// Kind classifies a filesystem tool failure.
// Kinds are string-based so they serialize naturally into results and logs.
type Kind string

const (
	KindUninitialized    Kind = "UNINITIALIZED"
	KindOutsideRoot      Kind = "OUTSIDE_ROOT"
	KindNotFound         Kind = "NOT_FOUND"
	KindNotAFile         Kind = "NOT_A_FILE"
	KindNotADirectory    Kind = "NOT_A_DIRECTORY"
	KindDecodeError      Kind = "DECODE_ERROR"
	KindMissingParent    Kind = "MISSING_PARENT"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindNotEmpty         Kind = "NOT_EMPTY"
	KindPermissionDenied Kind = "PERMISSION_DENIED"
	KindOS               Kind = "OS_ERROR"
)

var kindText = map[Kind]string{
	KindUninitialized:    "server not properly initialized: allowed root not set",
	KindOutsideRoot:      "path is outside allowed root directory",
	KindNotFound:         "path not found",
	KindNotAFile:         "path is not a file",
	KindNotADirectory:    "path is not a directory",
	KindDecodeError:      "file is not valid UTF-8 text",
	KindMissingParent:    "parent directory does not exist",
	KindAlreadyExists:    "destination already exists",
	KindNotEmpty:         "directory is not empty",
	KindPermissionDenied: "permission denied",
	KindOS:               "filesystem error",
}

// Error implements the error interface so a Kind can be used as an
// errors.Is target.
func (k Kind) Error() string {
	if text, ok := kindText[k]; ok {
		return text
	}
	return string(k)
}

// Error is the single failure type returned by the path guard and every
// filesystem operation.
type Error struct {
	Op     string // tool name, e.g. "read_file"
	Path   string // caller-supplied relative path
	Kind   Kind
	Detail string // optional guidance for the caller
	Err    error  // underlying cause, if any
}

// New creates an Error without an underlying cause.
func New(op, path string, kind Kind, detail string) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Detail: detail}
}

// Wrap creates an Error around an underlying cause. The cause is reduced to
// its innermost error so resolved absolute paths never reach the caller.
func Wrap(op, path string, kind Kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: underlyingError(err)}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = fmt.Sprintf("%s '%s': %s", e.Op, e.Path, msg)
	} else if e.Path != "" {
		msg = fmt.Sprintf("'%s': %s", e.Path, msg)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// WithOp returns a copy of the error attributed to op.
func (e *Error) WithOp(op string) *Error {
	c := *e
	c.Op = op
	return &c
}

// KindOf extracts the Kind from err, or returns "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// FromOS maps an error returned by the os package onto the taxonomy.
func FromOS(op, path string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	kind := KindOS
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		kind = KindPermissionDenied
	case errors.Is(err, syscall.ENOTEMPTY):
		kind = KindNotEmpty
	case errors.Is(err, syscall.ENOTDIR):
		kind = KindNotADirectory
	case errors.Is(err, syscall.EISDIR):
		kind = KindNotAFile
	case errors.Is(err, fs.ErrExist):
		kind = KindAlreadyExists
	}
	return Wrap(op, path, kind, err)
}

func underlyingError(err error) error {
	switch e := err.(type) {
	case *fs.PathError:
		return e.Err
	case *os.LinkError:
		return e.Err
	case *os.SyscallError:
		return e.Err
	}
	return err
}
