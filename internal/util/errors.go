package util

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps one of these.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidPrecondition = errors.New("invalid precondition")
	ErrConflict            = errors.New("conflict")
)

var (
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrStudentNotFound  = fmt.Errorf("%w: student", ErrNotFound)
	ErrTeacherNotFound  = fmt.Errorf("%w: teacher", ErrNotFound)
	ErrSubjectNotFound  = fmt.Errorf("%w: subject", ErrNotFound)
	ErrModuleNotFound   = fmt.Errorf("%w: module", ErrNotFound)
	ErrTestNotFound     = fmt.Errorf("%w: test", ErrNotFound)
	ErrClassNotFound    = fmt.Errorf("%w: class", ErrNotFound)
	ErrResultNotFound   = fmt.Errorf("%w: result", ErrNotFound)
	ErrControlNotFound  = fmt.Errorf("%w: control test", ErrNotFound)
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", ErrForbidden)

	ErrTestNotPublished     = fmt.Errorf("%w: test not published", ErrInvalidPrecondition)
	ErrNoQuestions          = fmt.Errorf("%w: test has no questions", ErrInvalidPrecondition)
	ErrSubjectGradeRequired = fmt.Errorf("%w: subject and grade are required", ErrInvalidPrecondition)
	ErrInvalidTestStatus    = fmt.Errorf("%w: unknown test status", ErrInvalidPrecondition)

	ErrModuleHasTest        = fmt.Errorf("%w: module already has a test", ErrConflict)
	ErrTestAlreadySubmitted = fmt.Errorf("%w: test already submitted", ErrConflict)
)
