// internals/helpers/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Kind adalah taksonomi error domain. Controller cukup switch di satu tempat
// (helper.FromAppError) — service tidak boleh menyentuh kode HTTP.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindScopeViolation
	KindCascadeFailure
	KindLockedPeriode
)

type Error struct {
	Kind  Kind
	Msg   string
	Field string // field/id yang bermasalah, opsional
	Err   error  // penyebab asli, opsional
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s)", e.Msg, e.Field)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

/* ===================== CONSTRUCTORS ===================== */

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Field: field}
}

func Conflict(field, msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg, Field: field}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func ScopeViolation(msg string) *Error {
	return &Error{Kind: KindScopeViolation, Msg: msg}
}

// CascadeFailure: operasi multi-record atomik gagal dan sudah di-rollback penuh.
func CascadeFailure(msg string, cause error) *Error {
	return &Error{Kind: KindCascadeFailure, Msg: msg, Err: cause}
}

func LockedPeriode() *Error {
	return &Error{Kind: KindLockedPeriode, Msg: "Periode evaluasi telah dikunci dan tidak dapat diedit"}
}

/* ===================== INSPECTION ===================== */

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// IsDuplicateKey: deteksi unique violation. Di Postgres lewat SQLSTATE 23505;
// fallback sniff pesan supaya jalan juga di sqlite (dipakai test).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pqe *pq.Error
	if errors.As(err, &pqe) {
		return pqe.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
