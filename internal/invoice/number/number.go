// Package number implements the SSS/MM/YY invoice numbering scheme: a
// zero-padded serial that starts at 1 inside each calendar-month scope.
//
// Everything here is pure; reading the highest allocated number for a scope
// is the repository's job, and collision safety comes from the unique
// constraint on invoice_number plus the creation transaction's retry.
package number

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrAllocation marks failures while deriving the next invoice number. The
// caller must abort rather than fall back to serial 1, which would collide.
var ErrAllocation = errors.New("invoice_number_allocation")

// Scope is the (calendar month, 2-digit year) window invoice serials are
// sequential within.
type Scope struct {
	Month string // "01".."12"
	Year  string // last two digits
}

func ScopeOf(t time.Time) Scope {
	return Scope{
		Month: t.Format("01"),
		Year:  t.Format("06"),
	}
}

// Suffix is the scope part of a formatted invoice number, including the
// leading separator. Used as the pattern tail when querying the store.
func (s Scope) Suffix() string {
	return "/" + s.Month + "/" + s.Year
}

// Format renders serial 7 in scope 03/24 as "007/03/24". Serials past 999
// widen naturally; the 3-digit pad is a floor, not a cap.
func Format(serial int64, scope Scope) string {
	return fmt.Sprintf("%03d%s", serial, scope.Suffix())
}

// ParseSerial extracts the leading serial component of a formatted invoice
// number. A malformed stored number is an allocation error, never serial 0.
func ParseSerial(invoiceNumber string) (int64, error) {
	head, _, ok := strings.Cut(invoiceNumber, "/")
	if !ok {
		return 0, fmt.Errorf("%w: malformed invoice number %q", ErrAllocation, invoiceNumber)
	}
	serial, err := strconv.ParseInt(head, 10, 64)
	if err != nil || serial <= 0 {
		return 0, fmt.Errorf("%w: malformed serial in %q", ErrAllocation, invoiceNumber)
	}
	return serial, nil
}

// Next derives the next invoice number for scope given the highest number
// already allocated in that scope ("" when the scope is empty).
func Next(last string, scope Scope) (string, error) {
	if last == "" {
		return Format(1, scope), nil
	}
	serial, err := ParseSerial(last)
	if err != nil {
		return "", err
	}
	return Format(serial+1, scope), nil
}
