package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const opTimeout = 5 * time.Second

var errNotNumber = errors.New("must be a number")

// FormatAmount renders a worksheet amount with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// OpCtx returns a context with a standard timeout for service calls.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// parseAmount reads a form field. Blank means zero.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errNotNumber
	}

	return d.InexactFloat64(), nil
}

func validateNonNegative(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return err
	}

	if v < 0 {
		return errors.New("must not be negative")
	}

	return nil
}

func validatePositive(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return err
	}

	if v <= 0 {
		return errors.New("must be greater than zero")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}

		return nil
	}
}

func amountField(v float64) string {
	if v == 0 {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
