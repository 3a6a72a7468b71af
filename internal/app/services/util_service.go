package services

import (
	"context"

	"github.com/yigit/hogwarts/internal/pkg/apperrors"
)

const (
	// DefaultSeriesLimit is the upper bound used by the sum endpoints
	DefaultSeriesLimit int64 = 1_000_000

	// MaxSeriesLimit is the largest n whose sum 1..n fits in an int64
	MaxSeriesLimit int64 = 4_294_967_295

	// the iterative sum polls the context once per this many terms
	seriesCancelCheck = 1 << 16
)

// UtilService exposes small computational demos
type UtilService interface {
	// SumSeries returns 1 + 2 + ... + n using the closed form
	SumSeries(n int64) (int64, error)
	// SumSeriesIterative returns the same value by looping over every term
	SumSeriesIterative(ctx context.Context, n int64) (int64, error)
}

type utilServiceImpl struct{}

// NewUtilService creates a new util service instance
func NewUtilService() UtilService {
	return utilServiceImpl{}
}

func checkSeriesLimit(n int64) error {
	if n > MaxSeriesLimit {
		return apperrors.ErrSeriesTooLarge.WithDetails(map[string]interface{}{"max": MaxSeriesLimit})
	}
	return nil
}

func (utilServiceImpl) SumSeries(n int64) (int64, error) {
	if err := checkSeriesLimit(n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	// halve the even factor first so the product stays in range
	if n%2 == 0 {
		return n / 2 * (n + 1), nil
	}
	return n * ((n + 1) / 2), nil
}

func (utilServiceImpl) SumSeriesIterative(ctx context.Context, n int64) (int64, error) {
	if err := checkSeriesLimit(n); err != nil {
		return 0, err
	}
	var sum int64
	for i := int64(1); i <= n; i++ {
		if i%seriesCancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		sum += i
	}
	return sum, nil
}
