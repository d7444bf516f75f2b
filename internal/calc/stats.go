package calc

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyData reports a statistical operation over an empty data set.
var ErrEmptyData = errors.New("data set is empty")

// ErrInsufficientData reports a data set too small for the requested
// delta degrees of freedom.
var ErrInsufficientData = errors.New("data set is too small for the requested ddof")

// Mean returns the arithmetic mean of data.
func Mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("mean: %w", ErrEmptyData)
	}
	return stat.Mean(data, nil), nil
}

// Median returns the middle value of data, averaging the two central
// values for even-length inputs.
func Median(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("median: %w", ErrEmptyData)
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Mode returns every value tied for the highest frequency in data, in
// ascending order. A data set with no repeats is fully multimodal.
func Mode(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("mode: %w", ErrEmptyData)
	}
	counts := make(map[float64]int, len(data))
	maxCount := 0
	for _, value := range data {
		counts[value]++
		if counts[value] > maxCount {
			maxCount = counts[value]
		}
	}
	modes := make([]float64, 0, len(counts))
	for value, count := range counts {
		if count == maxCount {
			modes = append(modes, value)
		}
	}
	sort.Float64s(modes)
	return modes, nil
}

// Variance returns the variance of data. ddof selects the estimator:
// 1 for the unbiased sample variance, 0 for the population variance.
func Variance(data []float64, ddof int) (float64, error) {
	if err := checkDdof(data, ddof); err != nil {
		return 0, fmt.Errorf("variance: %w", err)
	}
	if ddof == 0 {
		return stat.PopVariance(data, nil), nil
	}
	return stat.Variance(data, nil), nil
}

// StdDev returns the standard deviation of data under the same ddof
// convention as Variance.
func StdDev(data []float64, ddof int) (float64, error) {
	if err := checkDdof(data, ddof); err != nil {
		return 0, fmt.Errorf("std dev: %w", err)
	}
	if ddof == 0 {
		return stat.PopStdDev(data, nil), nil
	}
	return stat.StdDev(data, nil), nil
}

// checkDdof validates the ddof selector against the data size.
func checkDdof(data []float64, ddof int) error {
	if ddof != 0 && ddof != 1 {
		return fmt.Errorf("ddof must be 0 or 1, got %d", ddof)
	}
	if len(data) == 0 {
		return ErrEmptyData
	}
	if len(data) <= ddof {
		return ErrInsufficientData
	}
	return nil
}
