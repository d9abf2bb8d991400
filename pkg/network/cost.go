package network

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CostScale is the number of Cost units in one Hong Kong dollar
const CostScale = 100

// Cost is a fixed point travel/fare cost held in hundredths of a Hong Kong dollar
type Cost int64

// MaxCost bounds any single amount so sums along a route cannot overflow
const MaxCost Cost = 1_000_000 * CostScale

func CostFromFloat(value float64) Cost {
	return Cost(math.Round(value * CostScale))
}

func ParseCost(value string) (Cost, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty cost: %w", ErrInvalidData)
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("cost %q is not a number: %w", value, ErrInvalidData)
	}
	if math.Abs(parsed) > MaxCost.Float64() {
		return 0, fmt.Errorf("cost %q is above %s: %w", value, MaxCost, ErrInvalidData)
	}

	return CostFromFloat(parsed), nil
}

func (c Cost) Float64() float64 {
	return float64(c) / CostScale
}

func (c Cost) String() string {
	return strconv.FormatFloat(c.Float64(), 'f', -1, 64)
}

func (c Cost) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cost) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*c = CostFromFloat(value)
	return nil
}
