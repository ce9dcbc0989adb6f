package bmi

import (
	"encoding/json"
	"fmt"
	"math"
)

type Category int

const (
	Underweight Category = iota
	NormalWeight
	Overweight
	Obese
)

// Band is one row of the threshold table: Min <= index < Max.
type Band struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Min      float64  `json:"min"`
	Max      *float64 `json:"max"`
}

var (
	normalMin     = 18.5
	overweightMin = 25.0
	obeseMin      = 30.0
)

var bands = []Band{
	{Category: Underweight, Label: "Underweight", Color: "blue", Min: 0, Max: &normalMin},
	{Category: NormalWeight, Label: "Normal weight", Color: "green", Min: normalMin, Max: &overweightMin},
	{Category: Overweight, Label: "Overweight", Color: "yellow", Min: overweightMin, Max: &obeseMin},
	{Category: Obese, Label: "Obese", Color: "red", Min: obeseMin, Max: nil},
}

var names = map[Category]string{
	Underweight:  "underweight",
	NormalWeight: "normal_weight",
	Overweight:   "overweight",
	Obese:        "obese",
}

// Classify maps an unrounded index to its category.
func Classify(index float64) Category {
	switch {
	case index < normalMin:
		return Underweight
	case index < overweightMin:
		return NormalWeight
	case index < obeseMin:
		return Overweight
	default:
		return Obese
	}
}

// Categories returns a copy of the threshold table in ascending order.
func Categories() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

func (c Category) band() Band {
	if c < Underweight || c > Obese {
		return Band{Label: "Unknown", Color: "gray", Min: math.NaN()}
	}
	return bands[c]
}

// Label is the human readable name shown next to the index.
func (c Category) Label() string { return c.band().Label }

// Color is the indicator color the client renders for the category.
func (c Category) Color() string { return c.band().Color }

// String returns the machine name stored in body_metric columns.
func (c Category) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func ParseCategory(s string) (Category, error) {
	for c, n := range names {
		if n == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown bmi category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
