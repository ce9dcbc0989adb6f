// Package bmi computes the body mass index and its weight category.
//
// Every surface that shows a BMI (profile, dashboard, calculator, recorded
// metrics) goes through Evaluate so that the formula and the threshold table
// exist exactly once.
package bmi

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is matched by every rejection from Evaluate and Parse.
var ErrInvalidInput = errors.New("invalid input")

// Reason tells the caller which notice to show for a rejected input.
type Reason string

const (
	ReasonMissing Reason = "missing information"
	ReasonInvalid Reason = "invalid input"
)

// InputError describes a rejected height or weight.
type InputError struct {
	Field  string
	Reason Reason
}

func (e *InputError) Error() string {
	return string(e.Reason) + ": " + e.Field
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Result is an evaluated BMI. Index is never rounded.
type Result struct {
	Index    float64  `json:"index"`
	Category Category `json:"category"`
}

// Rounded returns the index rounded to one decimal place for display.
func (r Result) Rounded() float64 {
	return math.Round(r.Index*10) / 10
}

// Evaluate returns the BMI for a height in centimeters and a weight in
// kilograms. Both values must be finite and positive.
func Evaluate(heightCm, weightKg float64) (Result, error) {
	if !valid(heightCm) {
		return Result{}, &InputError{Field: "height", Reason: ReasonInvalid}
	}
	if !valid(weightKg) {
		return Result{}, &InputError{Field: "weight", Reason: ReasonInvalid}
	}

	heightM := heightCm / 100
	index := weightKg / (heightM * heightM)
	// The displayed value is index*10 rounded, so that must stay finite too.
	if scaled := index * 10; math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		field := "weight"
		if heightCm < 1 {
			field = "height"
		}
		return Result{}, &InputError{Field: field, Reason: ReasonInvalid}
	}

	return Result{Index: index, Category: Classify(index)}, nil
}

// Parse evaluates form text. Blank fields are reported as missing, anything
// that is not a finite positive decimal as invalid.
func Parse(heightText, weightText string) (Result, error) {
	heightText = strings.TrimSpace(heightText)
	weightText = strings.TrimSpace(weightText)

	if heightText == "" {
		return Result{}, &InputError{Field: "height", Reason: ReasonMissing}
	}
	if weightText == "" {
		return Result{}, &InputError{Field: "weight", Reason: ReasonMissing}
	}

	height, err := parseDecimal(heightText)
	if err != nil {
		return Result{}, &InputError{Field: "height", Reason: ReasonInvalid}
	}
	weight, err := parseDecimal(weightText)
	if err != nil {
		return Result{}, &InputError{Field: "weight", Reason: ReasonInvalid}
	}

	return Evaluate(height, weight)
}

// Reject "0x1p4" and friends. Only plain decimals come from a form.
func parseDecimal(s string) (float64, error) {
	if strings.ContainsAny(s, "xXpP_") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

func valid(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
