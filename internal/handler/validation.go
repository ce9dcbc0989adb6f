package handler

import (
	"fmt"
	"math"
	"strings"
)

func validateMeasurements(age *int, height, weight *float64) string {
	if age != nil && (*age <= 0 || *age > 150) {
		return "age must be between 1 and 150"
	}
	if height != nil && !positive(*height) {
		return "height must be greater than 0"
	}
	if weight != nil && !positive(*weight) {
		return "weight must be greater than 0"
	}
	return ""
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// normalizeProfilePatch checks a PATCH body and converts JSON values to the
// types the users table expects. Keys that are not profile fields are dropped.
func normalizeProfilePatch(fields map[string]interface{}) (map[string]interface{}, string) {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch k {
		case "name":
			s, ok := v.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, "name must not be empty"
			}
			out[k] = strings.TrimSpace(s)
		case "age":
			if v == nil {
				out[k] = nil
				continue
			}
			n, ok := v.(float64)
			if !ok || n != math.Trunc(n) || n <= 0 || n > 150 {
				return nil, "age must be between 1 and 150"
			}
			out[k] = int(n)
		case "height", "weight":
			if v == nil {
				out[k] = nil
				continue
			}
			n, ok := v.(float64)
			if !ok || !positive(n) {
				return nil, fmt.Sprintf("%s must be greater than 0", k)
			}
			out[k] = n
		case "medical_conditions":
			list, ok := v.([]interface{})
			if !ok && v != nil {
				return nil, "medical_conditions must be a list"
			}
			conditions := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok || strings.TrimSpace(s) == "" {
					return nil, "medical_conditions must not contain empty values"
				}
				conditions = append(conditions, strings.TrimSpace(s))
			}
			out[k] = conditions
		case "email", "address", "phone", "avatar":
			if v == nil {
				out[k] = nil
				continue
			}
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Sprintf("%s must be a string", k)
			}
			if k == "email" {
				s = normalizeEmail(s)
				if !validEmail(s) {
					return nil, "invalid email format"
				}
			}
			out[k] = s
		}
	}
	return out, ""
}
