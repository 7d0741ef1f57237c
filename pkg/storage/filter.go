package storage

import (
	"strconv"
	"strings"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// Matches reports whether doc satisfies filter. Query, remove and update all
// select documents through this one predicate.
//
// Numbers support every relational condition. Strings and booleans only
// support equal and notEqual. Arrays, objects, null and absent fields never
// match a set filter.
func Matches(doc domain.Document, filter domain.Filter) bool {
	if filter.IsUnset() {
		return true
	}

	field, exists := doc[filter.Key]
	if !exists {
		return false
	}

	switch v := field.(type) {
	case string:
		switch filter.Condition {
		case domain.ConditionEqual:
			return v == filter.Value
		case domain.ConditionNotEqual:
			return v != filter.Value
		}
		return false
	case bool:
		var want bool
		switch strings.ToLower(filter.Value) {
		case "true":
			want = true
		case "false":
			want = false
		default:
			return false
		}
		switch filter.Condition {
		case domain.ConditionEqual:
			return v == want
		case domain.ConditionNotEqual:
			return v != want
		}
		return false
	case nil, []interface{}, map[string]interface{}, domain.Document:
		return false
	}

	number, ok := ToFloat64(field)
	if !ok {
		return false
	}
	literal, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		return false
	}
	return compareNumbers(number, literal, filter.Condition)
}

func compareNumbers(field, literal float64, cond domain.Condition) bool {
	switch cond {
	case domain.ConditionGreaterThan:
		return field > literal
	case domain.ConditionGreaterThanEqual:
		return field >= literal
	case domain.ConditionLessThan:
		return field < literal
	case domain.ConditionLessThanEqual:
		return field <= literal
	case domain.ConditionEqual:
		return field == literal
	case domain.ConditionNotEqual:
		return field != literal
	default:
		return false
	}
}
