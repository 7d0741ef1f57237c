package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Condition is the comparison used to select documents by a field value
type Condition int

const (
	ConditionGreaterThan Condition = iota
	ConditionGreaterThanEqual
	ConditionLessThan
	ConditionLessThanEqual
	ConditionEqual
	ConditionNotEqual
	ConditionAll
)

var conditionNames = map[Condition]string{
	ConditionGreaterThan:      "greaterThan",
	ConditionGreaterThanEqual: "greaterThanEqual",
	ConditionLessThan:         "lessThan",
	ConditionLessThanEqual:    "lessThanEqual",
	ConditionEqual:            "equal",
	ConditionNotEqual:         "notEqual",
	ConditionAll:              "all",
}

// conditionAliases maps every accepted spelling (name, short form, operator) to a Condition
var conditionAliases = map[string]Condition{
	"greaterthan":      ConditionGreaterThan,
	"gt":               ConditionGreaterThan,
	">":                ConditionGreaterThan,
	"greaterthanequal": ConditionGreaterThanEqual,
	"gte":              ConditionGreaterThanEqual,
	">=":               ConditionGreaterThanEqual,
	"lessthan":         ConditionLessThan,
	"lt":               ConditionLessThan,
	"<":                ConditionLessThan,
	"lessthanequal":    ConditionLessThanEqual,
	"lte":              ConditionLessThanEqual,
	"<=":               ConditionLessThanEqual,
	"equal":            ConditionEqual,
	"eq":               ConditionEqual,
	"=":                ConditionEqual,
	"==":               ConditionEqual,
	"notequal":         ConditionNotEqual,
	"ne":               ConditionNotEqual,
	"!=":               ConditionNotEqual,
	"all":              ConditionAll,
}

func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

// Valid reports whether c is one of the defined conditions
func (c Condition) Valid() bool {
	_, ok := conditionNames[c]
	return ok
}

// ParseCondition parses a condition name ("greaterThan"), short form ("gt")
// or operator (">"). Names are case-insensitive.
func ParseCondition(s string) (Condition, error) {
	if c, ok := conditionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: '%s'", ErrInvalidCondition, s)
}

// Action is a field-level mutation applied to every matched document
type Action int

const (
	ActionAdd Action = iota
	ActionDrop
	ActionAlter
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionDrop:
		return "drop"
	case ActionAlter:
		return "alter"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction maps "add", "drop" or "alter" to an Action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return ActionAdd, nil
	case "drop":
		return ActionDrop, nil
	case "alter":
		return ActionAlter, nil
	}
	return 0, fmt.Errorf("%w: '%s' (use add, drop or alter)", ErrInvalidAction, s)
}

// Filter selects documents whose Key field relates to Value by Condition.
// An empty Key or Value leaves the filter unset, matching every document.
type Filter struct {
	Key       string    `json:"key,omitempty"`
	Value     string    `json:"value,omitempty"`
	Condition Condition `json:"condition"`
}

// MatchAll returns a filter that selects every document
func MatchAll() Filter {
	return Filter{Condition: ConditionAll}
}

// IsUnset reports whether the filter matches unconditionally
func (f Filter) IsUnset() bool {
	return f.Condition == ConditionAll || f.Key == "" || f.Value == ""
}

var filterExpr = regexp.MustCompile(`^\s*(\w+)\s*(>=|<=|!=|==|=|>|<)\s*(.+?)\s*$`)

// ParseFilter parses a "key<op>value" expression such as "age>=30" or
// `name = "Alice"`. Surrounding double quotes are stripped from the value.
func ParseFilter(expr string) (Filter, error) {
	match := filterExpr.FindStringSubmatch(expr)
	if match == nil {
		return Filter{}, fmt.Errorf("%w: '%s' (use key<condition>value)", ErrInvalidCondition, expr)
	}
	cond, err := ParseCondition(match[2])
	if err != nil {
		return Filter{}, err
	}
	return Filter{
		Key:       match[1],
		Value:     strings.Trim(match[3], `"`),
		Condition: cond,
	}, nil
}
