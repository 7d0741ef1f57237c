package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// parseFilter builds a filter from either ?where=key<op>value or the
// ?key=&cond=&value= triple. No filter parameters, or a triple without a
// value, selects every document.
func parseFilter(query url.Values) (domain.Filter, error) {
	if where := query.Get("where"); where != "" {
		return domain.ParseFilter(where)
	}

	key := query.Get("key")
	condName := query.Get("cond")
	if key == "" && condName == "" {
		return domain.MatchAll(), nil
	}
	if condName == "" {
		return domain.Filter{}, fmt.Errorf("%w: cond is required with key '%s'", domain.ErrInvalidCondition, key)
	}

	cond, err := domain.ParseCondition(condName)
	if err != nil {
		return domain.Filter{}, err
	}
	if cond == domain.ConditionAll {
		return domain.MatchAll(), nil
	}
	if key == "" {
		return domain.Filter{}, fmt.Errorf("%w: key is required with cond '%s'", domain.ErrInvalidCondition, condName)
	}
	if query.Get("value") == "" {
		return domain.MatchAll(), nil
	}

	return domain.Filter{
		Key:       key,
		Value:     query.Get("value"),
		Condition: cond,
	}, nil
}

// parsePagination reads ?limit= and ?offset= on top of the defaults
func parsePagination(query url.Values) (*domain.PaginationOptions, error) {
	options := domain.DefaultPaginationOptions()

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid limit '%s'", limitStr)
		}
		options.Limit = limit
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, fmt.Errorf("invalid offset '%s'", offsetStr)
		}
		options.Offset = offset
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}
