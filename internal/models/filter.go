package models

import "encoding/json"

// EventFilter is the provider's X-Filter document for event polling.
type EventFilter struct {
	Or      []FilterClause `json:"+or"`
	OrderBy string         `json:"+order_by,omitempty"`
	Order   string         `json:"+order,omitempty"`
}

// FilterClause matches either on creation time or on a single event id.
type FilterClause struct {
	Created *TimeCondition `json:"created,omitempty"`
	ID      *int64         `json:"id,omitempty"`
}

// TimeCondition selects timestamps strictly after After.
type TimeCondition struct {
	After string `json:"+gt"`
}

// Header encodes the filter for the X-Filter request header.
func (f EventFilter) Header() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
