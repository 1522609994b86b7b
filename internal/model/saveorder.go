package model

import (
	"fmt"
	"strings"
)

// OrderType selects how entries are ordered on save.
type OrderType string

const (
	// OrderOriginal keeps insertion order.
	OrderOriginal OrderType = "original"
	// OrderSpecified sorts by explicit criteria.
	OrderSpecified OrderType = "specified"
	// OrderTable mirrors a table view. It is not a valid save order.
	OrderTable OrderType = "table"
)

// ParseOrderType parses the serialized form of an order type.
func ParseOrderType(s string) (OrderType, error) {
	switch t := OrderType(strings.ToLower(strings.TrimSpace(s))); t {
	case OrderOriginal, OrderSpecified, OrderTable:
		return t, nil
	}
	return "", fmt.Errorf("unknown order type %q", s)
}

// SortCriterion sorts by one field.
type SortCriterion struct {
	Field      string
	Descending bool
}

// SaveOrder is the configured strategy for the emitted entry sequence.
type SaveOrder struct {
	Type     OrderType
	Criteria []SortCriterion
}

// OriginalOrder returns the default save order.
func OriginalOrder() SaveOrder {
	return SaveOrder{Type: OrderOriginal}
}

// SpecifiedOrder returns a save order sorting by the given criteria.
func SpecifiedOrder(criteria ...SortCriterion) SaveOrder {
	return SaveOrder{Type: OrderSpecified, Criteria: criteria}
}
