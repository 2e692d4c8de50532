package model

import (
	"encoding/json"

	"github.com/ericlagergren/decimal"
	"github.com/ericlagergren/decimal/sql/postgres"
	"gitlab.com/minerex-platform/admin_api/conv"
	"gitlab.com/minerex-platform/admin_api/errs"
)

// DefaultLimit applies when a caller sends no limit parameter.
const DefaultLimit = 20

// LimitAll is the sentinel callers pass as "limit=all" to disable paging,
// used by export consumers that need the full result set.
const LimitAll = -1

// Paging is the request side of pagination. Limit is either positive or
// the LimitAll sentinel; Offset is never negative.
type Paging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPaging validates raw pagination parameters.
func NewPaging(limit, offset int) (Paging, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 && limit != LimitAll {
		return Paging{}, errs.InvalidArgument("limit must be positive or the all sentinel")
	}
	if offset < 0 {
		return Paging{}, errs.InvalidArgument("offset must not be negative")
	}
	return Paging{Limit: limit, Offset: offset}, nil
}

// Unlimited reports whether the caller requested the full result set.
func (p Paging) Unlimited() bool {
	return p.Limit == LimitAll
}

// PagingMeta is the response side of pagination.
type PagingMeta struct {
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Count  int64                  `json:"count"`
	Filter map[string]interface{} `json:"filter,omitempty"`
}

// JSONDecimal renders a database decimal as a plain quantized string.
type JSONDecimal struct {
	postgres.Decimal
}

// NewJSONDecimal wraps an amount for response serialization. A nil amount
// becomes zero so aggregates over empty sets render as "0.00000000".
func NewJSONDecimal(v *decimal.Big) JSONDecimal {
	if v == nil {
		v = conv.NewDecimalWithPrecision()
	}
	return JSONDecimal{postgres.Decimal{V: v}}
}

func (d JSONDecimal) MarshalJSON() ([]byte, error) {
	v := d.V
	if v == nil {
		v = conv.NewDecimalWithPrecision()
	}
	return json.Marshal(conv.CloneToPrecision(v).String())
}
