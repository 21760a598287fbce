package source

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/currencyutils"
	"fintrack/internal/dateutils"
	"fintrack/internal/models"
	"fintrack/internal/sourceerror"

	"github.com/shopspring/decimal"
)

// Raw is one undecoded record: column or field name to value. Values come
// from JSON (json.Number, string, bool, nil), YAML (int, float64, string,
// time.Time), CSV (string) or SQL drivers (int64, float64, []byte, string,
// time.Time). Keys are matched case-insensitively.
type Raw map[string]any

func (r Raw) get(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// decoder turns Raw values into typed fields and remembers the first
// failure, so a record can be decoded field by field and checked once.
type decoder struct {
	source     string
	collection Collection
	loc        *time.Location
	err        error
}

func (d *decoder) fail(field string, value any, err error) {
	if d.err == nil {
		d.err = &sourceerror.DecodeError{
			Source:     d.source,
			Collection: string(d.collection),
			Field:      field,
			Value:      fmt.Sprint(value),
			Err:        err,
		}
	}
}

func (d *decoder) intField(r Raw, field string) int64 {
	v, ok := r.get(field)
	if !ok || v == nil {
		return 0
	}
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			d.fail(field, v, fmt.Errorf("out of range"))
			return 0
		}
		return int64(x)
	case float64:
		if x != math.Trunc(x) {
			d.fail(field, v, fmt.Errorf("not an integer"))
			return 0
		}
		return int64(x)
	case json.Number:
		return d.parseInt(field, string(x))
	case string:
		return d.parseInt(field, x)
	case []byte:
		return d.parseInt(field, string(x))
	default:
		d.fail(field, v, fmt.Errorf("unsupported type %T", v))
		return 0
	}
}

func (d *decoder) parseInt(field, s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		d.fail(field, s, err)
		return 0
	}
	return n
}

func (d *decoder) stringField(r Raw, field string) string {
	v, ok := r.get(field)
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func (d *decoder) amountField(r Raw, field string) decimal.Decimal {
	v, ok := r.get(field)
	if !ok || v == nil {
		return decimal.Zero
	}
	var s string
	switch x := v.(type) {
	case int64:
		return decimal.NewFromInt(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case float64:
		return decimal.NewFromFloat(x)
	case json.Number:
		s = string(x)
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		d.fail(field, v, fmt.Errorf("unsupported type %T", v))
		return decimal.Zero
	}
	amount, err := currencyutils.ParseAmount(s)
	if err != nil {
		d.fail(field, s, err)
		return decimal.Zero
	}
	return amount
}

func (d *decoder) dateField(r Raw, field string) time.Time {
	v, ok := r.get(field)
	if !ok || v == nil {
		return time.Time{}
	}
	var s string
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		d.fail(field, v, fmt.Errorf("unsupported type %T", v))
		return time.Time{}
	}
	if strings.TrimSpace(s) == "" {
		return time.Time{}
	}
	t, err := dateutils.ParseDate(s, d.loc)
	if err != nil {
		d.fail(field, s, err)
		return time.Time{}
	}
	return t
}

// decodeAll applies one to every raw record, stopping at the first failure.
func decodeAll[T any](d *decoder, raws []Raw, one func(*decoder, Raw) T) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, r := range raws {
		rec := one(d, r)
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeCategory(d *decoder, r Raw) models.Category {
	return models.Category{
		ID:          d.intField(r, "id"),
		Name:        d.stringField(r, "name"),
		Description: d.stringField(r, "description"),
	}
}

func decodeIncome(d *decoder, r Raw) models.Income {
	return models.Income{
		ID:         d.intField(r, "id"),
		CategoryID: d.intField(r, "category_id"),
		Amount:     d.amountField(r, "amount"),
		Date:       d.dateField(r, "date"),
		Source:     d.stringField(r, "source"),
	}
}

func decodeExpense(d *decoder, r Raw) models.Expense {
	return models.Expense{
		ID:         d.intField(r, "id"),
		Name:       d.stringField(r, "name"),
		CategoryID: d.intField(r, "category_id"),
		Amount:     d.amountField(r, "amount"),
		Date:       d.dateField(r, "date"),
	}
}

func decodeBudget(d *decoder, r Raw) models.Budget {
	return models.Budget{
		ID:         d.intField(r, "id"),
		CategoryID: d.intField(r, "category_id"),
		Amount:     d.amountField(r, "amount"),
		Spent:      d.amountField(r, "spent"),
		StartDate:  d.dateField(r, "start_date"),
		EndDate:    d.dateField(r, "end_date"),
	}
}
