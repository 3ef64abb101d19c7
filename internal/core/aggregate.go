package core

import "encoding/json"

// CategoryTotals holds one statement section: every line item as an Amount
// plus the section total. The total is always the rounded sum of the
// siblings, recomputed on every call, never cached across inputs.
type CategoryTotals struct {
	Items map[string]Amount
	Total Amount
}

// MarshalJSON flattens the section into one object with the line items as
// keys and a "total" key alongside them, matching the stored statement
// shape. No field is ever named "total".
func (c CategoryTotals) MarshalJSON() ([]byte, error) {
	out := make(map[string]Amount, len(c.Items)+1)
	for k, v := range c.Items {
		out[k] = v
	}
	out["total"] = c.Total
	return json.Marshal(out)
}

// UnmarshalJSON restores a section from its flattened stored form.
func (c *CategoryTotals) UnmarshalJSON(data []byte) error {
	all := map[string]Amount{}
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	c.Total = all["total"]
	delete(all, "total")
	c.Items = all
	return nil
}

// Get returns the amount for one line item, zero when absent.
func (c CategoryTotals) Get(name string) float64 {
	return c.Items[name].Value
}

// sumItems coerces and sums an ordered line-item list, dividing each value
// by divisor first. Missing or malformed fields contribute zero, so an
// incomplete form never fails.
func sumItems(items []lineItem, divisor float64) CategoryTotals {
	out := CategoryTotals{Items: make(map[string]Amount, len(items))}
	var sum float64
	for _, it := range items {
		v := RoundTwo(SafeNumber(it.raw) / divisor)
		out.Items[it.name] = USD(v)
		sum += v
	}
	out.Total = USD(sum)
	return out
}

// AggregateIncome sums every income line item.
func AggregateIncome(in *FormInput) CategoryTotals {
	return sumItems(in.Income.items(), 1)
}

// AggregateDeductions sums every pre-tax deduction line item.
func AggregateDeductions(in *FormInput) CategoryTotals {
	return sumItems(in.Deductions.items(), 1)
}

// AggregateNeeds sums every essential expense line item.
func AggregateNeeds(in *FormInput) CategoryTotals {
	return sumItems(in.Needs.items(), 1)
}

// AggregateSavings sums every savings and investment line item.
func AggregateSavings(in *FormInput) CategoryTotals {
	return sumItems(in.Savings.items(), 1)
}

// AggregateWants sums every discretionary expense line item.
func AggregateWants(in *FormInput) CategoryTotals {
	return sumItems(in.Wants.items(), 1)
}

// AggregateAnnual amortizes annual expenses to a monthly set-aside.
// Each line item is divided by 12 here so no later step divides again.
func AggregateAnnual(in *FormInput) CategoryTotals {
	return sumItems(in.Annual.items(), 12)
}
