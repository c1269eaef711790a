package validation

import "testing"

func TestValidators(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	PositiveFloat("selling_price", 0, v)
	PositiveInt("quantity", -1, v)
	NonNegativeFloat("purchase_price", -0.5, v)
	RangeFloat("vat_rate", 1.5, 0, 1, v)
	OneOf("condition", "mint", []string{"grade_a", "grade_b", "for_parts"}, v)

	want := map[string]string{
		"name":           "required",
		"selling_price":  "must_be_positive",
		"quantity":       "must_be_positive",
		"purchase_price": "must_not_be_negative",
		"vat_rate":       "out_of_range",
		"condition":      "invalid_choice",
	}
	for field, code := range want {
		if v[field] != code {
			t.Errorf("%s: got %q want %q", field, v[field], code)
		}
	}
}

func TestValidatorsAcceptValidInput(t *testing.T) {
	v := make(Violations)
	Required("name", "Alternateur", v)
	PositiveFloat("selling_price", 250, v)
	PositiveInt("quantity", 1, v)
	NonNegativeFloat("purchase_price", 0, v)
	RangeFloat("vat_rate", 0.19, 0, 1, v)
	OneOf("condition", "grade_a", []string{"grade_a", "grade_b", "for_parts"}, v)
	if !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}
