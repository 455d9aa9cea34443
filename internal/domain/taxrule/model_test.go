package taxrule

import (
	"testing"

	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestApplyKeepsOriginWithoutMatch(t *testing.T) {
	rule := &TaxRule{ID: "rule_1"}

	got := rule.Apply(lo.ToPtr("txr_a"), types.TaxRulePattern{Direction: types.InvoiceDirectionReceivable})
	assert.Equal(t, []string{"txr_a"}, got)
}

func TestApplyNilOriginWithoutMatch(t *testing.T) {
	rule := &TaxRule{ID: "rule_1"}

	got := rule.Apply(nil, types.TaxRulePattern{Direction: types.InvoiceDirectionReceivable})
	assert.Nil(t, got)
}

func TestApplySubstitutes(t *testing.T) {
	rule := &TaxRule{
		ID: "rule_1",
		Lines: []*TaxRuleLine{
			{
				ID:                   "rule_line_1",
				OriginTaxRateID:      lo.ToPtr("txr_a"),
				SubstituteTaxRateIDs: []string{"txr_b", "txr_c"},
			},
		},
	}

	got := rule.Apply(lo.ToPtr("txr_a"), types.TaxRulePattern{})
	assert.Equal(t, []string{"txr_b", "txr_c"}, got)

	// an entry with an origin does not match nil-origin applications
	got = rule.Apply(nil, types.TaxRulePattern{})
	assert.Nil(t, got)
}

func TestApplyDirectionRestriction(t *testing.T) {
	rule := &TaxRule{
		ID: "rule_1",
		Lines: []*TaxRuleLine{
			{
				ID:                   "rule_line_1",
				OriginTaxRateID:      lo.ToPtr("txr_a"),
				Direction:            lo.ToPtr(types.InvoiceDirectionPayable),
				SubstituteTaxRateIDs: []string{"txr_b"},
			},
		},
	}

	payable := rule.Apply(lo.ToPtr("txr_a"), types.TaxRulePattern{Direction: types.InvoiceDirectionPayable})
	assert.Equal(t, []string{"txr_b"}, payable)

	receivable := rule.Apply(lo.ToPtr("txr_a"), types.TaxRulePattern{Direction: types.InvoiceDirectionReceivable})
	assert.Equal(t, []string{"txr_a"}, receivable)
}

func TestTaxRateIDs(t *testing.T) {
	rule := &TaxRule{
		ID: "rule_1",
		Lines: []*TaxRuleLine{
			{
				ID:                   "rule_line_1",
				OriginTaxRateID:      lo.ToPtr("txr_a"),
				SubstituteTaxRateIDs: []string{"txr_b"},
			},
			{
				ID:                   "rule_line_2",
				SubstituteTaxRateIDs: []string{"txr_b", "txr_c"},
			},
		},
	}

	assert.ElementsMatch(t, []string{"txr_a", "txr_b", "txr_c"}, rule.TaxRateIDs())
}
