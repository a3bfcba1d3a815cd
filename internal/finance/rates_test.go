package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProfile_Risk(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
		want RiskCategory
	}{
		{"low debt and seasoned", Profile{dec("100000"), dec("20000"), dec("5000"), 8}, RiskLow},
		{"low debt but new", Profile{dec("100000"), dec("20000"), dec("5000"), 1}, RiskHigh},
		{"heavy debt", Profile{dec("100000"), dec("50000"), dec("15000"), 10}, RiskHigh},
		{"middle", Profile{dec("100000"), dec("40000"), decimal.Zero, 3}, RiskMedium},
		{"ratio at 0.3 is not low", Profile{dec("100000"), dec("30000"), decimal.Zero, 6}, RiskMedium},
		{"ratio at 0.6 is not high", Profile{dec("100000"), dec("60000"), decimal.Zero, 6}, RiskMedium},
		{"no income", Profile{decimal.Zero, dec("10"), decimal.Zero, 6}, RiskHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.Risk())
		})
	}
}

func TestDerivedRate(t *testing.T) {
	assert.Equal(t, "12", DerivedRate("crop_production", RiskLow).String())
	assert.Equal(t, "14.5", DerivedRate("livestock", RiskMedium).String())
	assert.Equal(t, "13", DerivedRate("irrigation", RiskHigh).String())
	assert.Equal(t, "15", DerivedRate("unknown", RiskLow).String())
}
