package cli

import (
	"fmt"
	"strings"

	"investpro/models"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/shopspring/decimal"
)

// money renders 2500 as "$2,500" and 189.25 as "$189.25".
func money(d decimal.Decimal) string {
	rounded := d.Abs().Round(2)
	text := humanize.Comma(rounded.IntPart())
	if !rounded.Equal(rounded.Truncate(0)) {
		_, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
		text += "." + frac
	}

	if d.IsNegative() {
		return "-$" + text
	}
	return "$" + text
}

func signed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if !d.IsNegative() {
		s = "+" + s
	}
	return s
}

// change renders "+2.45 (+1.31%)", green when gaining and red when losing.
func change(s models.Stock) string {
	text := fmt.Sprintf("%s (%s%%)", signed(s.Change), signed(s.ChangePercent))
	if s.IsGaining() {
		return color.Green.Sprint(text)
	}
	return color.Red.Sprint(text)
}

func recommendation(r models.Recommendation) string {
	switch r {
	case models.StrongBuy, models.Buy:
		return color.Green.Sprint(r.String())
	case models.Hold:
		return color.Yellow.Sprint(r.String())
	default:
		return color.Red.Sprint(r.String())
	}
}

func risk(r models.RiskLevel) string {
	switch r {
	case models.LowRisk:
		return color.Green.Sprint(r.String())
	case models.MediumRisk:
		return color.Yellow.Sprint(r.String())
	default:
		return color.Red.Sprint(r.String())
	}
}

func rating(v float64) string {
	return fmt.Sprintf("%.1f/5", v)
}
