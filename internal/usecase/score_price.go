package usecase

import (
	"fmt"
	"math"

	"github.com/gearmatch/backend/internal/domain"
)

// Financing model constants. These mirror typical retail terms: a 5% base
// APR over 60 months for loans, and a 0.00125 money factor (3% APR
// equivalent) with a 60% three-year residual for leases.
const (
	financeBaseRate   = 0.05
	financeTermMonths = 60

	leaseBaseMoneyFactor = 0.00125
	leaseResidualPercent = 0.6
	leaseTermMonths      = 36

	financeDownPaymentBonusCap = 0.15
	leaseDownPaymentBonusCap   = 0.1
)

// creditAdjustment scales the base rate by credit band.
var creditAdjustments = map[string]float64{
	domain.CreditExcellent: 0.8,
	domain.CreditGood:      1.0,
	domain.CreditFair:      1.2,
	domain.CreditPoor:      1.5,
}

// scorePriceCompatibility scores the vehicle's price against the user's
// payment plan. A vehicle over a cash budget, or whose estimated monthly
// payment exceeds the monthly target, scores a hard zero regardless of how
// small the overshoot is.
func scorePriceCompatibility(p ScoringParams) ModuleResult {
	if p.Vehicle.MSRP == nil || p.Preferences.PaymentPlan == nil {
		return ModuleResult{
			Score:      0.5,
			Confidence: 1,
			PriceAnalysis: &domain.PriceAnalysis{
				IsWithinBudget: true,
			},
		}
	}

	price := *p.Vehicle.MSRP
	plan := *p.Preferences.PaymentPlan

	var analysis domain.PriceAnalysis
	var score float64

	switch plan.Type {
	case domain.PaymentLease:
		score, analysis = scoreLease(price, plan)
	case domain.PaymentFinance:
		score, analysis = scoreFinance(price, plan)
	default:
		score, analysis = scoreCash(price, plan)
	}

	result := ModuleResult{
		Score:         score,
		Confidence:    1,
		PriceAnalysis: &analysis,
	}
	if !analysis.IsWithinBudget {
		result.Notes = []string{fmt.Sprintf("Over budget by %.1f%%", analysis.PercentFromBudget)}
	}
	return result
}

func scoreCash(price float64, plan domain.PaymentPlan) (float64, domain.PriceAnalysis) {
	var budget float64
	if plan.Budget != nil {
		budget = *plan.Budget
	}
	if budget <= 0 {
		return 0.5, domain.PriceAnalysis{IsWithinBudget: true}
	}

	percentFromBudget := (price - budget) / budget
	analysis := domain.PriceAnalysis{
		IsWithinBudget:    price <= budget,
		PercentFromBudget: percentFromBudget * 100,
	}

	if !analysis.IsWithinBudget {
		return 0, analysis
	}

	score := clamp01(1 - math.Abs(percentFromBudget))
	return score, analysis
}

func scoreFinance(price float64, plan domain.PaymentPlan) (float64, domain.PriceAnalysis) {
	creditAdj := creditAdjustment(plan.CreditScore)
	adjustedRate := financeBaseRate * creditAdj

	var downPayment float64
	if plan.DownPayment != nil {
		downPayment = *plan.DownPayment
	}
	loanAmount := price - downPayment

	monthly := amortizedMonthlyPayment(loanAmount, adjustedRate, financeTermMonths)
	downPaymentImpact := downPayment / price

	analysis := domain.PriceAnalysis{
		IsWithinBudget:    true,
		EstimatedMonthly:  &monthly,
		CreditAdjustment:  &creditAdj,
		DownPaymentImpact: &downPaymentImpact,
	}

	if plan.MonthlyPayment == nil || *plan.MonthlyPayment <= 0 {
		return 0.5, analysis
	}
	target := *plan.MonthlyPayment

	percentFromTarget := (monthly - target) / target
	analysis.PercentFromBudget = percentFromTarget * 100
	analysis.IsWithinBudget = monthly <= target

	if !analysis.IsWithinBudget {
		return 0, analysis
	}

	base := math.Max(0, 1-math.Abs(percentFromTarget))
	downPaymentBonus := math.Min(downPaymentImpact*1.5, financeDownPaymentBonusCap)
	creditBonus := math.Max(0, (1-creditAdj)/10)

	return math.Min(base+downPaymentBonus+creditBonus, 1), analysis
}

func scoreLease(price float64, plan domain.PaymentPlan) (float64, domain.PriceAnalysis) {
	creditAdj := creditAdjustment(plan.CreditScore)
	moneyFactor := leaseBaseMoneyFactor * creditAdj

	var downPayment float64
	if plan.DownPayment != nil {
		downPayment = *plan.DownPayment
	}

	residualValue := price * leaseResidualPercent
	depreciation := price - residualValue - downPayment
	monthlyDepreciation := depreciation / leaseTermMonths
	monthlyFinanceCharge := (price + residualValue) * moneyFactor
	monthly := monthlyDepreciation + monthlyFinanceCharge
	downPaymentImpact := downPayment / price

	analysis := domain.PriceAnalysis{
		IsWithinBudget:    true,
		EstimatedMonthly:  &monthly,
		CreditAdjustment:  &creditAdj,
		DownPaymentImpact: &downPaymentImpact,
	}

	if plan.MonthlyPayment == nil || *plan.MonthlyPayment <= 0 {
		return 0.5, analysis
	}
	target := *plan.MonthlyPayment

	percentFromTarget := (monthly - target) / target
	analysis.PercentFromBudget = percentFromTarget * 100
	analysis.IsWithinBudget = monthly <= target

	if !analysis.IsWithinBudget {
		return 0, analysis
	}

	base := math.Max(0, 1-math.Abs(percentFromTarget))
	downPaymentBonus := math.Min(downPaymentImpact, leaseDownPaymentBonusCap)

	return math.Min(base+downPaymentBonus, 1), analysis
}

func creditAdjustment(creditScore string) float64 {
	if adj, ok := creditAdjustments[creditScore]; ok {
		return adj
	}
	return 1.0
}

// amortizedMonthlyPayment is the standard loan payment formula, rounded to
// whole dollars the way lenders quote it.
func amortizedMonthlyPayment(loanAmount, annualRate float64, termMonths int) float64 {
	monthlyRate := annualRate / 12
	compound := math.Pow(1+monthlyRate, float64(termMonths))
	payment := loanAmount * monthlyRate * compound / (compound - 1)
	return math.Round(payment)
}
