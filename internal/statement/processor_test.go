package statement

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/category"
	"github.com/lox/bank-statement-categorizer/internal/merchant"
	"github.com/lox/bank-statement-categorizer/internal/metrics"
	"github.com/lox/bank-statement-categorizer/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProcessor(t *testing.T, opts bank.Options) (*Processor, *prometheus.Registry) {
	t.Helper()

	logger := log.New(io.Discard)
	logger.SetLevel(log.DebugLevel)

	reg := prometheus.NewRegistry()
	p, err := NewProcessor(logger, NewRegistry(opts), merchant.Default(), category.Default(), metrics.New(reg))
	require.NoError(t, err)
	return p, reg
}

func TestAmexStatement(t *testing.T) {
	p, _ := setupProcessor(t, bank.Options{})

	res, err := p.Process("amex", "January 5\nCOFFEE SHOP\n4.50")
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)

	tx := res.Transactions[0]
	assert.Equal(t, "2025-01-05", tx.Date)
	assert.Equal(t, "COFFEE SHOP", tx.Description)
	assert.Equal(t, "4.50", tx.Amount.String())
	assert.Equal(t, types.TransactionTypeDebit, tx.Type)
	assert.Equal(t, "Coffee Shop", tx.MerchantName)
	assert.Equal(t, "DINE", tx.CategoryCode)
	assert.Equal(t, "Dining and takeaway", tx.CategoryDescription)
	assert.False(t, tx.IsDeductible)
	assert.Equal(t, "amex", res.Bank)
}

func TestWestpacStatement(t *testing.T) {
	p, _ := setupProcessor(t, bank.Options{})

	res, err := p.Process("westpac", "01/02/24 EFTPOS PURCHASE STORE XYZ\n23.40\n1050.00")
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)

	tx := res.Transactions[0]
	assert.Equal(t, "2024-02-01", tx.Date)
	assert.Equal(t, "-23.40", tx.Amount.String())
	assert.Equal(t, types.TransactionTypeDebit, tx.Type)
	for _, field := range strings.Fields(tx.Description) {
		assert.NotRegexp(t, `^\d+(\.\d+)?$`, field)
	}
	assert.Equal(t, "westpac", res.Parser)
}

func TestCBAClosingBalanceIsFiltered(t *testing.T) {
	p, reg := setupProcessor(t, bank.Options{})

	res, err := p.Process("cba", "30 Jun 2023 CLOSING BALANCE")
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	assert.Equal(t, 1, res.Summary.TotalTransactions)
	assert.Equal(t, 0, res.Summary.ProcessedTransactions)

	expected := `
# HELP statement_transactions_filtered_total Total number of balance rows removed before categorisation
# TYPE statement_transactions_filtered_total counter
statement_transactions_filtered_total{bank="cba"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "statement_transactions_filtered_total"))
}

func TestUnsupportedBank(t *testing.T) {
	p, _ := setupProcessor(t, bank.Options{})

	res, err := p.Process("unknown-bank", "January 5\nCOFFEE SHOP\n4.50")
	require.ErrorIs(t, err, bank.ErrUnsupportedBank)
	assert.Contains(t, err.Error(), "unknown-bank")
	assert.Nil(t, res)
}

func TestWestpacFallsBackToCardLayout(t *testing.T) {
	p, reg := setupProcessor(t, bank.Options{})

	res, err := p.Process("westpac", "12 Mar 24 COFFEE CLUB SYDNEY\n4.50 1,020.00")
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "westpac-card", res.Parser)

	tx := res.Transactions[0]
	assert.Equal(t, "2024-03-12", tx.Date)
	assert.Equal(t, "-4.50", tx.Amount.String())
	assert.Equal(t, "The Coffee Club", tx.MerchantName)

	expected := `
# HELP statement_parser_fallbacks_total Total number of times a parser produced nothing and the next parser was tried
# TYPE statement_parser_fallbacks_total counter
statement_parser_fallbacks_total{bank="westpac",parser="westpac"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "statement_parser_fallbacks_total"))
}

func TestWestpacFallsBackToListing(t *testing.T) {
	p, reg := setupProcessor(t, bank.Options{})

	res, err := p.Process("westpac", "12 Mar 24 COLES SUPERMARKET 45.20\n13 Mar 24 CRED VOUCHER KMART 19.00\n")
	require.NoError(t, err)
	assert.Equal(t, "westpac-listing", res.Parser)
	assert.Equal(t, 2, res.Summary.TotalTransactions)
	require.Len(t, res.Transactions, 2)

	assert.Equal(t, "2024-03-12", res.Transactions[0].Date)
	assert.Equal(t, "-45.20", res.Transactions[0].Amount.String())
	assert.Equal(t, "Coles", res.Transactions[0].MerchantName)
	assert.Equal(t, "19.00", res.Transactions[1].Amount.String())
	assert.Equal(t, types.TransactionTypeCredit, res.Transactions[1].Type)

	expected := `
# HELP statement_parser_fallbacks_total Total number of times a parser produced nothing and the next parser was tried
# TYPE statement_parser_fallbacks_total counter
statement_parser_fallbacks_total{bank="westpac",parser="westpac"} 1
statement_parser_fallbacks_total{bank="westpac",parser="westpac-card"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "statement_parser_fallbacks_total"))
}

func TestWestpacNoFallbackWhenPrimaryFinds(t *testing.T) {
	p, reg := setupProcessor(t, bank.Options{})

	_, err := p.Process("westpac", "01/02/24 EFTPOS PURCHASE STORE XYZ\n23.40\n1050.00")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "statement_parser_fallbacks_total")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEmptyStatement(t *testing.T) {
	p, _ := setupProcessor(t, bank.Options{})

	res, err := p.Process("westpac", "nothing useful here")
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	assert.Zero(t, res.Summary.TotalTransactions)
	assert.Empty(t, res.Summary.ByTaxCategory)
	assert.Equal(t, "0.00", res.Summary.TotalDeductibleAmount.String())
}

func TestDeductibleSummary(t *testing.T) {
	p, _ := setupProcessor(t, bank.Options{Year: 2024})

	text := `January 5
COFFEE SHOP
4.50
January 9
AUSTRALIAN RED CROSS
50.00
January 12
OFFICEWORKS BONDI
129.95
January 20
ZXQ HOLDINGS
10.00`

	res, err := p.Process("amex", text)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 4)

	assert.Equal(t, 4, res.Summary.TotalTransactions)
	assert.Equal(t, 2, res.Summary.DeductibleTransactions)
	assert.Equal(t, "179.95", res.Summary.TotalDeductibleAmount.String())
	assert.Equal(t, 1, res.Summary.UnmappedTransactions)
	assert.Len(t, res.Deductible(), 2)

	byTax := map[string]types.TaxCategoryTotal{}
	for _, c := range res.Summary.ByTaxCategory {
		byTax[c.TaxCategory] = c
	}
	assert.Equal(t, 1, byTax[category.TaxGifts].Count)
	assert.Equal(t, "129.95", byTax[category.TaxWorkRelated].Total.String())
	assert.Equal(t, 1, byTax[types.DefaultTaxCategory].Count)

	unmapped := res.Transactions[3]
	assert.Equal(t, types.UnmappedCode, unmapped.CategoryCode)
	assert.Equal(t, types.DefaultTaxCategory, unmapped.TaxCategory)
	assert.Equal(t, types.DefaultCategoryDescription, unmapped.CategoryDescription)
	assert.False(t, unmapped.IsDeductible)
}

func TestSummarizeRoundsHalfUp(t *testing.T) {
	txs := []types.ProcessedTransaction{
		{RawTransaction: types.RawTransaction{Amount: types.Amount{Decimal: decimal.RequireFromString("-1.005")}}, IsDeductible: true, TaxCategory: "A"},
		{RawTransaction: types.RawTransaction{Amount: types.Amount{Decimal: decimal.RequireFromString("2.000")}}, IsDeductible: true, TaxCategory: "A"},
		{RawTransaction: types.RawTransaction{Amount: types.Amount{Decimal: decimal.RequireFromString("99.99")}}, TaxCategory: "B", CategoryCode: types.UnmappedCode},
	}

	s := Summarize(5, txs)
	assert.Equal(t, 5, s.TotalTransactions)
	assert.Equal(t, 3, s.ProcessedTransactions)
	assert.Equal(t, 2, s.DeductibleTransactions)
	assert.Equal(t, "3.01", s.TotalDeductibleAmount.String())
	assert.Equal(t, 1, s.UnmappedTransactions)
	require.Len(t, s.ByTaxCategory, 2)
	assert.Equal(t, "A", s.ByTaxCategory[0].TaxCategory)
	assert.Equal(t, "B", s.ByTaxCategory[1].TaxCategory)
}

// fakeWestpacStatement builds a statement with random merchants, amounts and
// a sprinkling of balance rows.
func fakeWestpacStatement(r *rand.Rand, n int) string {
	var b strings.Builder
	b.WriteString("WESTPAC CHOICE\n")
	for i := 0; i < n; i++ {
		desc := gofakeit.Company()
		if r.IntN(5) == 0 {
			desc = "BALANCE BROUGHT FORWARD"
		}
		fmt.Fprintf(&b, "%02d/%02d/24 %s\n%.2f %.2f\n",
			r.IntN(28)+1, r.IntN(12)+1, desc, gofakeit.Price(1, 1000), gofakeit.Price(1000, 5000))
	}
	return b.String()
}

func TestPipelineProperties(t *testing.T) {
	p, _ := setupProcessor(t, bank.Options{})
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 25; i++ {
		text := fakeWestpacStatement(r, 1+r.IntN(15))

		first, err := p.Process("westpac", text)
		require.NoError(t, err)
		second, err := p.Process("westpac", text)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "output must be byte-identical")

		deductibleCount := 0
		sum := decimal.Zero
		for _, tx := range first.Transactions {
			assert.NotContains(t, strings.ToLower(tx.Description), "balance")
			assert.NotEmpty(t, tx.MerchantName)
			assert.GreaterOrEqual(t, tx.Confidence, 0.0)
			assert.LessOrEqual(t, tx.Confidence, 1.0)
			if tx.IsDeductible {
				deductibleCount++
				sum = sum.Add(tx.Amount.Decimal.Abs())
			}
			if tx.CategoryCode == types.UnmappedCode {
				assert.False(t, tx.IsDeductible)
				assert.Equal(t, types.DefaultTaxCategory, tx.TaxCategory)
			}
		}
		assert.Equal(t, deductibleCount, first.Summary.DeductibleTransactions)
		assert.Equal(t, len(first.Deductible()), first.Summary.DeductibleTransactions)
		assert.Equal(t, sum.StringFixed(2), first.Summary.TotalDeductibleAmount.String())
		assert.GreaterOrEqual(t, first.Summary.TotalTransactions, first.Summary.ProcessedTransactions)
	}
}

func TestEnrichDefaultsOnCategoryMiss(t *testing.T) {
	table, err := category.NewTable(nil)
	require.NoError(t, err)

	p, err := NewProcessor(log.New(io.Discard), NewRegistry(bank.Options{}), merchant.Default(), table, nil)
	require.NoError(t, err)

	got := p.Enrich(types.RawTransaction{Description: "WOOLWORTHS TOWN HALL", Amount: types.MustAmount("-12.00")})
	assert.Equal(t, "Woolworths", got.MerchantName)
	assert.Equal(t, "GROC", got.CategoryCode)
	assert.Equal(t, types.DefaultCategoryDescription, got.CategoryDescription)
	assert.Equal(t, types.DefaultTaxCategory, got.TaxCategory)
	assert.False(t, got.IsDeductible)
}

func TestNewProcessorRequiresEveryBank(t *testing.T) {
	_, err := NewProcessor(log.New(io.Discard), bank.NewRegistry(), merchant.Default(), category.Default(), nil)
	require.Error(t, err)
}

func TestFilterBalanceRows(t *testing.T) {
	raw := []types.RawTransaction{
		{Description: "OPENING BALANCE"},
		{Description: "Balance transfer fee"},
		{Description: "COLES 123"},
		{Description: "rebalance portfolio"},
	}
	got := FilterBalanceRows(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "COLES 123", got[0].Description)
	assert.Len(t, raw, 4)
}
