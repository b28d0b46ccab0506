package westpac

import (
	"regexp"
	"testing"

	"github.com/lox/bank-statement-categorizer/internal/bank"
	"github.com/lox/bank-statement-categorizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digitToken = regexp.MustCompile(`(^|\s)\d+(\.\d+)?(\s|$)`)

func TestParseSingleTransaction(t *testing.T) {
	got := New(bank.Options{}).Parse("01/02/24 EFTPOS PURCHASE STORE XYZ\n23.40\n1050.00")
	require.Len(t, got, 1)

	tx := got[0]
	assert.Equal(t, "2024-02-01", tx.Date)
	assert.Equal(t, "-23.40", tx.Amount.String())
	assert.Equal(t, types.TransactionTypeDebit, tx.Type)
	assert.Equal(t, "EFTPOS PURCHASE STORE XYZ", tx.Description)
	assert.False(t, digitToken.MatchString(tx.Description))
	require.NotNil(t, tx.Balance)
	assert.Equal(t, "1050.00", tx.Balance.String())
}

func TestParse(t *testing.T) {
	text := `WESTPAC CHOICE STATEMENT
Opening Balance 1,000.00
03/04/2024 DEPOSIT ONLINE 2264910 SALARY
ACME PTY LTD 2,500.00 3,500.00
04/04/24 EFTPOS PURCHASE
BUNNINGS 4021
ALEXANDRIA 87.15 3,412.85
05/04/24 CARD FEE 2.50
06/04/24 REFUND ONLINE STORE 19.95 3,432.80
31/04/24 NOT A DATE 1.00 2.00
07/04/24 TRANSFER TO SAVER 100.00 3,332.80`

	got := New(bank.Options{}).Parse(text)
	require.Len(t, got, 4)

	assert.Equal(t, "2024-04-03", got[0].Date)
	assert.Equal(t, "DEPOSIT ONLINE SALARY ACME PTY LTD", got[0].Description)
	assert.Equal(t, "2500.00", got[0].Amount.String())
	assert.Equal(t, types.TransactionTypeCredit, got[0].Type)

	assert.Equal(t, "2024-04-04", got[1].Date)
	assert.Equal(t, "EFTPOS PURCHASE BUNNINGS ALEXANDRIA", got[1].Description)
	assert.Equal(t, "-87.15", got[1].Amount.String())
	assert.Equal(t, "3412.85", got[1].Balance.String())

	assert.Equal(t, "REFUND ONLINE STORE", got[2].Description)
	assert.Equal(t, "19.95", got[2].Amount.String())
	assert.Equal(t, types.TransactionTypeCredit, got[2].Type)

	assert.Equal(t, "2024-04-07", got[3].Date)
	assert.Equal(t, "TRANSFER TO SAVER", got[3].Description)
	assert.Equal(t, "100.00", got[3].Amount.String())

	for _, tx := range got {
		assert.False(t, digitToken.MatchString(tx.Description), tx.Description)
	}
}

func TestParseIgnoresCardLayout(t *testing.T) {
	assert.Empty(t, New(bank.Options{}).Parse("12 Mar 24 COFFEE CLUB SYDNEY\n4.50 1,020.00"))
}

func TestCardParse(t *testing.T) {
	text := `WESTPAC ALTITUDE BLACK
12 Mar 24 COFFEE CLUB SYDNEY
4.50 1,020.00
13/03/24 ONLINE REFUND
AMAZON AU
25.00 995.00
14 Mar QANTAS 1,200.00 0.00 2,195.00
15 Mar 24 DANGLING CANDIDATE
16 Mar 24 PAYMENT RECEIVED
0.00 500.00 1,695.00`

	got := NewCard(bank.Options{Year: 2024}).Parse(text)
	require.Len(t, got, 4)

	assert.Equal(t, "2024-03-12", got[0].Date)
	assert.Equal(t, "COFFEE CLUB SYDNEY", got[0].Description)
	assert.Equal(t, "-4.50", got[0].Amount.String())
	assert.Equal(t, types.TransactionTypeDebit, got[0].Type)
	assert.Equal(t, "1020.00", got[0].Balance.String())

	assert.Equal(t, "2024-03-13", got[1].Date)
	assert.Equal(t, "ONLINE REFUND AMAZON AU", got[1].Description)
	assert.Equal(t, "25.00", got[1].Amount.String())
	assert.Equal(t, types.TransactionTypeCredit, got[1].Type)

	assert.Equal(t, "2024-03-14", got[2].Date)
	assert.Equal(t, "QANTAS", got[2].Description)
	assert.Equal(t, "-1200.00", got[2].Amount.String())
	assert.Equal(t, "2195.00", got[2].Balance.String())

	assert.Equal(t, "2024-03-16", got[3].Date)
	assert.Equal(t, "PAYMENT RECEIVED", got[3].Description)
	assert.Equal(t, "500.00", got[3].Amount.String())
	assert.Equal(t, types.TransactionTypeCredit, got[3].Type)
}

func TestCardDropsAllZeroRow(t *testing.T) {
	got := NewCard(bank.Options{Year: 2024}).Parse("17 Mar 24 ADJUSTMENT\n0.00 0.00 1,695.00")
	assert.Empty(t, got)
}

func TestListingParse(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		line  string
		date  string
		desc  string
		amt   string
		typ   types.TransactionType
		found bool
	}{
		{name: "debit row", line: "12 Mar 24 COLES SUPERMARKET 45.20", date: "2024-03-12", desc: "COLES SUPERMARKET", amt: "-45.20", typ: types.TransactionTypeDebit, found: true},
		{name: "credit voucher", line: "13 Mar 24 CRED VOUCHER KMART 19.00", date: "2024-03-13", desc: "CRED VOUCHER KMART", amt: "19.00", typ: types.TransactionTypeCredit, found: true},
		{name: "last amount wins", line: "14 Mar 24 QANTAS 1,200.00 350.10", date: "2024-03-14", desc: "QANTAS 1,200.00", amt: "-350.10", typ: types.TransactionTypeDebit, found: true},
		{name: "no year uses default", year: 2023, line: "2 Apr OPAL TOPUP 20.00", date: "2023-04-02", desc: "OPAL TOPUP", amt: "-20.00", typ: types.TransactionTypeDebit, found: true},
		{name: "numeric description", line: "3 Apr 24 4412 9.95", date: "2024-04-03", desc: "-", amt: "-9.95", typ: types.TransactionTypeDebit, found: true},
		{name: "no amount", line: "12 Mar 24 COLES SUPERMARKET"},
		{name: "bad date", line: "31 Feb 24 GHOST 1.00"},
		{name: "not a month", line: "12 Abc 24 SHOP 1.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewListing(bank.Options{Year: tc.year}).Parse(tc.line)
			if !tc.found {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tc.date, got[0].Date)
			assert.Equal(t, tc.desc, got[0].Description)
			assert.Equal(t, tc.amt, got[0].Amount.String())
			assert.Equal(t, tc.typ, got[0].Type)
			assert.NotEmpty(t, got[0].ID)
		})
	}
}

func TestCardIgnoresListingRows(t *testing.T) {
	text := "12 Mar 24 COLES SUPERMARKET 45.20\n13 Mar 24 CRED VOUCHER KMART 19.00"
	assert.Empty(t, New(bank.Options{}).Parse(text))
	assert.Empty(t, NewCard(bank.Options{}).Parse(text))
	assert.Len(t, NewListing(bank.Options{}).Parse(text), 2)
}
