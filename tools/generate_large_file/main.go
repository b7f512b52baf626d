// Large Journal File Generator
//
// This tool generates a large, deliberately unaligned hledger journal for
// performance testing and profiling of the parser and formatter.
//
// Usage:
//
//	go run main.go > large.journal
//	go run main.go 20000000 > large.journal  # Specify target size in bytes
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	accounts = []string{
		"assets:bank:checking",
		"assets:bank:savings",
		"assets:brokerage:cash",
		"assets:brokerage:aapl",
		"assets:brokerage:vti",
		"assets:cash",
		"liabilities:creditcard:visa",
		"liabilities:creditcard:amex",
		"income:salary",
		"income:bonus",
		"income:investments:dividends",
		"expenses:food:groceries",
		"expenses:food:restaurant",
		"expenses:housing:rent",
		"expenses:housing:utilities",
		"expenses:transport:gas",
		"expenses:shopping:electronics",
		"expenses:entertainment:movies",
		"expenses:healthcare:dental",
		"expenses:taxes:federal",
		"expenses:commissions",
		"equity:opening balances",
	}

	payees = []string{
		"Whole Foods", "Safeway", "Trader Joe's", "Costco",
		"Shell Gas", "Chevron", "BART", "Uber",
		"Landlord", "PG&E", "Comcast", "AT&T",
		"Amazon", "Target", "Best Buy", "Apple Store",
		"Netflix", "Spotify", "AMC Theaters",
		"Employer Inc", "Fidelity", "Vanguard",
	}

	notes = []string{
		"groceries", "fuel", "rent", "salary", "stock purchase",
		"utility bill", "online purchase", "dinner", "coffee",
		"subscription", "dentist", "dividend", "tax payment",
	}

	tags = []string{
		"personal", "business", "vacation", "deductible",
		"reimbursable", "investment", "savings",
	}

	commodities = []string{"$", "EUR", "GBP", "CAD"}
	stocks      = []string{"AAPL", "MSFT", "GOOGL", "TSLA", "VTI"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	writeHeader(out)

	currentDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	bytesWritten := 0
	transactionCount := 0

	for bytesWritten < targetSize {
		var entry string

		switch rand.Intn(10) {
		case 0, 1, 2: // 30% - Simple transaction
			entry = generateSimpleTransaction(currentDate)
			transactionCount++
		case 3, 4: // 20% - Transaction with comments and tags
			entry = generateCommentedTransaction(currentDate)
			transactionCount++
		case 5: // 10% - Investment transaction with cost
			entry = generateInvestmentTransaction(currentDate)
			transactionCount++
		case 6: // 10% - Multi-currency transaction
			entry = generateMultiCurrencyTransaction(currentDate)
			transactionCount++
		case 7: // 10% - Balance assertion
			entry = generateBalanceAssertion(currentDate)
			transactionCount++
		case 8: // 10% - Price directives
			entry = generatePriceDirectives(currentDate)
		case 9: // 10% - Periodic transaction
			entry = generatePeriodicTransaction()
			transactionCount++
		}

		_, _ = out.WriteString(entry)
		bytesWritten += len(entry)

		currentDate = currentDate.AddDate(0, 0, rand.Intn(5)+1)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d transactions\n", bytesWritten, transactionCount)
}

func writeHeader(out *bufio.Writer) {
	fmt.Fprintln(out, "; Large journal for performance testing")
	fmt.Fprintln(out, "; Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "comment")
	fmt.Fprintln(out, "Every transaction below is generated at random.")
	fmt.Fprintln(out, "end comment")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "decimal-mark .")
	for _, c := range commodities {
		fmt.Fprintf(out, "commodity %s1,000.00  ; %s\n", prefixed(c), strings.ToLower(c))
	}
	fmt.Fprintln(out)

	for _, account := range accounts {
		fmt.Fprintf(out, "account %s\n", account)
		if rand.Intn(4) == 0 {
			fmt.Fprintln(out, "  ; type: A")
		}
	}
	fmt.Fprintln(out)
}

func prefixed(commodity string) string {
	if commodity == "$" {
		return commodity
	}
	return commodity + " "
}

// spaces returns a random gap of at least two spaces so the formatter has
// work to do.
func spaces() string {
	return strings.Repeat(" ", rand.Intn(6)+2)
}

func account() string {
	return accounts[rand.Intn(len(accounts))]
}

func generateSimpleTransaction(date time.Time) string {
	amount := randAmount(10, 500)

	return fmt.Sprintf("%s %s | %s\n    %s%s$%s\n    %s\n\n",
		date.Format("2006-01-02"), payees[rand.Intn(len(payees))], notes[rand.Intn(len(notes))],
		account(), spaces(), amount, account())
}

func generateCommentedTransaction(date time.Time) string {
	amount := randAmount(50, 1000)

	return fmt.Sprintf("%s * %s  ; %s:\n  ; invoice: INV-%d\n  %s%s%s EUR  ; note: vendor\n  %s%s%s EUR\n\n",
		date.Format("2006-01-02"), payees[rand.Intn(len(payees))], tags[rand.Intn(len(tags))],
		rand.Intn(10000),
		account(), spaces(), amount,
		account(), spaces(), amount.Neg())
}

func generateInvestmentTransaction(date time.Time) string {
	stock := stocks[rand.Intn(len(stocks))]
	shares := decimal.NewFromInt(int64(rand.Intn(50) + 1))
	price := randAmount(50, 500)
	commission := decimal.RequireFromString("9.99")
	total := shares.Mul(price).Add(commission)

	return fmt.Sprintf("%s buy %s\n  assets:brokerage:cash%s$%s\n  assets:brokerage:%s%s%s %s @ $%s\n  expenses:commissions%s$%s\n\n",
		date.Format("2006-01-02"), stock,
		spaces(), total.Neg().StringFixed(2),
		strings.ToLower(stock), spaces(), shares, stock, price,
		spaces(), commission.StringFixed(2))
}

func generateMultiCurrencyTransaction(date time.Time) string {
	amount := randAmount(100, 2000)
	currency := commodities[rand.Intn(len(commodities)-1)+1]
	rate := randAmount(1, 2)

	return fmt.Sprintf("%s currency exchange\n    assets:bank:checking%s-%s %s @@ $%s\n    assets:bank:savings\n\n",
		date.Format("2006-01-02"),
		spaces(), amount, currency, amount.Mul(rate).StringFixed(2))
}

func generateBalanceAssertion(date time.Time) string {
	balance := randAmount(1000, 50000)

	return fmt.Sprintf("%s balance check\n  assets:bank:checking%s$0 = $%s\n\n",
		date.Format("2006-01-02"), spaces(), balance)
}

func generatePriceDirectives(date time.Time) string {
	var b strings.Builder
	for _, stock := range stocks {
		fmt.Fprintf(&b, "P %s %s $%s\n", date.Format("2006-01-02"), stock, randAmount(50, 500))
	}
	b.WriteString("\n")
	return b.String()
}

func generatePeriodicTransaction() string {
	return fmt.Sprintf("~ monthly  ; budget\n  expenses:housing:rent%s$%s\n  assets:bank:checking\n\n",
		spaces(), randAmount(1000, 2500))
}

func randAmount(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(lo + rand.Float64()*(hi-lo)).Round(2)
}
