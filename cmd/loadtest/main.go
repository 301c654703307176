package main

import (
	"context"
	"errors"
	"fmt"
	"ledger-lab/client"
	"ledger-lab/domain"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	LedgerAddr string        `envconfig:"LEDGER_ADDR" default:"http://localhost:8080"`
	Timeout    time.Duration `envconfig:"LOADTEST_TIMEOUT" default:"10s"`
	Accounts   int           `envconfig:"LOADTEST_ACCOUNTS" default:"100"`
	Colours    bool          `envconfig:"LOADTEST_COLOURS" default:"true"`
	// Credentials are only needed when the ledger runs with AUTH_SECRET
	Operator string `envconfig:"LEDGER_OPERATOR"`
	Password string `envconfig:"LEDGER_PASSWORD"`
}

// Result is one line of the final report.
type Result struct {
	Scenario string
	Sent     int
	Accepted int64
	Refused  int64
	Expected decimal.Decimal
	Actual   decimal.Decimal
	Elapsed  time.Duration
}

func (r Result) Passed() bool { return r.Expected.Equal(r.Actual) }

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load test terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if config.Accounts < 2 {
		return exitConfig, fmt.Errorf("LOADTEST_ACCOUNTS must be at least 2, got %d", config.Accounts)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger := client.NewLedgerClient(config.LedgerAddr, config.Timeout)
	if err := ledger.Health(ctx); err != nil {
		return exitRuntime, fmt.Errorf("ledger unreachable at %s: %w", config.LedgerAddr, err)
	}
	if config.Operator != "" {
		if err := ledger.Login(ctx, config.Operator, config.Password); err != nil {
			return exitConfig, fmt.Errorf("login failed: %w", err)
		}
	}

	runID := uuid.NewString()[:8]
	scenarios := []func(context.Context, *client.LedgerClient, string, int) (Result, error){
		fanIn,
		fanOut,
		crossTransfers,
	}

	var results []Result
	for _, scenario := range scenarios {
		result, err := scenario(ctx, ledger, runID, config.Accounts)
		if err != nil {
			return exitRuntime, err
		}
		printHeader(config, result)
		results = append(results, result)
	}

	render(results)
	for _, result := range results {
		if !result.Passed() {
			return exitRuntime, fmt.Errorf("scenario %q broke conservation", result.Scenario)
		}
	}
	return exitOK, nil
}

// fanIn makes every sender pay the receiver twice at once; only one of each pair can succeed.
func fanIn(ctx context.Context, ledger *client.LedgerClient, runID string, n int) (Result, error) {
	receiver := accountID(runID, "fanin", 0)
	if err := ledger.CreateAccount(ctx, receiver, domain.MustParseAmount("100.00")); err != nil {
		return Result{}, err
	}
	var senders []domain.AccountID
	for i := 1; i < n; i++ {
		id := accountID(runID, "fanin", i)
		if err := ledger.CreateAccount(ctx, id, domain.MustParseAmount("10.00")); err != nil {
			return Result{}, err
		}
		senders = append(senders, id)
	}

	var transfers []transfer
	for _, sender := range senders {
		transfers = append(transfers,
			transfer{sender, receiver, domain.MustParseAmount("10.00")},
			transfer{sender, receiver, domain.MustParseAmount("10.00")})
	}
	result, err := fire(ctx, ledger, "fan-in", transfers)
	if err != nil {
		return Result{}, err
	}

	account, err := ledger.GetAccount(ctx, receiver)
	if err != nil {
		return Result{}, err
	}
	result.Expected = domain.MustParseAmount("100.00").Add(domain.MustParseAmount("10.00").Mul(decimal.NewFromInt(int64(len(senders)))))
	result.Actual = account.Balance
	return result, nil
}

// fanOut makes one source pay every receiver at once.
func fanOut(ctx context.Context, ledger *client.LedgerClient, runID string, n int) (Result, error) {
	source := accountID(runID, "fanout-source", 0)
	initial := domain.MustParseAmount("90.00").Mul(decimal.NewFromInt(int64(n)))
	if err := ledger.CreateAccount(ctx, source, initial); err != nil {
		return Result{}, err
	}
	var transfers []transfer
	for i := 0; i < n; i++ {
		id := accountID(runID, "fanout", i)
		if err := ledger.CreateAccount(ctx, id, domain.MustParseAmount("10.00")); err != nil {
			return Result{}, err
		}
		transfers = append(transfers, transfer{source, id, domain.MustParseAmount("10.00")})
	}

	result, err := fire(ctx, ledger, "fan-out", transfers)
	if err != nil {
		return Result{}, err
	}

	account, err := ledger.GetAccount(ctx, source)
	if err != nil {
		return Result{}, err
	}
	result.Expected = initial.Sub(domain.MustParseAmount("10.00").Mul(decimal.NewFromInt(int64(n))))
	result.Actual = account.Balance
	return result, nil
}

// crossTransfers moves money around a ring in both directions and checks the ring total.
func crossTransfers(ctx context.Context, ledger *client.LedgerClient, runID string, n int) (Result, error) {
	var ring []domain.AccountID
	for i := 0; i < n; i++ {
		id := accountID(runID, "ring", i)
		if err := ledger.CreateAccount(ctx, id, domain.MustParseAmount("5.00")); err != nil {
			return Result{}, err
		}
		ring = append(ring, id)
	}

	var transfers []transfer
	for i := range ring {
		next := ring[(i+1)%len(ring)]
		transfers = append(transfers,
			transfer{ring[i], next, domain.MustParseAmount("3.33")},
			transfer{next, ring[i], domain.MustParseAmount("4.44")})
	}
	result, err := fire(ctx, ledger, "cross", transfers)
	if err != nil {
		return Result{}, err
	}

	total := decimal.Zero
	for _, id := range ring {
		account, err := ledger.GetAccount(ctx, id)
		if err != nil {
			return Result{}, err
		}
		if account.Balance.IsNegative() {
			return Result{}, fmt.Errorf("account %s went negative: %s", id, account.Balance)
		}
		total = total.Add(account.Balance)
	}
	result.Expected = domain.MustParseAmount("5.00").Mul(decimal.NewFromInt(int64(n)))
	result.Actual = total
	return result, nil
}

type transfer struct {
	source, destination domain.AccountID
	amount              decimal.Decimal
}

// fire sends every transfer at once. Refusals are counted, transport errors abort.
func fire(ctx context.Context, ledger *client.LedgerClient, name string, transfers []transfer) (Result, error) {
	var wg sync.WaitGroup
	var accepted, refused atomic.Int64
	errs := make(chan error, len(transfers))
	start := time.Now()

	for _, t := range transfers {
		wg.Add(1)
		go func(t transfer) {
			defer wg.Done()
			err := ledger.Transfer(ctx, t.source, t.destination, t.amount)
			var statusErr *client.StatusError
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.As(err, &statusErr):
				refused.Add(1)
			default:
				errs <- err
			}
		}(t)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}

	return Result{
		Scenario: name,
		Sent:     len(transfers),
		Accepted: accepted.Load(),
		Refused:  refused.Load(),
		Elapsed:  time.Since(start),
	}, nil
}

func accountID(runID, scenario string, i int) domain.AccountID {
	return domain.AccountID(fmt.Sprintf("lt-%s-%s-%d", runID, scenario, i))
}

func printHeader(config Config, result Result) {
	header := fmt.Sprintf("  ====== %s: %d transfers in %v ======", result.Scenario, result.Sent, result.Elapsed)
	if config.Colours {
		style := color.New(color.BgBlack, color.FgGreen)
		if !result.Passed() {
			style = color.New(color.BgBlack, color.FgRed)
		}
		header = style.Render(header)
	}
	fmt.Println(header)
}

func render(results []Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Scenario", "Sent", "Accepted", "Refused", "Expected", "Actual", "Elapsed", "Status"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, r := range results {
		status := "PASS"
		if !r.Passed() {
			status = "FAIL"
		}
		table.Append([]string{
			r.Scenario,
			strconv.Itoa(r.Sent),
			strconv.FormatInt(r.Accepted, 10),
			strconv.FormatInt(r.Refused, 10),
			r.Expected.StringFixed(2),
			r.Actual.StringFixed(2),
			r.Elapsed.Round(time.Millisecond).String(),
			status,
		})
	}
	table.Render()
}
