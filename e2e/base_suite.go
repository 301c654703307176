package e2e

import (
	"context"
	"fmt"
	"ledger-lab/client"
	"ledger-lab/domain"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseLedgerSuite struct {
	suite.Suite
	Config Config
	Ledger *client.LedgerClient
}

// SetupSuite loads the environment and skips everything when no ledger is running.
func (s *BaseLedgerSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.LedgerAddr == "" {
		s.T().Skip("LEDGER_ADDR not set, skipping end-to-end suite")
	}
	s.Ledger = client.NewLedgerClient(s.Config.LedgerAddr, s.Config.Timeout)
	s.Require().NoError(s.Ledger.Health(context.Background()), "ledger unreachable at "+s.Config.LedgerAddr)
	if s.Config.Operator != "" {
		s.Require().NoError(s.Ledger.Login(context.Background(), s.Config.Operator, s.Config.Password))
	}
}

// Step runs fn under a colorized header.
func (s *BaseLedgerSuite) Step(name string, fn func(ctx context.Context)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Timeout)
	defer cancel()
	fn(ctx)
}

// NewAccount creates an account with a unique id so runs never collide.
func (s *BaseLedgerSuite) NewAccount(ctx context.Context, balance string) domain.AccountID {
	id := domain.AccountID("e2e-" + uuid.NewString())
	s.Require().NoError(s.Ledger.CreateAccount(ctx, id, domain.MustParseAmount(balance)))
	return id
}

func (s *BaseLedgerSuite) RequireBalance(ctx context.Context, id domain.AccountID, expected string) {
	account, err := s.Ledger.GetAccount(ctx, id)
	s.Require().NoError(err)
	s.Require().True(account.Balance.Equal(domain.MustParseAmount(expected)),
		"account %s: expected %s, got %s", id, expected, account.Balance)
}
