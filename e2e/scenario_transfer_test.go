package e2e

import (
	"context"
	"errors"
	"fmt"
	"ledger-lab/client"
	"ledger-lab/domain"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testTransferSuite struct {
	BaseLedgerSuite
}

func TestTransferSuite(t *testing.T) {
	suite.Run(t, &testTransferSuite{})
}

func (s *testTransferSuite) TestTransferLifecycle() {
	var source, destination domain.AccountID

	s.Run("Step 1: Create accounts", func() {
		s.Step("Creating source and destination", func(ctx context.Context) {
			source = s.NewAccount(ctx, "100.00")
			destination = s.NewAccount(ctx, "0.01")
		})
	})

	s.Run("Step 2: Transfer and read balances", func() {
		s.Step("Transferring 50.01", func(ctx context.Context) {
			s.Require().NoError(s.Ledger.Transfer(ctx, source, destination, domain.MustParseAmount("50.01")))
			s.RequireBalance(ctx, source, "49.99")
			s.RequireBalance(ctx, destination, "50.02")
		})
	})

	s.Run("Step 3: Refused transfer leaves balances untouched", func() {
		s.Step("Transferring more than the balance", func(ctx context.Context) {
			err := s.Ledger.Transfer(ctx, source, destination, domain.MustParseAmount("500"))
			var statusErr *client.StatusError
			s.Require().True(errors.As(err, &statusErr))
			s.Require().Equal(http.StatusForbidden, statusErr.Code)
			s.RequireBalance(ctx, source, "49.99")
			s.RequireBalance(ctx, destination, "50.02")
		})
	})

	s.Run("Step 4: Journal lists the transfer", func() {
		s.Step("Reading the destination journal", func(ctx context.Context) {
			// Notifications are delivered asynchronously
			s.Require().Eventually(func() bool {
				res, err := s.Ledger.GetTransfers(ctx, destination, nil)
				return err == nil && len(res.Transfers) == 1
			}, 2*time.Second, 50*time.Millisecond)
		})
	})
}

func (s *testTransferSuite) TestConcurrentFanIn() {
	s.Step("99 senders pay one receiver twice at once", func(ctx context.Context) {
		receiver := s.NewAccount(ctx, "100.00")
		var senders []domain.AccountID
		for i := 0; i < 99; i++ {
			senders = append(senders, s.NewAccount(ctx, "10.00"))
		}

		var wg sync.WaitGroup
		for _, sender := range senders {
			for range 2 {
				wg.Add(1)
				go func(sender domain.AccountID) {
					defer wg.Done()
					_ = s.Ledger.Transfer(ctx, sender, receiver, domain.MustParseAmount("10.00"))
				}(sender)
			}
		}
		wg.Wait()

		s.RequireBalance(ctx, receiver, "1090.00")
		for _, sender := range senders {
			s.RequireBalance(ctx, sender, "0")
		}
	})
}

func (s *testTransferSuite) TestDuplicateAccount() {
	s.Step("Creating the same account twice", func(ctx context.Context) {
		id := s.NewAccount(ctx, "1")
		err := s.Ledger.CreateAccount(ctx, id, domain.MustParseAmount("2"))
		var statusErr *client.StatusError
		s.Require().True(errors.As(err, &statusErr), fmt.Sprintf("unexpected error %v", err))
		s.Require().Equal(http.StatusBadRequest, statusErr.Code)
		s.RequireBalance(ctx, id, "1")
	})
}
