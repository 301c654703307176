package domain

import (
	"fmt"
	"ledger-lab/errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// TransferCommand moves Amount from Source to Destination.
// Source and Destination may be equal: a self-transfer is a legal no-op.
type TransferCommand struct {
	Source      AccountID `validate:"required"`
	Destination AccountID `validate:"required"`
	Amount      decimal.Decimal
}

func NewTransferCommand(source, destination AccountID, amount decimal.Decimal) TransferCommand {
	return TransferCommand{Source: source, Destination: destination, Amount: amount}
}

// Validate checks the shape of the command and the positivity of the amount.
func (c TransferCommand) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if !IsPositive(c.Amount) {
		return fmt.Errorf("%w: got %s", errors.ErrInvalidAmount, c.Amount)
	}
	return nil
}

func (c TransferCommand) IsSelfTransfer() bool {
	return c.Source == c.Destination
}

// TransferDescription is the human-readable text sent along with a transfer notification.
func TransferDescription(c TransferCommand) string {
	return fmt.Sprintf("An amount of %s was transferred from account %s to account %s",
		c.Amount.String(), c.Source, c.Destination)
}
