package payment

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Processor charges the given amount (cents) for an order. Checkout runs the
// charge inside its transaction: an error here rolls everything back, so no
// order may exist whose payment failed.
type Processor interface {
	Charge(ctx context.Context, userID int64, amountCents int64, orderReference string) error
}

// DemoProcessor approves every charge. Stands in for a real gateway; the
// deployment decides which Processor is wired in.
type DemoProcessor struct{}

func NewDemoProcessor() *DemoProcessor {
	return &DemoProcessor{}
}

func (p *DemoProcessor) Charge(ctx context.Context, userID int64, amountCents int64, orderReference string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info().
		Int64("user_id", userID).
		Int64("amount_cents", amountCents).
		Str("order_reference", orderReference).
		Msg("demo payment approved")

	return nil
}
