package broadcast

import (
	"encoding/json"

	"go.uber.org/multierr"

	"github.com/x-xyz/auctionapi/base/ctx"
)

// Frame is the wire form of every event sent to observers
type Frame struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Publisher delivers an event to its observers
type Publisher interface {
	Publish(c ctx.Ctx, event string, payload interface{}) error
}

func encode(event string, payload interface{}) ([]byte, error) {
	return json.Marshal(Frame{Event: event, Payload: payload})
}

type fanout []Publisher

// Fanout publishes every event to each of pubs. All publishers are tried even
// when one fails; the failures are combined.
func Fanout(pubs ...Publisher) Publisher {
	return fanout(pubs)
}

func (f fanout) Publish(c ctx.Ctx, event string, payload interface{}) error {
	var errs error
	for _, p := range f {
		errs = multierr.Append(errs, p.Publish(c, event, payload))
	}
	return errs
}
