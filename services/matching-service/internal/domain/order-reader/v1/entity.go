package orderreaderv1

import (
	"encoding/json"
	"fmt"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
)

// CommandEnvelope is the wire shape of a command: the type tag plus exactly one
// payload named after it.
type CommandEnvelope struct {
	Type         orderbookv1.ActionType    `json:"type"`
	CreateOrder  *orderbookv1.CreateOrder  `json:"create_order,omitempty"`
	UpdateOrder  *orderbookv1.UpdateOrder  `json:"update_order,omitempty"`
	CancelOrder  *orderbookv1.CancelOrder  `json:"cancel_order,omitempty"`
	UpdateStatus *orderbookv1.UpdateStatus `json:"update_status,omitempty"`
}

// NewCommandEnvelope wraps action for the wire.
func NewCommandEnvelope(action orderbookv1.Action) CommandEnvelope {
	envelope := CommandEnvelope{Type: action.Type()}
	switch a := action.(type) {
	case orderbookv1.CreateOrder:
		envelope.CreateOrder = &a
	case orderbookv1.UpdateOrder:
		envelope.UpdateOrder = &a
	case orderbookv1.CancelOrder:
		envelope.CancelOrder = &a
	case orderbookv1.UpdateStatus:
		envelope.UpdateStatus = &a
	}
	return envelope
}

// Action returns the payload matching the type tag.
func (e CommandEnvelope) Action() (orderbookv1.Action, error) {
	var action orderbookv1.Action
	switch e.Type {
	case orderbookv1.ActionTypeCreateOrder:
		if e.CreateOrder != nil {
			action = *e.CreateOrder
		}
	case orderbookv1.ActionTypeUpdateOrder:
		if e.UpdateOrder != nil {
			action = *e.UpdateOrder
		}
	case orderbookv1.ActionTypeCancelOrder:
		if e.CancelOrder != nil {
			action = *e.CancelOrder
		}
	case orderbookv1.ActionTypeUpdateStatus:
		if e.UpdateStatus != nil {
			action = *e.UpdateStatus
		}
	default:
		return nil, errors.NewErrorDetails(fmt.Sprintf("unknown command type %q", e.Type), errors.UnknownActionError, "type")
	}

	if action == nil {
		return nil, errors.NewErrorDetails(fmt.Sprintf("missing %s payload", e.Type), errors.CommandDecodeError, string(e.Type))
	}
	if create, ok := action.(orderbookv1.CreateOrder); ok {
		if !create.Side.IsValid() {
			return nil, errors.NewErrorDetails(fmt.Sprintf("unknown side %q", create.Side), errors.CommandDecodeError, "side")
		}
		if !create.Validity.IsValid() {
			return nil, errors.NewErrorDetails(fmt.Sprintf("unknown validity %q", create.Validity), errors.CommandDecodeError, "validity")
		}
	}
	return action, nil
}

// EncodeCommand serialises action as a CommandEnvelope.
func EncodeCommand(action orderbookv1.Action) ([]byte, error) {
	buf, err := json.Marshal(NewCommandEnvelope(action))
	if err != nil {
		return nil, errors.NewTracer("command_encode_error").Wrap(err)
	}
	return buf, nil
}

// DecodeCommand parses a CommandEnvelope and returns its action.
func DecodeCommand(data []byte) (orderbookv1.Action, error) {
	var envelope CommandEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, errors.NewErrorDetails("malformed command envelope", errors.CommandDecodeError, "body").WithCause(err)
	}
	return envelope.Action()
}
