package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TxType names the kind of a transaction.
type TxType string

var (
	TxTransfer        TxType = "transfer"
	TxPaymentRequest  TxType = "payment_request"
	TxReward          TxType = "reward"
	TxPaymentSent     TxType = "payment_sent"
	TxPaymentReceived TxType = "payment_received"
)

// TxStatus is derived from where a transaction currently lives.
type TxStatus string

var (
	// TxPending marks a transaction that only exists in the pending set.
	TxPending TxStatus = "pending"
	// TxConfirmed marks a transaction embedded in an accepted block.
	TxConfirmed TxStatus = "confirmed"
)

// ErrMissingTxType is returned when a transaction payload carries no type.
var ErrMissingTxType = errors.New("transaction type is required")

const (
	fieldID        = "id"
	fieldType      = "type"
	fieldTimestamp = "timestamp"
	fieldAmount    = "amount"
)

// Details is the type specific part of a Transaction.
type Details interface {
	Type() TxType
	// Involves reports whether the transaction references account.
	Involves(account AccountRef) bool
	// Deltas returns the balance change every referenced account receives
	// once the transaction is confirmed.
	Deltas(amount Amount) map[AccountRef]Amount
	masked() Details
	accounts() []AccountRef
}

// Transaction is a ledger entry. The variant is carried by Details.
type Transaction struct {
	ID        string
	Timestamp time.Time
	Amount    Amount
	Details   Details
}

// Type returns the variant type, or an empty type for a transaction without details.
func (t Transaction) Type() TxType {
	if t.Details == nil {
		return ""
	}
	return t.Details.Type()
}

// Involves reports whether the transaction references account.
func (t Transaction) Involves(account AccountRef) bool {
	if t.Details == nil || account.IsZero() {
		return false
	}
	return t.Details.Involves(account)
}

// Masked returns a copy whose account fields are masked.
func (t Transaction) Masked() Transaction {
	if t.Details != nil {
		t.Details = t.Details.masked()
	}
	return t
}

// ParseAccounts returns the masked transaction, rejecting any non-empty
// account field too short to mask. Generic fields are not accounts.
func (t Transaction) ParseAccounts() (Transaction, error) {
	if t.Details == nil {
		return t, nil
	}
	for _, a := range t.Details.accounts() {
		if a.IsZero() {
			continue
		}
		if _, err := ParseAccount(string(a)); err != nil {
			return Transaction{}, fmt.Errorf("%s transaction: %w", t.Type(), err)
		}
	}
	return t.Masked(), nil
}

// IsMasked reports whether every account field is already in masked form.
func (t Transaction) IsMasked() bool {
	switch d := t.Details.(type) {
	case nil:
		return true
	case Generic:
		for _, v := range d.Fields {
			switch f := v.(type) {
			case string:
				if maskField(f) != f {
					return false
				}
			case AccountRef:
				if maskField(f) != f {
					return false
				}
			}
		}
		return true
	default:
		return d.masked() == d
	}
}

// Transfer moves value from Sender to Recipient.
type Transfer struct {
	Sender    AccountRef `mapstructure:"sender"`
	Recipient AccountRef `mapstructure:"recipient"`
}

func (Transfer) Type() TxType { return TxTransfer }

func (d Transfer) Involves(account AccountRef) bool {
	return d.Sender == account || d.Recipient == account
}

func (d Transfer) Deltas(amount Amount) map[AccountRef]Amount {
	out := make(map[AccountRef]Amount, 2)
	if !d.Sender.IsZero() {
		out[d.Sender] -= amount
	}
	if !d.Recipient.IsZero() {
		out[d.Recipient] += amount
	}
	return out
}

func (d Transfer) accounts() []AccountRef { return []AccountRef{d.Sender, d.Recipient} }

func (d Transfer) masked() Details {
	return Transfer{Sender: MaskAccount(string(d.Sender)), Recipient: MaskAccount(string(d.Recipient))}
}

// PaymentRequest asks Payer to pay Requestor. It has no balance effect.
type PaymentRequest struct {
	Requestor AccountRef `mapstructure:"requestor"`
	Payer     AccountRef `mapstructure:"payer"`
}

func (PaymentRequest) Type() TxType { return TxPaymentRequest }

func (d PaymentRequest) Involves(account AccountRef) bool {
	return d.Requestor == account || d.Payer == account
}

func (PaymentRequest) Deltas(Amount) map[AccountRef]Amount { return nil }

func (d PaymentRequest) accounts() []AccountRef { return []AccountRef{d.Requestor, d.Payer} }

func (d PaymentRequest) masked() Details {
	return PaymentRequest{Requestor: MaskAccount(string(d.Requestor)), Payer: MaskAccount(string(d.Payer))}
}

// Reward credits Account.
type Reward struct {
	Account AccountRef `mapstructure:"account"`
}

func (Reward) Type() TxType { return TxReward }

func (d Reward) Involves(account AccountRef) bool { return d.Account == account }

func (d Reward) Deltas(amount Amount) map[AccountRef]Amount {
	return map[AccountRef]Amount{d.Account: amount}
}

func (d Reward) accounts() []AccountRef { return []AccountRef{d.Account} }

func (d Reward) masked() Details { return Reward{Account: MaskAccount(string(d.Account))} }

// PaymentSent debits Account.
type PaymentSent struct {
	Account AccountRef `mapstructure:"account"`
}

func (PaymentSent) Type() TxType { return TxPaymentSent }

func (d PaymentSent) Involves(account AccountRef) bool { return d.Account == account }

func (d PaymentSent) Deltas(amount Amount) map[AccountRef]Amount {
	return map[AccountRef]Amount{d.Account: -amount}
}

func (d PaymentSent) accounts() []AccountRef { return []AccountRef{d.Account} }

func (d PaymentSent) masked() Details { return PaymentSent{Account: MaskAccount(string(d.Account))} }

// PaymentReceived credits Account.
type PaymentReceived struct {
	Account AccountRef `mapstructure:"account"`
}

func (PaymentReceived) Type() TxType { return TxPaymentReceived }

func (d PaymentReceived) Involves(account AccountRef) bool { return d.Account == account }

func (d PaymentReceived) Deltas(amount Amount) map[AccountRef]Amount {
	return map[AccountRef]Amount{d.Account: amount}
}

func (d PaymentReceived) accounts() []AccountRef { return []AccountRef{d.Account} }

func (d PaymentReceived) masked() Details {
	return PaymentReceived{Account: MaskAccount(string(d.Account))}
}

// Generic carries a transaction of a type the ledger does not model. Any
// string field equal to an account reference counts as involvement; string
// fields longer than the visible part of a reference are stored masked.
type Generic struct {
	Kind   TxType
	Fields map[string]any
}

func (d Generic) Type() TxType { return d.Kind }

func (d Generic) Involves(account AccountRef) bool {
	for _, v := range d.Fields {
		switch s := v.(type) {
		case string:
			if AccountRef(s) == account {
				return true
			}
		case AccountRef:
			if s == account {
				return true
			}
		}
	}
	return false
}

func (Generic) Deltas(Amount) map[AccountRef]Amount { return nil }

// masked masks every string field long enough to hold an account identifier,
// since which fields name accounts is unknown for an unmodelled type.
func (Generic) accounts() []AccountRef { return nil }

func (d Generic) masked() Details {
	if d.Fields == nil {
		return d
	}
	fields := make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = maskField(v)
	}
	return Generic{Kind: d.Kind, Fields: fields}
}

func maskField(v any) any {
	switch s := v.(type) {
	case string:
		if maskable(s) {
			return string(MaskAccount(s))
		}
	case AccountRef:
		if maskable(string(s)) {
			return MaskAccount(string(s))
		}
	}
	return v
}

// MarshalJSON renders the flat wire form: common fields plus variant fields.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	switch d := t.Details.(type) {
	case nil:
		return nil, ErrMissingTxType
	case Generic:
		for k, v := range d.Fields {
			out[k] = v
		}
	default:
		if err := mapstructure.Decode(d, &out); err != nil {
			return nil, fmt.Errorf("encode %s details: %w", d.Type(), err)
		}
	}
	out[fieldID] = t.ID
	out[fieldType] = t.Type()
	out[fieldTimestamp] = t.Timestamp
	out[fieldAmount] = int64(t.Amount)
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat wire form. Numbers are kept as json.Number
// so generic fields survive a round trip byte for byte.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	tx, err := DecodeTransaction(raw)
	if err != nil {
		return err
	}
	*t = tx
	return nil
}

// DecodeTransaction builds a Transaction from a generic field map, dispatching
// on its "type" field.
func DecodeTransaction(raw map[string]any) (Transaction, error) {
	var common struct {
		ID        string    `mapstructure:"id"`
		Type      string    `mapstructure:"type"`
		Timestamp time.Time `mapstructure:"timestamp"`
		Amount    int64     `mapstructure:"amount"`
	}
	if err := decodeFields(raw, &common); err != nil {
		return Transaction{}, fmt.Errorf("decode transaction: %w", err)
	}
	if common.Type == "" {
		return Transaction{}, ErrMissingTxType
	}
	if common.Amount < 0 {
		return Transaction{}, fmt.Errorf("decode transaction: negative amount %d", common.Amount)
	}

	tx := Transaction{
		ID:        common.ID,
		Timestamp: common.Timestamp,
		Amount:    Amount(common.Amount),
	}

	var err error
	switch TxType(common.Type) {
	case TxTransfer:
		var d Transfer
		err = decodeFields(raw, &d)
		tx.Details = d
	case TxPaymentRequest:
		var d PaymentRequest
		err = decodeFields(raw, &d)
		tx.Details = d
	case TxReward:
		var d Reward
		err = decodeFields(raw, &d)
		tx.Details = d
	case TxPaymentSent:
		var d PaymentSent
		err = decodeFields(raw, &d)
		tx.Details = d
	case TxPaymentReceived:
		var d PaymentReceived
		err = decodeFields(raw, &d)
		tx.Details = d
	default:
		fields := make(map[string]any, len(raw))
		for k, v := range raw {
			switch k {
			case fieldID, fieldType, fieldTimestamp, fieldAmount:
				continue
			}
			fields[k] = v
		}
		tx.Details = Generic{Kind: TxType(common.Type), Fields: fields}
	}
	if err != nil {
		return Transaction{}, fmt.Errorf("decode %s transaction: %w", common.Type, err)
	}
	return tx, nil
}

func decodeFields(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
