package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// VerificationStatus is the vetting state of a supplier. Only Verified suppliers are paid.
type VerificationStatus string

const (
	SupplierPending  VerificationStatus = "Pending"
	SupplierVerified VerificationStatus = "Verified"
	SupplierRejected VerificationStatus = "Rejected"
)

// Supplier is a supplier record attached to a shipment.
type Supplier struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	// PaymentAmount is in minor currency units.
	PaymentAmount int64  `json:"paymentAmount"`
	PaymentTerms  string `json:"paymentTerms,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

func (v VerificationStatus) Valid() bool {
	switch v {
	case SupplierPending, SupplierVerified, SupplierRejected:
		return true
	default:
		return false
	}
}

func (s Supplier) Verified() bool {
	return s.VerificationStatus == SupplierVerified
}

type releaseRecord struct {
	releasedAt time.Time
	initiated  int
	failed     int
}

// PaymentRelease emits payment intents once a shipment is confirmed. It never moves funds.
type PaymentRelease struct {
	thresholdMinor int64
	released       map[string]*releaseRecord
}

func NewPaymentRelease(thresholdMinor int64) *PaymentRelease {
	return &PaymentRelease{
		thresholdMinor: thresholdMinor,
		released:       make(map[string]*releaseRecord),
	}
}

func (c *PaymentRelease) ID() string   { return PaymentReleaseID }
func (c *PaymentRelease) Name() string { return "Payment Release" }

func (c *PaymentRelease) CanExecute(tx model.Transaction) bool {
	return tx.Type == model.TxDeliveryConfirmed
}

func (c *PaymentRelease) Execute(_ context.Context, execCtx contract.ExecutionContext) (contract.ExecutionResult, error) {
	tx := execCtx.Transaction
	if tx.Type != model.TxDeliveryConfirmed {
		return contract.Rejected(fmt.Sprintf("unsupported transaction type %s", tx.Type), c.State()), nil
	}
	p, err := decodePayload[DeliveryConfirmedPayload](tx)
	if err != nil {
		return contract.ExecutionResult{}, err
	}
	if _, ok := c.released[p.ShipmentID]; ok {
		return contract.Rejected(fmt.Sprintf("shipment %s: payment already released", p.ShipmentID), c.State()), nil
	}
	if !confirmedBy(execCtx.PriorResult, p.ShipmentID) {
		return contract.Rejected(fmt.Sprintf("shipment %s is not confirmed", p.ShipmentID), c.State()), nil
	}
	suppliers, err := suppliersFrom(execCtx.AdditionalData)
	if err != nil {
		return contract.ExecutionResult{}, fmt.Errorf("%w: shipment %s: %v", model.ErrContractFault, p.ShipmentID, err)
	}

	rec := &releaseRecord{releasedAt: tx.Timestamp.UTC()}
	events := make([]contract.Event, 0, len(suppliers))
	for _, s := range suppliers {
		if reason := c.rejectReason(s); reason != "" {
			rec.failed++
			events = append(events, event(EventPaymentFailed, map[string]any{
				"shipmentId":    p.ShipmentID,
				"supplierId":    s.ID,
				"paymentAmount": s.PaymentAmount,
				"reason":        reason,
			}))
			continue
		}
		rec.initiated++
		events = append(events, event(EventPaymentInitiated, map[string]any{
			"shipmentId":    p.ShipmentID,
			"supplierId":    s.ID,
			"paymentAmount": s.PaymentAmount,
			"paymentTerms":  s.PaymentTerms,
			"currency":      s.Currency,
			"txId":          tx.ID,
		}))
	}
	c.released[p.ShipmentID] = rec

	return contract.Succeeded(
		fmt.Sprintf("shipment %s: %d payments initiated, %d failed", p.ShipmentID, rec.initiated, rec.failed),
		c.State(),
		events...,
	), nil
}

func (c *PaymentRelease) rejectReason(s Supplier) string {
	switch {
	case !s.Verified():
		return "supplier not verified"
	case s.PaymentAmount < c.thresholdMinor:
		return fmt.Sprintf("amount %d below threshold %d", s.PaymentAmount, c.thresholdMinor)
	default:
		return ""
	}
}

func (c *PaymentRelease) State() map[string]any {
	state := make(map[string]any, len(c.released))
	for id, rec := range c.released {
		state[id] = map[string]any{
			"releasedAt": rec.releasedAt,
			"initiated":  rec.initiated,
			"failed":     rec.failed,
		}
	}
	return state
}

func (c *PaymentRelease) Checkpoint() any {
	saved := make(map[string]releaseRecord, len(c.released))
	for id, rec := range c.released {
		saved[id] = *rec
	}
	return saved
}

func (c *PaymentRelease) Restore(checkpoint any) {
	saved := checkpoint.(map[string]releaseRecord)
	c.released = make(map[string]*releaseRecord, len(saved))
	for id, rec := range saved {
		c.released[id] = &rec
	}
}

// suppliersFrom accepts []Supplier or any JSON-shaped equivalent.
func suppliersFrom(data map[string]any) ([]Supplier, error) {
	raw, ok := data[SuppliersKey]
	if !ok || raw == nil {
		return nil, nil
	}
	if suppliers, ok := raw.([]Supplier); ok {
		return suppliers, nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode supplier records: %w", err)
	}
	var suppliers []Supplier
	if err := json.Unmarshal(encoded, &suppliers); err != nil {
		return nil, fmt.Errorf("decode supplier records: %w", err)
	}
	return suppliers, nil
}
