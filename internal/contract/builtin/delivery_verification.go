package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

type deliveryRecord struct {
	recipientPublicKey string
	recipientUserID    string
	expected           *time.Time
	verifiedAt         *time.Time
	delayed            bool
}

// DeliveryVerification accepts a delivery confirmation only when it is signed by the
// recipient's key. Identity is the public key; user ids are never compared.
type DeliveryVerification struct {
	gracePeriod time.Duration
	deliveries  map[string]*deliveryRecord
}

func NewDeliveryVerification(gracePeriod time.Duration) *DeliveryVerification {
	return &DeliveryVerification{
		gracePeriod: gracePeriod,
		deliveries:  make(map[string]*deliveryRecord),
	}
}

func (c *DeliveryVerification) ID() string   { return DeliveryVerificationID }
func (c *DeliveryVerification) Name() string { return "Delivery Verification" }

func (c *DeliveryVerification) CanExecute(tx model.Transaction) bool {
	return tx.Type == model.TxShipmentCreated || tx.Type == model.TxDeliveryConfirmed
}

func (c *DeliveryVerification) Execute(_ context.Context, execCtx contract.ExecutionContext) (contract.ExecutionResult, error) {
	tx := execCtx.Transaction
	switch tx.Type {
	case model.TxShipmentCreated:
		p, err := decodePayload[ShipmentCreatedPayload](tx)
		if err != nil {
			return contract.ExecutionResult{}, err
		}
		return c.register(p), nil
	case model.TxDeliveryConfirmed:
		p, err := decodePayload[DeliveryConfirmedPayload](tx)
		if err != nil {
			return contract.ExecutionResult{}, err
		}
		return c.verify(tx, p), nil
	default:
		return contract.Rejected(fmt.Sprintf("unsupported transaction type %s", tx.Type), c.State()), nil
	}
}

func (c *DeliveryVerification) register(p ShipmentCreatedPayload) contract.ExecutionResult {
	if p.RecipientPublicKey == "" {
		return contract.Rejected(fmt.Sprintf("shipment %s: recipient public key is required", p.ShipmentID), c.State())
	}
	if _, ok := c.deliveries[p.ShipmentID]; ok {
		return contract.Rejected(fmt.Sprintf("shipment %s: delivery already registered", p.ShipmentID), c.State())
	}
	rec := &deliveryRecord{recipientPublicKey: p.RecipientPublicKey, recipientUserID: p.RecipientUserID}
	if p.ExpectedDeliveryDate != nil {
		at := p.ExpectedDeliveryDate.UTC()
		rec.expected = &at
	}
	c.deliveries[p.ShipmentID] = rec
	return contract.Succeeded(fmt.Sprintf("shipment %s: recipient %s recorded", p.ShipmentID, crypto.Fingerprint(p.RecipientPublicKey)), c.State())
}

func (c *DeliveryVerification) verify(tx model.Transaction, p DeliveryConfirmedPayload) contract.ExecutionResult {
	rec, registered := c.deliveries[p.ShipmentID]
	if !registered {
		// Shipments created before this contract was deployed carry the key in the confirmation.
		// Nothing is recorded for them: the shipment state machine decides whether they exist.
		if p.RecipientPublicKey == "" {
			return contract.Rejected(fmt.Sprintf("shipment %s: recipient public key unknown", p.ShipmentID), c.State())
		}
		rec = &deliveryRecord{recipientPublicKey: p.RecipientPublicKey}
	}
	if rec.verifiedAt != nil {
		return contract.Rejected(fmt.Sprintf("shipment %s: delivery already verified", p.ShipmentID), c.State())
	}
	if p.RecipientPublicKey != "" && p.RecipientPublicKey != rec.recipientPublicKey {
		return contract.Rejected(fmt.Sprintf("shipment %s: confirmation names recipient %s, registered recipient is %s",
			p.ShipmentID, crypto.Fingerprint(p.RecipientPublicKey), crypto.Fingerprint(rec.recipientPublicKey)), c.State())
	}
	if tx.SenderPublicKey != rec.recipientPublicKey {
		return contract.Rejected(fmt.Sprintf("shipment %s: confirmation signed by %s, recipient is %s",
			p.ShipmentID, crypto.Fingerprint(tx.SenderPublicKey), crypto.Fingerprint(rec.recipientPublicKey)), c.State())
	}

	at := tx.Timestamp.UTC()
	if registered {
		verified := *rec
		verified.verifiedAt = &at
		rec = &verified
		c.deliveries[p.ShipmentID] = rec
	}

	events := []contract.Event{event(EventDeliveryVerified, map[string]any{
		"shipmentId":         p.ShipmentID,
		"recipientPublicKey": rec.recipientPublicKey,
		"confirmedAt":        at,
		"txId":               tx.ID,
	})}
	message := fmt.Sprintf("shipment %s: delivery verified", p.ShipmentID)
	if rec.expected != nil && at.After(rec.expected.Add(c.gracePeriod)) {
		rec.delayed = true
		delay := at.Sub(*rec.expected)
		events = append(events, event(EventDeliveryDelayed, map[string]any{
			"shipmentId":           p.ShipmentID,
			"expectedDeliveryDate": *rec.expected,
			"confirmedAt":          at,
			"delay":                delay.String(),
		}))
		message = fmt.Sprintf("shipment %s: delivery verified, %s late", p.ShipmentID, delay)
	}
	return contract.Succeeded(message, c.State(), events...)
}

func (c *DeliveryVerification) Checkpoint() any {
	saved := make(map[string]deliveryRecord, len(c.deliveries))
	for id, rec := range c.deliveries {
		saved[id] = *rec
	}
	return saved
}

func (c *DeliveryVerification) Restore(checkpoint any) {
	saved := checkpoint.(map[string]deliveryRecord)
	c.deliveries = make(map[string]*deliveryRecord, len(saved))
	for id, rec := range saved {
		c.deliveries[id] = &rec
	}
}

func (c *DeliveryVerification) State() map[string]any {
	state := make(map[string]any, len(c.deliveries))
	for id, rec := range c.deliveries {
		entry := map[string]any{
			"recipientPublicKey": rec.recipientPublicKey,
			"verified":           rec.verifiedAt != nil,
			"delayed":            rec.delayed,
		}
		if rec.recipientUserID != "" {
			entry["recipientUserId"] = rec.recipientUserID
		}
		if rec.expected != nil {
			entry["expectedDeliveryDate"] = *rec.expected
		}
		if rec.verifiedAt != nil {
			entry["verifiedAt"] = *rec.verifiedAt
		}
		state[id] = entry
	}
	return state
}
