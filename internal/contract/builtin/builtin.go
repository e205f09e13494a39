// Package builtin holds the aid-tracking contracts: shipment lifecycle, delivery
// verification and payment release.
package builtin

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

const (
	ShipmentTrackingID     = "shipment-tracking"
	DeliveryVerificationID = "delivery-verification"
	PaymentReleaseID       = "payment-release"
)

// Event names.
const (
	EventShipmentStatusChanged = "ShipmentStatusChanged"
	EventDeliveryVerified      = "DeliveryVerified"
	EventDeliveryDelayed       = "DeliveryDelayed"
	EventPaymentInitiated      = "PaymentInitiated"
	EventPaymentFailed         = "PaymentFailed"
)

// SuppliersKey is the AdditionalData key holding the shipment's supplier records.
const SuppliersKey = "suppliers"

type Config struct {
	DeliveryGracePeriod   time.Duration
	PaymentThresholdMinor int64
}

// Contracts returns fresh instances in pipeline order: verification runs before the shipment
// state machine so a rejected confirmation never reaches it, and payment release runs last.
func Contracts(cfg Config) []contract.Contract {
	return []contract.Contract{
		NewDeliveryVerification(cfg.DeliveryGracePeriod),
		NewShipmentTracking(),
		NewPaymentRelease(cfg.PaymentThresholdMinor),
	}
}

type deployer interface {
	Deploy(c contract.Contract) error
}

// DeployAll deploys the built-in contracts in pipeline order.
func DeployAll(d deployer, cfg Config) error {
	for _, c := range Contracts(cfg) {
		if err := d.Deploy(c); err != nil {
			return fmt.Errorf("deploy %s: %w", c.ID(), err)
		}
	}
	return nil
}

// Item is one line of a shipment manifest.
type Item struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// ShipmentCreatedPayload is the payload of a ShipmentCreated transaction.
type ShipmentCreatedPayload struct {
	ShipmentID           string     `json:"shipmentId"`
	Items                []Item     `json:"items"`
	Origin               string     `json:"origin,omitempty"`
	Destination          string     `json:"destination,omitempty"`
	RecipientUserID      string     `json:"recipientUserId,omitempty"`
	RecipientPublicKey   string     `json:"recipientPublicKey"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
}

// StatusUpdatedPayload is the payload of a StatusUpdated transaction.
type StatusUpdatedPayload struct {
	ShipmentID string         `json:"shipmentId"`
	NewStatus  ShipmentStatus `json:"newStatus"`
	Note       string         `json:"note,omitempty"`
}

// DeliveryConfirmedPayload is the payload of a DeliveryConfirmed transaction.
// RecipientUserID is informational only and never used for authorization.
type DeliveryConfirmedPayload struct {
	ShipmentID         string `json:"shipmentId"`
	RecipientUserID    string `json:"recipientUserId,omitempty"`
	RecipientPublicKey string `json:"recipientPublicKey,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

func (p ShipmentCreatedPayload) shipment() string   { return p.ShipmentID }
func (p StatusUpdatedPayload) shipment() string     { return p.ShipmentID }
func (p DeliveryConfirmedPayload) shipment() string { return p.ShipmentID }

var errMissingShipmentID = errors.New("shipmentId is required")

// decodePayload decodes the transaction payload. Failures wrap model.ErrContractFault.
func decodePayload[T interface{ shipment() string }](tx model.Transaction) (T, error) {
	var p T
	if err := json.Unmarshal([]byte(tx.PayloadData), &p); err != nil {
		return p, fmt.Errorf("%w: decode %s payload of tx %s: %v", model.ErrContractFault, tx.Type, tx.ID, err)
	}
	if p.shipment() == "" {
		return p, fmt.Errorf("%w: %s payload of tx %s: %w", model.ErrContractFault, tx.Type, tx.ID, errMissingShipmentID)
	}
	return p, nil
}

func event(name string, payload map[string]any) contract.Event {
	return contract.Event{Name: name, Payload: payload}
}
