package builtin

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

type ShipmentStatus string

const (
	StatusCreated   ShipmentStatus = "Created"
	StatusValidated ShipmentStatus = "Validated"
	StatusInTransit ShipmentStatus = "InTransit"
	StatusDelivered ShipmentStatus = "Delivered"
	StatusConfirmed ShipmentStatus = "Confirmed"
)

var lifecycle = []ShipmentStatus{StatusCreated, StatusValidated, StatusInTransit, StatusDelivered, StatusConfirmed}

// Next returns the only status s may advance to.
func (s ShipmentStatus) Next() (ShipmentStatus, bool) {
	i := slices.Index(lifecycle, s)
	if i < 0 || i == len(lifecycle)-1 {
		return "", false
	}
	return lifecycle[i+1], true
}

func (s ShipmentStatus) Valid() bool {
	return slices.Contains(lifecycle, s)
}

type shipmentRecord struct {
	status    ShipmentStatus
	items     int
	createdAt time.Time
	updatedAt time.Time
	lastTx    string
}

// ShipmentTracking walks each shipment through Created, Validated, InTransit, Delivered and
// Confirmed, one step at a time.
type ShipmentTracking struct {
	shipments map[string]*shipmentRecord
}

func NewShipmentTracking() *ShipmentTracking {
	return &ShipmentTracking{shipments: make(map[string]*shipmentRecord)}
}

func (c *ShipmentTracking) ID() string   { return ShipmentTrackingID }
func (c *ShipmentTracking) Name() string { return "Shipment Tracking" }

func (c *ShipmentTracking) CanExecute(tx model.Transaction) bool {
	switch tx.Type {
	case model.TxShipmentCreated, model.TxStatusUpdated, model.TxDeliveryConfirmed:
		return true
	default:
		return false
	}
}

func (c *ShipmentTracking) Execute(_ context.Context, execCtx contract.ExecutionContext) (contract.ExecutionResult, error) {
	tx := execCtx.Transaction
	switch tx.Type {
	case model.TxShipmentCreated:
		p, err := decodePayload[ShipmentCreatedPayload](tx)
		if err != nil {
			return contract.ExecutionResult{}, err
		}
		return c.create(tx, p), nil
	case model.TxStatusUpdated:
		p, err := decodePayload[StatusUpdatedPayload](tx)
		if err != nil {
			return contract.ExecutionResult{}, err
		}
		if p.NewStatus == StatusConfirmed {
			return contract.Rejected(fmt.Sprintf("shipment %s: confirmation requires a delivery confirmation", p.ShipmentID), c.State()), nil
		}
		return c.advance(tx, p.ShipmentID, p.NewStatus), nil
	case model.TxDeliveryConfirmed:
		p, err := decodePayload[DeliveryConfirmedPayload](tx)
		if err != nil {
			return contract.ExecutionResult{}, err
		}
		if prior := execCtx.PriorResult; prior != nil && !prior.Success {
			return contract.Rejected(fmt.Sprintf("shipment %s: delivery verification failed: %s", p.ShipmentID, prior.Message), c.State()), nil
		}
		return c.advance(tx, p.ShipmentID, StatusConfirmed), nil
	default:
		return contract.Rejected(fmt.Sprintf("unsupported transaction type %s", tx.Type), c.State()), nil
	}
}

func (c *ShipmentTracking) create(tx model.Transaction, p ShipmentCreatedPayload) contract.ExecutionResult {
	if _, ok := c.shipments[p.ShipmentID]; ok {
		return contract.Rejected(fmt.Sprintf("shipment %s already exists", p.ShipmentID), c.State())
	}
	rec := &shipmentRecord{
		status:    StatusCreated,
		items:     len(p.Items),
		createdAt: tx.Timestamp,
		updatedAt: tx.Timestamp,
		lastTx:    tx.ID,
	}
	c.shipments[p.ShipmentID] = rec

	events := []contract.Event{statusChanged(tx, p.ShipmentID, "", StatusCreated)}
	message := fmt.Sprintf("shipment %s created", p.ShipmentID)
	if rec.items > 0 {
		rec.status = StatusValidated
		events = append(events, statusChanged(tx, p.ShipmentID, StatusCreated, StatusValidated))
		message = fmt.Sprintf("shipment %s created and validated with %d items", p.ShipmentID, rec.items)
	}
	return contract.Succeeded(message, c.State(), events...)
}

func (c *ShipmentTracking) advance(tx model.Transaction, shipmentID string, to ShipmentStatus) contract.ExecutionResult {
	rec, ok := c.shipments[shipmentID]
	if !ok {
		return contract.Rejected(fmt.Sprintf("shipment %s not found", shipmentID), c.State())
	}
	if !to.Valid() {
		return contract.Rejected(fmt.Sprintf("shipment %s: unknown status %q", shipmentID, to), c.State())
	}
	next, ok := rec.status.Next()
	if !ok || next != to {
		return contract.Rejected(fmt.Sprintf("shipment %s: invalid transition %s -> %s", shipmentID, rec.status, to), c.State())
	}

	from := rec.status
	rec.status = to
	rec.updatedAt = tx.Timestamp
	rec.lastTx = tx.ID
	return contract.Succeeded(
		fmt.Sprintf("shipment %s moved %s -> %s", shipmentID, from, to),
		c.State(),
		statusChanged(tx, shipmentID, from, to),
	)
}

// Status reports the current status of a shipment.
func (c *ShipmentTracking) Status(shipmentID string) (ShipmentStatus, bool) {
	rec, ok := c.shipments[shipmentID]
	if !ok {
		return "", false
	}
	return rec.status, true
}

func (c *ShipmentTracking) Checkpoint() any {
	saved := make(map[string]shipmentRecord, len(c.shipments))
	for id, rec := range c.shipments {
		saved[id] = *rec
	}
	return saved
}

func (c *ShipmentTracking) Restore(checkpoint any) {
	saved := checkpoint.(map[string]shipmentRecord)
	c.shipments = make(map[string]*shipmentRecord, len(saved))
	for id, rec := range saved {
		c.shipments[id] = &rec
	}
}

func (c *ShipmentTracking) State() map[string]any {
	state := make(map[string]any, len(c.shipments))
	for id, rec := range c.shipments {
		state[id] = map[string]any{
			"status":    string(rec.status),
			"items":     rec.items,
			"createdAt": rec.createdAt,
			"updatedAt": rec.updatedAt,
			"lastTxId":  rec.lastTx,
		}
	}
	return state
}

func statusChanged(tx model.Transaction, shipmentID string, from, to ShipmentStatus) contract.Event {
	return event(EventShipmentStatusChanged, map[string]any{
		"shipmentId": shipmentID,
		"from":       string(from),
		"to":         string(to),
		"txId":       tx.ID,
		"at":         tx.Timestamp,
	})
}

// confirmedBy reports whether r moved shipmentID to Confirmed.
func confirmedBy(r *contract.ExecutionResult, shipmentID string) bool {
	if r == nil || !r.Success {
		return false
	}
	for _, e := range r.Events {
		if e.Name != EventShipmentStatusChanged {
			continue
		}
		id, _ := e.Payload["shipmentId"].(string)
		to, _ := e.Payload["to"].(string)
		if id == shipmentID && to == string(StatusConfirmed) {
			return true
		}
	}
	return false
}
