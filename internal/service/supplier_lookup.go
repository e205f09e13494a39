package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract/builtin"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// StaticSupplierLookup serves supplier records per shipment from a fixed table.
type StaticSupplierLookup struct {
	byShipment map[string][]builtin.Supplier
}

func NewStaticSupplierLookup(byShipment map[string][]builtin.Supplier) *StaticSupplierLookup {
	if byShipment == nil {
		byShipment = make(map[string][]builtin.Supplier)
	}
	return &StaticSupplierLookup{byShipment: byShipment}
}

// LoadSupplierFile reads a JSON object mapping shipment ids to supplier records
// (id, name, verificationStatus, paymentAmount, paymentTerms, currency). A missing file
// yields an empty table; a record with an unknown verification status is an error.
func LoadSupplierFile(path string) (*StaticSupplierLookup, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStaticSupplierLookup(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read supplier file: %w", err)
	}
	var table map[string][]builtin.Supplier
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode supplier file %s: %w", path, err)
	}
	for shipmentID, suppliers := range table {
		for i, s := range suppliers {
			if s.ID == "" {
				return nil, fmt.Errorf("supplier file %s: shipment %s record %d has no id", path, shipmentID, i)
			}
			if !s.VerificationStatus.Valid() {
				return nil, fmt.Errorf("supplier file %s: supplier %s has verificationStatus %q", path, s.ID, s.VerificationStatus)
			}
		}
	}
	return NewStaticSupplierLookup(table), nil
}

// AdditionalData attaches supplier records to delivery confirmations. Other transactions get none.
func (l *StaticSupplierLookup) AdditionalData(_ context.Context, tx model.Transaction) (map[string]any, error) {
	if tx.Type != model.TxDeliveryConfirmed {
		return nil, nil
	}
	var p builtin.DeliveryConfirmedPayload
	if err := json.Unmarshal([]byte(tx.PayloadData), &p); err != nil || p.ShipmentID == "" {
		// The contracts report the malformed payload themselves.
		return nil, nil
	}
	suppliers := append([]builtin.Supplier(nil), l.byShipment[p.ShipmentID]...)
	return map[string]any{builtin.SuppliersKey: suppliers}, nil
}
