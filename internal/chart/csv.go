// Package chart loads and saves the chart of accounts and seeds ledgers
// from it.
package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/booksmith-dev/booksmith/internal/model"
)

const (
	numFields  = 9
	colID      = 0
	colCode    = 1
	colName    = 2
	colType    = 3
	colSubtype = 4
	colNormal  = 5
	colParent  = 6
	colControl = 7
	colActive  = 8
)

// ReadDefs reads chart-of-accounts.csv.
func ReadDefs(r io.Reader) ([]model.AccountDef, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var defs []model.AccountDef
	for i, rec := range records[1:] {
		def, err := UnmarshalDef(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// WriteDefs writes chart-of-accounts.csv.
func WriteDefs(w io.Writer, defs []model.AccountDef) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"account_id", "code", "name", "type", "subtype", "normal_balance", "parent_id", "control", "active"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, def := range defs {
		if err := cw.Write(MarshalDef(def)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalDef converts an account definition to a CSV row.
func MarshalDef(def model.AccountDef) []string {
	row := make([]string, numFields)
	row[colID] = def.ID
	row[colCode] = def.Code
	row[colName] = def.Name
	row[colType] = string(def.Type)
	row[colSubtype] = def.Subtype
	row[colNormal] = string(def.NormalBalance)
	row[colParent] = def.ParentID
	row[colControl] = strconv.FormatBool(def.ControlAccount)
	row[colActive] = strconv.FormatBool(def.Active)
	return row
}

// UnmarshalDef converts a CSV row to an account definition.
func UnmarshalDef(record []string) (model.AccountDef, error) {
	if len(record) != numFields {
		return model.AccountDef{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	control, err := strconv.ParseBool(record[colControl])
	if err != nil {
		return model.AccountDef{}, fmt.Errorf("parsing control %q: %w", record[colControl], err)
	}

	active, err := strconv.ParseBool(record[colActive])
	if err != nil {
		return model.AccountDef{}, fmt.Errorf("parsing active %q: %w", record[colActive], err)
	}

	return model.AccountDef{
		ID:             record[colID],
		Code:           record[colCode],
		Name:           record[colName],
		Type:           model.AccountType(record[colType]),
		Subtype:        record[colSubtype],
		NormalBalance:  model.Side(record[colNormal]),
		ParentID:       record[colParent],
		ControlAccount: control,
		Active:         active,
	}, nil
}
