package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// CSV parsing benchmark: a 20-column synthetic table of roughly the
// requested megabyte size. The native path scans bytes field by field; the
// managed path round-trips through encoding/csv.
//
// Output vector: [recordCount, byteSize, avgValue] where avgValue averages
// the three value columns.

const (
	csvBytesPerRecord = 250
	csvColumns        = 20
)

var csvHeader = []string{
	"id", "name", "value1", "value2", "value3", "category", "status", "price",
	"quantity", "date", "score1", "score2", "score3", "priority", "description",
	"weight", "count", "type", "ratio", "flag",
}

func csvRecordCount(targetMB int) int {
	return targetMB * 1024 * 1024 / csvBytesPerRecord
}

// csvRow renders row i of the synthetic table. Both implementations share
// it so the payloads differ only in writer framing.
func csvRow(i int) []string {
	status := "inactive"
	if i%2 == 0 {
		status = "active"
	}
	typ := "typeC"
	switch i % 3 {
	case 0:
		typ = "typeA"
	case 1:
		typ = "typeB"
	}
	return []string{
		strconv.Itoa(i + 1),
		"Record_" + strconv.Itoa(i+1),
		strconv.FormatFloat(float64(i+1)*1.5, 'f', 3, 64),
		strconv.FormatFloat(float64(i+1)*2.3, 'f', 3, 64),
		strconv.FormatFloat(float64(i+1)*0.7, 'f', 3, 64),
		strconv.Itoa(i%5 + 1),
		status,
		strconv.FormatFloat(float64(i+1)*12.99, 'f', 2, 64),
		strconv.Itoa(i%100 + 1),
		fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
		strconv.FormatFloat(float64(i+1)*0.85, 'f', 3, 64),
		strconv.FormatFloat(float64(i+1)*1.15, 'f', 3, 64),
		strconv.FormatFloat(float64(i+1)*0.95, 'f', 3, 64),
		strconv.Itoa(i%3 + 1),
		"Description_" + strconv.Itoa(i+1),
		strconv.FormatFloat(float64(i+1)*2.5, 'f', 3, 64),
		strconv.Itoa(i%50 + 1),
		typ,
		strconv.FormatFloat(float64(i+1)*0.123, 'f', 4, 64),
		strconv.Itoa(i % 2),
	}
}

// runCSVNative joins rows by hand and parses with a byte scanner that
// tracks quoting, field index and line boundaries.
func runCSVNative(_ context.Context, input any) (any, error) {
	mb, err := parserInput(input)
	if err != nil {
		return nil, err
	}

	n := csvRecordCount(mb)
	var sb strings.Builder
	sb.Grow(n * csvBytesPerRecord)
	sb.WriteString(strings.Join(csvHeader, ","))
	sb.WriteByte('\n')
	for i := 0; i < n; i++ {
		sb.WriteString(strings.Join(csvRow(i), ","))
		sb.WriteByte('\n')
	}
	data := sb.String()

	recordCount := 0
	totalValue := 0.0
	skipHeader := true
	inQuotes := false
	fieldIndex := 0
	rowValueSum := 0.0
	rowID := 0
	var field strings.Builder

	consumeField := func() {
		raw := field.String()
		field.Reset()
		if skipHeader {
			return
		}
		switch fieldIndex {
		case 0:
			rowID, _ = strconv.Atoi(raw)
		case 2, 3, 4:
			v, _ := strconv.ParseFloat(raw, 64)
			rowValueSum += v
		}
	}

	for i := 0; i < len(data); i++ {
		c := data[i]

		if c == '"' {
			inQuotes = !inQuotes
			continue
		}

		if c == ',' && !inQuotes {
			consumeField()
			fieldIndex++
			continue
		}

		if c == '\n' || c == '\r' {
			consumeField()
			fieldIndex++
			if skipHeader {
				skipHeader = false
			} else if fieldIndex >= csvColumns && rowID > 0 {
				recordCount++
				totalValue += rowValueSum
			}
			fieldIndex = 0
			rowValueSum = 0.0
			rowID = 0
			if c == '\r' && i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			continue
		}

		field.WriteByte(c)
	}

	avgValue := 0.0
	if recordCount > 0 {
		avgValue = totalValue / float64(recordCount*3)
	}

	return []float64{float64(recordCount), float64(len(data)), avgValue}, nil
}

// runCSVManaged writes with csv.Writer and parses with csv.Reader.
func runCSVManaged(_ context.Context, input any) (any, error) {
	mb, err := parserInput(input)
	if err != nil {
		return nil, err
	}

	n := csvRecordCount(mb)
	var sb strings.Builder
	sb.Grow(n * csvBytesPerRecord)
	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to generate payload: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(csvRow(i)); err != nil {
			return nil, fmt.Errorf("failed to generate payload: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to generate payload: %w", err)
	}
	data := sb.String()

	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = csvColumns

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	if len(header) != csvColumns {
		return nil, fmt.Errorf("unexpected header width %d", len(header))
	}

	recordCount := 0
	totalValue := 0.0
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		id, _ := strconv.Atoi(row[0])
		if id <= 0 {
			continue
		}
		for _, col := range []int{2, 3, 4} {
			v, parseErr := strconv.ParseFloat(row[col], 64)
			if parseErr == nil {
				totalValue += v
			}
		}
		recordCount++
	}

	avgValue := 0.0
	if recordCount > 0 {
		avgValue = totalValue / float64(recordCount*3)
	}

	return []float64{float64(recordCount), float64(len(data)), avgValue}, nil
}

var csvValidator Validator = VectorValidator{Tolerance: 0.1, WantLen: 3}
