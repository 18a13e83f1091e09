package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// JSON parsing benchmark: generate a synthetic record array of roughly the
// requested megabyte size, parse it back, and summarize. The native path
// scans bytes with a hand-rolled state machine; the managed path round-trips
// through encoding/json.
//
// Output vector: [recordCount, byteSize, avgValue].

// jsonBytesPerRecord is the approximate serialized size of one record,
// used to hit a target payload size.
const jsonBytesPerRecord = 120

// jsonRecord matches the synthetic payload schema.
type jsonRecord struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Active bool    `json:"active"`
}

func jsonRecordCount(targetMB int) int {
	return targetMB * 1024 * 1024 / jsonBytesPerRecord
}

func parserInput(input any) (int, error) {
	mb, ok := input.(int)
	if !ok || mb <= 0 {
		return 0, fmt.Errorf("parser input must be a positive megabyte count, got %v", input)
	}
	return mb, nil
}

// generateJSONNative writes the payload with a string builder, matching the
// reference formatting (five decimal places, two-space indent).
func generateJSONNative(numRecords int) string {
	var sb strings.Builder
	sb.Grow(numRecords * jsonBytesPerRecord)
	sb.WriteString("[\n")
	for i := 0; i < numRecords; i++ {
		if i > 0 {
			sb.WriteString(",\n")
		}
		sb.WriteString("  {\n    \"id\": ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(",\n    \"name\": \"Record_")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString("\",\n    \"value\": ")
		sb.WriteString(strconv.FormatFloat(float64(i+1)*3.14159, 'f', 5, 64))
		sb.WriteString(",\n    \"active\": ")
		sb.WriteString(strconv.FormatBool(i%2 == 0))
		sb.WriteString("\n  }")
	}
	sb.WriteString("\n]")
	return sb.String()
}

// runJSONNative parses with a single-pass byte scanner that only
// understands the synthetic schema: flat objects of scalar fields inside
// one array.
func runJSONNative(_ context.Context, input any) (any, error) {
	mb, err := parserInput(input)
	if err != nil {
		return nil, err
	}

	data := generateJSONNative(jsonRecordCount(mb))

	recordCount := 0
	totalValue := 0.0

	var key, value string
	var cur jsonRecord
	inString := false
	readingKey := false
	readingValue := false
	var buf strings.Builder

	flushScalar := func() {
		if key == "" || buf.Len() == 0 {
			return
		}
		raw := strings.TrimSpace(buf.String())
		switch key {
		case "id":
			cur.ID, _ = strconv.Atoi(raw)
		case "value":
			cur.Value, _ = strconv.ParseFloat(raw, 64)
		case "active":
			cur.Active = raw == "true"
		}
		buf.Reset()
	}

	for i := 0; i < len(data); i++ {
		c := data[i]

		if c == '"' {
			inString = !inString
			if !inString {
				if readingKey {
					key = buf.String()
					buf.Reset()
					readingKey = false
				} else if readingValue {
					value = buf.String()
					if key == "name" {
						cur.Name = value
					}
					buf.Reset()
					readingValue = false
				}
			} else if !readingValue {
				readingKey = true
			}
			continue
		}

		if inString {
			buf.WriteByte(c)
			continue
		}

		switch c {
		case '{':
			cur = jsonRecord{}
		case ':':
			readingValue = true
		case ',', '}':
			flushScalar()
			readingValue = false
			if c == '}' {
				if cur.ID > 0 {
					recordCount++
					totalValue += cur.Value
				}
				cur = jsonRecord{}
			}
		case ' ', '\n', '\t', '\r', '[', ']':
			// structural whitespace and array brackets
		default:
			if readingValue {
				buf.WriteByte(c)
			}
		}
	}

	avgValue := 0.0
	if recordCount > 0 {
		avgValue = totalValue / float64(recordCount)
	}

	return []float64{float64(recordCount), float64(len(data)), avgValue}, nil
}

// runJSONManaged builds the records as structs, marshals with indentation
// and parses back with encoding/json.
func runJSONManaged(_ context.Context, input any) (any, error) {
	mb, err := parserInput(input)
	if err != nil {
		return nil, err
	}

	n := jsonRecordCount(mb)
	records := make([]jsonRecord, n)
	for i := range records {
		records[i] = jsonRecord{
			ID:     i + 1,
			Name:   fmt.Sprintf("Record_%d", i+1),
			Value:  float64(i+1) * 3.14159,
			Active: i%2 == 0,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate payload: %w", err)
	}

	var parsed []jsonRecord
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}

	totalValue := 0.0
	for _, r := range parsed {
		totalValue += r.Value
	}
	avgValue := 0.0
	if len(parsed) > 0 {
		avgValue = totalValue / float64(len(parsed))
	}

	return []float64{float64(len(parsed)), float64(len(data)), avgValue}, nil
}

// Counts must agree exactly in practice, but byte size and the average of
// differently formatted float literals drift a little between generators.
var jsonValidator Validator = VectorValidator{Tolerance: 0.1, WantLen: 3}
