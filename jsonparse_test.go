package main

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestJSONKernels(t *testing.T) {
	ctx := context.Background()
	wantCount := float64(jsonRecordCount(1))
	// Values are (i+1)*3.14159 for i in [0, n), so the average is the
	// midpoint (n+1)/2 scaled
	wantAvg := 3.14159 * (wantCount + 1) / 2

	for _, tc := range []struct {
		name string
		run  Runner
	}{
		{"native", runJSONNative},
		{"managed", runJSONManaged},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.run(ctx, 1)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			vec, ok := out.([]float64)
			if !ok || len(vec) != 3 {
				t.Fatalf("output = %v, want a 3-element vector", out)
			}

			if vec[0] != wantCount {
				t.Errorf("recordCount = %v, want %v", vec[0], wantCount)
			}
			if vec[1] <= 0 {
				t.Errorf("byteSize = %v, want > 0", vec[1])
			}
			// The native payload rounds values to five decimals; allow for it
			if math.Abs(vec[2]-wantAvg)/wantAvg > 1e-4 {
				t.Errorf("avgValue = %v, want ~%v", vec[2], wantAvg)
			}
		})
	}
}

func TestJSONPairAgrees(t *testing.T) {
	ctx := context.Background()

	nativeOut, err := runJSONNative(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	managedOut, err := runJSONManaged(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	outcome := jsonValidator.Validate(nativeOut, managedOut)
	if !outcome.Success {
		t.Errorf("parsers disagree: %v", outcome.Discrepancies)
	}

	nVec := nativeOut.([]float64)
	mVec := managedOut.([]float64)
	if nVec[0] != mVec[0] {
		t.Errorf("record counts differ: native %v vs managed %v", nVec[0], mVec[0])
	}
}

func TestGenerateJSONNative(t *testing.T) {
	payload := generateJSONNative(3)

	out, err := runJSONNative(context.Background(), 1)
	if err != nil {
		t.Fatalf("scanner failed on its own payload: %v", err)
	}
	if out.([]float64)[0] == 0 {
		t.Error("scanner found no records")
	}

	// Spot-check the framing the scanner depends on
	for _, want := range []string{"[\n", "\"id\": 1", "\"name\": \"Record_1\"", "\"active\": true", "\n]"} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q", want)
		}
	}
}

func TestParserInput(t *testing.T) {
	for _, input := range []any{0, -1, "5", 2.5, nil} {
		if _, err := parserInput(input); err == nil {
			t.Errorf("parserInput accepted %v", input)
		}
	}
	if mb, err := parserInput(5); err != nil || mb != 5 {
		t.Errorf("parserInput(5) = %v, %v", mb, err)
	}
}
