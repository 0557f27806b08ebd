package tools

import (
	"strings"
	"testing"
)

func TestGenerateTracksFunctionCallSites(t *testing.T) {
	src := "# 0 1 {\n" +
		"^ a0\n" +
		"}\n" +
		"$ v0 0 g1\n" +
		"$ v1 0 g2\n"
	xr, err := Generate(src)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(xr.Functions) != 1 {
		t.Fatalf("expected one function, got %d", len(xr.Functions))
	}
	if len(xr.Functions[0].CallSite) != 2 {
		t.Errorf("expected 2 call sites, got %d", len(xr.Functions[0].CallSite))
	}
}

func TestGenerateTracksLabelReferencesPerBlock(t *testing.T) {
	src := ": 1\n" +
		"@ 1\n"
	xr, err := Generate(src)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(xr.Labels) != 1 {
		t.Fatalf("expected one label, got %d", len(xr.Labels))
	}
	if len(xr.Labels[0].Referenced) != 1 {
		t.Errorf("expected one reference, got %d", len(xr.Labels[0].Referenced))
	}
}

func TestXRefStringReport(t *testing.T) {
	src := ": 1\n. v0\n"
	xr, err := Generate(src)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	report := xr.String()
	if !strings.Contains(report, "main:1") {
		t.Errorf("expected report to mention main:1, got %q", report)
	}
	if !strings.Contains(report, "(never)") {
		t.Errorf("expected report to flag the unused label, got %q", report)
	}
}
