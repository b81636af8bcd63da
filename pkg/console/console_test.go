package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "yes\n", true},
		{"y", "y\n", true},
		{"uppercase", "YES\n", true},
		{"padded", "  y  \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"garbage", "maybe\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(tt.input), &out, "Proceed?")
			if err != nil {
				t.Fatalf("Confirm failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "[y/N]") {
				t.Error("Prompt should show the default")
			}
		})
	}
}

func TestRenderPlan(t *testing.T) {
	var out bytes.Buffer
	RenderPlan(&out, "primary plan", []PlanItem{
		{Description: "write tuning file", Detail: "path:\nwal_level = replica"},
		{Description: "register primary"},
	})

	rendered := out.String()
	if !strings.Contains(rendered, "primary plan") {
		t.Error("Heading missing")
	}
	if !strings.Contains(rendered, "1. write tuning file") {
		t.Error("First step not numbered")
	}
	if !strings.Contains(rendered, "2. register primary") {
		t.Error("Second step not numbered")
	}
	if !strings.Contains(rendered, "wal_level = replica") {
		t.Error("Detail lines missing")
	}
}

func TestRenderOutcome(t *testing.T) {
	var out bytes.Buffer
	RenderOutcome(&out, []string{"step one"}, []string{"step two"}, "step three")

	rendered := out.String()
	if !strings.Contains(rendered, "step one") {
		t.Error("Succeeded step missing")
	}
	if !strings.Contains(rendered, "step two (already applied)") {
		t.Error("Skipped step missing")
	}
	if !strings.Contains(rendered, "step three") {
		t.Error("Failed step missing")
	}
}

func TestRenderOutcomeNoFailure(t *testing.T) {
	var out bytes.Buffer
	RenderOutcome(&out, []string{"only"}, nil, "")

	if strings.Contains(out.String(), "✗") {
		t.Error("Failure marker rendered without a failure")
	}
}
