package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/ormasoftchile/gwiz/pkg/steps"
	"github.com/ormasoftchile/gwiz/pkg/wizard"
)

// TestBuildFullDefinition builds the full fixture and checks each step
// kind maps to its engine type.
func TestBuildFullDefinition(t *testing.T) {
	def, err := LoadFile("../../testdata/valid/create-vm.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built, err := Build(def, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(built) != len(def.Steps) {
		t.Fatalf("built %d steps, want %d", len(built), len(def.Steps))
	}
	for i, s := range built {
		if s.Name() != def.Steps[i].ID {
			t.Errorf("step %d name = %q, want %q", i, s.Name(), def.Steps[i].ID)
		}
	}
	if _, ok := built[0].(*steps.Text); !ok {
		t.Errorf("step 0 = %T, want *steps.Text", built[0])
	}
	if _, ok := built[1].(*steps.Choice); !ok {
		t.Errorf("step 1 = %T, want *steps.Choice", built[1])
	}
	if _, ok := built[2].(*steps.LoadingChoice); !ok {
		t.Errorf("step 2 = %T, want *steps.LoadingChoice", built[2])
	}
	if _, ok := built[4].(*steps.Path); !ok {
		t.Errorf("step 4 = %T, want *steps.Path", built[4])
	}
	if _, ok := built[5].(*steps.Confirm); !ok {
		t.Errorf("step 5 = %T, want *steps.Confirm", built[5])
	}
}

// TestBuildWhenGatesStep checks the compiled precondition drives
// Enabled.
func TestBuildWhenGatesStep(t *testing.T) {
	def, err := LoadFile("../../testdata/valid/create-vm.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built, err := Build(def, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	replicas := built[3]

	v := wizard.NewValues()
	v.Set("regions", "eu-west")
	if replicas.Enabled(v) {
		t.Error("one region should disable the replicas step")
	}
	v.Set("regions", "eu-west", "us-east")
	if !replicas.Enabled(v) {
		t.Error("two regions should enable the replicas step")
	}
}

// TestBuildTextValidator checks required and pattern combine into one
// validator.
func TestBuildTextValidator(t *testing.T) {
	def, err := LoadFile("../../testdata/valid/create-vm.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built, err := Build(def, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	text := built[0].(*steps.Text)
	if text.Validate == nil {
		t.Fatal("expected a validator")
	}
	if err := text.Validate(""); err == nil {
		t.Error("empty answer should fail the required rule")
	}
	if err := text.Validate("Dev Box"); err == nil {
		t.Error("uppercase answer should fail the pattern")
	}
	if err := text.Validate("dev-box-01"); err != nil {
		t.Errorf("valid answer rejected: %v", err)
	}
}

// TestBuildStaticChoiceItems checks inline items become a constant
// generator with marks preserved.
func TestBuildStaticChoiceItems(t *testing.T) {
	def, err := LoadFile("../../testdata/valid/create-vm.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built, err := Build(def, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	choice := built[1].(*steps.Choice)
	items, err := choice.Items(context.Background(), wizard.NewValues())
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Label != "ubuntu-24.04" || !items[0].Checked || items[0].Detail == "" {
		t.Errorf("first item = %+v, want the picked ubuntu entry", items[0])
	}
}

// TestBuildConfirmDetail checks the detail template renders answers,
// including the joined multi-value form.
func TestBuildConfirmDetail(t *testing.T) {
	def, err := LoadFile("../../testdata/valid/create-vm.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built, err := Build(def, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	confirm := built[5].(*steps.Confirm)
	if confirm.Detail == nil {
		t.Fatal("expected a detail renderer")
	}

	v := wizard.NewValues()
	v.Set("name", "web-1")
	v.Set("image", "ubuntu-24.04")
	v.Set("regions", "eu-west", "us-east")
	got := confirm.Detail(v)
	want := "web-1 from ubuntu-24.04 in eu-west, us-east"
	if got != want {
		t.Errorf("detail = %q, want %q", got, want)
	}
}

// TestBuildDetailFallsBack checks a failing template renders its raw
// text instead of erroring mid-wizard.
func TestBuildDetailFallsBack(t *testing.T) {
	def := clean()
	def.Steps[2].Detail = "sizes: {{.unknown}}"
	built, err := Build(def, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	confirm := built[2].(*steps.Confirm)
	got := confirm.Detail(wizard.NewValues())
	if got != "sizes: {{.unknown}}" {
		t.Errorf("detail = %q, want the raw template text", got)
	}
}

// TestBuildBadPattern checks an uncompilable pattern fails the build
// with the step position.
func TestBuildBadPattern(t *testing.T) {
	def := clean()
	def.Steps[0].Pattern = "[boom"
	_, err := Build(def, BuildOptions{})
	if err == nil || !strings.Contains(err.Error(), "steps[0]") {
		t.Errorf("error = %v, want it to name the step position", err)
	}
}
