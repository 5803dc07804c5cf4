package encoder_test

import (
	"errors"
	"testing"

	"go.trai.ch/agraph/internal/core/domain"
	"go.trai.ch/agraph/internal/engine/encoder"
)

func mustLabel(t *testing.T, s string) domain.Label {
	t.Helper()
	label, err := domain.ParseLabel(s)
	if err != nil {
		t.Fatalf("failed to parse label %q: %v", s, err)
	}
	return label
}

func TestKnownTargets_SharedRuleClass(t *testing.T) {
	var (
		targetSink    domain.Section[domain.Target]
		ruleClassSink domain.Section[domain.RuleClass]
	)
	ruleClasses := encoder.NewKnownRuleClassStrings(&ruleClassSink)
	targets := encoder.NewKnownTargets(&targetSink, ruleClasses)

	id1, err := targets.DataToID(encoder.TargetKey{Label: mustLabel(t, "//java/app:app"), RuleClass: "java_library"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, err := targets.DataToID(encoder.TargetKey{Label: mustLabel(t, "//java/lib:lib"), RuleClass: "java_library"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id1 == id2 {
		t.Fatalf("expected distinct target ids, both got %d", id1)
	}
	if ruleClassSink.Count() != 1 {
		t.Fatalf("expected exactly one rule class entry, got %d", ruleClassSink.Count())
	}
	if targetSink.Count() != 2 {
		t.Fatalf("expected two target entries, got %d", targetSink.Count())
	}

	ruleClassID := ruleClassSink.Items()[0].ID
	for _, target := range targetSink.Items() {
		if target.RuleClassID == nil {
			t.Fatalf("expected target %q to reference a rule class", target.Label)
		}
		if *target.RuleClassID != ruleClassID {
			t.Errorf("expected target %q to reference rule class %d, got %d", target.Label, ruleClassID, *target.RuleClassID)
		}
	}
}

func TestKnownTargets_AbsentRuleClassLeavesFieldUnset(t *testing.T) {
	var (
		targetSink    domain.Section[domain.Target]
		ruleClassSink domain.Section[domain.RuleClass]
	)
	ruleClasses := encoder.NewKnownRuleClassStrings(&ruleClassSink)
	targets := encoder.NewKnownTargets(&targetSink, ruleClasses)

	if _, err := targets.DataToID(encoder.TargetKey{Label: mustLabel(t, "//data:files")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := targetSink.Items()[0]
	if target.RuleClassID != nil {
		t.Errorf("expected rule class reference to be unset, got id %d", *target.RuleClassID)
	}
	if ruleClassSink.Count() != 0 {
		t.Errorf("expected no rule class entries, got %d", ruleClassSink.Count())
	}
}

func newActionFixture() (*encoder.KnownActions, *domain.ActionGraphContainer) {
	container := &domain.ActionGraphContainer{}
	ruleClasses := encoder.NewKnownRuleClassStrings(&container.RuleClasses)
	targets := encoder.NewKnownTargets(&container.Targets, ruleClasses)
	artifacts := encoder.NewKnownArtifacts(&container.Artifacts)
	configurations := encoder.NewKnownConfigurations(&container.Configurations)
	actions := encoder.NewKnownActions(&container.Actions, targets, configurations, artifacts)
	return actions, container
}

func TestKnownActions_ResolvesNestedIDs(t *testing.T) {
	actions, container := newActionFixture()
	owner := mustLabel(t, "//lib:lib")

	spec := domain.ActionSpec{
		Mnemonic:      "GoCompile",
		Configuration: "linux-fastbuild",
		Arguments:     []string{"compile", "-o", "lib.a"},
		Inputs:        []string{"lib/a.go", "lib/b.go"},
		Outputs:       []string{"out/lib.a"},
		Env:           map[string]string{"GOOS": "linux", "CGO_ENABLED": "0"},
	}

	id, err := actions.DataToID(owner, "go_library", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("expected action id 1, got %d", id)
	}

	action := container.Actions.Items()[0]
	if action.TargetID != container.Targets.Items()[0].ID {
		t.Errorf("expected action to reference target %d, got %d", container.Targets.Items()[0].ID, action.TargetID)
	}
	if action.ConfigurationID != container.Configurations.Items()[0].ID {
		t.Errorf("expected action to reference configuration %d, got %d", container.Configurations.Items()[0].ID, action.ConfigurationID)
	}
	if container.Artifacts.Count() != 3 {
		t.Fatalf("expected 3 artifacts, got %d", container.Artifacts.Count())
	}
	if len(action.InputIDs) != 2 || len(action.OutputIDs) != 1 {
		t.Fatalf("expected 2 input ids and 1 output id, got %d and %d", len(action.InputIDs), len(action.OutputIDs))
	}

	// Env vars are emitted in sorted key order.
	if action.EnvVars[0].Key != "CGO_ENABLED" || action.EnvVars[1].Key != "GOOS" {
		t.Errorf("expected env vars sorted by key, got %v", action.EnvVars)
	}
}

func TestKnownActions_SharedArtifacts(t *testing.T) {
	actions, container := newActionFixture()
	owner := mustLabel(t, "//lib:lib")

	compile := domain.ActionSpec{
		Mnemonic: "GoCompile",
		Inputs:   []string{"lib/a.go"},
		Outputs:  []string{"out/lib.a"},
	}
	link := domain.ActionSpec{
		Mnemonic: "GoLink",
		Inputs:   []string{"out/lib.a"},
		Outputs:  []string{"out/lib"},
	}

	if _, err := actions.DataToID(owner, "go_library", compile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := actions.DataToID(owner, "go_library", link); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "out/lib.a" is both an output of compile and an input of link; it must
	// be materialized once and referenced by the same id in both actions.
	if container.Artifacts.Count() != 3 {
		t.Fatalf("expected 3 unique artifacts, got %d", container.Artifacts.Count())
	}
	compiled := container.Actions.Items()[0]
	linked := container.Actions.Items()[1]
	if compiled.OutputIDs[0] != linked.InputIDs[0] {
		t.Errorf("expected shared artifact to have one id, got %d and %d", compiled.OutputIDs[0], linked.InputIDs[0])
	}
}

func TestKnownActions_Deduplicates(t *testing.T) {
	actions, container := newActionFixture()
	owner := mustLabel(t, "//lib:lib")

	spec := domain.ActionSpec{Mnemonic: "GoCompile", Inputs: []string{"lib/a.go"}}

	id1, err := actions.DataToID(owner, "go_library", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, err := actions.DataToID(owner, "go_library", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id1 != id2 {
		t.Errorf("expected equal actions to intern to one id, got %d and %d", id1, id2)
	}
	if container.Actions.Count() != 1 {
		t.Errorf("expected 1 action entry, got %d", container.Actions.Count())
	}
	if actions.Size() != 1 {
		t.Errorf("expected cache size 1, got %d", actions.Size())
	}
}

func TestKnownActions_MissingMnemonicFails(t *testing.T) {
	actions, container := newActionFixture()
	owner := mustLabel(t, "//lib:lib")

	_, err := actions.DataToID(owner, "go_library", domain.ActionSpec{Inputs: []string{"lib/a.go"}})
	if !errors.Is(err, domain.ErrMissingMnemonic) {
		t.Fatalf("expected ErrMissingMnemonic, got %v", err)
	}

	// Construction failed, so nothing may have been recorded or published.
	if actions.Size() != 0 {
		t.Errorf("expected no action recorded, got size %d", actions.Size())
	}
	if container.Actions.Count() != 0 {
		t.Errorf("expected empty action sink, got %d", container.Actions.Count())
	}
}

func TestKnownConfigurations_ChecksumIsStable(t *testing.T) {
	var sink domain.Section[domain.Configuration]
	configurations := encoder.NewKnownConfigurations(&sink)

	if _, err := configurations.DataToID("linux-fastbuild"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var other domain.Section[domain.Configuration]
	again := encoder.NewKnownConfigurations(&other)
	if _, err := again.DataToID("linux-fastbuild"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sink.Items()[0].Checksum != other.Items()[0].Checksum {
		t.Errorf("expected identical checksums across cache instances, got %q and %q",
			sink.Items()[0].Checksum, other.Items()[0].Checksum)
	}
	if len(sink.Items()[0].Checksum) != 16 {
		t.Errorf("expected 16 hex chars, got %q", sink.Items()[0].Checksum)
	}
}
