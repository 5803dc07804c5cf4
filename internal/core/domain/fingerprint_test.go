package domain_test

import (
	"testing"

	"go.trai.ch/agraph/internal/core/domain"
)

func TestActionSpec_Fingerprint(t *testing.T) {
	base := domain.ActionSpec{
		Mnemonic:      "GoCompile",
		Configuration: "linux-fastbuild",
		Arguments:     []string{"compile", "-o", "lib.a"},
		Inputs:        []string{"lib/a.go"},
		Outputs:       []string{"bin/lib.a"},
		Env:           map[string]string{"GOOS": "linux", "GOARCH": "amd64"},
	}

	t.Run("stable across calls", func(t *testing.T) {
		if base.Fingerprint() != base.Fingerprint() {
			t.Error("expected identical specs to produce identical fingerprints")
		}
	})

	t.Run("env order does not matter", func(t *testing.T) {
		other := base
		other.Env = map[string]string{"GOARCH": "amd64", "GOOS": "linux"}
		if base.Fingerprint() != other.Fingerprint() {
			t.Error("expected fingerprint to be independent of env map order")
		}
	})

	t.Run("field changes change the fingerprint", func(t *testing.T) {
		variants := map[string]domain.ActionSpec{
			"mnemonic":      {Mnemonic: "GoLink", Configuration: base.Configuration, Arguments: base.Arguments, Inputs: base.Inputs, Outputs: base.Outputs, Env: base.Env},
			"configuration": {Mnemonic: base.Mnemonic, Configuration: "darwin-opt", Arguments: base.Arguments, Inputs: base.Inputs, Outputs: base.Outputs, Env: base.Env},
			"arguments":     {Mnemonic: base.Mnemonic, Configuration: base.Configuration, Arguments: []string{"compile"}, Inputs: base.Inputs, Outputs: base.Outputs, Env: base.Env},
			"inputs":        {Mnemonic: base.Mnemonic, Configuration: base.Configuration, Arguments: base.Arguments, Inputs: []string{"lib/b.go"}, Outputs: base.Outputs, Env: base.Env},
			"outputs":       {Mnemonic: base.Mnemonic, Configuration: base.Configuration, Arguments: base.Arguments, Inputs: base.Inputs, Outputs: []string{"bin/lib.so"}, Env: base.Env},
			"env value":     {Mnemonic: base.Mnemonic, Configuration: base.Configuration, Arguments: base.Arguments, Inputs: base.Inputs, Outputs: base.Outputs, Env: map[string]string{"GOOS": "darwin", "GOARCH": "amd64"}},
		}
		for name, variant := range variants {
			if variant.Fingerprint() == base.Fingerprint() {
				t.Errorf("expected changed %s to change the fingerprint", name)
			}
		}
	})

	t.Run("field boundaries do not collide", func(t *testing.T) {
		// Length prefixing keeps adjacent fields apart: ["ab"] vs ["a","b"]
		// and mnemonic/configuration splits must all hash differently.
		joined := domain.ActionSpec{Arguments: []string{"ab"}}
		split := domain.ActionSpec{Arguments: []string{"a", "b"}}
		if joined.Fingerprint() == split.Fingerprint() {
			t.Error("expected differently split argument lists to differ")
		}

		shifted := domain.ActionSpec{Mnemonic: "ab"}
		moved := domain.ActionSpec{Mnemonic: "a", Configuration: "b"}
		if shifted.Fingerprint() == moved.Fingerprint() {
			t.Error("expected content shifted across fields to differ")
		}
	})
}

func TestActionSpec_Key(t *testing.T) {
	spec := domain.ActionSpec{Mnemonic: "GoCompile"}
	owner := mustLabel(t, "//lib:lib")
	other := mustLabel(t, "//app:app")

	if spec.Key(owner) != spec.Key(owner) {
		t.Error("expected identical owner and spec to produce the same key")
	}
	if spec.Key(owner) == spec.Key(other) {
		t.Error("expected the same spec under different owners to produce different keys")
	}
}
