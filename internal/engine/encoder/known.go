package encoder

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"go.trai.ch/agraph/internal/core/domain"
	"go.trai.ch/agraph/internal/core/ports"
)

// Sections of the container satisfy the sink contract the caches append to.
var (
	_ ports.Sink[domain.RuleClass]     = (*domain.Section[domain.RuleClass])(nil)
	_ ports.Sink[domain.Target]        = (*domain.Section[domain.Target])(nil)
	_ ports.Sink[domain.Artifact]      = (*domain.Section[domain.Artifact])(nil)
	_ ports.Sink[domain.Configuration] = (*domain.Section[domain.Configuration])(nil)
	_ ports.Sink[domain.Action]        = (*domain.Section[domain.Action])(nil)
)

// KnownRuleClassStrings interns rule class names into the ruleClasses section.
type KnownRuleClassStrings struct {
	*Cache[string, domain.RuleClass]
}

// NewKnownRuleClassStrings creates the rule class cache bound to sink.
func NewKnownRuleClassStrings(sink ports.Sink[domain.RuleClass]) *KnownRuleClassStrings {
	return &KnownRuleClassStrings{Cache: NewCache(
		func(name string, id uint32) (domain.RuleClass, error) {
			return domain.RuleClass{ID: id, Name: name}, nil
		},
		sink.Append,
	)}
}

// TargetKey carries the fields of a configured target that determine its
// serialized form. Equality is semantic: label plus rule class string.
type TargetKey struct {
	Label     domain.Label
	RuleClass string
}

// KnownTargets interns configured targets into the targets section,
// delegating rule class strings to KnownRuleClassStrings.
type KnownTargets struct {
	*Cache[TargetKey, domain.Target]
}

// NewKnownTargets creates the target cache bound to sink and ruleClasses.
func NewKnownTargets(sink ports.Sink[domain.Target], ruleClasses *KnownRuleClassStrings) *KnownTargets {
	return &KnownTargets{Cache: NewCache(
		func(key TargetKey, id uint32) (domain.Target, error) {
			target := domain.Target{ID: id, Label: key.Label.String()}
			if key.RuleClass != "" {
				ruleClassID, err := ruleClasses.DataToID(key.RuleClass)
				if err != nil {
					return domain.Target{}, err
				}
				target.RuleClassID = &ruleClassID
			}
			return target, nil
		},
		sink.Append,
	)}
}

// KnownArtifacts interns artifact exec paths into the artifacts section.
type KnownArtifacts struct {
	*Cache[string, domain.Artifact]
}

// NewKnownArtifacts creates the artifact cache bound to sink.
func NewKnownArtifacts(sink ports.Sink[domain.Artifact]) *KnownArtifacts {
	return &KnownArtifacts{Cache: NewCache(
		func(execPath string, id uint32) (domain.Artifact, error) {
			return domain.Artifact{ID: id, ExecPath: execPath}, nil
		},
		sink.Append,
	)}
}

// KnownConfigurations interns configuration mnemonics into the
// configurations section.
type KnownConfigurations struct {
	*Cache[string, domain.Configuration]
}

// NewKnownConfigurations creates the configuration cache bound to sink.
func NewKnownConfigurations(sink ports.Sink[domain.Configuration]) *KnownConfigurations {
	return &KnownConfigurations{Cache: NewCache(
		func(mnemonic string, id uint32) (domain.Configuration, error) {
			return domain.Configuration{
				ID:       id,
				Mnemonic: mnemonic,
				Checksum: fmt.Sprintf("%016x", xxhash.Sum64String(mnemonic)),
			}, nil
		},
		sink.Append,
	)}
}

// actionData is the construction payload registered alongside an action key.
type actionData struct {
	ruleClass string
	spec      domain.ActionSpec
}

// KnownActions interns actions into the actions section, resolving the
// owning target, configuration and artifact references through the sibling
// caches. The semantic key of an action is its owner plus the fingerprint of
// its canonical encoding; the full spec rides along in a write-once registry
// because the fingerprint alone cannot reproduce it.
type KnownActions struct {
	cache          *Cache[domain.ActionKey, domain.Action]
	targets        *KnownTargets
	configurations *KnownConfigurations
	artifacts      *KnownArtifacts

	mu    sync.Mutex
	specs map[domain.ActionKey]actionData
}

// NewKnownActions creates the action cache bound to sink and its sibling caches.
func NewKnownActions(
	sink ports.Sink[domain.Action],
	targets *KnownTargets,
	configurations *KnownConfigurations,
	artifacts *KnownArtifacts,
) *KnownActions {
	k := &KnownActions{
		targets:        targets,
		configurations: configurations,
		artifacts:      artifacts,
		specs:          make(map[domain.ActionKey]actionData),
	}
	k.cache = NewCache(k.construct, sink.Append)
	return k
}

// DataToID interns the action registered by owner and returns its id.
func (k *KnownActions) DataToID(owner domain.Label, ruleClass string, spec domain.ActionSpec) (uint32, error) {
	key := spec.Key(owner)

	k.mu.Lock()
	if _, ok := k.specs[key]; !ok {
		k.specs[key] = actionData{ruleClass: ruleClass, spec: spec}
	}
	k.mu.Unlock()

	return k.cache.DataToID(key)
}

// Size returns the number of unique actions interned so far.
func (k *KnownActions) Size() int {
	return k.cache.Size()
}

func (k *KnownActions) construct(key domain.ActionKey, id uint32) (domain.Action, error) {
	k.mu.Lock()
	data := k.specs[key]
	k.mu.Unlock()

	if data.spec.Mnemonic == "" {
		return domain.Action{}, zerr.With(domain.ErrMissingMnemonic, "owner", key.Owner.String())
	}

	targetID, err := k.targets.DataToID(TargetKey{Label: key.Owner, RuleClass: data.ruleClass})
	if err != nil {
		return domain.Action{}, err
	}

	mnemonic := data.spec.Configuration
	if mnemonic == "" {
		mnemonic = "default"
	}
	configurationID, err := k.configurations.DataToID(mnemonic)
	if err != nil {
		return domain.Action{}, err
	}

	inputIDs, err := k.artifactIDs(data.spec.Inputs)
	if err != nil {
		return domain.Action{}, err
	}
	outputIDs, err := k.artifactIDs(data.spec.Outputs)
	if err != nil {
		return domain.Action{}, err
	}

	return domain.Action{
		ID:              id,
		TargetID:        targetID,
		ConfigurationID: configurationID,
		Mnemonic:        data.spec.Mnemonic,
		ActionKey:       fmt.Sprintf("%016x", key.Digest),
		Arguments:       data.spec.Arguments,
		InputIDs:        inputIDs,
		OutputIDs:       outputIDs,
		EnvVars:         sortedEnvVars(data.spec.Env),
	}, nil
}

func (k *KnownActions) artifactIDs(paths []string) ([]uint32, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	ids := make([]uint32, len(paths))
	for i, path := range paths {
		id, err := k.artifacts.DataToID(path)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func sortedEnvVars(env map[string]string) []domain.KeyValue {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	vars := make([]domain.KeyValue, len(keys))
	for i, key := range keys {
		vars[i] = domain.KeyValue{Key: key, Value: env[key]}
	}
	return vars
}
