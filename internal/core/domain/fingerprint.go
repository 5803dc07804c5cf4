package domain

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// ActionKey is the deduplication key for an action. Two actions registered by
// the same target with identical canonical encodings are the same action.
type ActionKey struct {
	Owner  Label
	Digest uint64
}

// Key returns the ActionKey of the action as registered by owner.
func (a ActionSpec) Key(owner Label) ActionKey {
	return ActionKey{Owner: owner, Digest: a.Fingerprint()}
}

// Fingerprint computes a stable XXHash64 digest over the canonical encoding
// of the action: mnemonic, configuration, arguments, inputs, outputs and the
// environment in sorted key order. Fields are length-prefixed so that
// adjacent values cannot collide by concatenation.
func (a ActionSpec) Fingerprint() uint64 {
	h := xxhash.New()

	hashString(h, a.Mnemonic)
	hashString(h, a.Configuration)
	hashStrings(h, a.Arguments)
	hashStrings(h, a.Inputs)
	hashStrings(h, a.Outputs)
	hashEnv(h, a.Env)

	return h.Sum64()
}

func hashString(h *xxhash.Digest, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(s)
}

func hashStrings(h *xxhash.Digest, strs []string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(strs)))
	_, _ = h.Write(buf[:])
	for _, s := range strs {
		hashString(h, s)
	}
}

func hashEnv(h *xxhash.Digest, env map[string]string) {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(keys)))
	_, _ = h.Write(buf[:])
	for _, k := range keys {
		hashString(h, k)
		hashString(h, env[k])
	}
}
