package capability

import "context"

// FlatWeightSource gives every member the same configured weight. It is the
// default when no external reputation system is wired in.
type FlatWeightSource struct {
	weight int64
}

func NewFlatWeightSource(weight int64) *FlatWeightSource {
	return &FlatWeightSource{weight: weight}
}

func (s *FlatWeightSource) GetVotingWeight(_ context.Context, _ int) (int64, error) {
	return s.weight, nil
}

func (s *FlatWeightSource) GetIdentityRecord(_ context.Context, _ int) (IdentityRecord, error) {
	return IdentityRecord{Verified: false, Label: ""}, nil
}

// DisabledPrivacyBackend rejects every call; used when privacy mode is off.
type DisabledPrivacyBackend struct{}

func (DisabledPrivacyBackend) RecordEncryptedVote(_ context.Context, _, _ int, _ []byte) error {
	return ErrPrivacyDisabled
}

func (DisabledPrivacyBackend) CheckApproval(_ context.Context, _ int, _ int64) (bool, error) {
	return false, ErrPrivacyDisabled
}

// NullDocumentRegistry stores nothing and resolves nothing.
type NullDocumentRegistry struct{}

func (NullDocumentRegistry) Store(_ context.Context, _ []byte, _ map[string]string) (string, error) {
	return "", nil
}

func (NullDocumentRegistry) GetHandle(_ context.Context, _ int) (string, error) {
	return "", ErrNoDocumentHandle
}
