// Package capability holds the collaborator interfaces the engine consumes
// but does not implement: identity-based vote weighting, encrypted-tally
// voting, document storage, and per-operator yield vaults. Concrete
// implementations are injected at construction; deployments pick them via
// config.
package capability

import (
	"context"
	"errors"
)

var (
	ErrPrivacyDisabled  = errors.New("privacy tally backend is not configured")
	ErrNoDocumentHandle = errors.New("no document handle for entity")
)

type IdentityRecord struct {
	Verified bool
	Label    string
}

// VotingWeightSource resolves a member's voting weight from an external
// reputation system. Weights are snapshotted at vote time and must never be
// applied retroactively to already-cast votes.
type VotingWeightSource interface {
	GetVotingWeight(ctx context.Context, memberID int) (int64, error)
	GetIdentityRecord(ctx context.Context, memberID int) (IdentityRecord, error)
}

// PrivacyTallyBackend stores encrypted ballots and answers threshold
// queries without revealing individual choices. Proposal phase transitions
// remain the engine's responsibility.
type PrivacyTallyBackend interface {
	RecordEncryptedVote(ctx context.Context, proposalID int, voterID int, encryptedChoice []byte) error
	CheckApproval(ctx context.Context, proposalID int, requiredVotes int64) (bool, error)
}

// DocumentRegistry attaches opaque document references to proposals and
// loans. Content and cost accounting live outside the engine.
type DocumentRegistry interface {
	Store(ctx context.Context, data []byte, metadata map[string]string) (string, error)
	GetHandle(ctx context.Context, entityID int) (string, error)
}

// YieldVault is one external yield operator seen as an opaque capital sink.
// The allocator only tracks amounts it sent and received.
type YieldVault interface {
	Delegate(ctx context.Context, operatorID int, amount int64) error
	Undelegate(ctx context.Context, operatorID int, amount int64) error
	ClaimRewards(ctx context.Context, operatorID int) (int64, error)
}
