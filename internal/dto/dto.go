// Package dto defines the JSON request/response shapes of the HTTP API.
package dto

import "time"

type RegisterRequestDTO struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Fee      int64  `json:"fee"`
}

type LoginRequestDTO struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthResponseDTO struct {
	MemberID int    `json:"member_id"`
	Token    string `json:"token"`
}

type MemberResponseDTO struct {
	ID            int       `json:"id"`
	Login         string    `json:"login"`
	Status        string    `json:"status"`
	IsAdmin       bool      `json:"is_admin"`
	JoinedAt      time.Time `json:"joined_at"`
	Contribution  int64     `json:"contribution"`
	ShareBalance  int64     `json:"share_balance"`
	HasActiveLoan bool      `json:"has_active_loan"`
	VoteWeight    int64     `json:"vote_weight"`
}

type ExitResponseDTO struct {
	ExitShare int64 `json:"exit_share"`
}

type CreateLoanProposalRequestDTO struct {
	Amount           int64  `json:"amount"`
	Private          bool   `json:"private"`
	AmountCommitment string `json:"amount_commitment,omitempty"`
}

type EditLoanProposalRequestDTO struct {
	Amount           int64  `json:"amount"`
	AmountCommitment string `json:"amount_commitment,omitempty"`
}

// LoanProposalResponseDTO hides the amount behind the commitment when the
// proposal is private.
type LoanProposalResponseDTO struct {
	ID               int       `json:"id"`
	BorrowerID       int       `json:"borrower_id"`
	Amount           *int64    `json:"amount,omitempty"`
	Private          bool      `json:"private"`
	AmountCommitment string    `json:"amount_commitment,omitempty"`
	InterestRateBps  int64     `json:"interest_rate_bps"`
	TotalRepayment   *int64    `json:"total_repayment,omitempty"`
	TermSeconds      int64     `json:"term_seconds"`
	VotesFor         int       `json:"votes_for"`
	VotesAgainst     int       `json:"votes_against"`
	WeightFor        int64     `json:"weight_for"`
	WeightAgainst    int64     `json:"weight_against"`
	Phase            string    `json:"phase"`
	Status           string    `json:"status"`
	DocumentHandle   string    `json:"document_handle,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	EditingDeadline  time.Time `json:"editing_deadline"`
	VotingDeadline   time.Time `json:"voting_deadline"`
}

type CreateTreasuryProposalRequestDTO struct {
	Amount      int64  `json:"amount"`
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
}

type TreasuryProposalResponseDTO struct {
	ID             int       `json:"id"`
	ProposerID     int       `json:"proposer_id"`
	Amount         int64     `json:"amount"`
	Destination    string    `json:"destination"`
	Reason         string    `json:"reason"`
	VotesFor       int       `json:"votes_for"`
	VotesAgainst   int       `json:"votes_against"`
	WeightFor      int64     `json:"weight_for"`
	WeightAgainst  int64     `json:"weight_against"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	VotingDeadline time.Time `json:"voting_deadline"`
}

type VoteRequestDTO struct {
	Support         bool   `json:"support"`
	EncryptedChoice []byte `json:"encrypted_choice,omitempty"`
}

type VoteResponseDTO struct {
	VoterID int       `json:"voter_id"`
	Support bool      `json:"support"`
	Weight  int64     `json:"weight"`
	CastAt  time.Time `json:"cast_at"`
}

type AttachDocumentRequestDTO struct {
	Data     []byte            `json:"data"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type AttachDocumentResponseDTO struct {
	Handle string `json:"handle"`
}

type LoanResponseDTO struct {
	ID              int       `json:"id"`
	ProposalID      int       `json:"proposal_id"`
	BorrowerID      int       `json:"borrower_id"`
	Principal       int64     `json:"principal"`
	InterestRateBps int64     `json:"interest_rate_bps"`
	TotalRepayment  int64     `json:"total_repayment"`
	AmountRepaid    int64     `json:"amount_repaid"`
	Status          string    `json:"status"`
	StartedAt       time.Time `json:"started_at"`
	DueAt           time.Time `json:"due_at"`
}

type RepayLoanRequestDTO struct {
	Payment int64 `json:"payment"`
}

type TreasuryResponseDTO struct {
	Balance            int64 `json:"balance"`
	Delegated          int64 `json:"delegated"`
	Liquid             int64 `json:"liquid"`
	TotalContributions int64 `json:"total_contributions"`
	OperationalPool    int64 `json:"operational_pool"`
}

type RewardBalanceResponseDTO struct {
	PendingInterest int64 `json:"pending_interest"`
	PendingYield    int64 `json:"pending_yield"`
}

type ClaimRequestDTO struct {
	Kind string `json:"kind"`
}

type ClaimResponseDTO struct {
	Claimed int64 `json:"claimed"`
}

type BatchClaimRequestDTO struct {
	MemberIDs []int  `json:"member_ids"`
	Kind      string `json:"kind"`
}

type BatchClaimResponseDTO struct {
	Paid   int64 `json:"paid"`
	Failed []int `json:"failed,omitempty"`
}

type ApproveOperatorRequestDTO struct {
	Name             string `json:"name"`
	Endpoint         string `json:"endpoint"`
	ExpectedYieldBps int64  `json:"expected_yield_bps"`
}

type OperatorResponseDTO struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	Delegated         int64     `json:"delegated"`
	CumulativeRewards int64     `json:"cumulative_rewards"`
	PerformanceScore  int64     `json:"performance_score"`
	ExpectedYieldBps  int64     `json:"expected_yield_bps"`
	ActualYieldBps    int64     `json:"actual_yield_bps"`
	SlashingEvents    int       `json:"slashing_events"`
	UptimeBps         int64     `json:"uptime_bps"`
	ApprovedAt        time.Time `json:"approved_at"`
}

type OperatorPerformanceRequestDTO struct {
	UptimeBps      int64 `json:"uptime_bps"`
	ActualYieldBps int64 `json:"actual_yield_bps"`
	SlashingEvents int   `json:"slashing_events"`
}

type EmergencyExitRequestDTO struct {
	Reason string `json:"reason"`
}

type EmergencyExitResponseDTO struct {
	Recalled int64 `json:"recalled"`
	Failed   []int `json:"failed,omitempty"`
}

type SetThresholdsRequestDTO struct {
	LoanThresholdBps     int64 `json:"loan_threshold_bps"`
	TreasuryThresholdBps int64 `json:"treasury_threshold_bps"`
}

type SetLoanPolicyRequestDTO struct {
	MinRateBps      int64 `json:"min_rate_bps"`
	MaxRateBps      int64 `json:"max_rate_bps"`
	MaxLoanTermSecs int64 `json:"max_loan_term_secs"`
	MaxLoanRatioBps int64 `json:"max_loan_ratio_bps"`
}

type SetSharesRequestDTO struct {
	MemberShareBps      int64 `json:"member_share_bps"`
	TreasuryShareBps    int64 `json:"treasury_share_bps"`
	OperationalShareBps int64 `json:"operational_share_bps"`
}

type SetRestakingParamsRequestDTO struct {
	AllocationBps      int64 `json:"allocation_bps"`
	EmergencyReserve   int64 `json:"emergency_reserve"`
	RebalanceThreshold int64 `json:"rebalance_threshold"`
	MinOperatorCount   int   `json:"min_operator_count"`
	AutoOptimize       bool  `json:"auto_optimize"`
}

type SetVotingParamsRequestDTO struct {
	EditingPeriodSecs int64 `json:"editing_period_secs"`
	VotingPeriodSecs  int64 `json:"voting_period_secs"`
	DefaultVoteWeight int64 `json:"default_vote_weight"`
	WeightedMode      bool  `json:"weighted_mode"`
	PrivacyMode       bool  `json:"privacy_mode"`
}

type SetPauseRequestDTO struct {
	Paused bool `json:"paused"`
}

type AdminRequestDTO struct {
	MemberID int `json:"member_id"`
}
