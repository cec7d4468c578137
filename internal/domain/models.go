package domain

import "time"

// All monetary amounts are int64 in minor treasury units. Rates and shares
// are integer basis points (10000 bps = 100%). Division is floor division
// everywhere; threshold and pricing boundaries depend on it.

const (
	MemberStatusActive   = "ACTIVE"
	MemberStatusInactive = "INACTIVE"
)

const (
	ProposalPhaseEditing  = "EDITING"
	ProposalPhaseVoting   = "VOTING"
	ProposalPhaseExecuted = "EXECUTED"
)

const (
	ProposalStatusPending  = "PENDING"
	ProposalStatusApproved = "APPROVED"
	ProposalStatusRejected = "REJECTED"
)

const (
	LoanStatusActive = "ACTIVE"
	LoanStatusRepaid = "REPAID"
)

const (
	OperatorStatusActive  = "ACTIVE"
	OperatorStatusRemoved = "REMOVED"
)

const (
	ProposalKindLoan     = "LOAN"
	ProposalKindTreasury = "TREASURY"
)

type Member struct {
	ID            int       `db:"id"`
	Login         string    `db:"login"`
	PasswordHash  string    `db:"password_hash"`
	Status        string    `db:"status"`
	IsAdmin       bool      `db:"is_admin"`
	JoinedAt      time.Time `db:"joined_at"`
	Contribution  int64     `db:"contribution"`
	ShareBalance  int64     `db:"share_balance"`
	HasActiveLoan bool      `db:"has_active_loan"`
	LastLoanAt    time.Time `db:"last_loan_at"`
	VoteWeight    int64     `db:"vote_weight"`
}

type LoanProposal struct {
	ID               int       `db:"id"`
	BorrowerID       int       `db:"borrower_id"`
	Amount           int64     `db:"amount"`
	Private          bool      `db:"private"`
	AmountCommitment string    `db:"amount_commitment"`
	InterestRateBps  int64     `db:"interest_rate_bps"`
	TotalRepayment   int64     `db:"total_repayment"`
	TermSeconds      int64     `db:"term_seconds"`
	VotesFor         int       `db:"votes_for"`
	VotesAgainst     int       `db:"votes_against"`
	WeightFor        int64     `db:"weight_for"`
	WeightAgainst    int64     `db:"weight_against"`
	Phase            string    `db:"phase"`
	Status           string    `db:"status"`
	DocumentHandle   string    `db:"document_handle"`
	CreatedAt        time.Time `db:"created_at"`
	EditingDeadline  time.Time `db:"editing_deadline"`
	VotingDeadline   time.Time `db:"voting_deadline"`
}

type TreasuryProposal struct {
	ID             int       `db:"id"`
	ProposerID     int       `db:"proposer_id"`
	Amount         int64     `db:"amount"`
	Destination    string    `db:"destination"`
	Reason         string    `db:"reason"`
	VotesFor       int       `db:"votes_for"`
	VotesAgainst   int       `db:"votes_against"`
	WeightFor      int64     `db:"weight_for"`
	WeightAgainst  int64     `db:"weight_against"`
	Phase          string    `db:"phase"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	VotingDeadline time.Time `db:"voting_deadline"`
}

type Loan struct {
	ID              int       `db:"id"`
	ProposalID      int       `db:"proposal_id"`
	BorrowerID      int       `db:"borrower_id"`
	Principal       int64     `db:"principal"`
	InterestRateBps int64     `db:"interest_rate_bps"`
	TotalRepayment  int64     `db:"total_repayment"`
	AmountRepaid    int64     `db:"amount_repaid"`
	Status          string    `db:"status"`
	StartedAt       time.Time `db:"started_at"`
	DueAt           time.Time `db:"due_at"`
}

// WeightedVote is an append-only audit record. Weight is a snapshot taken
// when the ballot is cast and is never recalculated.
type WeightedVote struct {
	ID           int       `db:"id"`
	ProposalKind string    `db:"proposal_kind"`
	ProposalID   int       `db:"proposal_id"`
	VoterID      int       `db:"voter_id"`
	Support      bool      `db:"support"`
	Weight       int64     `db:"weight"`
	CastAt       time.Time `db:"cast_at"`
}

type Operator struct {
	ID                int       `db:"id"`
	Name              string    `db:"name"`
	Endpoint          string    `db:"endpoint"`
	Status            string    `db:"status"`
	Delegated         int64     `db:"delegated"`
	CumulativeRewards int64     `db:"cumulative_rewards"`
	PerformanceScore  int64     `db:"performance_score"`
	ExpectedYieldBps  int64     `db:"expected_yield_bps"`
	ActualYieldBps    int64     `db:"actual_yield_bps"`
	SlashingEvents    int       `db:"slashing_events"`
	UptimeBps         int64     `db:"uptime_bps"`
	ApprovedAt        time.Time `db:"approved_at"`
}

type RewardBalance struct {
	MemberID        int   `db:"member_id"`
	PendingInterest int64 `db:"pending_interest"`
	PendingYield    int64 `db:"pending_yield"`
}

type Treasury struct {
	Balance            int64 `db:"balance"`
	Delegated          int64 `db:"delegated"`
	TotalContributions int64 `db:"total_contributions"`
	OperationalPool    int64 `db:"operational_pool"`
}

type Policy struct {
	MembershipFee        int64 `db:"membership_fee"`
	MinMembershipSecs    int64 `db:"min_membership_secs"`
	LoanCooldownSecs     int64 `db:"loan_cooldown_secs"`
	EditingPeriodSecs    int64 `db:"editing_period_secs"`
	VotingPeriodSecs     int64 `db:"voting_period_secs"`
	LoanThresholdBps     int64 `db:"loan_threshold_bps"`
	TreasuryThresholdBps int64 `db:"treasury_threshold_bps"`
	MinRateBps           int64 `db:"min_rate_bps"`
	MaxRateBps           int64 `db:"max_rate_bps"`
	MaxLoanTermSecs      int64 `db:"max_loan_term_secs"`
	MaxLoanRatioBps      int64 `db:"max_loan_ratio_bps"`
	DefaultVoteWeight    int64 `db:"default_vote_weight"`
	WeightedMode         bool  `db:"weighted_mode"`
	PrivacyMode          bool  `db:"privacy_mode"`
	AllocationBps        int64 `db:"allocation_bps"`
	EmergencyReserve     int64 `db:"emergency_reserve"`
	RebalanceThreshold   int64 `db:"rebalance_threshold"`
	MinOperatorCount     int   `db:"min_operator_count"`
	AutoOptimize         bool  `db:"auto_optimize"`
	MemberShareBps       int64 `db:"member_share_bps"`
	TreasuryShareBps     int64 `db:"treasury_share_bps"`
	OperationalShareBps  int64 `db:"operational_share_bps"`
	Paused               bool  `db:"paused"`
}

type Event struct {
	ID         string    `db:"id"`
	Kind       string    `db:"kind"`
	EntityType string    `db:"entity_type"`
	EntityID   int       `db:"entity_id"`
	Payload    []byte    `db:"payload"`
	CreatedAt  time.Time `db:"created_at"`
}
