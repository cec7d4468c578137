package repo

import (
	"github.com/akarpov/coopledger/internal/pg"
	eventrepo "github.com/akarpov/coopledger/internal/repo/event-repo"
	loanrepo "github.com/akarpov/coopledger/internal/repo/loan-repo"
	memberrepo "github.com/akarpov/coopledger/internal/repo/member-repo"
	operatorrepo "github.com/akarpov/coopledger/internal/repo/operator-repo"
	policyrepo "github.com/akarpov/coopledger/internal/repo/policy-repo"
	proposalrepo "github.com/akarpov/coopledger/internal/repo/proposal-repo"
	rewardrepo "github.com/akarpov/coopledger/internal/repo/reward-repo"
	treasuryrepo "github.com/akarpov/coopledger/internal/repo/treasury-repo"
	voterepo "github.com/akarpov/coopledger/internal/repo/vote-repo"
)

type Repositories struct {
	MemberRepo   *memberrepo.Repository
	ProposalRepo *proposalrepo.Repository
	VoteRepo     *voterepo.Repository
	LoanRepo     *loanrepo.Repository
	OperatorRepo *operatorrepo.Repository
	RewardRepo   *rewardrepo.Repository
	TreasuryRepo *treasuryrepo.Repository
	PolicyRepo   *policyrepo.Repository
	EventRepo    *eventrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		MemberRepo:   memberrepo.New(conn),
		ProposalRepo: proposalrepo.New(conn),
		VoteRepo:     voterepo.New(conn),
		LoanRepo:     loanrepo.New(conn),
		OperatorRepo: operatorrepo.New(conn),
		RewardRepo:   rewardrepo.New(conn),
		TreasuryRepo: treasuryrepo.New(conn),
		PolicyRepo:   policyrepo.New(conn),
		EventRepo:    eventrepo.New(conn),
	}
}
