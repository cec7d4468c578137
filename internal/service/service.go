package service

import (
	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/pg"
	"github.com/akarpov/coopledger/internal/repo"
	allocservice "github.com/akarpov/coopledger/internal/service/allocservice"
	loanservice "github.com/akarpov/coopledger/internal/service/loanservice"
	memberservice "github.com/akarpov/coopledger/internal/service/memberservice"
	policyservice "github.com/akarpov/coopledger/internal/service/policyservice"
	proposalservice "github.com/akarpov/coopledger/internal/service/proposalservice"
	rewardservice "github.com/akarpov/coopledger/internal/service/rewardservice"
	votingservice "github.com/akarpov/coopledger/internal/service/votingservice"

	pkgauth "github.com/akarpov/coopledger/pkg/auth"
)

// Capabilities are the injected external collaborators. Deployments that
// run without an identity system, privacy coordinator or document store
// use the defaults from the capability package.
type Capabilities struct {
	WeightSource capability.VotingWeightSource
	Privacy      capability.PrivacyTallyBackend
	Documents    capability.DocumentRegistry
	Vault        capability.YieldVault
}

type Services struct {
	MemberService   *memberservice.Service
	ProposalService *proposalservice.Service
	VotingService   *votingservice.Service
	LoanService     *loanservice.Service
	RewardService   *rewardservice.Service
	AllocService    *allocservice.Service
	PolicyService   *policyservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, caps Capabilities) *Services {
	rewardService := rewardservice.New(repo.RewardRepo, repo.MemberRepo, repo.TreasuryRepo, repo.PolicyRepo, repo.EventRepo, txManager)
	loanService := loanservice.New(repo.LoanRepo, repo.MemberRepo, repo.TreasuryRepo, repo.PolicyRepo, repo.EventRepo, rewardService, txManager)
	memberService := memberservice.New(repo.MemberRepo, repo.TreasuryRepo, repo.PolicyRepo, repo.EventRepo, rewardService, caps.WeightSource, &pkgauth.HashService{}, &pkgauth.JWTService{}, txManager)
	proposalService := proposalservice.New(repo.ProposalRepo, repo.MemberRepo, repo.TreasuryRepo, repo.PolicyRepo, repo.EventRepo, memberService, caps.Documents, txManager)
	votingService := votingservice.New(repo.ProposalRepo, repo.VoteRepo, repo.MemberRepo, repo.TreasuryRepo, repo.PolicyRepo, repo.EventRepo, loanService, caps.WeightSource, caps.Privacy, txManager)
	allocService := allocservice.New(repo.OperatorRepo, repo.TreasuryRepo, repo.PolicyRepo, repo.EventRepo, rewardService, caps.Vault, txManager)
	policyService := policyservice.New(repo.MemberRepo, repo.PolicyRepo, repo.EventRepo, txManager)

	return &Services{
		MemberService:   memberService,
		ProposalService: proposalService,
		VotingService:   votingService,
		LoanService:     loanService,
		RewardService:   rewardService,
		AllocService:    allocService,
		PolicyService:   policyService,
	}
}
