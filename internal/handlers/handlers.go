package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/akarpov/coopledger/docs"
	adminhandlers "github.com/akarpov/coopledger/internal/handlers/admin"
	loanhandlers "github.com/akarpov/coopledger/internal/handlers/loans"
	memberhandlers "github.com/akarpov/coopledger/internal/handlers/members"
	proposalhandlers "github.com/akarpov/coopledger/internal/handlers/proposals"
	rewardhandlers "github.com/akarpov/coopledger/internal/handlers/rewards"
	treasuryhandlers "github.com/akarpov/coopledger/internal/handlers/treasury"
	"github.com/akarpov/coopledger/internal/metrics"
	"github.com/akarpov/coopledger/internal/service"
	"github.com/akarpov/coopledger/pkg/auth"
	"github.com/akarpov/coopledger/pkg/utils"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

// PauseState reports the engine-wide pause flag consulted before any
// mutating member request.
type PauseState interface {
	Paused(ctx context.Context) (bool, error)
}

type MemberHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	Exit(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
}

type ProposalHandler interface {
	CreateLoanProposal(w http.ResponseWriter, r *http.Request)
	EditLoanProposal(w http.ResponseWriter, r *http.Request)
	AttachDocument(w http.ResponseWriter, r *http.Request)
	CreateTreasuryProposal(w http.ResponseWriter, r *http.Request)
	VoteOnLoan(w http.ResponseWriter, r *http.Request)
	VoteOnTreasury(w http.ResponseWriter, r *http.Request)
	GetLoanProposal(w http.ResponseWriter, r *http.Request)
	ListLoanProposals(w http.ResponseWriter, r *http.Request)
	ListTreasuryProposals(w http.ResponseWriter, r *http.Request)
	ListVotes(w http.ResponseWriter, r *http.Request)
}

type LoanHandler interface {
	Repay(w http.ResponseWriter, r *http.Request)
	GetMyLoans(w http.ResponseWriter, r *http.Request)
	GetLoan(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	ListOverdue(w http.ResponseWriter, r *http.Request)
}

type RewardHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Claim(w http.ResponseWriter, r *http.Request)
	BatchClaim(w http.ResponseWriter, r *http.Request)
}

type TreasuryHandler interface {
	GetTreasury(w http.ResponseWriter, r *http.Request)
	ListOperators(w http.ResponseWriter, r *http.Request)
	GetOperator(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	MemberHandler   MemberHandler
	ProposalHandler ProposalHandler
	LoanHandler     LoanHandler
	RewardHandler   RewardHandler
	TreasuryHandler TreasuryHandler
	AdminHandler    *adminhandlers.AdminHandler

	pause PauseState
}

func New(s *service.Services, treasuryState treasuryhandlers.TreasuryService) *Handlers {
	return &Handlers{
		MemberHandler:   memberhandlers.New(s.MemberService),
		ProposalHandler: proposalhandlers.New(s.ProposalService, s.VotingService),
		LoanHandler:     loanhandlers.New(s.LoanService),
		RewardHandler:   rewardhandlers.New(s.RewardService),
		TreasuryHandler: treasuryhandlers.New(treasuryState, s.AllocService),
		AdminHandler:    adminhandlers.New(s.PolicyService, s.AllocService),

		pause: s.PolicyService,
	}
}

// pauseGuard rejects mutating requests while the engine-wide pause flag
// is set. Admin routes stay open so the flag can be cleared again.
func (h *Handlers) pauseGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		paused, err := h.pause.Paused(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if paused {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "engine is paused")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.pauseGuard)
			r.Post("/members/register", h.MemberHandler.Register)
			r.Post("/members/login", h.MemberHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Get("/members", h.MemberHandler.ListMembers)
				r.Get("/members/me", h.MemberHandler.GetProfile)
				r.Post("/members/exit", h.MemberHandler.Exit)

				r.Route("/proposals", func(r chi.Router) {
					r.Route("/loans", func(r chi.Router) {
						r.Post("/", h.ProposalHandler.CreateLoanProposal)
						r.Get("/", h.ProposalHandler.ListLoanProposals)
						r.Get("/{id}", h.ProposalHandler.GetLoanProposal)
						r.Patch("/{id}", h.ProposalHandler.EditLoanProposal)
						r.Post("/{id}/document", h.ProposalHandler.AttachDocument)
						r.Post("/{id}/vote", h.ProposalHandler.VoteOnLoan)
						r.Get("/{id}/votes", h.ProposalHandler.ListVotes)
					})
					r.Route("/treasury", func(r chi.Router) {
						r.Post("/", h.ProposalHandler.CreateTreasuryProposal)
						r.Get("/", h.ProposalHandler.ListTreasuryProposals)
						r.Post("/{id}/vote", h.ProposalHandler.VoteOnTreasury)
					})
				})

				r.Route("/loans", func(r chi.Router) {
					r.Get("/", h.LoanHandler.GetMyLoans)
					r.Get("/active", h.LoanHandler.ListActive)
					r.Get("/overdue", h.LoanHandler.ListOverdue)
					r.Get("/{id}", h.LoanHandler.GetLoan)
					r.Post("/{id}/repay", h.LoanHandler.Repay)
				})

				r.Route("/rewards", func(r chi.Router) {
					r.Get("/", h.RewardHandler.GetBalance)
					r.Post("/claim", h.RewardHandler.Claim)
				})

				r.Route("/treasury", func(r chi.Router) {
					r.Get("/", h.TreasuryHandler.GetTreasury)
					r.Get("/operators", h.TreasuryHandler.ListOperators)
					r.Get("/operators/{id}", h.TreasuryHandler.GetOperator)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AuthMiddleware, h.AdminHandler.RequireAdmin)
			r.Get("/policy", h.AdminHandler.GetPolicy)
			r.Put("/policy/thresholds", h.AdminHandler.SetThresholds)
			r.Put("/policy/loans", h.AdminHandler.SetLoanPolicy)
			r.Put("/policy/shares", h.AdminHandler.SetShares)
			r.Put("/policy/restaking", h.AdminHandler.SetRestakingParams)
			r.Put("/policy/voting", h.AdminHandler.SetVotingParams)
			r.Put("/pause", h.AdminHandler.SetPause)
			r.Post("/admins", h.AdminHandler.AddAdmin)
			r.Delete("/admins", h.AdminHandler.RemoveAdmin)
			r.Post("/rewards/claim/batch", h.RewardHandler.BatchClaim)

			r.Route("/operators", func(r chi.Router) {
				r.Post("/", h.AdminHandler.ApproveOperator)
				r.Post("/optimize", h.AdminHandler.Optimize)
				r.Post("/emergency-exit", h.AdminHandler.EmergencyExit)
				r.Delete("/{id}", h.AdminHandler.RemoveOperator)
				r.Put("/{id}/performance", h.AdminHandler.UpdateOperatorPerformance)
				r.Post("/{id}/rewards", h.AdminHandler.ClaimOperatorRewards)
			})
		})
	})

	return r
}
