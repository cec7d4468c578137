package proposals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/dto"
	proposalservice "github.com/akarpov/coopledger/internal/service/proposalservice"
	votingservice "github.com/akarpov/coopledger/internal/service/votingservice"
	"github.com/akarpov/coopledger/pkg/auth"
	"github.com/akarpov/coopledger/pkg/utils"
)

//go:generate mockgen -source=proposals.go -destination=mock_proposals.go -package=proposals

type Service interface {
	CreateLoanProposal(ctx context.Context, borrowerID int, amount int64, private bool, amountCommitment string) (*domain.LoanProposal, error)
	EditLoanProposal(ctx context.Context, proposalID, callerID int, amount int64, amountCommitment string) (*domain.LoanProposal, error)
	AttachDocument(ctx context.Context, proposalID, callerID int, data []byte, metadata map[string]string) (string, error)
	CreateTreasuryProposal(ctx context.Context, proposerID int, amount int64, destination, reason string) (*domain.TreasuryProposal, error)
	GetLoanProposal(ctx context.Context, proposalID int) (*domain.LoanProposal, error)
	GetTreasuryProposal(ctx context.Context, proposalID int) (*domain.TreasuryProposal, error)
	ListLoanProposals(ctx context.Context) ([]domain.LoanProposal, error)
	ListTreasuryProposals(ctx context.Context) ([]domain.TreasuryProposal, error)
}

type VotingService interface {
	CastLoanVote(ctx context.Context, proposalID, voterID int, support bool, encryptedChoice []byte) error
	CastTreasuryVote(ctx context.Context, proposalID, voterID int, support bool) error
	ListVotes(ctx context.Context, proposalKind string, proposalID int) ([]domain.WeightedVote, error)
}

type ProposalHandler struct {
	proposalService Service
	votingService   VotingService
}

func New(proposalService Service, votingService VotingService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		votingService:   votingService,
	}
}

// CreateLoanProposal godoc
//
//	@Summary		Open a loan proposal
//	@Description	Creates a loan request in the editing phase with terms priced against the current treasury.
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateLoanProposalRequestDTO	true	"Proposal payload"
//	@Success		200		{object}	dto.LoanProposalResponseDTO			"Created proposal"
//	@Failure		400		{object}	utils.Response						"Invalid request"
//	@Failure		401		{object}	utils.Response						"Not authorized"
//	@Failure		409		{object}	utils.Response						"Member not eligible"
//	@Failure		422		{object}	utils.Response						"Amount exceeds the loan ratio cap"
//	@Failure		500		{object}	utils.Response						"Internal server error"
//	@Router			/api/proposals/loans [post]
func (h *ProposalHandler) CreateLoanProposal(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.CreateLoanProposalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.proposalService.CreateLoanProposal(r.Context(), memberID, req.Amount, req.Private, req.AmountCommitment)
	if err != nil {
		respondProposalError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toLoanProposalDTO(p, memberID))
}

// EditLoanProposal godoc
//
//	@Summary		Edit a loan proposal
//	@Description	Amends the amount while the editing window is open. Terms are re-priced.
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Proposal ID"
//	@Param			request	body		dto.EditLoanProposalRequestDTO	true	"Edit payload"
//	@Success		200		{object}	dto.LoanProposalResponseDTO		"Edited proposal"
//	@Failure		400		{object}	utils.Response					"Invalid request"
//	@Failure		401		{object}	utils.Response					"Not authorized"
//	@Failure		403		{object}	utils.Response					"Caller is not the proposer"
//	@Failure		404		{object}	utils.Response					"Proposal not found"
//	@Failure		409		{object}	utils.Response					"Editing period has ended"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/proposals/loans/{id} [patch]
func (h *ProposalHandler) EditLoanProposal(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)
	proposalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	var req dto.EditLoanProposalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.proposalService.EditLoanProposal(r.Context(), proposalID, memberID, req.Amount, req.AmountCommitment)
	if err != nil {
		respondProposalError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toLoanProposalDTO(p, memberID))
}

// AttachDocument godoc
//
//	@Summary		Attach a supporting document
//	@Description	Stores the document in the external registry and links its handle to the proposal.
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Proposal ID"
//	@Param			request	body		dto.AttachDocumentRequestDTO	true	"Document payload"
//	@Success		200		{object}	dto.AttachDocumentResponseDTO	"Stored document handle"
//	@Failure		400		{object}	utils.Response					"Invalid request"
//	@Failure		401		{object}	utils.Response					"Not authorized"
//	@Failure		403		{object}	utils.Response					"Caller is not the proposer"
//	@Failure		404		{object}	utils.Response					"Proposal not found"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/proposals/loans/{id}/document [post]
func (h *ProposalHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)
	proposalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	var req dto.AttachDocumentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	handle, err := h.proposalService.AttachDocument(r.Context(), proposalID, memberID, req.Data, req.Metadata)
	if err != nil {
		respondProposalError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AttachDocumentResponseDTO{Handle: handle})
}

// CreateTreasuryProposal godoc
//
//	@Summary		Open a treasury withdrawal proposal
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateTreasuryProposalRequestDTO	true	"Withdrawal payload"
//	@Success		200		{object}	dto.TreasuryProposalResponseDTO			"Created proposal"
//	@Failure		400		{object}	utils.Response							"Invalid request"
//	@Failure		401		{object}	utils.Response							"Not authorized"
//	@Failure		500		{object}	utils.Response							"Internal server error"
//	@Router			/api/proposals/treasury [post]
func (h *ProposalHandler) CreateTreasuryProposal(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.CreateTreasuryProposalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.proposalService.CreateTreasuryProposal(r.Context(), memberID, req.Amount, req.Destination, req.Reason)
	if err != nil {
		respondProposalError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toTreasuryProposalDTO(p))
}

// VoteOnLoan godoc
//
//	@Summary		Vote on a loan proposal
//	@Description	Casts a weighted ballot. The proposal executes in the same request the moment consensus is reached.
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Proposal ID"
//	@Param			request	body		dto.VoteRequestDTO	true	"Ballot payload"
//	@Success		200		{string}	string				"Vote recorded"
//	@Failure		400		{object}	utils.Response		"Invalid request"
//	@Failure		401		{object}	utils.Response		"Not authorized"
//	@Failure		403		{object}	utils.Response		"Cannot vote on own proposal"
//	@Failure		404		{object}	utils.Response		"Proposal not found"
//	@Failure		409		{object}	utils.Response		"Voting closed or already voted"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/proposals/loans/{id}/vote [post]
func (h *ProposalHandler) VoteOnLoan(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)
	proposalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	var req dto.VoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.votingService.CastLoanVote(r.Context(), proposalID, memberID, req.Support, req.EncryptedChoice); err != nil {
		respondVoteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "vote recorded")
}

// VoteOnTreasury godoc
//
//	@Summary		Vote on a treasury withdrawal proposal
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Proposal ID"
//	@Param			request	body		dto.VoteRequestDTO	true	"Ballot payload"
//	@Success		200		{string}	string				"Vote recorded"
//	@Failure		400		{object}	utils.Response		"Invalid request"
//	@Failure		401		{object}	utils.Response		"Not authorized"
//	@Failure		403		{object}	utils.Response		"Cannot vote on own proposal"
//	@Failure		404		{object}	utils.Response		"Proposal not found"
//	@Failure		409		{object}	utils.Response		"Voting closed or already voted"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/proposals/treasury/{id}/vote [post]
func (h *ProposalHandler) VoteOnTreasury(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)
	proposalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	var req dto.VoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.votingService.CastTreasuryVote(r.Context(), proposalID, memberID, req.Support); err != nil {
		respondVoteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "vote recorded")
}

// GetLoanProposal godoc
//
//	@Summary		Get a loan proposal
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int							true	"Proposal ID"
//	@Success		200	{object}	dto.LoanProposalResponseDTO	"Proposal"
//	@Failure		404	{object}	utils.Response				"Proposal not found"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/proposals/loans/{id} [get]
func (h *ProposalHandler) GetLoanProposal(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)
	proposalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	p, err := h.proposalService.GetLoanProposal(r.Context(), proposalID)
	if err != nil {
		respondProposalError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toLoanProposalDTO(p, memberID))
}

// ListLoanProposals godoc
//
//	@Summary		List loan proposals
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LoanProposalResponseDTO	"Proposals"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/proposals/loans [get]
func (h *ProposalHandler) ListLoanProposals(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	proposals, err := h.proposalService.ListLoanProposals(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.LoanProposalResponseDTO, len(proposals))
	for i := range proposals {
		response[i] = toLoanProposalDTO(&proposals[i], memberID)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListTreasuryProposals godoc
//
//	@Summary		List treasury withdrawal proposals
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TreasuryProposalResponseDTO	"Proposals"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/proposals/treasury [get]
func (h *ProposalHandler) ListTreasuryProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.proposalService.ListTreasuryProposals(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.TreasuryProposalResponseDTO, len(proposals))
	for i := range proposals {
		response[i] = toTreasuryProposalDTO(&proposals[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListVotes godoc
//
//	@Summary		List ballots cast on a loan proposal
//	@Tags			Proposals
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Proposal ID"
//	@Success		200	{array}		dto.VoteResponseDTO		"Ballots"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/proposals/loans/{id}/votes [get]
func (h *ProposalHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	proposalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	votes, err := h.votingService.ListVotes(r.Context(), domain.ProposalKindLoan, proposalID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.VoteResponseDTO, len(votes))
	for i, v := range votes {
		response[i] = dto.VoteResponseDTO{
			VoterID: v.VoterID,
			Support: v.Support,
			Weight:  v.Weight,
			CastAt:  v.CastAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func respondProposalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, proposalservice.ErrProposalNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, proposalservice.ErrNotAuthorized):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, proposalservice.ErrNotEligible),
		errors.Is(err, proposalservice.ErrEditingPeriodEnded),
		errors.Is(err, proposalservice.ErrProposalNotPending),
		errors.Is(err, proposalservice.ErrMemberNotActive):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, proposalservice.ErrExceedsMaxLoanRatio):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, proposalservice.ErrInvalidAmount),
		errors.Is(err, proposalservice.ErrInvalidDestination),
		errors.Is(err, proposalservice.ErrMissingCommitment),
		errors.Is(err, proposalservice.ErrPrivacyModeOff):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondVoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingservice.ErrProposalNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, votingservice.ErrCannotVoteOnOwnProposal):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, votingservice.ErrAlreadyVoted),
		errors.Is(err, votingservice.ErrVotingNotStarted),
		errors.Is(err, votingservice.ErrVotingClosed),
		errors.Is(err, votingservice.ErrProposalFinalized),
		errors.Is(err, votingservice.ErrVoterNotActive),
		errors.Is(err, votingservice.ErrInsufficientTreasury):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, votingservice.ErrMissingEncryptedChoice),
		errors.Is(err, votingservice.ErrUnexpectedEncryptedVote):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, capability.ErrPrivacyDisabled):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// toLoanProposalDTO hides the amount and repayment from everyone but the
// borrower when the proposal is private; only the commitment is exposed.
func toLoanProposalDTO(p *domain.LoanProposal, viewerID int) dto.LoanProposalResponseDTO {
	out := dto.LoanProposalResponseDTO{
		ID:               p.ID,
		BorrowerID:       p.BorrowerID,
		Private:          p.Private,
		AmountCommitment: p.AmountCommitment,
		InterestRateBps:  p.InterestRateBps,
		TermSeconds:      p.TermSeconds,
		VotesFor:         p.VotesFor,
		VotesAgainst:     p.VotesAgainst,
		WeightFor:        p.WeightFor,
		WeightAgainst:    p.WeightAgainst,
		Phase:            p.Phase,
		Status:           p.Status,
		DocumentHandle:   p.DocumentHandle,
		CreatedAt:        p.CreatedAt,
		EditingDeadline:  p.EditingDeadline,
		VotingDeadline:   p.VotingDeadline,
	}
	if !p.Private || p.BorrowerID == viewerID {
		amount, repayment := p.Amount, p.TotalRepayment
		out.Amount = &amount
		out.TotalRepayment = &repayment
	}
	return out
}

func toTreasuryProposalDTO(p *domain.TreasuryProposal) dto.TreasuryProposalResponseDTO {
	return dto.TreasuryProposalResponseDTO{
		ID:             p.ID,
		ProposerID:     p.ProposerID,
		Amount:         p.Amount,
		Destination:    p.Destination,
		Reason:         p.Reason,
		VotesFor:       p.VotesFor,
		VotesAgainst:   p.VotesAgainst,
		WeightFor:      p.WeightFor,
		WeightAgainst:  p.WeightAgainst,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		VotingDeadline: p.VotingDeadline,
	}
}
