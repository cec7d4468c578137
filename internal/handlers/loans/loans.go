package loans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/dto"
	loanservice "github.com/akarpov/coopledger/internal/service/loanservice"
	"github.com/akarpov/coopledger/pkg/auth"
	"github.com/akarpov/coopledger/pkg/utils"
)

type Service interface {
	Repay(ctx context.Context, loanID, callerID int, payment int64) error
	GetLoan(ctx context.Context, loanID int) (*domain.Loan, error)
	GetLoansByBorrower(ctx context.Context, borrowerID int) ([]domain.Loan, error)
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)
	ListOverdueLoans(ctx context.Context) ([]domain.Loan, error)
}

type LoanHandler struct {
	loanService Service
}

func New(loanService Service) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// Repay godoc
//
//	@Summary		Repay a loan in full
//	@Description	The payment must equal the total repayment exactly. The interest portion is distributed to active members.
//	@Tags			Loans
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Loan ID"
//	@Param			request	body		dto.RepayLoanRequestDTO	true	"Repayment payload"
//	@Success		200		{string}	string					"Loan repaid"
//	@Failure		400		{object}	utils.Response			"Invalid request"
//	@Failure		401		{object}	utils.Response			"Not authorized"
//	@Failure		402		{object}	utils.Response			"Payment does not match the total repayment"
//	@Failure		403		{object}	utils.Response			"Caller is not the borrower"
//	@Failure		404		{object}	utils.Response			"Loan not found"
//	@Failure		409		{object}	utils.Response			"Loan is not active"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/loans/{id}/repay [post]
func (h *LoanHandler) Repay(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)
	loanID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	var req dto.RepayLoanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.loanService.Repay(r.Context(), loanID, memberID, req.Payment); err != nil {
		switch {
		case errors.Is(err, loanservice.ErrLoanNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, loanservice.ErrNotAuthorized):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, loanservice.ErrLoanNotActive):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, loanservice.ErrIncorrectAmount):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "loan repaid")
}

// GetMyLoans godoc
//
//	@Summary		List own loans
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LoanResponseDTO	"Loans"
//	@Success		204	{object}	utils.Response		"No loans"
//	@Failure		401	{object}	utils.Response		"Not authorized"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/loans [get]
func (h *LoanHandler) GetMyLoans(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	loans, err := h.loanService.GetLoansByBorrower(r.Context(), memberID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(loans) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "no loans")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toLoanDTOs(loans))
}

// GetLoan godoc
//
//	@Summary		Get a loan
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int					true	"Loan ID"
//	@Success		200	{object}	dto.LoanResponseDTO	"Loan"
//	@Failure		404	{object}	utils.Response		"Loan not found"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/loans/{id} [get]
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, err := h.loanService.GetLoan(r.Context(), loanID)
	if err != nil {
		if errors.Is(err, loanservice.ErrLoanNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toLoanDTO(loan))
}

// ListActive godoc
//
//	@Summary		List all active loans
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LoanResponseDTO	"Active loans"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/loans/active [get]
func (h *LoanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanService.ListActiveLoans(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toLoanDTOs(loans))
}

// ListOverdue godoc
//
//	@Summary		List overdue loans
//	@Tags			Loans
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LoanResponseDTO	"Overdue loans"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/loans/overdue [get]
func (h *LoanHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanService.ListOverdueLoans(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toLoanDTOs(loans))
}

func toLoanDTO(l *domain.Loan) dto.LoanResponseDTO {
	return dto.LoanResponseDTO{
		ID:              l.ID,
		ProposalID:      l.ProposalID,
		BorrowerID:      l.BorrowerID,
		Principal:       l.Principal,
		InterestRateBps: l.InterestRateBps,
		TotalRepayment:  l.TotalRepayment,
		AmountRepaid:    l.AmountRepaid,
		Status:          l.Status,
		StartedAt:       l.StartedAt,
		DueAt:           l.DueAt,
	}
}

func toLoanDTOs(loans []domain.Loan) []dto.LoanResponseDTO {
	out := make([]dto.LoanResponseDTO, len(loans))
	for i := range loans {
		out[i] = toLoanDTO(&loans[i])
	}
	return out
}
