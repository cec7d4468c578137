package treasury

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	allocservice "github.com/akarpov/coopledger/internal/service/allocservice"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/dto"
	"github.com/akarpov/coopledger/pkg/utils"
)

type TreasuryService interface {
	Get(ctx context.Context) (*domain.Treasury, error)
}

type AllocService interface {
	GetOperator(ctx context.Context, operatorID int) (*domain.Operator, error)
	ListOperators(ctx context.Context) ([]domain.Operator, error)
}

type TreasuryHandler struct {
	treasuryService TreasuryService
	allocService    AllocService
}

func New(treasuryService TreasuryService, allocService AllocService) *TreasuryHandler {
	return &TreasuryHandler{
		treasuryService: treasuryService,
		allocService:    allocService,
	}
}

// GetTreasury godoc
//
//	@Summary		Get treasury status
//	@Description	Balance includes delegated capital; liquid is what can actually move right now.
//	@Tags			Treasury
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.TreasuryResponseDTO	"Treasury status"
//	@Failure		401	{object}	utils.Response			"Not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/treasury [get]
func (h *TreasuryHandler) GetTreasury(w http.ResponseWriter, r *http.Request) {
	t, err := h.treasuryService.Get(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.TreasuryResponseDTO{
		Balance:            t.Balance,
		Delegated:          t.Delegated,
		Liquid:             t.Balance - t.Delegated,
		TotalContributions: t.TotalContributions,
		OperationalPool:    t.OperationalPool,
	})
}

// ListOperators godoc
//
//	@Summary		List active yield operators
//	@Tags			Treasury
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.OperatorResponseDTO	"Operators ordered best-first"
//	@Failure		401	{object}	utils.Response			"Not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/treasury/operators [get]
func (h *TreasuryHandler) ListOperators(w http.ResponseWriter, r *http.Request) {
	operators, err := h.allocService.ListOperators(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.OperatorResponseDTO, len(operators))
	for i := range operators {
		response[i] = ToOperatorDTO(&operators[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetOperator godoc
//
//	@Summary		Get a yield operator
//	@Tags			Treasury
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Operator ID"
//	@Success		200	{object}	dto.OperatorResponseDTO	"Operator"
//	@Failure		404	{object}	utils.Response			"Operator not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/treasury/operators/{id} [get]
func (h *TreasuryHandler) GetOperator(w http.ResponseWriter, r *http.Request) {
	operatorID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid operator id")
		return
	}

	op, err := h.allocService.GetOperator(r.Context(), operatorID)
	if err != nil {
		if errors.Is(err, allocservice.ErrOperatorNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ToOperatorDTO(op))
}

// ToOperatorDTO is shared with the admin handler.
func ToOperatorDTO(o *domain.Operator) dto.OperatorResponseDTO {
	return dto.OperatorResponseDTO{
		ID:                o.ID,
		Name:              o.Name,
		Status:            o.Status,
		Delegated:         o.Delegated,
		CumulativeRewards: o.CumulativeRewards,
		PerformanceScore:  o.PerformanceScore,
		ExpectedYieldBps:  o.ExpectedYieldBps,
		ActualYieldBps:    o.ActualYieldBps,
		SlashingEvents:    o.SlashingEvents,
		UptimeBps:         o.UptimeBps,
		ApprovedAt:        o.ApprovedAt,
	}
}
