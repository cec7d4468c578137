package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/dto"
	rewardservice "github.com/akarpov/coopledger/internal/service/rewardservice"
	"github.com/akarpov/coopledger/pkg/auth"
	"github.com/akarpov/coopledger/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, memberID int) (*domain.RewardBalance, error)
	Claim(ctx context.Context, memberID int, kind string) (int64, error)
	BatchClaim(ctx context.Context, memberIDs []int, kind string) (int64, []int)
}

type RewardHandler struct {
	rewardService Service
}

func New(rewardService Service) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

// GetBalance godoc
//
//	@Summary		Get own pending reward balances
//	@Tags			Rewards
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.RewardBalanceResponseDTO	"Pending balances"
//	@Failure		401	{object}	utils.Response					"Not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/rewards [get]
func (h *RewardHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	rb, err := h.rewardService.GetBalance(r.Context(), memberID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RewardBalanceResponseDTO{
		PendingInterest: rb.PendingInterest,
		PendingYield:    rb.PendingYield,
	})
}

// Claim godoc
//
//	@Summary		Claim pending rewards
//	@Description	Pays out the pending balance of the requested kind (interest, yield or all). The balance is zeroed before the transfer, so repeating the call finds nothing.
//	@Tags			Rewards
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ClaimRequestDTO		true	"Claim payload"
//	@Success		200		{object}	dto.ClaimResponseDTO	"Claimed amount"
//	@Failure		400		{object}	utils.Response			"Unknown claim kind"
//	@Failure		401		{object}	utils.Response			"Not authorized"
//	@Failure		409		{object}	utils.Response			"Nothing to claim"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/rewards/claim [post]
func (h *RewardHandler) Claim(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.ClaimRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claimed, err := h.rewardService.Claim(r.Context(), memberID, req.Kind)
	if err != nil {
		switch {
		case errors.Is(err, rewardservice.ErrUnknownClaimKind):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, rewardservice.ErrNoPendingAmount),
			errors.Is(err, rewardservice.ErrInsufficientTreasury):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ClaimResponseDTO{Claimed: claimed})
}

// BatchClaim godoc
//
//	@Summary		Claim rewards for a batch of members
//	@Description	Settles pending balances for the listed members. Admin only. Members whose claim fails are reported and skipped; the rest still settle.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BatchClaimRequestDTO	true	"Batch claim payload"
//	@Success		200		{object}	dto.BatchClaimResponseDTO	"Batch result"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		401		{object}	utils.Response				"Not authorized"
//	@Failure		403		{object}	utils.Response				"Not an admin"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/rewards/claim/batch [post]
func (h *RewardHandler) BatchClaim(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchClaimRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.MemberIDs) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "member_ids must not be empty")
		return
	}

	paid, failed := h.rewardService.BatchClaim(r.Context(), req.MemberIDs, req.Kind)
	utils.RespondWithJSON(w, http.StatusOK, dto.BatchClaimResponseDTO{Paid: paid, Failed: failed})
}
