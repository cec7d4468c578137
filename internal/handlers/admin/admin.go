package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/dto"
	"github.com/akarpov/coopledger/internal/handlers/treasury"
	allocservice "github.com/akarpov/coopledger/internal/service/allocservice"
	policyservice "github.com/akarpov/coopledger/internal/service/policyservice"
	"github.com/akarpov/coopledger/pkg/auth"
	"github.com/akarpov/coopledger/pkg/utils"
)

type PolicyService interface {
	IsAdmin(ctx context.Context, memberID int) (bool, error)
	AddAdmin(ctx context.Context, callerID, memberID int) error
	RemoveAdmin(ctx context.Context, callerID, memberID int) error
	SetConsensusThresholds(ctx context.Context, callerID int, loanBps, treasuryBps int64) error
	SetLoanPolicy(ctx context.Context, callerID int, minRateBps, maxRateBps, maxTermSecs, maxRatioBps int64) error
	SetDistributionShares(ctx context.Context, callerID int, memberBps, treasuryBps, operationalBps int64) error
	SetRestakingParams(ctx context.Context, callerID int, allocationBps, emergencyReserve, rebalanceThreshold int64, minOperatorCount int, autoOptimize bool) error
	SetVotingParams(ctx context.Context, callerID int, editingSecs, votingSecs, defaultWeight int64, weightedMode, privacyMode bool) error
	SetPause(ctx context.Context, callerID int, paused bool) error
	Get(ctx context.Context) (*domain.Policy, error)
}

type AllocService interface {
	ApproveOperator(ctx context.Context, name, endpoint string, expectedYieldBps int64) (*domain.Operator, error)
	RemoveOperator(ctx context.Context, operatorID int) error
	OptimizeAllocation(ctx context.Context) error
	UpdateOperatorPerformance(ctx context.Context, operatorID int, uptimeBps, actualYieldBps int64, slashingEvents int) (*domain.Operator, error)
	EmergencyExitAll(ctx context.Context, reason string) (int64, []int, error)
	ClaimOperatorRewards(ctx context.Context, operatorID int) (int64, error)
}

type AdminHandler struct {
	policyService PolicyService
	allocService  AllocService
}

func New(policyService PolicyService, allocService AllocService) *AdminHandler {
	return &AdminHandler{
		policyService: policyService,
		allocService:  allocService,
	}
}

// RequireAdmin rejects callers without the admin role before the wrapped
// handler runs.
func (h *AdminHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		memberID, ok := r.Context().Value(auth.MemberIDKey).(int)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "not authorized")
			return
		}
		isAdmin, err := h.policyService.IsAdmin(r.Context(), memberID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !isAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "caller is not an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPolicy godoc
//
//	@Summary		Get the full policy
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.Policy	"Current policy"
//	@Failure		403	{object}	utils.Response	"Caller is not an admin"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/policy [get]
func (h *AdminHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.policyService.Get(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, policy)
}

// AddAdmin godoc
//
//	@Summary		Grant the admin role
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdminRequestDTO	true	"Target member"
//	@Success		200		{string}	string				"Role granted"
//	@Failure		403		{object}	utils.Response		"Caller is not an admin"
//	@Failure		404		{object}	utils.Response		"Member not found"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/admin/admins [post]
func (h *AdminHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.AdminRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.AddAdmin(r.Context(), callerID, req.MemberID); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "role granted")
}

// RemoveAdmin godoc
//
//	@Summary		Revoke the admin role
//	@Description	Refuses to remove the last remaining admin.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdminRequestDTO	true	"Target member"
//	@Success		200		{string}	string				"Role revoked"
//	@Failure		403		{object}	utils.Response		"Caller is not an admin"
//	@Failure		404		{object}	utils.Response		"Member not found"
//	@Failure		409		{object}	utils.Response		"Cannot remove the last admin"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/admin/admins [delete]
func (h *AdminHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.AdminRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.RemoveAdmin(r.Context(), callerID, req.MemberID); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "role revoked")
}

// SetThresholds godoc
//
//	@Summary		Set consensus thresholds
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SetThresholdsRequestDTO	true	"Thresholds in bps"
//	@Success		200		{string}	string						"Thresholds set"
//	@Failure		400		{object}	utils.Response				"Threshold out of range"
//	@Failure		403		{object}	utils.Response				"Caller is not an admin"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/policy/thresholds [put]
func (h *AdminHandler) SetThresholds(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.SetThresholdsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.SetConsensusThresholds(r.Context(), callerID, req.LoanThresholdBps, req.TreasuryThresholdBps); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "thresholds set")
}

// SetLoanPolicy godoc
//
//	@Summary		Set loan pricing bounds
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SetLoanPolicyRequestDTO	true	"Loan policy"
//	@Success		200		{string}	string						"Loan policy set"
//	@Failure		400		{object}	utils.Response				"Invalid bounds"
//	@Failure		403		{object}	utils.Response				"Caller is not an admin"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/policy/loans [put]
func (h *AdminHandler) SetLoanPolicy(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.SetLoanPolicyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.SetLoanPolicy(r.Context(), callerID, req.MinRateBps, req.MaxRateBps, req.MaxLoanTermSecs, req.MaxLoanRatioBps); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "loan policy set")
}

// SetShares godoc
//
//	@Summary		Set distribution shares
//	@Description	Shares must sum to exactly 10000 bps.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SetSharesRequestDTO	true	"Shares in bps"
//	@Success		200		{string}	string					"Shares set"
//	@Failure		400		{object}	utils.Response			"Shares do not sum to 10000"
//	@Failure		403		{object}	utils.Response			"Caller is not an admin"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/policy/shares [put]
func (h *AdminHandler) SetShares(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.SetSharesRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.SetDistributionShares(r.Context(), callerID, req.MemberShareBps, req.TreasuryShareBps, req.OperationalShareBps); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "shares set")
}

// SetRestakingParams godoc
//
//	@Summary		Set restaking parameters
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SetRestakingParamsRequestDTO	true	"Restaking parameters"
//	@Success		200		{string}	string								"Parameters set"
//	@Failure		400		{object}	utils.Response						"Invalid parameters"
//	@Failure		403		{object}	utils.Response						"Caller is not an admin"
//	@Failure		500		{object}	utils.Response						"Internal server error"
//	@Router			/api/admin/policy/restaking [put]
func (h *AdminHandler) SetRestakingParams(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.SetRestakingParamsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.SetRestakingParams(r.Context(), callerID, req.AllocationBps, req.EmergencyReserve, req.RebalanceThreshold, req.MinOperatorCount, req.AutoOptimize); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "restaking parameters set")
}

// SetVotingParams godoc
//
//	@Summary		Set voting parameters
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SetVotingParamsRequestDTO	true	"Voting parameters"
//	@Success		200		{string}	string							"Parameters set"
//	@Failure		403		{object}	utils.Response					"Caller is not an admin"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/policy/voting [put]
func (h *AdminHandler) SetVotingParams(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.SetVotingParamsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.SetVotingParams(r.Context(), callerID, req.EditingPeriodSecs, req.VotingPeriodSecs, req.DefaultVoteWeight, req.WeightedMode, req.PrivacyMode); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "voting parameters set")
}

// SetPause godoc
//
//	@Summary		Pause or unpause mutating endpoints
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SetPauseRequestDTO	true	"Pause flag"
//	@Success		200		{string}	string					"Flag set"
//	@Failure		403		{object}	utils.Response			"Caller is not an admin"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/pause [put]
func (h *AdminHandler) SetPause(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.MemberIDKey).(int)

	var req dto.SetPauseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.policyService.SetPause(r.Context(), callerID, req.Paused); err != nil {
		respondPolicyError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "pause flag set")
}

// ApproveOperator godoc
//
//	@Summary		Approve a yield operator
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ApproveOperatorRequestDTO	true	"Operator payload"
//	@Success		200		{object}	dto.OperatorResponseDTO			"Approved operator"
//	@Failure		400		{object}	utils.Response					"Invalid expected yield"
//	@Failure		403		{object}	utils.Response					"Caller is not an admin"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/operators [post]
func (h *AdminHandler) ApproveOperator(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveOperatorRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	op, err := h.allocService.ApproveOperator(r.Context(), req.Name, req.Endpoint, req.ExpectedYieldBps)
	if err != nil {
		respondAllocError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, treasury.ToOperatorDTO(op))
}

// RemoveOperator godoc
//
//	@Summary		Remove a yield operator
//	@Description	Recalls all delegated capital before retiring the operator.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int				true	"Operator ID"
//	@Success		200	{string}	string			"Operator removed"
//	@Failure		403	{object}	utils.Response	"Caller is not an admin"
//	@Failure		404	{object}	utils.Response	"Operator not found"
//	@Failure		409	{object}	utils.Response	"Capital recall was refused"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/operators/{id} [delete]
func (h *AdminHandler) RemoveOperator(w http.ResponseWriter, r *http.Request) {
	operatorID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid operator id")
		return
	}

	if err := h.allocService.RemoveOperator(r.Context(), operatorID); err != nil {
		respondAllocError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "operator removed")
}

// UpdateOperatorPerformance godoc
//
//	@Summary		Record operator telemetry
//	@Description	Recomputes the performance score and, if auto-optimization is on and the score fell below the rebalance threshold, reshuffles the allocation.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int									true	"Operator ID"
//	@Param			request	body		dto.OperatorPerformanceRequestDTO	true	"Telemetry payload"
//	@Success		200		{object}	dto.OperatorResponseDTO				"Updated operator"
//	@Failure		403		{object}	utils.Response						"Caller is not an admin"
//	@Failure		404		{object}	utils.Response						"Operator not found"
//	@Failure		500		{object}	utils.Response						"Internal server error"
//	@Router			/api/admin/operators/{id}/performance [put]
func (h *AdminHandler) UpdateOperatorPerformance(w http.ResponseWriter, r *http.Request) {
	operatorID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid operator id")
		return
	}

	var req dto.OperatorPerformanceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	op, err := h.allocService.UpdateOperatorPerformance(r.Context(), operatorID, req.UptimeBps, req.ActualYieldBps, req.SlashingEvents)
	if err != nil {
		respondAllocError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, treasury.ToOperatorDTO(op))
}

// Optimize godoc
//
//	@Summary		Re-optimize treasury allocation
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{string}	string			"Allocation optimized"
//	@Failure		403	{object}	utils.Response	"Caller is not an admin"
//	@Failure		409	{object}	utils.Response	"Not enough active operators"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/operators/optimize [post]
func (h *AdminHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if err := h.allocService.OptimizeAllocation(r.Context()); err != nil {
		respondAllocError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "allocation optimized")
}

// ClaimOperatorRewards godoc
//
//	@Summary		Claim realized yield from an operator vault
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Operator ID"
//	@Success		200	{object}	dto.ClaimResponseDTO	"Claimed yield"
//	@Failure		403	{object}	utils.Response			"Caller is not an admin"
//	@Failure		404	{object}	utils.Response			"Operator not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/operators/{id}/rewards [post]
func (h *AdminHandler) ClaimOperatorRewards(w http.ResponseWriter, r *http.Request) {
	operatorID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid operator id")
		return
	}

	claimed, err := h.allocService.ClaimOperatorRewards(r.Context(), operatorID)
	if err != nil {
		respondAllocError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ClaimResponseDTO{Claimed: claimed})
}

// EmergencyExit godoc
//
//	@Summary		Recall all delegated capital
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.EmergencyExitRequestDTO		true	"Reason"
//	@Success		200		{object}	dto.EmergencyExitResponseDTO	"Recall result"
//	@Failure		403		{object}	utils.Response					"Caller is not an admin"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/operators/emergency-exit [post]
func (h *AdminHandler) EmergencyExit(w http.ResponseWriter, r *http.Request) {
	var req dto.EmergencyExitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recalled, failed, err := h.allocService.EmergencyExitAll(r.Context(), req.Reason)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.EmergencyExitResponseDTO{Recalled: recalled, Failed: failed})
}

func respondPolicyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, policyservice.ErrAccessDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, policyservice.ErrMemberNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, policyservice.ErrLastAdmin):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, policyservice.ErrInvalidThreshold),
		errors.Is(err, policyservice.ErrInvalidShares),
		errors.Is(err, policyservice.ErrInvalidRates):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondAllocError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, allocservice.ErrOperatorNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, allocservice.ErrOperatorNotActive),
		errors.Is(err, allocservice.ErrOperatorHasCapital),
		errors.Is(err, allocservice.ErrInsufficientOperators):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, allocservice.ErrInvalidExpectedYield):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
