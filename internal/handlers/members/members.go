package members

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akarpov/coopledger/internal/domain"
	"github.com/akarpov/coopledger/internal/dto"
	memberservice "github.com/akarpov/coopledger/internal/service/memberservice"
	"github.com/akarpov/coopledger/pkg/auth"
	"github.com/akarpov/coopledger/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, login, password string, fee int64) (*domain.Member, error)
	Authenticate(ctx context.Context, login, password string) (*domain.Member, error)
	GenerateToken(memberID int) (string, error)
	Exit(ctx context.Context, memberID int) (int64, error)
	GetMember(ctx context.Context, memberID int) (*domain.Member, error)
	ListActiveMembers(ctx context.Context) ([]domain.Member, error)
}

type MemberHandler struct {
	memberService Service
}

func New(memberService Service) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Register godoc
//
//	@Summary		Register a new member
//	@Description	Join the cooperative by paying the exact membership fee. Returns an auth token.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Registration payload"
//	@Success		200		{object}	dto.AuthResponseDTO		"Member registered"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		402		{object}	utils.Response			"Payment does not match the membership fee"
//	@Failure		409		{object}	utils.Response			"Login already taken"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/members/register [post]
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Login == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	member, err := h.memberService.Register(r.Context(), req.Login, req.Password, req.Fee)
	if err != nil {
		switch {
		case errors.Is(err, memberservice.ErrAlreadyMember):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, memberservice.ErrIncorrectFee):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := h.memberService.GenerateToken(member.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{MemberID: member.ID, Token: token})
}

// Login godoc
//
//	@Summary		Authenticate a member
//	@Description	Exchange login credentials for an auth token.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login payload"
//	@Success		200		{object}	dto.AuthResponseDTO	"Authenticated"
//	@Failure		400		{object}	utils.Response		"Invalid request body"
//	@Failure		401		{object}	utils.Response		"Invalid credentials"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/members/login [post]
func (h *MemberHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.memberService.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, memberservice.ErrMemberNotActive):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, memberservice.ErrInvalidCredentials):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := h.memberService.GenerateToken(member.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{MemberID: member.ID, Token: token})
}

// GetProfile godoc
//
//	@Summary		Get own member profile
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.MemberResponseDTO	"Member profile"
//	@Failure		401	{object}	utils.Response			"Not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/members/me [get]
func (h *MemberHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	member, err := h.memberService.GetMember(r.Context(), memberID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toMemberDTO(member))
}

// Exit godoc
//
//	@Summary		Leave the cooperative
//	@Description	Pays out the member's pro-rata treasury share and deactivates the membership. Unclaimed rewards are forfeited.
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ExitResponseDTO	"Exit share paid"
//	@Failure		401	{object}	utils.Response		"Not authorized"
//	@Failure		409	{object}	utils.Response		"Member has an active loan"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/members/exit [post]
func (h *MemberHandler) Exit(w http.ResponseWriter, r *http.Request) {
	memberID := r.Context().Value(auth.MemberIDKey).(int)

	exitShare, err := h.memberService.Exit(r.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, memberservice.ErrHasActiveLoan):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, memberservice.ErrMemberNotActive):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, memberservice.ErrInsufficientTreasury):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ExitResponseDTO{ExitShare: exitShare})
}

// ListMembers godoc
//
//	@Summary		List active members
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.MemberResponseDTO	"Active members"
//	@Failure		401	{object}	utils.Response			"Not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/members [get]
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListActiveMembers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.MemberResponseDTO, len(members))
	for i := range members {
		response[i] = toMemberDTO(&members[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toMemberDTO(m *domain.Member) dto.MemberResponseDTO {
	return dto.MemberResponseDTO{
		ID:            m.ID,
		Login:         m.Login,
		Status:        m.Status,
		IsAdmin:       m.IsAdmin,
		JoinedAt:      m.JoinedAt,
		Contribution:  m.Contribution,
		ShareBalance:  m.ShareBalance,
		HasActiveLoan: m.HasActiveLoan,
		VoteWeight:    m.VoteWeight,
	}
}
