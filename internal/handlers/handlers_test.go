package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	adminhandlers "github.com/akarpov/coopledger/internal/handlers/admin"
	"github.com/akarpov/coopledger/internal/service"
	"github.com/akarpov/coopledger/pkg/auth"
)

// stubPolicyService answers the admin check; everything else is out of
// scope for routing tests.
type stubPolicyService struct {
	adminhandlers.PolicyService

	isAdmin bool
}

func (s stubPolicyService) IsAdmin(_ context.Context, _ int) (bool, error) {
	return s.isAdmin, nil
}

func newMockHandlers(ctrl *gomock.Controller, policy adminhandlers.PolicyService) (*Handlers, *MockPauseState, *MockRewardHandler) {
	mockMemberHandler := NewMockMemberHandler(ctrl)
	mockRewardHandler := NewMockRewardHandler(ctrl)
	mockPause := NewMockPauseState(ctrl)

	mockMemberHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockMemberHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		MemberHandler:   mockMemberHandler,
		ProposalHandler: NewMockProposalHandler(ctrl),
		LoanHandler:     NewMockLoanHandler(ctrl),
		RewardHandler:   mockRewardHandler,
		TreasuryHandler: NewMockTreasuryHandler(ctrl),
		AdminHandler:    adminhandlers.New(policy, nil),
		pause:           mockPause,
	}
	return h, mockPause, mockRewardHandler
}

func memberToken(t *testing.T, memberID int) string {
	token, err := (&auth.JWTService{}).GenerateJWT(memberID, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	return "Bearer " + token
}

func TestNew(t *testing.T) {
	h := New(&service.Services{}, nil)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockPause, _ := newMockHandlers(ctrl, stubPolicyService{})
	mockPause.EXPECT().Paused(gomock.Any()).Return(false, nil).AnyTimes()

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/members/register", http.StatusOK},
		{"POST", "/api/members/login", http.StatusOK},
		{"GET", "/api/members/me", http.StatusUnauthorized},
		{"GET", "/api/members", http.StatusUnauthorized},
		{"POST", "/api/proposals/loans", http.StatusUnauthorized},
		{"POST", "/api/proposals/loans/1/vote", http.StatusUnauthorized},
		{"POST", "/api/proposals/treasury/1/vote", http.StatusUnauthorized},
		{"POST", "/api/loans/1/repay", http.StatusUnauthorized},
		{"GET", "/api/rewards", http.StatusUnauthorized},
		{"POST", "/api/rewards/claim", http.StatusUnauthorized},
		{"GET", "/api/treasury", http.StatusUnauthorized},
		{"GET", "/api/admin/policy", http.StatusUnauthorized},
		{"POST", "/api/admin/rewards/claim/batch", http.StatusUnauthorized},
		{"DELETE", "/api/admin/operators/1", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestBatchClaimIsAdminOnly(t *testing.T) {
	t.Run("no member route for batch claim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		h, mockPause, _ := newMockHandlers(ctrl, stubPolicyService{})
		mockPause.EXPECT().Paused(gomock.Any()).Return(false, nil).AnyTimes()

		router := chi.NewRouter()
		h.InitRoutes(router)

		req := httptest.NewRequest("POST", "/api/rewards/claim/batch", nil)
		req.Header.Set("Authorization", memberToken(t, 2))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		h, _, _ := newMockHandlers(ctrl, stubPolicyService{isAdmin: false})

		router := chi.NewRouter()
		h.InitRoutes(router)

		req := httptest.NewRequest("POST", "/api/admin/rewards/claim/batch", nil)
		req.Header.Set("Authorization", memberToken(t, 2))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin reaches the handler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		h, _, mockRewardHandler := newMockHandlers(ctrl, stubPolicyService{isAdmin: true})
		mockRewardHandler.EXPECT().BatchClaim(gomock.Any(), gomock.Any())

		router := chi.NewRouter()
		h.InitRoutes(router)

		req := httptest.NewRequest("POST", "/api/admin/rewards/claim/batch", nil)
		req.Header.Set("Authorization", memberToken(t, 1))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPauseGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockPause, _ := newMockHandlers(ctrl, stubPolicyService{})
	mockPause.EXPECT().Paused(gomock.Any()).Return(true, nil).AnyTimes()

	router := chi.NewRouter()
	h.InitRoutes(router)

	t.Run("mutating requests are refused while paused", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/members/register", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("reads bypass the pause flag", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/rewards", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
