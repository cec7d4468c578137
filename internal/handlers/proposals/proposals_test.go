package proposals

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/akarpov/coopledger/internal/capability"
	"github.com/akarpov/coopledger/internal/dto"
	votingservice "github.com/akarpov/coopledger/internal/service/votingservice"
	"github.com/akarpov/coopledger/pkg/auth"
)

func NewMock(t *testing.T) (*ProposalHandler, *MockService, *MockVotingService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockService(ctrl)
	mockVoting := NewMockVotingService(ctrl)
	handler := New(mockService, mockVoting)
	return handler, mockService, mockVoting
}

// voteRequest builds an authenticated POST with the proposal id set as a
// route parameter, the way the router hands it to the handler.
func voteRequest(proposalID string, body dto.VoteRequestDTO) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/proposals/loans/"+proposalID+"/vote", bytes.NewReader(payload))

	ctx := context.WithValue(context.Background(), auth.MemberIDKey, 2)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", proposalID)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func TestVoteOnLoan(t *testing.T) {
	handler, _, mockVoting := NewMock(t)

	tests := []struct {
		name        string
		proposalID  string
		body        dto.VoteRequestDTO
		prepareMock func()
		wantCode    int
	}{
		{
			name:       "Successful vote",
			proposalID: "1",
			body:       dto.VoteRequestDTO{Support: true},
			prepareMock: func() {
				mockVoting.EXPECT().
					CastLoanVote(gomock.Any(), 1, 2, true, gomock.Nil()).
					Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:       "Unknown proposal",
			proposalID: "42",
			body:       dto.VoteRequestDTO{Support: true},
			prepareMock: func() {
				mockVoting.EXPECT().
					CastLoanVote(gomock.Any(), 42, 2, true, gomock.Nil()).
					Return(votingservice.ErrProposalNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:       "Borrower votes on own proposal",
			proposalID: "1",
			body:       dto.VoteRequestDTO{Support: true},
			prepareMock: func() {
				mockVoting.EXPECT().
					CastLoanVote(gomock.Any(), 1, 2, true, gomock.Nil()).
					Return(votingservice.ErrCannotVoteOnOwnProposal)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:       "Duplicate ballot",
			proposalID: "1",
			body:       dto.VoteRequestDTO{Support: false},
			prepareMock: func() {
				mockVoting.EXPECT().
					CastLoanVote(gomock.Any(), 1, 2, false, gomock.Nil()).
					Return(votingservice.ErrAlreadyVoted)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:       "Voting window closed",
			proposalID: "1",
			body:       dto.VoteRequestDTO{Support: true},
			prepareMock: func() {
				mockVoting.EXPECT().
					CastLoanVote(gomock.Any(), 1, 2, true, gomock.Nil()).
					Return(votingservice.ErrVotingClosed)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:       "Encrypted ballot without a tally backend",
			proposalID: "1",
			body:       dto.VoteRequestDTO{Support: true, EncryptedChoice: []byte("sealed")},
			prepareMock: func() {
				mockVoting.EXPECT().
					CastLoanVote(gomock.Any(), 1, 2, true, []byte("sealed")).
					Return(capability.ErrPrivacyDisabled)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:       "Plaintext ballot on a private proposal",
			proposalID: "1",
			body:       dto.VoteRequestDTO{Support: true},
			prepareMock: func() {
				mockVoting.EXPECT().
					CastLoanVote(gomock.Any(), 1, 2, true, gomock.Nil()).
					Return(votingservice.ErrMissingEncryptedChoice)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:        "Malformed proposal id",
			proposalID:  "abc",
			body:        dto.VoteRequestDTO{Support: true},
			prepareMock: func() {},
			wantCode:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := voteRequest(tt.proposalID, tt.body)
			rec := httptest.NewRecorder()

			handler.VoteOnLoan(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
