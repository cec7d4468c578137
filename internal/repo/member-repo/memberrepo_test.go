package memberrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/akarpov/coopledger/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

var testJoinedAt = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func memberRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "login", "password_hash", "status", "is_admin", "joined_at",
		"contribution", "share_balance", "has_active_loan", "last_loan_at", "vote_weight",
	})
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`SELECT ` + memberColumns + ` FROM members WHERE login = $1`)

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.Member
	}{
		{
			name:  "Member found",
			login: "alice",
			mockSetup: func() {
				rows := memberRows().AddRow(1, "alice", "hashed_password", domain.MemberStatusActive,
					false, testJoinedAt, int64(1000), int64(0), false, time.Time{}, int64(100))
				mock.ExpectQuery(query).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Member{
				ID:           1,
				Login:        "alice",
				PasswordHash: "hashed_password",
				Status:       domain.MemberStatusActive,
				JoinedAt:     testJoinedAt,
				Contribution: 1000,
				VoteWeight:   100,
			},
		},
		{
			name:  "Member not found",
			login: "nobody",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("nobody").
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:  "Database error",
			login: "alice",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("alice").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_SumActiveWeight(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`SELECT COALESCE(SUM(vote_weight), 0) FROM members WHERE status = 'ACTIVE'`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    int64
	}{
		{
			name: "Sums the active membership",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(500)))
			},
			expectErr: false,
			result:    500,
		},
		{
			name: "Empty cooperative sums to zero",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))
			},
			expectErr: false,
			result:    0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.SumActiveWeight(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_AddShareBalance(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`UPDATE members SET share_balance = share_balance + $1 WHERE id = $2`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Credits the member",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(int64(150), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(int64(150), 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.AddShareBalance(context.Background(), 1, 150)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
