package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db, mock
}

func expectUnclaimedCheck(mock sqlmock.Sqlmock, domainID string, remaining int) {
	mock.ExpectQuery(`SELECT \* FROM "domains" WHERE id = \$1 FOR UPDATE`).
		WithArgs(domainID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(domainID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "claims" WHERE domain_id = \$1`).
		WithArgs(domainID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(remaining))
}

func expectDomainDeleted(mock sqlmock.Sqlmock, domainID string) {
	mock.ExpectExec(`DELETE FROM "scans" WHERE domain_id = \$1`).WithArgs(domainID).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "dmarc_summaries" WHERE domain_id = \$1`).WithArgs(domainID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "domains" WHERE id = \$1`).WithArgs(domainID).WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestClaimRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
	}{
		{name: "last claim removes the domain", remaining: 0},
		{name: "shared domain is kept", remaining: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectExec(`DELETE FROM "claims" WHERE org_id = \$1 AND domain_id = \$2`).
				WithArgs("org_1", "dom_1").
				WillReturnResult(sqlmock.NewResult(0, 1))
			expectUnclaimedCheck(mock, "dom_1", tt.remaining)
			if tt.remaining == 0 {
				expectDomainDeleted(mock, "dom_1")
			}
			mock.ExpectCommit()

			err := NewClaimRepository(db).Delete(context.Background(), "org_1", "dom_1")
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClaimRepository_DeleteRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "claims"`).WillReturnResult(sqlmock.NewResult(0, 1))
	expectUnclaimedCheck(mock, "dom_1", 0)
	mock.ExpectExec(`DELETE FROM "scans"`).WithArgs("dom_1").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := NewClaimRepository(db).Delete(context.Background(), "org_1", "dom_1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "domain_id" FROM "claims" WHERE org_id = \$1`).
		WithArgs("org_1").
		WillReturnRows(sqlmock.NewRows([]string{"domain_id"}).AddRow("dom_shared").AddRow("dom_only"))
	mock.ExpectExec(`DELETE FROM "claims" WHERE org_id = \$1`).WithArgs("org_1").WillReturnResult(sqlmock.NewResult(0, 2))
	expectUnclaimedCheck(mock, "dom_shared", 1)
	expectUnclaimedCheck(mock, "dom_only", 0)
	expectDomainDeleted(mock, "dom_only")
	mock.ExpectExec(`DELETE FROM "affiliations" WHERE org_id = \$1`).WithArgs("org_1").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "organizations" WHERE id = \$1`).WithArgs("org_1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewOrganizationRepository(db).Delete(context.Background(), "org_1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_DeleteRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "domain_id" FROM "claims"`).
		WithArgs("org_1").
		WillReturnRows(sqlmock.NewRows([]string{"domain_id"}))
	mock.ExpectExec(`DELETE FROM "claims"`).WithArgs("org_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "affiliations"`).WithArgs("org_1").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := NewOrganizationRepository(db).Delete(context.Background(), "org_1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
