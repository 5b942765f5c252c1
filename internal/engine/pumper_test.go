package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/dialect"
	"sheet2ddl/internal/schema"
)

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(n)
}

func TestSeedInsertsRequestedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	insert := regexp.QuoteMeta("INSERT INTO WODS5.CUSTOMER (ID, NAME, CREATED) VALUES (:1, :2, :3)")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM WODS5.CUSTOMER")).WillReturnRows(countRows(4))
	mock.ExpectBegin()
	for i := 1; i <= 3; i++ {
		mock.ExpectExec(insert).
			WithArgs(int64(i), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM WODS5.CUSTOMER")).WillReturnRows(countRows(7))

	progress := 0
	res, err := Seed(context.Background(), db, &dialect.OracleDialect{}, customerScript(t), 3, func() { progress++ })
	require.NoError(t, err)

	assert.Equal(t, schema.SeedResult{TableName: "WODS5.CUSTOMER", Target: 3, Actual: 3, Status: "OK"}, res)
	assert.Equal(t, 3, progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedCapsToKeyWidth(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	script, err := ddl.Build([]schema.Column{
		{TableName: "FLAG", Name: "KOD", Length: "1", IsPK: true, TargetType: "Number(1)"},
	}, ddl.Options{Schema: "WODS5"})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM WODS5.FLAG")).WillReturnRows(countRows(0))
	mock.ExpectBegin()
	for i := 1; i <= 9; i++ {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO WODS5.FLAG")).
			WithArgs(int64(i)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM WODS5.FLAG")).WillReturnRows(countRows(9))

	res, err := Seed(context.Background(), db, &dialect.OracleDialect{}, script, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Target)
	assert.Equal(t, 9, res.Actual)
	assert.Equal(t, "OK", res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedReportsMissingData(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).WillReturnRows(countRows(0))
	mock.ExpectBegin()
	for i := 0; i < 10; i++ {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO WODS5.CUSTOMER")).
			WillReturnError(errors.New("ORA-00942: table or view does not exist"))
	}
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).WillReturnRows(countRows(0))

	res, err := Seed(context.Background(), db, &dialect.OracleDialect{}, customerScript(t), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "MISSING DATA", res.Status)
	assert.Equal(t, 0, res.Actual)
	assert.Contains(t, res.ErrorMsg, "Failed to insert any rows")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedCountFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).WillReturnError(errors.New("ORA-00942"))

	_, err = Seed(context.Background(), db, &dialect.OracleDialect{}, customerScript(t), 1, nil)
	assert.Error(t, err)
}

func TestCalculateMaxInsertCount(t *testing.T) {
	tests := []struct {
		name      string
		types     []string
		lengths   []string
		kinds     []string
		requested int
		want      int
	}{
		{"narrowest key wins", []string{"Number(2)", "Varchar2"}, []string{"", "3"}, []string{"integer", "string"}, 5000, 99},
		{"two integer keys", []string{"Number(2)", "Number(5)"}, []string{"", ""}, []string{"integer", "integer"}, 5000, 99},
		{"unbounded key ignored", []string{"Number(2)", "Number(20)"}, []string{"", ""}, []string{"integer", "integer"}, 5000, 99},
		{"date key ignored", []string{"Date", "Number(5)"}, []string{"", ""}, []string{"datetime", "integer"}, 5000, 5000},
		{"below capacity", []string{"Number(2)", "Varchar2"}, []string{"", "3"}, []string{"integer", "string"}, 10, 10},
		{"no bounded key", []string{"Date", "Number(20)"}, []string{"", ""}, []string{"datetime", "integer"}, 5000, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := make([]schema.Column, len(tt.types))
			for i := range tt.types {
				cols[i] = schema.Column{Name: fmt.Sprintf("K%d", i), TargetType: tt.types[i], Length: tt.lengths[i], IsPK: true}
			}
			got := calculateMaxInsertCount("T", cols, tt.kinds, tt.requested)
			assert.Equal(t, tt.want, got)

			// every key must hold the last row index
			for i, c := range cols {
				if n := keyCapacity(c, tt.kinds[i]); n > 0 {
					assert.LessOrEqual(t, got, n, c.TargetType)
				}
			}
		})
	}
}
