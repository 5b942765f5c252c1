package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/dialect"
	"sheet2ddl/internal/schema"
)

// keyCapacity returns how many distinct sequential values a primary key
// column can hold, or 0 when the column does not limit the row count.
func keyCapacity(col schema.Column, kind string) int {
	switch kind {
	case "integer", "string":
		w := width(col)
		if w <= 0 || w > 9 {
			return 0
		}
		return maxForDigits(w)
	}
	return 0
}

// calculateMaxInsertCount caps requestedCount to what the primary key
// columns can hold. All key columns take the row index, so the narrowest
// bounded one decides; unbounded keys are ignored.
func calculateMaxInsertCount(table string, cols []schema.Column, kinds []string, requestedCount int) int {
	capacity := 0
	for i, c := range cols {
		if !c.IsPK {
			continue
		}
		n := keyCapacity(c, kinds[i])
		if n == 0 {
			continue
		}
		if capacity == 0 || n < capacity {
			capacity = n
		}
	}

	if capacity > 0 && capacity < requestedCount {
		slog.Warn("primary key width limits seed rows", "table", table, "requested", requestedCount, "max", capacity)
		return capacity
	}
	return requestedCount
}

// Seed inserts count fake rows into the table created from script and
// verifies the row count afterwards. Audit columns are left to their
// defaults.
func Seed(ctx context.Context, db *sql.DB, d dialect.Dialect, script ddl.Script, count int, onProgress func()) (schema.SeedResult, error) {
	table := script.QualifiedName()
	cols := script.Columns

	// 기존 데이터 건수 확인
	var initialCount int
	if err := db.QueryRowContext(ctx, d.CountQuery(table)).Scan(&initialCount); err != nil {
		return schema.SeedResult{}, fmt.Errorf("failed to count %s: %w", table, err)
	}

	kinds := make([]string, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		kinds[i] = d.NormalizeType(c.TargetType)
		names[i] = c.Name
	}

	// 데이터 타입 제약에 따른 최대 삽입 건수 계산
	adjustedCount := calculateMaxInsertCount(table, cols, kinds, count)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return schema.SeedResult{}, fmt.Errorf("failed to begin seed of %s: %w", table, err)
	}

	query := d.InsertQuery(table, names)
	inserted := 0
	attempts := 0
	usedKeys := make(map[string]bool)

	// 목표치 채우기 로직 (중복 시 재시도)
	for inserted < adjustedCount && attempts < adjustedCount*10 {
		if err := ctx.Err(); err != nil {
			tx.Rollback()
			return schema.SeedResult{}, err
		}
		attempts++

		values, key := generateRow(cols, kinds, inserted+1)
		if key != "" && usedKeys[key] {
			continue
		}

		_, err := tx.ExecContext(ctx, query, values...)
		if err == nil {
			inserted++
			if key != "" {
				usedKeys[key] = true
			}
			if onProgress != nil {
				onProgress()
			}
		} else if attempts <= 3 {
			slog.Debug("insert failed", "table", table, "attempt", attempts, "error", err, "query", query)
		}
	}

	if err := tx.Commit(); err != nil {
		return schema.SeedResult{}, fmt.Errorf("failed to commit seed of %s: %w", table, err)
	}

	// 실제 들어간 개수 확인 (Verification)
	var finalCount int
	if err := db.QueryRowContext(ctx, d.CountQuery(table)).Scan(&finalCount); err != nil {
		return schema.SeedResult{}, fmt.Errorf("failed to verify %s: %w", table, err)
	}
	actual := finalCount - initialCount

	status := "OK"
	var errMsg string
	if actual < adjustedCount {
		status = "MISSING DATA"
		if inserted == 0 {
			errMsg = "Failed to insert any rows. Run with --log-level debug for details."
		} else {
			errMsg = fmt.Sprintf("Only inserted %d out of %d.", actual, adjustedCount)
		}
	}

	slog.Info("seed finished", "table", table, "target", count, "actual", actual, "status", status)
	return schema.SeedResult{
		TableName: table,
		Target:    count, // 원래 요청한 건수 표시
		Actual:    actual,
		Status:    status,
		ErrorMsg:  errMsg,
	}, nil
}

// generateRow builds one row of values and the key identifying its primary
// key combination ("" when the table has no primary key).
func generateRow(cols []schema.Column, kinds []string, index int) ([]interface{}, string) {
	values := make([]interface{}, len(cols))
	var pkValues []string
	for i, c := range cols {
		values[i] = GenerateValue(c, kinds[i], index)
		if c.IsPK {
			pkValues = append(pkValues, fmt.Sprintf("%v", values[i]))
		}
	}
	return values, strings.Join(pkValues, "|")
}
