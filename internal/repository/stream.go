package repository

import (
	"context"
	"iter"
	"strings"

	"go-clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

// stream runs the query lazily, one row at a time. The query is rebuilt on
// every iteration so the returned sequence can be ranged over again.
func stream[T any](ctx context.Context, db *gorm.DB, build func(tx *gorm.DB) *gorm.DB) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		tx := build(db.WithContext(ctx).Model(new(T)))

		rows, err := tx.Rows()
		if err != nil {
			yield(zero, translateError(err, opRead))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var item T
			if err := tx.ScanRows(rows, &item); err != nil {
				yield(zero, translateError(err, opRead))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, translateError(err, opRead))
		}
	}
}

func applyOrder(tx *gorm.DB, column string, order entity.SortOrder) *gorm.DB {
	switch order {
	case entity.SortAsc:
		return tx.Order(column + " ASC")
	case entity.SortDesc:
		return tx.Order(column + " DESC")
	}
	return tx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in the
// column. Use it with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
