package collection

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// Op is a filter comparison.
type Op string

const (
	OpEq     Op = "="
	OpNotEq  Op = "<>"
	OpLt     Op = "<"
	OpGt     Op = ">"
	OpIn     Op = "IN"
	OpIsNull Op = "IS NULL"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

func In(column string, values any) Filter { return Filter{Column: column, Op: OpIn, Value: values} }

type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

type Query struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
	Preload []string
}

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Collection is a select/insert/update/delete client over one table.
// Failures come back as *errs.DataAccessError, missing rows as errs.ErrNotFound.
type Collection[T any] struct {
	db   *gorm.DB
	log  *logger.Logger
	name string
}

func New[T any](db *gorm.DB, baseLog *logger.Logger, name string) *Collection[T] {
	return &Collection[T]{
		db:   db,
		log:  baseLog.With("repo", "Collection", "collection", name),
		name: name,
	}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Select(dbc dbctx.Context, q Query) ([]T, error) {
	tx, err := c.apply(dbc.DB(c.db), q)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := tx.Find(&out).Error; err != nil {
		return nil, c.wrap("select", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *Collection[T]) First(dbc dbctx.Context, q Query) (*T, error) {
	q.Limit = 1
	rows, err := c.Select(dbc, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, c.notFound()
	}
	return &rows[0], nil
}

func (c *Collection[T]) Get(dbc dbctx.Context, id any, preload ...string) (*T, error) {
	tx := dbc.DB(c.db)
	for _, p := range preload {
		tx = tx.Preload(p, orderedPreload(p))
	}
	var out T
	if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
		return nil, c.wrap("get", err)
	}
	return &out, nil
}

func (c *Collection[T]) Insert(dbc dbctx.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, errs.Invalid(c.name, "record required")
	}
	if err := dbc.DB(c.db).Create(rec).Error; err != nil {
		return nil, c.wrap("insert", err)
	}
	return rec, nil
}

// Update writes values (a map or a *T) to the row with id and returns the
// stored row. When columns are given only those are written, zero values included.
func (c *Collection[T]) Update(dbc dbctx.Context, id any, values any, columns ...string) (*T, error) {
	tx := dbc.DB(c.db).Model(new(T)).Where("id = ?", id)
	if len(columns) > 0 {
		tx = tx.Select(columns)
	}
	res := tx.Updates(values)
	if res.Error != nil {
		return nil, c.wrap("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, c.notFound()
	}
	return c.Get(dbc, id)
}

func (c *Collection[T]) Delete(dbc dbctx.Context, id any) error {
	res := dbc.DB(c.db).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return c.wrap("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.notFound()
	}
	return nil
}

func (c *Collection[T]) DeleteWhere(dbc dbctx.Context, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, errs.Invalid(c.name, "delete requires a filter")
	}
	tx, err := c.apply(dbc.DB(c.db), Query{Filters: filters})
	if err != nil {
		return 0, err
	}
	res := tx.Delete(new(T))
	if res.Error != nil {
		return 0, c.wrap("delete", res.Error)
	}
	return res.RowsAffected, nil
}

func (c *Collection[T]) Count(dbc dbctx.Context, filters ...Filter) (int64, error) {
	tx, err := c.apply(dbc.DB(c.db).Model(new(T)), Query{Filters: filters})
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, c.wrap("count", err)
	}
	return n, nil
}

// MaxInt returns MAX(column) over the filtered rows, or -1 when there are none.
func (c *Collection[T]) MaxInt(dbc dbctx.Context, column string, filters ...Filter) (int, error) {
	if !columnPattern.MatchString(column) {
		return 0, errs.Invalid("column", "invalid column %q", column)
	}
	tx, err := c.apply(dbc.DB(c.db).Model(new(T)), Query{Filters: filters})
	if err != nil {
		return 0, err
	}
	var max sql.NullInt64
	if err := tx.Select(fmt.Sprintf("MAX(%s)", column)).Row().Scan(&max); err != nil {
		return 0, c.wrap("max", err)
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func (c *Collection[T]) apply(tx *gorm.DB, q Query) (*gorm.DB, error) {
	for _, f := range q.Filters {
		if !columnPattern.MatchString(f.Column) {
			return nil, errs.Invalid("filter", "invalid column %q", f.Column)
		}
		switch f.Op {
		case "", OpEq:
			tx = tx.Where(f.Column+" = ?", f.Value)
		case OpNotEq, OpLt, OpGt:
			tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
		case OpIn:
			tx = tx.Where(f.Column+" IN ?", f.Value)
		case OpIsNull:
			tx = tx.Where(f.Column + " IS NULL")
		default:
			return nil, errs.Invalid("filter", "unsupported operator %q", f.Op)
		}
	}
	for _, o := range q.OrderBy {
		if !columnPattern.MatchString(o.Column) {
			return nil, errs.Invalid("order", "invalid column %q", o.Column)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		tx = tx.Order(o.Column + " " + dir)
	}
	for _, p := range q.Preload {
		tx = tx.Preload(p, orderedPreload(p))
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}

// orderedPreload keeps ordered children (skills) in order_index order.
func orderedPreload(relation string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.EqualFold(relation, "Skills") {
			return db.Order("order_index ASC")
		}
		return db
	}
}

func (c *Collection[T]) notFound() error {
	return fmt.Errorf("%s: %w", c.name, errs.ErrNotFound)
}

func (c *Collection[T]) wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.notFound()
	}
	c.log.Warn("Collection operation failed", "op", op, "error", err)
	return errs.DataAccess(op, c.name, err)
}
