package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"inventory/domain"
	"inventory/pkg/config"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	table = "inventory"
)

var columns = []string{"id", "item_name", "quantity", "date_added", "price", "condition"}

type Repository struct {
	db      *sqlx.DB
	driver  string
	builder sq.StatementBuilderType
}

// NewRepository opens the database selected by cfg.DBDriver.
func NewRepository(cfg *config.AppConfig) (*Repository, error) {
	switch cfg.DBDriver {
	case DriverPostgres:
		return Open(DriverPostgres, cfg.PostgresDSN())
	case DriverSQLite, "":
		return Open(DriverSQLite, SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// SQLiteDSN sets a busy timeout so concurrent writers wait instead of failing with SQLITE_BUSY.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

func Open(driver, dsn string) (*Repository, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == DriverPostgres {
		db.SetMaxOpenConns(15)
		db.SetMaxIdleConns(8)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(2 * time.Minute)
	} else {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	return &Repository{
		db:      db,
		driver:  driver,
		builder: statementBuilder(driver),
	}, nil
}

func statementBuilder(driver string) sq.StatementBuilderType {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		placeholder = sq.Dollar
	}
	return sq.StatementBuilder.PlaceholderFormat(placeholder)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Migrate creates the inventory table if it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if r.driver == DriverPostgres {
		schema = postgresSchema
	}

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate %s: %w", table, err)
	}
	return nil
}

// GetPoolStats returns current connection pool statistics
func (r *Repository) GetPoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}

func (r *Repository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	query, args, err := r.builder.
		Insert(table).
		Columns("item_name", "quantity", "date_added", "price", "condition").
		Values(item.ItemName, item.Quantity, item.DateAdded, item.Price, item.Condition).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return item, fmt.Errorf("build insert: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return item, fmt.Errorf("insert item: %w", err)
	}

	return item, nil
}

func (r *Repository) GetItems(ctx context.Context) ([]domain.Item, error) {
	return r.selectItems(ctx, r.builder.Select(columns...).From(table).OrderBy("id"))
}

func (r *Repository) GetItemsByCondition(ctx context.Context, condition string) ([]domain.Item, error) {
	return r.selectItems(ctx, r.builder.Select(columns...).From(table).
		Where(sq.Eq{"condition": condition}).
		OrderBy("id"))
}

func (r *Repository) selectItems(ctx context.Context, b sq.SelectBuilder) ([]domain.Item, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	items := make([]domain.Item, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}

	return items, nil
}

// GetItem returns sql.ErrNoRows when id does not exist.
func (r *Repository) GetItem(ctx context.Context, id int64) (domain.Item, error) {
	var i domain.Item

	query, args, err := r.builder.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return i, fmt.Errorf("build select: %w", err)
	}

	if err := r.db.GetContext(ctx, &i, query, args...); err != nil {
		return i, err
	}

	return i, nil
}

// Update overwrites every field of item.ID and returns sql.ErrNoRows when it does not exist.
func (r *Repository) Update(ctx context.Context, item domain.Item) error {
	query, args, err := r.builder.Update(table).
		Set("item_name", item.ItemName).
		Set("quantity", item.Quantity).
		Set("date_added", item.DateAdded).
		Set("price", item.Price).
		Set("condition", item.Condition).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}

	return requireAffected(res)
}

// DeleteItem returns sql.ErrNoRows when id does not exist.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
