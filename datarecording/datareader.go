package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// QueryParams selects and orders the rows of a table. Where and OrderBy are
// inserted into the statement as they are, so they must not carry user
// input. Values go through Args, or through WhereEqual.
type QueryParams struct {
	// Where holds the conditions without the "WHERE" keyword, such as
	// "Kind = ? AND VPN > ?".
	Where string
	Args  []any

	// Limit caps the number of rows. Zero means all rows.
	Limit int

	// Offset skips rows. It also applies when there is no limit.
	Offset int

	// OrderBy holds the sort keys without "ORDER BY", such as "Seq DESC".
	OrderBy string
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WhereEqual adds the condition "column = value". An empty string value adds
// nothing, so optional filters can be chained. It panics if the column is
// not a plain identifier.
func (p QueryParams) WhereEqual(column string, value any) QueryParams {
	if s, ok := value.(string); ok && s == "" {
		return p
	}

	if !identifier.MatchString(column) {
		panic(fmt.Sprintf("invalid column name %q", column))
	}

	cond := column + " = ?"
	if p.Where != "" {
		cond = p.Where + " AND " + cond
	}

	p.Where = cond
	p.Args = append(slices.Clone(p.Args), value)

	return p
}

func (p QueryParams) whereClause() string {
	if p.Where == "" {
		return ""
	}

	return " WHERE " + p.Where
}

func (p QueryParams) selectSQL(table string) string {
	var b strings.Builder

	b.WriteString("SELECT * FROM " + table + p.whereClause())

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY " + p.OrderBy)
	}

	switch {
	case p.Limit > 0:
		fmt.Fprintf(&b, " LIMIT %d", p.Limit)
	case p.Offset > 0:
		// SQLite only accepts OFFSET after a LIMIT.
		b.WriteString(" LIMIT -1")
	}

	if p.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", p.Offset)
	}

	return b.String()
}

func (p QueryParams) countSQL(table string) string {
	return "SELECT COUNT(*) FROM " + table + p.whereClause()
}

// DataReader reads back the tables written by a DataRecorder.
type DataReader interface {
	// MapTable tells the reader which struct the rows of a table scan into.
	// Columns are matched to fields by name.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables, sorted alphabetically.
	ListTables() []string

	// Query returns pointers to structs of the mapped type, and the number
	// of rows that match the conditions regardless of limit and offset.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	Close() error
}

// QueryAs runs a query and dereferences the rows into values of T. T must be
// the type mapped to the table.
func QueryAs[T any](
	ctx context.Context,
	r DataReader,
	tableName string,
	params QueryParams,
) ([]T, int, error) {
	rows, total, err := r.Query(ctx, tableName, params)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]T, 0, len(rows))
	for _, row := range rows {
		entry, ok := row.(*T)
		if !ok {
			return nil, 0, fmt.Errorf("table %s holds %T, not %T",
				tableName, row, new(T))
		}

		entries = append(entries, *entry)
	}

	return entries, total, nil
}

type sqliteReader struct {
	db      *sql.DB
	typeMap map[string]reflect.Type
}

// NewReader opens a recording in read-only mode. Unlike sql.Open, it fails
// if the file does not exist rather than creating an empty database.
func NewReader(filename string) (DataReader, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a DataReader over an open database. Closing the
// reader closes the database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	if !identifier.MatchString(tableName) {
		panic(fmt.Sprintf("invalid table name %q", tableName))
	}

	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.typeMap))
	for table := range r.typeMap {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	entryType, ok := r.typeMap[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	var total int

	err := r.db.QueryRowContext(ctx, params.countSQL(tableName),
		params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, params.selectSQL(tableName),
		params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results, err := scanEntries(rows, entryType)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// scanEntries scans every row into a new struct. Columns without a field of
// the same name are dropped.
func scanEntries(rows *sql.Rows, entryType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	fieldIndex := make([]int, len(columns))
	for i, column := range columns {
		fieldIndex[i] = -1

		if field, ok := entryType.FieldByName(column); ok &&
			len(field.Index) == 1 {
			fieldIndex[i] = field.Index[0]
		}
	}

	var results []any

	for rows.Next() {
		entry := reflect.New(entryType)
		targets := make([]any, len(columns))

		for i, idx := range fieldIndex {
			if idx < 0 {
				targets[i] = new(any)
				continue
			}

			targets[i] = entry.Elem().Field(idx).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
