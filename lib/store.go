package lib

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scans (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		scanned_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tokens (
		scan_id BIGINT NOT NULL REFERENCES scans (id) ON DELETE CASCADE,
		position INT NOT NULL,
		type TEXT NOT NULL,
		lexeme TEXT NOT NULL,
		literal_number DOUBLE PRECISION,
		literal_text TEXT,
		line INT NOT NULL,
		PRIMARY KEY (scan_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS diagnostics (
		scan_id BIGINT NOT NULL REFERENCES scans (id) ON DELETE CASCADE,
		position INT NOT NULL,
		line INT NOT NULL,
		message TEXT NOT NULL,
		PRIMARY KEY (scan_id, position)
	)`,
}

// Store keeps scan results in Postgres so other tools can query them.
type Store struct {
	db *sql.DB
}

func OpenStore(ctx context.Context, connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, describePQError("connect", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		_, err := s.db.ExecContext(ctx, stmt)
		if err != nil {
			return describePQError("migrate", err)
		}
	}
	return nil
}

// SaveScan records one scan and returns its id. Everything is written in a
// single transaction.
func (s *Store) SaveScan(ctx context.Context, name string, source string, tokens []Token, diags []Diagnostic) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO scans (name, source) VALUES ($1, $2) RETURNING id",
		name, source).Scan(&id)
	if err != nil {
		return 0, describePQError("insert scan", err)
	}

	err = copyTokens(ctx, tx, id, tokens)
	if err != nil {
		return 0, err
	}

	err = copyDiagnostics(ctx, tx, id, diags)
	if err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func copyTokens(ctx context.Context, tx *sql.Tx, scanID int64, tokens []Token) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("tokens",
		"scan_id", "position", "type", "lexeme", "literal_number", "literal_text", "line"))
	if err != nil {
		return describePQError("copy tokens", err)
	}

	for i, tok := range tokens {
		num, text := literalColumns(tok.Literal)
		_, err = stmt.ExecContext(ctx, scanID, i, tok.Type.String(), tok.Lexeme, num, text, tok.Line)
		if err != nil {
			stmt.Close()
			return describePQError("copy tokens", err)
		}
	}

	// flush
	_, err = stmt.ExecContext(ctx)
	if err != nil {
		stmt.Close()
		return describePQError("copy tokens", err)
	}
	return stmt.Close()
}

func copyDiagnostics(ctx context.Context, tx *sql.Tx, scanID int64, diags []Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("diagnostics", "scan_id", "position", "line", "message"))
	if err != nil {
		return describePQError("copy diagnostics", err)
	}

	for i, d := range diags {
		_, err = stmt.ExecContext(ctx, scanID, i, d.Line, d.Message)
		if err != nil {
			stmt.Close()
			return describePQError("copy diagnostics", err)
		}
	}

	_, err = stmt.ExecContext(ctx)
	if err != nil {
		stmt.Close()
		return describePQError("copy diagnostics", err)
	}
	return stmt.Close()
}

func (s *Store) LoadTokens(ctx context.Context, scanID int64) ([]Token, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, lexeme, literal_number, literal_text, line
		FROM tokens WHERE scan_id = $1 ORDER BY position`, scanID)
	if err != nil {
		return nil, describePQError("load tokens", err)
	}
	defer rows.Close()

	result := []Token{}
	for rows.Next() {
		var typeName string
		var num sql.NullFloat64
		var text sql.NullString
		tok := Token{}

		err = rows.Scan(&typeName, &tok.Lexeme, &num, &text, &tok.Line)
		if err != nil {
			return nil, err
		}

		typ, ok := tokenTypeByName(typeName)
		if !ok {
			return nil, fmt.Errorf("scan %d: unknown token type %q", scanID, typeName)
		}
		tok.Type = typ
		tok.Literal = literalFromColumns(num, text)
		result = append(result, tok)
	}
	return result, rows.Err()
}

func (s *Store) LoadDiagnostics(ctx context.Context, scanID int64) ([]Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT line, message FROM diagnostics WHERE scan_id = $1 ORDER BY position", scanID)
	if err != nil {
		return nil, describePQError("load diagnostics", err)
	}
	defer rows.Close()

	result := []Diagnostic{}
	for rows.Next() {
		d := Diagnostic{}
		err = rows.Scan(&d.Line, &d.Message)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func literalColumns(l Literal) (sql.NullFloat64, sql.NullString) {
	num, isNum := l.Number()
	text, isText := l.Text()
	return sql.NullFloat64{Float64: num, Valid: isNum}, sql.NullString{String: text, Valid: isText}
}

func literalFromColumns(num sql.NullFloat64, text sql.NullString) Literal {
	switch {
	case num.Valid:
		return NumberLiteral(num.Float64)
	case text.Valid:
		return StringLiteral(text.String)
	default:
		return NoLiteral
	}
}

func tokenTypeByName(name string) (TokenType, bool) {
	for i, n := range tokenTypeNames {
		if n == name {
			return TokenType(i), true
		}
	}
	return 0, false
}

// describePQError adds the Postgres error code when there is one.
func describePQError(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("%s: %s (%s): %w", op, pqErr.Message, pqErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
