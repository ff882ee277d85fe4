package docparse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearsummary/api/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type documentRepoPG struct{ pool *pgxpool.Pool }

func NewDocumentRepoPG(pool *pgxpool.Pool) DocumentRepository { return &documentRepoPG{pool: pool} }

func (r *documentRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const documentCols = `id, document_id, tenant_id, parser_used, parser_name, reason, summary, instructions, created_at`

func (r *documentRepoPG) scanDocument(row pgx.Row) (*Document, error) {
	var d Document
	var summaryJSON, instructionsJSON []byte
	err := row.Scan(&d.ID, &d.DocumentID, &d.TenantID, &d.ParserUsed, &d.ParserName,
		&d.Reason, &summaryJSON, &instructionsJSON, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(summaryJSON) > 0 {
		d.Summary = &Summary{}
		if err := json.Unmarshal(summaryJSON, d.Summary); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
	}
	if len(instructionsJSON) > 0 {
		d.Instructions = &Instructions{}
		if err := json.Unmarshal(instructionsJSON, d.Instructions); err != nil {
			return nil, fmt.Errorf("decode instructions: %w", err)
		}
	}
	return &d, nil
}

func (r *documentRepoPG) Create(ctx context.Context, d *Document) error {
	d.ID = uuid.New()

	var summaryJSON, instructionsJSON []byte
	var err error
	if d.Summary != nil {
		if summaryJSON, err = json.Marshal(d.Summary); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
	}
	if d.Instructions != nil {
		if instructionsJSON, err = json.Marshal(d.Instructions); err != nil {
			return fmt.Errorf("encode instructions: %w", err)
		}
	}

	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO discharge_document (id, document_id, tenant_id, parser_used, parser_name, reason, summary, instructions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.DocumentID, d.TenantID, d.ParserUsed, d.ParserName, d.Reason, summaryJSON, instructionsJSON)
	return err
}

func (r *documentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	return r.scanDocument(r.conn(ctx).QueryRow(ctx,
		`SELECT `+documentCols+` FROM discharge_document WHERE id = $1`, id))
}

func (r *documentRepoPG) List(ctx context.Context, limit, offset int) ([]*Document, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM discharge_document`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+documentCols+` FROM discharge_document ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Document
	for rows.Next() {
		d, err := r.scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *documentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM discharge_document WHERE id = $1`, id)
	return err
}
