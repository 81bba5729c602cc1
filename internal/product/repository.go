package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shrimati-be/internal/logger"

	"go.uber.org/zap"
)

type SearchOptions struct {
	Query         string
	CategoryIDs   []uint
	Brands        []string
	MinPrice      *float64
	MaxPrice      *float64
	Sort          string // "low-high", "high-low", "newest"
	Limit         uint16
	Page          uint16
	IncludeHidden bool
}

type Repository interface {
	GetProductByID(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	Search(ctx context.Context, opts SearchOptions) ([]*Product, error)
	GetProductColors(ctx context.Context, productID uint) ([]*Color, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id,
	name,
	price,
	image,
	description,
	offer,
	brand,
	category_id,
	subcategory_id,
	is_active,
	created_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Image,
		&p.Description,
		&p.Offer,
		&p.Brand,
		&p.CategoryID,
		&p.SubcategoryID,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) ListProducts(ctx context.Context) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = TRUE ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *repository) Search(ctx context.Context, opts SearchOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Search"),
	)

	start := time.Now()

	// ---------- pagination ----------
	finalLimit := uint16(20)
	if opts.Limit > 0 {
		finalLimit = opts.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := uint16(1)
	if opts.Page > 0 {
		finalPage = opts.Page
	}

	offset := int((finalPage - 1) * finalLimit)

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if !opts.IncludeHidden {
		where = append(where, "is_active = TRUE")
	}

	if opts.Query != "" {
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR brand ILIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1,
		))
		args = append(args, "%"+opts.Query+"%")
	}

	if len(opts.CategoryIDs) > 0 {
		placeholders := make([]string, 0, len(opts.CategoryIDs))
		for _, id := range opts.CategoryIDs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
			args = append(args, id)
		}
		where = append(where, "category_id IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(opts.Brands) > 0 {
		placeholders := make([]string, 0, len(opts.Brands))
		for _, b := range opts.Brands {
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
			args = append(args, b)
		}
		where = append(where, "brand IN ("+strings.Join(placeholders, ", ")+")")
	}

	if opts.MinPrice != nil {
		where = append(where, fmt.Sprintf("price >= $%d", len(args)+1))
		args = append(args, *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		where = append(where, fmt.Sprintf("price <= $%d", len(args)+1))
		args = append(args, *opts.MaxPrice)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	// ---------- sort ----------
	orderBy := "id DESC"
	switch opts.Sort {
	case "low-high":
		orderBy = "price ASC"
	case "high-low":
		orderBy = "price DESC"
	case "newest":
		orderBy = "created_at DESC"
	}

	query := `SELECT ` + productColumns + `
	FROM products
	` + whereClause + `
	ORDER BY ` + orderBy + `
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	result, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	log.Debug("search success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (r *repository) GetProductColors(ctx context.Context, productID uint) ([]*Color, error) {
	query := `
	SELECT c.id, c.name, c.hex_code
	FROM colors c
	JOIN product_colors pc ON pc.color_id = c.id
	WHERE pc.product_id = $1
	ORDER BY c.name
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colors := make([]*Color, 0)
	for rows.Next() {
		var c Color
		if err := rows.Scan(&c.ID, &c.Name, &c.HexCode); err != nil {
			return nil, err
		}
		colors = append(colors, &c)
	}

	return colors, rows.Err()
}

func collectProducts(rows *sql.Rows) ([]*Product, error) {
	result := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
