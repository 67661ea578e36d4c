package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kiosk-backend/internal/domains/menu/model"
	"kiosk-backend/pkg/database"
)

type menuRepository struct {
	db *pgxpool.Pool
}

// NewMenuRepository creates a Postgres-backed menu repository
func NewMenuRepository(db *pgxpool.Pool) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	query := `
		SELECT id, name, display_order
		FROM categories
		ORDER BY display_order, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		c := &model.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *menuRepository) ListProducts(ctx context.Context) ([]*model.Product, error) {
	query := productSelect + ` ORDER BY p.category_id, p.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachIngredients(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *menuRepository) FindProductByID(ctx context.Context, id int64) (*model.Product, error) {
	query := productSelect + ` WHERE p.id = $1`

	row := r.db.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	if err := r.attachIngredients(ctx, []*model.Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *menuRepository) FindProductsByIDs(ctx context.Context, ids []int64) ([]*model.Product, error) {
	query := productSelect + ` WHERE p.id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *menuRepository) CreateProduct(ctx context.Context, product *model.Product, ingredientNames []string) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO products (category_id, name, description, price, image_url, available,
			                      calories, protein_g, fat_g, carbs_g)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRow(ctx, insert,
			product.CategoryID, product.Name, product.Description, product.Price,
			product.ImageURL, product.Available,
			product.Nutrition.Calories, product.Nutrition.ProteinG,
			product.Nutrition.FatG, product.Nutrition.CarbsG,
		).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return model.ErrCategoryNotFound
			}
			return fmt.Errorf("failed to create product: %w", err)
		}

		// Ingredients are upserted by name so products can share them
		// without a separate registration step. The no-op update makes
		// RETURNING work on conflict.
		upsert := `
			INSERT INTO ingredients (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id, name, allergen`

		for _, name := range ingredientNames {
			var ing model.Ingredient
			if err := tx.QueryRow(ctx, upsert, name).Scan(&ing.ID, &ing.Name, &ing.Allergen); err != nil {
				return fmt.Errorf("failed to upsert ingredient %q: %w", name, err)
			}

			_, err := tx.Exec(ctx,
				`INSERT INTO product_ingredients (product_id, ingredient_id) VALUES ($1, $2)`,
				product.ID, ing.ID)
			if err != nil {
				return fmt.Errorf("failed to link ingredient %q: %w", name, err)
			}

			product.Ingredients = append(product.Ingredients, ing)
		}

		return nil
	})
}

func (r *menuRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	query := `UPDATE products SET available = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, available)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

const productSelect = `
	SELECT p.id, p.category_id, p.name, p.description, p.price, p.image_url, p.available,
	       p.calories, p.protein_g, p.fat_g, p.carbs_g, p.created_at, p.updated_at
	FROM products p`

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.Available,
		&p.Nutrition.Calories, &p.Nutrition.ProteinG,
		&p.Nutrition.FatG, &p.Nutrition.CarbsG,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProducts(rows pgx.Rows) ([]*model.Product, error) {
	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *menuRepository) attachIngredients(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	byID := make(map[int64]*model.Product, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Ingredients = []model.Ingredient{}
	}

	query := `
		SELECT pi.product_id, i.id, i.name, i.allergen
		FROM product_ingredients pi
		JOIN ingredients i ON i.id = pi.ingredient_id
		WHERE pi.product_id = ANY($1)
		ORDER BY i.name`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var ing model.Ingredient
		if err := rows.Scan(&productID, &ing.ID, &ing.Name, &ing.Allergen); err != nil {
			return fmt.Errorf("failed to scan ingredient: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Ingredients = append(p.Ingredients, ing)
		}
	}

	return rows.Err()
}
