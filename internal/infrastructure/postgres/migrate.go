package postgres

import (
	"context"
	"fmt"
)

// Migrate crea el esquema si no existe. Es idempotente; se ejecuta en el
// arranque. Los índices únicos (email, name, slug, sku, par producto-categoría)
// son la garantía final de unicidad frente a escrituras concurrentes.
func Migrate(ctx context.Context, q Querier) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          UUID PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			email       VARCHAR(100) NOT NULL,
			password    VARCHAR(255) NOT NULL,
			role        VARCHAR(10)  NOT NULL DEFAULT 'user',
			is_active   BOOLEAN      NOT NULL DEFAULT TRUE,
			last_login  TIMESTAMPTZ,
			created_at  TIMESTAMPTZ  NOT NULL,
			updated_at  TIMESTAMPTZ  NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email))`,

		`CREATE TABLE IF NOT EXISTS categories (
			id          UUID PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			description TEXT,
			slug        VARCHAR(100) NOT NULL,
			is_active   BOOLEAN      NOT NULL DEFAULT TRUE,
			parent_id   UUID REFERENCES categories (id),
			created_at  TIMESTAMPTZ  NOT NULL,
			updated_at  TIMESTAMPTZ  NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS categories_name_key ON categories (name)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS categories_slug_key ON categories (slug)`,
		`CREATE INDEX IF NOT EXISTS categories_parent_id_idx ON categories (parent_id)`,

		`CREATE TABLE IF NOT EXISTS products (
			id               UUID PRIMARY KEY,
			name             VARCHAR(200)  NOT NULL,
			description      TEXT,
			price            NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			sku              VARCHAR(50)   NOT NULL,
			stock            INTEGER       NOT NULL DEFAULT 0 CHECK (stock >= 0),
			images           JSONB         NOT NULL DEFAULT '[]',
			options          JSONB         NOT NULL DEFAULT '{}',
			slug             VARCHAR(200)  NOT NULL,
			is_active        BOOLEAN       NOT NULL DEFAULT TRUE,
			is_featured      BOOLEAN       NOT NULL DEFAULT FALSE,
			weight           NUMERIC(8,2)  CHECK (weight IS NULL OR weight >= 0),
			dimensions       JSONB,
			meta_title       VARCHAR(60),
			meta_description VARCHAR(160),
			created_at       TIMESTAMPTZ   NOT NULL,
			updated_at       TIMESTAMPTZ   NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS products_sku_key ON products (sku)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS products_slug_key ON products (slug)`,

		`CREATE TABLE IF NOT EXISTS product_categories (
			product_id  UUID NOT NULL REFERENCES products (id) ON DELETE CASCADE,
			category_id UUID NOT NULL REFERENCES categories (id),
			PRIMARY KEY (product_id, category_id)
		)`,
		`CREATE INDEX IF NOT EXISTS product_categories_category_id_idx ON product_categories (category_id)`,
	}

	for _, stmt := range stmts {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
