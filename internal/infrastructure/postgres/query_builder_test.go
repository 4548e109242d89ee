package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_SinPredicados(t *testing.T) {
	var b queryBuilder
	assert.Equal(t, "", b.whereClause())
	assert.Empty(t, b.args)
}

func TestQueryBuilder_PredicadosComponenConAND(t *testing.T) {
	var b queryBuilder
	b.add("price >= %s", "10.00")
	b.add("price <= %s", "99.99")
	b.add("is_active = %s", true)

	assert.Equal(t, " WHERE price >= $1 AND price <= $2 AND is_active = $3", b.whereClause())
	assert.Equal(t, []any{"10.00", "99.99", true}, b.args)
}

func TestQueryBuilder_SearchExpandeAOR(t *testing.T) {
	var b queryBuilder
	b.addSearch("galaxy", "name", "description", "sku")

	assert.Equal(t,
		" WHERE (name ILIKE $1 OR description ILIKE $1 OR sku ILIKE $1)",
		b.whereClause())
	assert.Equal(t, []any{"%galaxy%"}, b.args)
}

func TestQueryBuilder_SearchVacioNoAgregaNada(t *testing.T) {
	var b queryBuilder
	b.addSearch("", "name")
	assert.Equal(t, "", b.whereClause())
}

func TestQueryBuilder_SearchEscapaMetacaracteresLike(t *testing.T) {
	var b queryBuilder
	b.addSearch("50%_off", "name")
	assert.Equal(t, []any{`%50\%\_off%`}, b.args)
}

func TestQueryBuilder_AddArgContinuaNumeracion(t *testing.T) {
	var b queryBuilder
	b.add("is_featured = %s", true)
	ph := b.addArg(10)
	assert.Equal(t, "$2", ph)
	assert.Equal(t, []any{true, 10}, b.args)
}

func TestSortColumn_ListaBlanca(t *testing.T) {
	assert.Equal(t, "price", sortColumn("price"))
	assert.Equal(t, "updated_at", sortColumn("updatedAt"))
	// claves desconocidas no llegan jamás al SQL tal cual
	assert.Equal(t, "created_at", sortColumn("createdAt"))
	assert.Equal(t, "created_at", sortColumn("; DROP TABLE products"))
	assert.Equal(t, "created_at", sortColumn(""))
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "ASC", sortDirection("asc"))
	assert.Equal(t, "ASC", sortDirection("ASC"))
	assert.Equal(t, "DESC", sortDirection("desc"))
	assert.Equal(t, "DESC", sortDirection("whatever"))
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 10))
	assert.Equal(t, 10, pageOffset(2, 10))
	assert.Equal(t, 0, pageOffset(0, 10)) // page inválido cae a 1
	assert.Equal(t, 90, pageOffset(10, 10))
}
