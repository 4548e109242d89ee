package postgres

import (
	"fmt"
	"strings"
)

// queryBuilder acumula predicados WHERE con placeholders posicionales ($n).
// Los predicados componen con AND; un término de búsqueda libre se expresa
// como un único predicado OR vía addSearch.
type queryBuilder struct {
	conds []string
	args  []any
}

// add agrega un predicado. format usa %s por cada valor; cada valor se vuelve
// un placeholder $n en orden.
func (b *queryBuilder) add(format string, vals ...any) {
	ph := make([]any, len(vals))
	for i, v := range vals {
		b.args = append(b.args, v)
		ph[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.conds = append(b.conds, fmt.Sprintf(format, ph...))
}

// addSearch agrega una disyunción ILIKE '%term%' sobre los campos dados.
func (b *queryBuilder) addSearch(term string, fields ...string) {
	if term == "" || len(fields) == 0 {
		return
	}
	pattern := "%" + escapeLike(term) + "%"
	b.args = append(b.args, pattern)
	ph := fmt.Sprintf("$%d", len(b.args))
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s ILIKE %s", f, ph)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
}

// whereClause devuelve " WHERE ..." o cadena vacía si no hay predicados.
func (b *queryBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// addArg registra un valor fuera del WHERE (LIMIT/OFFSET) y devuelve su placeholder.
func (b *queryBuilder) addArg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// escapeLike escapa los metacaracteres de LIKE para que la búsqueda sea literal.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// sortColumn traduce la clave de orden de la API a una columna real.
// Claves no reconocidas caen al orden por fecha de creación.
func sortColumn(apiKey string) string {
	switch apiKey {
	case "name":
		return "name"
	case "price":
		return "price"
	case "stock":
		return "stock"
	case "sku":
		return "sku"
	case "updatedAt":
		return "updated_at"
	default:
		return "created_at"
	}
}

// sortDirection normaliza la dirección de orden; por defecto DESC.
func sortDirection(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}
	return "DESC"
}

// pageOffset calcula el OFFSET a partir de page (base 1) y limit.
func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
