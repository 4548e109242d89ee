package dto

import "encoding/json"

// NullableString distingue en un PATCH/PUT entre campo ausente, null
// explícito y valor presente: ausente conserva, null limpia, valor asigna.
type NullableString struct {
	Set   bool   `json:"-"`
	Valid bool   `json:"-"`
	Value string `json:"-"`
}

// UnmarshalJSON marca el campo como presente; null deja Valid en false.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON serializa el valor o null.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// SuccessResponse envelope de éxito: {message?, data?}. Los recursos van
// anidados bajo data (ej. data.user, data.products).
type SuccessResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse envelope de error: {error, details?}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// FieldError detalle de un campo que falló la validación.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// Pagination metadatos de página en respuestas de listado.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination calcula los metadatos: totalPages = ceil(total/limit),
// hasNext = page < totalPages, hasPrev = page > 1.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// PageQuery parámetros comunes de paginación y búsqueda en listados.
type PageQuery struct {
	Page   int    `query:"page" validate:"omitempty,gte=1"`
	Limit  int    `query:"limit" validate:"omitempty,between=1-100"`
	Search string `query:"search" validate:"omitempty,max=100"`
}

// Defaults aplica los valores por defecto: page 1, limit 10.
func (q *PageQuery) Defaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
}
