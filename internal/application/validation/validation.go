// Package validation envuelve go-playground/validator con las etiquetas y
// mensajes propios de la API del catálogo.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
)

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

// Validator valida structs de request y traduce las fallas a FieldError.
type Validator struct {
	v *validator.Validate
}

// New construye el validador con las etiquetas personalizadas registradas.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// El nombre de campo reportado es el de la etiqueta json/query.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal se valida como float64 para que gte/lte funcionen.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// NullableString se valida por su valor; ausente o null se tratan como
	// vacíos y los salta omitempty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(dto.NullableString); ok {
			if !n.Set || !n.Valid {
				return nil
			}
			return n.Value
		}
		return nil
	}, dto.NullableString{})

	_ = v.RegisterValidation("between", validateBetween)
	_ = v.RegisterValidation("password", validatePassword)
	_ = v.RegisterValidation("sku", validateSKU)

	return &Validator{v: v}
}

// Struct valida y devuelve todas las fallas; nil si el struct es válido.
func (val *Validator) Struct(s interface{}) []dto.FieldError {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, dto.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}
	return out
}

// between=N-M: largo en caracteres para strings, rango inclusivo para enteros.
func validateBetween(fl validator.FieldLevel) bool {
	min, max, ok := parseRange(fl.Param())
	if !ok {
		return false
	}
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		n := len([]rune(field.String()))
		return n >= min && n <= max
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := field.Int()
		return n >= int64(min) && n <= int64(max)
	default:
		return false
	}
}

// password: al menos una minúscula, una mayúscula y un dígito.
func validatePassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func validateSKU(fl validator.FieldLevel) bool {
	return skuPattern.MatchString(fl.Field().String())
}

func parseRange(param string) (int, int, bool) {
	parts := strings.SplitN(param, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	min, err1 := strconv.Atoi(parts[0])
	max, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return min, max, true
}

// fieldPath normaliza la ruta del campo: quita el struct raíz y convierte
// índices de slice en notación con corchetes (categoryIds[0]).
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

// labels legibles para los campos cuyo nombre json no queda bien en prosa.
var labels = map[string]string{
	"name":            "Name",
	"email":           "Email",
	"password":        "Password",
	"currentPassword": "Current password",
	"newPassword":     "New password",
	"description":     "Description",
	"slug":            "Slug",
	"parentId":        "Parent ID",
	"categoryId":      "Category ID",
	"price":           "Price",
	"sku":             "SKU",
	"stock":           "Stock",
	"weight":          "Weight",
	"minPrice":        "Minimum price",
	"maxPrice":        "Maximum price",
	"metaTitle":       "Meta title",
	"metaDescription": "Meta description",
	"page":            "Page",
	"limit":           "Limit",
	"search":          "Search",
	"role":            "Role",
	"isActive":        "Active flag",
	"sortBy":          "Sort field",
	"sortOrder":       "Sort order",
	"imageIndex":      "Image index",
}

func label(fe validator.FieldError) string {
	name := fe.Field()
	if l, ok := labels[name]; ok {
		return l
	}
	if name == "" {
		return fe.StructField()
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func message(fe validator.FieldError) string {
	// Los elementos de categoryIds llevan un mensaje propio.
	if strings.HasPrefix(fieldPath(fe), "categoryIds[") {
		return "Each category ID must be a valid UUID"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label(fe))
	case "email":
		return "Must be a valid email address"
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", label(fe))
	case "between":
		min, max, _ := parseRange(fe.Param())
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be between %d and %d characters", label(fe), min, max)
		}
		return fmt.Sprintf("%s must be between %d and %d", label(fe), min, max)
	case "min":
		if fe.Field() == "password" || fe.Field() == "newPassword" {
			return fmt.Sprintf("%s must be at least %s characters long", label(fe), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label(fe), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", label(fe), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", label(fe), fe.Param())
	case "password":
		return "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	case "sku":
		return "SKU can only contain letters, numbers, hyphens, and underscores"
	case "gte":
		switch fe.Field() {
		case "price":
			return "Price must be a positive number"
		case "stock":
			return "Stock must be a non-negative integer"
		case "page":
			return "Page must be a positive integer"
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", label(fe), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label(fe), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", label(fe))
	}
}
