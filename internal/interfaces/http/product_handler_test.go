package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubSaver implementa ImageSaver en memoria; failAt hace fallar el guardado
// n-ésimo para ejercitar el rollback de saveAll.
type stubSaver struct {
	saved   []string
	deleted []string
	failAt  int
}

func (s *stubSaver) Save(f *multipart.FileHeader) (string, error) {
	if s.failAt > 0 && len(s.saved)+1 == s.failAt {
		return "", errors.New("disco lleno")
	}
	p := "/uploads/" + f.Filename
	s.saved = append(s.saved, p)
	return p, nil
}

func (s *stubSaver) Delete(publicPath string) error {
	s.deleted = append(s.deleted, publicPath)
	return nil
}

// imageFile fabrica la cabecera de un archivo subido sin contenido real;
// saveAll solo consulta Size y Content-Type.
func imageFile(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// parseProductForm
// ──────────────────────────────────────────────────────────────────────────────

func TestParseProductForm(t *testing.T) {
	t.Run("mapea un formulario completo al alta de producto", func(t *testing.T) {
		values := map[string][]string{
			"name":            {"Galaxy S23"},
			"description":     {"Celular de gama alta"},
			"price":           {"799.99"},
			"sku":             {"GAL-S23-128"},
			"stock":           {"25"},
			"slug":            {"galaxy-s23"},
			"isFeatured":      {"true"},
			"weight":          {"0.168"},
			"metaTitle":       {"Galaxy S23"},
			"metaDescription": {"El Galaxy S23 con 128GB"},
			"options":         {`{"color":["negro","crema"]}`},
			"dimensions":      {`{"length":14.6,"width":7.1,"height":0.8}`},
			"categoryIds": {
				"11111111-1111-1111-1111-111111111111",
				"22222222-2222-2222-2222-222222222222",
			},
		}
		var in dto.CreateProductRequest
		require.NoError(t, parseProductForm(values, &in))

		assert.Equal(t, "Galaxy S23", in.Name)
		assert.Equal(t, "GAL-S23-128", in.SKU)
		require.NotNil(t, in.Price)
		assert.True(t, in.Price.Equal(decimal.RequireFromString("799.99")))
		require.NotNil(t, in.Stock)
		assert.Equal(t, 25, *in.Stock)
		require.NotNil(t, in.Slug)
		assert.Equal(t, "galaxy-s23", *in.Slug)
		require.NotNil(t, in.IsFeatured)
		assert.True(t, *in.IsFeatured)
		require.NotNil(t, in.Weight)
		assert.Equal(t, []string{"negro", "crema"}, in.Options["color"])
		require.NotNil(t, in.Dimensions)
		assert.Len(t, in.CategoryIDs, 2)
	})

	t.Run("acepta categoryIds como un único array JSON", func(t *testing.T) {
		values := map[string][]string{
			"name":        {"Mouse"},
			"price":       {"19.90"},
			"sku":         {"MOU-001"},
			"categoryIds": {`["11111111-1111-1111-1111-111111111111"]`},
		}
		var in dto.CreateProductRequest
		require.NoError(t, parseProductForm(values, &in))
		assert.Equal(t, []string{"11111111-1111-1111-1111-111111111111"}, in.CategoryIDs)
	})

	t.Run("los campos ausentes quedan en cero", func(t *testing.T) {
		var in dto.CreateProductRequest
		require.NoError(t, parseProductForm(map[string][]string{"name": {"Solo nombre"}}, &in))
		assert.Nil(t, in.Price)
		assert.Nil(t, in.Stock)
		assert.Nil(t, in.Options)
		assert.Nil(t, in.CategoryIDs)
	})

	t.Run("precio no numérico es error", func(t *testing.T) {
		var in dto.CreateProductRequest
		err := parseProductForm(map[string][]string{"price": {"gratis"}}, &in)
		assert.Error(t, err)
	})

	t.Run("options mal formado es error", func(t *testing.T) {
		var in dto.CreateProductRequest
		err := parseProductForm(map[string][]string{"options": {"{color"}}, &in)
		assert.Error(t, err)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// saveAll
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveAll(t *testing.T) {
	limits := UploadLimits{MaxFileSize: 5 * 1024 * 1024, MaxFiles: 10}

	t.Run("guarda el lote completo y devuelve las rutas", func(t *testing.T) {
		saver := &stubSaver{}
		h := NewProductHandler(nil, nil, saver, limits)
		paths, err := h.saveAll([]*multipart.FileHeader{
			imageFile("a.jpg", "image/jpeg", 1024),
			imageFile("b.png", "image/png", 2048),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.png"}, paths)
	})

	t.Run("rechaza el lote si excede el máximo de archivos", func(t *testing.T) {
		saver := &stubSaver{}
		h := NewProductHandler(nil, nil, saver, limits)
		files := make([]*multipart.FileHeader, 0, limits.MaxFiles+1)
		for i := 0; i <= limits.MaxFiles; i++ {
			files = append(files, imageFile(fmt.Sprintf("f%d.jpg", i), "image/jpeg", 1024))
		}
		_, err := h.saveAll(files)
		assert.ErrorIs(t, err, domain.ErrTooManyFiles)
		assert.Empty(t, saver.saved, "no debe persistirse ningún archivo del lote rechazado")
	})

	t.Run("rechaza archivos demasiado grandes sin persistir nada", func(t *testing.T) {
		saver := &stubSaver{}
		h := NewProductHandler(nil, nil, saver, limits)
		_, err := h.saveAll([]*multipart.FileHeader{
			imageFile("ok.jpg", "image/jpeg", 1024),
			imageFile("grande.jpg", "image/jpeg", limits.MaxFileSize+1),
		})
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
		assert.Empty(t, saver.saved)
	})

	t.Run("rechaza tipos que no son imagen", func(t *testing.T) {
		saver := &stubSaver{}
		h := NewProductHandler(nil, nil, saver, limits)
		_, err := h.saveAll([]*multipart.FileHeader{
			imageFile("doc.pdf", "application/pdf", 1024),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidFileType)
	})

	t.Run("revierte los guardados previos si uno falla a mitad", func(t *testing.T) {
		saver := &stubSaver{failAt: 2}
		h := NewProductHandler(nil, nil, saver, limits)
		_, err := h.saveAll([]*multipart.FileHeader{
			imageFile("a.jpg", "image/jpeg", 1024),
			imageFile("b.jpg", "image/jpeg", 1024),
		})
		require.Error(t, err)
		assert.Equal(t, []string{"/uploads/a.jpg"}, saver.deleted)
	})
}
