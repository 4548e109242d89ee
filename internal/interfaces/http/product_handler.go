package http

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/catalog-api/internal/application/dto"
	"github.com/tu-usuario/catalog-api/internal/application/usecase"
	"github.com/tu-usuario/catalog-api/internal/application/validation"
	"github.com/tu-usuario/catalog-api/internal/domain"
)

// ImageSaver persiste un archivo subido y devuelve su ruta pública.
type ImageSaver interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(publicPath string) error
}

// UploadLimits restricciones para las subidas de imágenes.
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

// ProductHandler catálogo público y administración de productos.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	validate *validation.Validator
	images   ImageSaver
	limits   UploadLimits
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, validate *validation.Validator, images ImageSaver, limits UploadLimits) *ProductHandler {
	return &ProductHandler{uc: uc, validate: validate, images: images, limits: limits}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Tamaño de página"  default(10)
// @Param        search      query  string  false  "Busca en nombre, descripción y SKU"
// @Param        categoryId  query  string  false  "Filtra por categoría"
// @Param        minPrice    query  number  false  "Precio mínimo"
// @Param        maxPrice    query  number  false  "Precio máximo"
// @Param        isActive    query  bool    false  "Filtra por estado"
// @Param        isFeatured  query  bool    false  "Filtra destacados"
// @Param        sortBy      query  string  false  "name | price | stock | sku | createdAt | updatedAt"
// @Param        sortOrder   query  string  false  "asc | desc"  default(desc)
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ListProductsQuery
	if err := c.QueryParser(&q); err != nil {
		return respondBadBody(c)
	}
	if details := h.validate.Struct(q); details != nil {
		return respondValidation(c, details)
	}
	items, meta, err := h.uc.List(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{
		Data: fiber.Map{"products": items, "pagination": meta},
	})
}

// Featured godoc
// @Summary      Productos destacados
// @Tags         products
// @Produce      json
// @Param        limit  query  int  false  "Cantidad máxima"  default(10)
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/products/featured [get]
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	items, err := h.uc.Featured(c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Data: fiber.Map{"products": items}})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Data: fiber.Map{"product": out}})
}

// GetBySlug godoc
// @Summary      Obtener producto activo por slug
// @Tags         products
// @Produce      json
// @Param        slug  path  string  true  "Slug del producto"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Data: fiber.Map{"product": out}})
}

// Create godoc
// @Summary      Crear producto
// @Description  Acepta JSON o multipart/form-data; en multipart las imágenes
// @Description  iniciales viajan en el campo "images" y options/dimensions
// @Description  como strings JSON.
// @Tags         products
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	var uploaded []string
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return respondBadBody(c)
		}
		if err := parseProductForm(form.Value, &in); err != nil {
			return respondBadBody(c)
		}
		if files := form.File["images"]; len(files) > 0 {
			uploaded, err = h.saveAll(files)
			if err != nil {
				return respondError(c, err)
			}
			in.Images = uploaded
		}
	} else if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	discard := func() {
		for _, p := range uploaded {
			_ = h.images.Delete(p)
		}
	}
	if details := h.validate.Struct(in); details != nil {
		discard()
		return respondValidation(c, details)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		discard()
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{
		Message: "Product created successfully",
		Data:    fiber.Map{"product": out},
	})
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if details := h.validate.Struct(in); details != nil {
		return respondValidation(c, details)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{
		Message: "Product updated successfully",
		Data:    fiber.Map{"product": out},
	})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "Product deleted successfully"})
}

// UploadImages godoc
// @Summary      Subir imágenes de producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      string  true  "ID del producto"
// @Param        images  formData  file    true  "Máximo 10 archivos image/*, 5MB c/u"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images [post]
func (h *ProductHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, domain.ErrNoImages)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return respondError(c, domain.ErrNoImages)
	}

	paths, err := h.saveAll(files)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UploadImages(c.Params("id"), paths)
	if err != nil {
		// el producto no existe: los archivos recién guardados sobran
		for _, p := range paths {
			_ = h.images.Delete(p)
		}
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{
		Message: "Images uploaded successfully",
		Data:    fiber.Map{"product": out},
	})
}

// RemoveImage godoc
// @Summary      Quitar imagen de producto por índice
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RemoveImageRequest  true  "imageIndex"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images [delete]
func (h *ProductHandler) RemoveImage(c *fiber.Ctx) error {
	var in dto.RemoveImageRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if details := h.validate.Struct(in); details != nil {
		return respondValidation(c, details)
	}
	out, err := h.uc.RemoveImage(c.Params("id"), *in.ImageIndex)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{
		Message: "Image removed successfully",
		Data:    fiber.Map{"product": out},
	})
}

// ToggleStatus godoc
// @Summary      Activar/desactivar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/toggle-status [patch]
func (h *ProductHandler) ToggleStatus(c *fiber.Ctx) error {
	out, err := h.uc.ToggleStatus(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	msg := "Product activated successfully"
	if !out.IsActive {
		msg = "Product deactivated successfully"
	}
	return c.JSON(dto.SuccessResponse{Message: msg, Data: fiber.Map{"product": out}})
}

// ToggleFeatured godoc
// @Summary      Marcar/desmarcar producto destacado
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/toggle-featured [patch]
func (h *ProductHandler) ToggleFeatured(c *fiber.Ctx) error {
	out, err := h.uc.ToggleFeatured(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	msg := "Product marked as featured"
	if !out.IsFeatured {
		msg = "Product removed from featured"
	}
	return c.JSON(dto.SuccessResponse{Message: msg, Data: fiber.Map{"product": out}})
}

// parseProductForm mapea los campos de un formulario multipart al alta de
// producto. options y dimensions viajan como strings JSON; categoryIds puede
// repetirse como campo o venir como un único array JSON.
func parseProductForm(values map[string][]string, in *dto.CreateProductRequest) error {
	first := func(key string) (string, bool) {
		vs := values[key]
		if len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}
	if v, ok := first("name"); ok {
		in.Name = v
	}
	if v, ok := first("description"); ok {
		in.Description = v
	}
	if v, ok := first("price"); ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return err
		}
		in.Price = &d
	}
	if v, ok := first("sku"); ok {
		in.SKU = v
	}
	if v, ok := first("stock"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		in.Stock = &n
	}
	if v, ok := first("slug"); ok {
		in.Slug = &v
	}
	if v, ok := first("isFeatured"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		in.IsFeatured = &b
	}
	if v, ok := first("weight"); ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return err
		}
		in.Weight = &d
	}
	if v, ok := first("metaTitle"); ok {
		in.MetaTitle = v
	}
	if v, ok := first("metaDescription"); ok {
		in.MetaDescription = v
	}
	if v, ok := first("options"); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &in.Options); err != nil {
			return err
		}
	}
	if v, ok := first("dimensions"); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &in.Dimensions); err != nil {
			return err
		}
	}
	if ids := values["categoryIds"]; len(ids) > 0 {
		if len(ids) == 1 && strings.HasPrefix(strings.TrimSpace(ids[0]), "[") {
			if err := json.Unmarshal([]byte(ids[0]), &in.CategoryIDs); err != nil {
				return err
			}
		} else {
			in.CategoryIDs = ids
		}
	}
	return nil
}

// saveAll valida el lote completo antes de persistir el primer archivo; si un
// guardado falla a mitad, borra los anteriores.
func (h *ProductHandler) saveAll(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > h.limits.MaxFiles {
		return nil, domain.ErrTooManyFiles
	}
	for _, f := range files {
		if f.Size > h.limits.MaxFileSize {
			return nil, domain.ErrFileTooLarge
		}
		if !strings.HasPrefix(f.Header.Get("Content-Type"), "image/") {
			return nil, domain.ErrInvalidFileType
		}
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := h.images.Save(f)
		if err != nil {
			for _, saved := range paths {
				_ = h.images.Delete(saved)
			}
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
