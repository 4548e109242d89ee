// Package storage guarda las imágenes de producto en disco local.
// Los nombres se generan con UUID para evitar colisiones; el borrado valida
// que la ruta pedida viva dentro del directorio de uploads.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore persiste archivos bajo un directorio raíz y los expone con un
// prefijo público (ej. /uploads/<nombre>).
type LocalStore struct {
	root       string
	publicBase string
}

// NewLocalStore crea el store y asegura que el directorio exista.
func NewLocalStore(root, publicBase string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	if !strings.HasPrefix(publicBase, "/") {
		publicBase = "/" + publicBase
	}
	return &LocalStore{
		root:       filepath.Clean(root),
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

// Save copia el archivo subido a disco bajo un nombre único (uuid + extensión
// original) y devuelve la ruta pública con la que se referencia.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(s.root, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("copiar archivo: %w", err)
	}
	return s.publicBase + "/" + name, nil
}

// Delete elimina el archivo referenciado por una ruta pública. Ignora rutas
// vacías y archivos ya inexistentes; rechaza rutas que escapen del directorio
// de uploads.
func (s *LocalStore) Delete(publicPath string) error {
	trimmed := strings.TrimSpace(publicPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, s.publicBase)
	cleanRel = strings.TrimPrefix(cleanRel, "/")
	if cleanRel == "" || cleanRel == "." {
		return fmt.Errorf("ruta de upload inválida: %s", publicPath)
	}

	target := filepath.Clean(filepath.Join(s.root, filepath.FromSlash(cleanRel)))
	if target != s.root && !strings.HasPrefix(target, s.root+string(os.PathSeparator)) {
		return fmt.Errorf("ruta fuera del directorio de uploads: %s", publicPath)
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

// Root devuelve el directorio en disco (para servirlo como estático).
func (s *LocalStore) Root() string { return s.root }

// PublicBase devuelve el prefijo público configurado.
func (s *LocalStore) PublicBase() string { return s.publicBase }
