package render

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Assets loads sprite images from a filesystem and caches them. Images that
// cannot be loaded are remembered as missing so the warning is logged once.
type Assets struct {
	fsys    fs.FS
	images  map[string]*ebiten.Image
	missing map[string]bool
	logger  *log.Logger
}

func NewAssets(fsys fs.FS, logger *log.Logger) *Assets {
	return &Assets{
		fsys:    fsys,
		images:  make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
		logger:  logger,
	}
}

// Image returns the image at path, or nil when it is unavailable.
func (a *Assets) Image(path string) *ebiten.Image {
	if img, ok := a.images[path]; ok {
		return img
	}
	if a.missing[path] {
		return nil
	}

	img, err := decode(a.fsys, path)
	if err != nil {
		a.missing[path] = true
		a.logger.Warn("sprite unavailable, drawing placeholder", "path", path, "err", err)
		return nil
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	a.images[path] = ebitenImg
	return ebitenImg
}

// Missing lists the paths that failed to load.
func (a *Assets) Missing() []string {
	return slices.Sorted(maps.Keys(a.missing))
}

func decode(fsys fs.FS, path string) (image.Image, error) {
	if fsys == nil {
		return nil, fmt.Errorf("no asset directory")
	}
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
