package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"io"
	"os"

	"github.com/decker502/inferno/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体标识（不对应磁盘文件）
const (
	FontMono    = "builtin:gomono"
	FontRegular = "builtin:goregular"
)

// ResourceManager is responsible for centralized management of intro resources.
// It provides loading and caching for images and font faces so every
// resource is decoded only once.
//
// Image paths are resolved against the embedded data first (paths starting
// with "data/"), then against the local file system. Remote URLs are not
// supported.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image          // Cache for loaded images: path -> Image
	fontSources   map[string]*text.GoTextFaceSource // Cache for parsed font sources: path -> source
	fontFaceCache map[string]*text.GoTextFace       // Cache for faces: path:size -> face
}

// NewResourceManager creates and initializes a new ResourceManager instance.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		fontSources:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Returns an error if the file does not exist or cannot be decoded.
// Does not panic - all errors are returned to the caller for handling.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadFont loads a font face of the given size and caches it.
// path may be one of the builtin identifiers (FontMono, FontRegular) or a
// TTF/OTF file path.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.loadFontSource(path)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

// GetFont retrieves a previously loaded font face from the cache.
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	return rm.fontFaceCache[cacheKey]
}

// MustFont 加载字体，失败时回退到内置等宽字体
// 内置字体是编译进二进制的，不会失败。
func (rm *ResourceManager) MustFont(path string, size float64) *text.GoTextFace {
	face, err := rm.LoadFont(path, size)
	if err == nil {
		return face
	}
	face, err = rm.LoadFont(FontMono, size)
	if err != nil {
		panic(fmt.Sprintf("builtin font unavailable: %v", err))
	}
	return face
}

func (rm *ResourceManager) loadFontSource(path string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.fontSources[path]; ok {
		return source, nil
	}

	var fontData []byte
	switch path {
	case FontMono:
		fontData = gomono.TTF
	case FontRegular:
		fontData = goregular.TTF
	default:
		data, err := rm.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	rm.fontSources[path] = source
	return source, nil
}

// readFile 先查嵌入资源，再查本地文件系统
func (rm *ResourceManager) readFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
