package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestImage encodes a solid-color PNG into dir and returns its path.
func writeTestImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := writeTestImage(t, t.TempDir(), "a.png", 40, 30)

	img1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := img1.Bounds(); got.Dx() != 40 || got.Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", got.Dx(), got.Dy())
	}

	// Second load should hit the cache and return the same decoded image.
	img2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	cache := NewImageCache()
	dir := t.TempDir()
	pathA := writeTestImage(t, dir, "a.png", 10, 10)
	pathB := writeTestImage(t, dir, "b.png", 10, 10)

	imgA, _ := cache.Load(pathA)
	cache.Evict(pathA)
	again, err := cache.Load(pathA)
	if err != nil {
		t.Fatalf("reload after Evict failed: %v", err)
	}
	if imgA == again {
		t.Error("Evict did not remove the cached image")
	}

	cache.Load(pathB)
	cache.Clear()
	if len(cache.images) != 0 {
		t.Errorf("Clear left %d cached images", len(cache.images))
	}
}

func TestResize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	resized := Resize(img, 128, 256)

	if got := resized.Bounds(); got.Dx() != 128 || got.Dy() != 256 {
		t.Errorf("dimensions: got %dx%d, want 128x256", got.Dx(), got.Dy())
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "b.png", 4, 4)
	writeTestImage(t, dir, "a.png", 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "a.png" || filepath.Base(paths[1]) != "b.png" {
		t.Errorf("paths not sorted by name: %v", paths)
	}
}

func TestListImages_MissingDir(t *testing.T) {
	if _, err := ListImages("/nonexistent/input"); err == nil {
		t.Error("ListImages should fail for missing directory")
	}
}
