package icons

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// Verify at compile time that Pixmap implements image.Image.
var _ image.Image = (*Pixmap)(nil)

func TestRender(t *testing.T) {
	arr, err := Parse([]string{
		"1 F00",
		"3 0F0",
		"",
		"#1",
		"x = 1, y = 1",
		"A",
		"#3",
		"C",
	}, ColorMap{2: "00F"})
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}

	pm, err := Render(arr)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if pm.Width() != 7 || pm.Height() != 21 {
		t.Fatalf("Render() size = %dx%d, want 7x21", pm.Width(), pm.Height())
	}

	// State 1: a single red pixel in the top row, transparent elsewhere.
	if got := pm.GetPixel(3, 0); got != (RGBA{R: 1, A: 1}) {
		t.Errorf("top centre of state 1 = %+v, want red", got)
	}
	if got := pm.GetPixel(3, 3); got != Transparent {
		t.Errorf("centre of state 1 = %+v, want transparent", got)
	}
	// State 2: solid blue gap fill.
	for _, p := range []image.Point{{0, 7}, {6, 13}} {
		if got := pm.GetPixel(p.X, p.Y); got != (RGBA{B: 1, A: 1}) {
			t.Errorf("state 2 pixel %v = %+v, want blue", p, got)
		}
	}
	// State 3: authored green pixel.
	if got := pm.GetPixel(3, 14); got != (RGBA{G: 1, A: 1}) {
		t.Errorf("top centre of state 3 = %+v, want green", got)
	}
}

func TestRenderUndefinedCell(t *testing.T) {
	arr, err := Parse([]string{"#1", "x = 7, y = 7", "A"}, nil)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if _, err := Render(arr); err == nil {
		t.Error("Render() with a cell missing from the colour table should fail")
	}
}

func TestPixmapScale(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.SetPixel(0, 0, White)
	pm.SetPixel(1, 0, Black)

	big := pm.Scale(3)
	if big.Width() != 6 || big.Height() != 3 {
		t.Fatalf("Scale(3) size = %dx%d, want 6x3", big.Width(), big.Height())
	}
	for y := 0; y < 3; y++ {
		if got := big.GetPixel(2, y); got != White {
			t.Errorf("Scale(3) pixel (2,%d) = %+v, want white", y, got)
		}
		if got := big.GetPixel(3, y); got != Black {
			t.Errorf("Scale(3) pixel (3,%d) = %+v, want black", y, got)
		}
	}

	same := pm.Scale(1)
	if same == pm || same.GetPixel(1, 0) != Black {
		t.Error("Scale(1) should return an equal copy")
	}
}

func TestPixmapFlatten(t *testing.T) {
	pm := NewPixmap(1, 1)
	flat := pm.Flatten(White)
	if got := flat.GetPixel(0, 0); got != White {
		t.Errorf("Flatten(White) of transparent = %+v, want white", got)
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(-1, 0, White)
	pm.SetPixel(2, 2, White)
	for _, v := range pm.Data() {
		if v != 0 {
			t.Fatal("out-of-bounds SetPixel modified data")
		}
	}
	if got := pm.GetPixel(5, 5); got != Transparent {
		t.Errorf("GetPixel out of bounds = %+v, want transparent", got)
	}
}

func TestPixmapSave(t *testing.T) {
	pm := NewPixmap(3, 2)
	pm.SetPixel(1, 1, White)
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "icons.png")
	if err := pm.SavePNG(pngPath); err != nil {
		t.Fatalf("SavePNG() = %v", err)
	}
	if fi, err := os.Stat(pngPath); err != nil || fi.Size() == 0 {
		t.Errorf("SavePNG() wrote nothing: %v", err)
	}

	bmpPath := filepath.Join(dir, "icons.bmp")
	if err := pm.Flatten(Black).SaveBMP(bmpPath); err != nil {
		t.Fatalf("SaveBMP() = %v", err)
	}
	f, err := os.Open(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode() = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("BMP bounds = %v, want 3x2", img.Bounds())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("BMP pixel (1,1) = (%d,%d,%d), want white", r, g, b)
	}
}
