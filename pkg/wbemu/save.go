package wbemu

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// WriteImage encodes to a format picked off the filename extension.
func WriteImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":          err = png.Encode(f, img)
	case ".jpg", ".jpeg": err = jpeg.Encode(f, img, &jpeg.Options{Quality:95})
	case ".bmp":          err = bmp.Encode(f, img)
	case ".tif", ".tiff": err = tiff.Encode(f, img, nil)
	default:
		err = fmt.Errorf("no encoder for '%s'", filepath.Ext(filename))
	}

	if err != nil {
		return fmt.Errorf("encode '%s': %v", filename, err)
	}
	return nil
}

// Splice builds "<dir>/<stem of src><tag><ext>" - the naming scheme
// for everything we write. An empty ext keeps the source's own
// extension, so a rendering sits next to its siblings under a name
// like photo_T_CS.jpg.
func Splice(dir, src, tag, ext string) string {
	base := filepath.Base(src)
	if ext == "" {
		ext = filepath.Ext(base)
	}
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)) + tag + ext)
}

func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open+r '%s': %v", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy '%s' -> '%s': %v", src, dst, err)
	}
	return nil
}
