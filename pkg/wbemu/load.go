package wbemu

import (
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "image/jpeg"
	_ "image/png"

	"github.com/abworrall/wb-emulator/pkg/wcolor"
	"github.com/abworrall/wb-emulator/pkg/wmath"
)

var imageExts = map[string]bool{
	".jpg":true, ".jpeg":true, ".png":true, ".bmp":true, ".tif":true, ".tiff":true,
}

func IsImageFilename(fname string) bool {
	return imageExts[strings.ToLower(filepath.Ext(fname))]
}

// LoadFilesAndDirs builds the image worklist. Each arg may be a YAML
// config file (read into c), an image file, or a directory whose image
// files all get enlisted (just that directory, no recursion).
func LoadFilesAndDirs(c *Config, args ...string) ([]string, error) {
	files := []string{}

	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return nil, fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			contents, err := ioutil.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if !content.IsDir() && IsImageFilename(content.Name()) {
					files = append(files, filepath.Join(arg, content.Name()))
				}
			}

		case strings.ToLower(filepath.Ext(arg)) == ".yaml":
			cfg, err := loadConfig(arg)
			if err != nil {
				return nil, fmt.Errorf("Loading %s as config YAML failed: %v", arg, err)
			}
			*c = cfg
			log.Printf("Loaded base configuration from %s\n", arg)

		case IsImageFilename(arg):
			files = append(files, arg)

		default:
			return nil, fmt.Errorf("load %s: not a config, image, or dir", arg)
		}
	}

	return files, nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

// LoadImage decodes an image file into the working representation,
// honoring any EXIF orientation (phone JPEGs in particular tend to
// arrive stored sideways).
func LoadImage(filename string) (*wcolor.Linear, error) {
	orient := readExifOrientation(filename)

	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode '%s': %v", filename, err)
	}

	if orient > 1 {
		img = reorient(img, orient)
	}

	return wcolor.NewLinearFromImage(img), nil
}

// readExifOrientation returns the EXIF orientation tag, or 1 when
// there's no EXIF to read (PNGs, BMPs) or no such tag. Never an error;
// an unoriented read just means "leave the pixels alone".
func readExifOrientation(filename string) int {
	reader, err := os.Open(filename)
	if err != nil {
		return 1
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return 1
	}
	tag, err := ex.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}

	return o
}

// reorient maps the eight EXIF orientations back to upright. They're
// all exact isometries, so nearest-neighbor resampling moves pixels
// without touching their values.
func reorient(img image.Image, orient int) image.Image {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	var m wmath.Aff3
	switch orient {
	case 2: m = wmath.FlipH(w)
	case 3: m = wmath.Rot180(w, h)
	case 4: m = wmath.FlipV(h)
	case 5: m = wmath.Transpose()
	case 6: m = wmath.Rot90CW(h)
	case 7: m = wmath.Rot90CW(h).Mult(wmath.FlipH(w)) // mirror, then rotate
	case 8: m = wmath.Rot270CW(w)
	default:
		return img
	}

	dstBounds := image.Rect(0, 0, b.Dx(), b.Dy())
	if orient >= 5 {
		dstBounds = image.Rect(0, 0, b.Dy(), b.Dx()) // the rotations swap axes
	}

	dst := image.NewRGBA64(dstBounds)
	draw.NearestNeighbor.Transform(dst, f64.Aff3(m), img, b, draw.Src, nil)
	return dst
}
