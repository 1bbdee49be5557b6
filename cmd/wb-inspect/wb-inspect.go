package main

import(
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/floats"

	"github.com/abworrall/wb-emulator/pkg/wbemu"
)

var(
	fModelDir string
	fNumShow int
	fClusters int
	fDump bool
)

func init() {
	flag.StringVar(&fModelDir, "model", "params", "dir holding the trained .npy parameter files")
	flag.IntVar(&fNumShow, "k", wbemu.NumNeighbors, "how many neighbors to list per image")
	flag.IntVar(&fClusters, "clusters", 0, "also k-means the exemplar database into this many clusters")
	flag.BoolVar(&fDump, "dump", false, "write each image's histogram planes out as PNGs")
	flag.Parse()
}

func main() {
	m, err := wbemu.LoadModel(fModelDir)
	if err != nil {
		log.Fatalf("load model from '%s': %v\n", fModelDir, err)
	}

	mr, mc := m.MappingFuncs.Dims()
	fmt.Printf("model %s: %d exemplars, feature dim %d, %dx%d mapping rows\n",
		fModelDir, m.NumExemplars(), m.FeatureDim(), mr, mc)

	tags := []string{}
	for _, s := range wbemu.Styles {
		tags = append(tags, s.String())
	}
	fmt.Printf("styles: %s\n", strings.Join(tags, " "))

	for _, arg := range flag.Args() {
		inspectImage(m, arg)
	}

	if fClusters > 1 {
		clusterExemplars(m)
	}
}

// inspectImage reports where one image sits relative to the exemplar
// database: its dominant color, its chroma histogram, and the
// neighborhood that rendering it would blend.
func inspectImage(m *wbemu.Model, fname string) {
	img, err := wbemu.LoadImage(fname)
	if err != nil {
		log.Fatalf("load '%s': %v\n", fname, err)
	}

	fmt.Printf("\n== %s (%dx%d)\n", fname, img.W, img.H)

	dom := dominantcolor.Find(img)
	if cf, ok := colorful.MakeColor(dom); ok {
		l, a, b := cf.Lab()
		fmt.Printf("dominant color %s, Lab(%.3f, %.3f, %.3f)\n", dominantcolor.Hex(dom), l, a, b)
	}

	hist, err := wbemu.ChromaHistogram(img)
	if err != nil {
		log.Fatalf("histogram '%s': %v\n", fname, err)
	}

	if fDump {
		for c, plane := range []string{"r", "g", "b"} {
			outName := fmt.Sprintf("hist-%s-%s.png", stem(fname), plane)
			hist[c].ToImg(fmt.Sprintf("%s %s plane", fname, plane), outName)
			fmt.Printf("wrote %s %s\n", outName, hist[c].Stats())
		}
	}

	feature := m.Encode(hist)

	// Distance spread across the whole database says how in-domain
	// this image is; then the top of the list is what a rendering
	// would actually blend.
	all := m.Neighbors(feature, m.NumExemplars())
	distHist := histogram.Histogram{NumBuckets:40, ValMin:0, ValMax:4000}
	for _, nb := range all {
		distHist.Add(histogram.ScalarVal(int(nb.DistSq * 1000.0)))
	}
	fmt.Printf("distSq to all exemplars (x1000): %s\n", distHist)

	k := fNumShow
	if k > len(all) {
		k = len(all)
	}
	ns := all[:k]
	for i, w := range ns.Weights(wbemu.BlendSigma) {
		fmt.Printf("  %2d: %s, weight %.4f\n", i, ns[i], w)
	}
}

func clusterExemplars(m *wbemu.Model) {
	if fClusters >= m.NumExemplars() {
		log.Printf("-clusters %d: want fewer clusters than exemplars (%d)\n", fClusters, m.NumExemplars())
		return
	}

	var obs clusters.Observations
	for i:=0; i<m.NumExemplars(); i++ {
		obs = append(obs, clusters.Coordinates(m.Features.RawRowView(i)))
	}

	km := kmeans.New()
	cs, err := km.Partition(obs, fClusters)
	if err != nil {
		log.Fatalf("kmeans over exemplars: %v\n", err)
	}

	fmt.Printf("\n== exemplar clusters (k=%d)\n", fClusters)
	for i, c := range cs {
		fmt.Printf("  cluster %2d: %4d exemplars, center norm %.4f\n",
			i, len(c.Observations), floats.Norm(c.Center, 2))
	}
}

func stem(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
