// Command pathkit-bench exercises the rendering pipeline end to end: it
// builds a context, fills and strokes a handful of shapes, and reports
// timing and a pixel sample. It is a smoke-test harness, not a benchmark
// suite proper (see the package's own _test.go benchmarks for that); its
// purpose is to give tuning changes loaded from a TOML file somewhere to
// run against.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pathkit-go/pathkit"
	"github.com/pathkit-go/pathkit/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML tuning file (optional)")
	width := flag.Int("width", 512, "canvas width")
	height := flag.Int("height", 512, "canvas height")
	check := flag.Bool("check", false, "render the documented pixel scenarios and report pass/fail")
	flag.Parse()

	if *check {
		if !runChecks() {
			os.Exit(1)
		}
		return
	}

	tuning := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pathkit-bench: loading config: %v\n", err)
			os.Exit(1)
		}
		tuning = loaded
	}

	dc, err := pathkit.NewContext(*width, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pathkit-bench: creating context: %v\n", err)
		os.Exit(1)
	}
	defer dc.Close()

	gradient := pathkit.NewLinearGradientBrush(0, 0, float64(*width), 0).
		AddColorStop(0, pathkit.Red).
		AddColorStop(1, pathkit.Blue)
	dc.SetFillBrush(gradient)

	start := time.Now()
	dc.DrawRoundedRectangle(20, 20, float64(*width)-40, float64(*height)-40, 24)
	if err := dc.Fill(); err != nil {
		fmt.Fprintf(os.Stderr, "pathkit-bench: fill: %v\n", err)
		os.Exit(1)
	}

	dc.SetFillColor(pathkit.Black)
	dc.SetLineWidth(tuning.DefaultMiterLimit) // exercises the loaded tuning value
	dc.DrawLine(0, float64(*height)/2, float64(*width), float64(*height)/2)
	if err := dc.Stroke(); err != nil {
		fmt.Fprintf(os.Stderr, "pathkit-bench: stroke: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	mid := dc.Pixmap().GetPixel(*width/2, *height/2)
	fmt.Printf("rendered %dx%d in %s, center pixel = %+v\n", *width, *height, elapsed, mid)
}

// runChecks renders a handful of known scenes and verifies literal pixel
// values, mirroring the package's rendering tests so the pipeline can be
// smoke-tested from the command line without a Go toolchain run.
func runChecks() bool {
	ok := true
	report := func(name string, pass bool) {
		status := "ok"
		if !pass {
			status = "FAIL"
			ok = false
		}
		fmt.Printf("%-24s %s\n", name, status)
	}

	// Opaque rectangle fill: exact interior pixel, untouched exterior.
	{
		dc, err := pathkit.NewContext(100, 100)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pathkit-bench: %v\n", err)
			return false
		}
		dc.SetFillColor(pathkit.Red)
		dc.DrawRectangle(10, 10, 30, 20)
		_ = dc.Fill()
		report("fill-rect", dc.GetPixelARGB32(25, 20) == 0xFFFF0000 &&
			dc.GetPixelARGB32(5, 5) == 0 && dc.GetPixelARGB32(50, 25) == 0)
	}

	// Circular clip: fill reaches the center but not the corners.
	{
		dc, _ := pathkit.NewContext(200, 200)
		dc.SetFillColor(pathkit.Black)
		dc.DrawRectangle(0, 0, 200, 200)
		_ = dc.Fill()
		dc.DrawCircle(100, 100, 50)
		dc.Clip()
		dc.SetFillColor(pathkit.Blue)
		dc.DrawRectangle(0, 0, 200, 200)
		_ = dc.Fill()
		center := dc.GetPixel(100, 100)
		corner := dc.GetPixel(10, 10)
		report("clip-circle", center.B > 0.9 && corner.B < 0.1 && corner.A > 0.9)
	}

	// Dashed stroke: on-segments painted, gaps left empty.
	{
		dc, _ := pathkit.NewContext(100, 60)
		dc.SetStrokeColor(pathkit.Black)
		dc.SetLineWidth(10)
		dc.SetDash(20, 10)
		dc.DrawLine(10, 30, 90, 30)
		_ = dc.Stroke()
		report("dash-stroke", dc.GetPixelARGB32(20, 30) == 0xFF000000 &&
			dc.GetPixelARGB32(35, 30) == 0 && dc.GetPixelARGB32(50, 30) == 0xFF000000)
	}

	return ok
}
