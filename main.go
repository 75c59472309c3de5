//go:build !(js && wasm)

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/voxelsplace/voxdestruct/scene"
	"github.com/voxelsplace/voxdestruct/utils"
	"github.com/voxelsplace/voxdestruct/vox"
)

const (
	logDir      = "logs"
	logFileName = "debug.log"
)

func usage() {
	fmt.Println("Usage: voxdestruct <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  vox2glb input.vox output.glb [voxelSize]                 (mesh a .vox model into a .glb)")
	fmt.Println("  vox2voxpack output.voxpack input1.vox [input2.vox ...]   (pack several .vox models, zstd)")
	fmt.Println("  voxpack2glb input.voxpack output.glb [voxelSize]         (one node per pack entry)")
	fmt.Println("  voxpack2vox input.voxpack output_dir                     (unpack entries as .vox files)")
	fmt.Println("  destroy input.vox requests.json output.glb [output.voxpack] [sounds.wav]")
	fmt.Println("                                                           (carve, split fragments, export)")
	fmt.Println("  gennoise <sx> <sy> <sz> <percentage> <amount> <output_dir>  (random .vox models)")
	fmt.Println("Environment:")
	fmt.Println("  VOXDESTRUCT_CONFIG=config.json   destruction settings for 'destroy'")
	fmt.Println("  VOXDESTRUCT_DEBUG=1              write a debug log under ./logs")
}

// setupLogging routes the standard logger to logs/debug.log when debug is on
// and discards it otherwise. The caller closes the returned file.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func loadConfig() (scene.Config, error) {
	path := os.Getenv("VOXDESTRUCT_CONFIG")
	if path == "" {
		return scene.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Config{}, err
	}
	return scene.ParseConfig(data)
}

func voxelSizeArg(i int) float32 {
	if len(os.Args) <= i {
		return 1
	}
	var v float32
	if _, err := fmt.Sscan(os.Args[i], &v); err != nil {
		fail(err)
	}
	return v
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	if f := setupLogging(os.Getenv("VOXDESTRUCT_DEBUG") == "1"); f != nil {
		defer f.Close()
	}

	switch os.Args[1] {
	case "vox2glb":
		if len(os.Args) != 4 && len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVOX2GLB(os.Args[2], os.Args[3], voxelSizeArg(4)); err != nil {
			fail(err)
		}
	case "vox2voxpack":
		if len(os.Args) < 4 {
			usage()
			os.Exit(1)
		}
		if err := utils.CreatePack(os.Args[3:], os.Args[2], vox.PackCompZstd); err != nil {
			fail(err)
		}
	case "voxpack2glb":
		if len(os.Args) != 4 && len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVOXPACK2GLB(os.Args[2], os.Args[3], voxelSizeArg(4)); err != nil {
			fail(err)
		}
	case "voxpack2vox":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVOXPACK2VOX(os.Args[2], os.Args[3]); err != nil {
			fail(err)
		}
	case "destroy":
		if len(os.Args) < 5 || len(os.Args) > 7 {
			usage()
			os.Exit(1)
		}
		cfg, err := loadConfig()
		if err != nil {
			fail(err)
		}
		opts := utils.DestroyOptions{Config: cfg, GLBPath: os.Args[4], Logger: log.Default()}
		if len(os.Args) > 5 {
			opts.PackPath = os.Args[5]
		}
		if len(os.Args) > 6 {
			opts.WAVPath = os.Args[6]
		}
		if err := utils.RunDestroyFile(os.Args[2], os.Args[3], opts); err != nil {
			fail(err)
		}
	case "gennoise":
		if len(os.Args) != 8 {
			usage()
			os.Exit(1)
		}
		var sx, sy, sz, amt int
		var perc float64
		for i, dst := range []any{&sx, &sy, &sz, &perc, &amt} {
			if _, err := fmt.Sscan(os.Args[2+i], dst); err != nil {
				fail(err)
			}
		}
		if err := utils.RunGenerateNoiseVOX(sx, sy, sz, perc, amt, 1, os.Args[7]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
