package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"pesconv/bundle"
	"pesconv/fmdl"
	"pesconv/model"
	"pesconv/web"
)

func main() {
	var addr, src, dest, player, glob string
	flag.StringVar(&addr, "i", "", "Address of preview server (empty to disable)")
	flag.StringVar(&src, "src", "", "Path to source face folder")
	flag.StringVar(&dest, "dest", "", "Path to output directory")
	flag.StringVar(&player, "player", "", "Player folder name (defaults to source folder name)")
	flag.StringVar(&glob, "glob", "*.glb", "Source model file glob")
	flag.Parse()

	if src == "" {
		flag.PrintDefaults()
		return
	}

	loader := &model.GLTFLoader{}

	if addr != "" {
		if err := web.StartServer(addr, loader, src, glob); err != nil {
			log.Fatal(err)
		}
		return
	}

	if dest == "" {
		flag.PrintDefaults()
		return
	}
	if player == "" {
		player = filepath.Base(strings.TrimRight(src, "/\\"))
	}

	converter := &bundle.Converter{
		Loader:    loader,
		Writer:    fmdl.WriterFunc((*fmdl.Model).SaveGLB),
		ModelGlob: glob,
	}
	if err := converter.ConvertFaceFolder(src, dest, player); err != nil {
		log.Fatal(err)
	}
}
