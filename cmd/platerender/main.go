// platerender builds a plate map from flags and zero or more sample sheets
// and prints the grid to stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/plateworks/platemap"
	_ "github.com/plateworks/platemap/buildinfoprint"
	"github.com/plateworks/platemap/samplesheet"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

func main() {
	defer STDOUT.Flush()

	var rows, cols int
	var plateName, plateID, sheets string
	flag.IntVar(&rows, "rows", platemap.DefaultRows, "Number of plate rows.")
	flag.IntVar(&cols, "cols", platemap.DefaultCols, "Number of plate columns.")
	flag.StringVar(&plateName, "name", "", "Optional plate name.")
	flag.StringVar(&plateID, "id", "", "Optional plate ID.")
	flag.StringVar(&sheets, "sheets", "", "Optional comma-separated sample sheets (.csv/.tsv/.txt/.xls/.xlsx/.json, local or gs://, optionally gzipped or zipped), applied in order.")
	flag.Parse()

	plate, err := platemap.New(rows, cols, plateName, plateID, nil)
	if err != nil {
		log.Fatalln(err)
	}

	if sheets != "" {
		if err := applySheets(plate, strings.Split(sheets, ",")); err != nil {
			log.Fatalln(err)
		}
	}

	if err := plate.RenderMatrix(STDOUT); err != nil {
		log.Fatalln(err)
	}
}

func applySheets(plate *platemap.Plate, paths []string) error {
	var client *storage.Client
	for _, path := range paths {
		if strings.HasPrefix(path, "gs://") {
			var err error
			client, err = storage.NewClient(context.Background())
			if err != nil {
				return err
			}
			break
		}
	}

	for _, path := range paths {
		src, err := samplesheet.Load(path, client)
		if err != nil {
			return err
		}
		if err := plate.AssignSamples(src); err != nil {
			return err
		}
		log.Println("Applied sample sheet", path)
	}

	// A sheet with plate_name or plate_id columns restamps those fields on
	// the wells it mentions; make sure the plate is still uniform.
	return plate.Validate()
}
