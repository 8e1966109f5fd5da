// plate2csv builds a plate map from flags and zero or more sample sheets
// and emits the flat well table to stdout.
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
	var plateName, plateID, sheets, delim string
	flag.IntVar(&rows, "rows", platemap.DefaultRows, "Number of plate rows.")
	flag.IntVar(&cols, "cols", platemap.DefaultCols, "Number of plate columns.")
	flag.StringVar(&plateName, "name", "", "Optional plate name.")
	flag.StringVar(&plateID, "id", "", "Optional plate ID.")
	flag.StringVar(&sheets, "sheets", "", "Optional comma-separated sample sheets (.csv/.tsv/.txt/.xls/.xlsx/.json, local or gs://, optionally gzipped or zipped), applied in order.")
	flag.StringVar(&delim, "delim", "tab", "Output delimiter: 'tab' or 'comma'.")
	flag.Parse()

	var comma rune
	switch delim {
	case "tab":
		comma = '\t'
	case "comma":
		comma = ','
	default:
		flag.PrintDefaults()
		log.Fatalln("-delim must be 'tab' or 'comma'")
	}

	plate, err := platemap.New(rows, cols, plateName, plateID, nil)
	if err != nil {
		log.Fatalln(err)
	}

	if sheets != "" {
		var client *storage.Client
		if strings.Contains(sheets, "gs://") {
			if client, err = storage.NewClient(context.Background()); err != nil {
				log.Fatalln(err)
			}
		}

		for _, path := range strings.Split(sheets, ",") {
			src, err := samplesheet.Load(path, client)
			if err != nil {
				log.Fatalln(err)
			}
			if err := plate.AssignSamples(src); err != nil {
				log.Fatalln(err)
			}
			log.Println("Applied sample sheet", path)
		}

		if err := plate.Validate(); err != nil {
			log.Fatalln(err)
		}
	}

	if err := plate.WriteTable(STDOUT, comma); err != nil {
		log.Fatalln(err)
	}
}
