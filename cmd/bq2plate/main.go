// bq2plate populates a plate map from a BigQuery result that carries
// well_index and sample_id columns (plate_name and plate_id are optional)
// and prints the grid or the flat table to stdout.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"

	"cloud.google.com/go/bigquery"

	"github.com/plateworks/platemap"
	_ "github.com/plateworks/platemap/buildinfoprint"
)

// WrappedBigQuery bundles the client with the context and project it was
// created for.
type WrappedBigQuery struct {
	Context context.Context
	Client  *bigquery.Client
	Project string
}

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

func main() {
	defer STDOUT.Flush()

	var rows, cols int
	var project, query, plateName, plateID, display string
	flag.StringVar(&project, "project", "", "Google Cloud project to bill the query to.")
	flag.StringVar(&query, "query", "", "BigQuery SQL whose result has well_index and sample_id columns (plate_name and plate_id are optional).")
	flag.IntVar(&rows, "rows", platemap.DefaultRows, "Number of plate rows.")
	flag.IntVar(&cols, "cols", platemap.DefaultCols, "Number of plate columns.")
	flag.StringVar(&plateName, "name", "", "Optional plate name.")
	flag.StringVar(&plateID, "id", "", "Optional plate ID.")
	flag.StringVar(&display, "display", "matrix", "Output: 'matrix' for the rendered grid or 'table' for flat TSV.")
	flag.Parse()

	if project == "" || query == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide -project and -query")
	}
	if display != "matrix" && display != "table" {
		flag.PrintDefaults()
		log.Fatalln("-display must be 'matrix' or 'table'")
	}

	BQ := &WrappedBigQuery{
		Context: context.Background(),
		Project: project,
	}

	var err error
	BQ.Client, err = bigquery.NewClient(BQ.Context, BQ.Project)
	if err != nil {
		log.Fatalln("Connecting to BigQuery:", err)
	}
	defer BQ.Client.Close()

	samples, err := FetchSampleTable(BQ, query)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Fetched", len(samples), "sample assignments")

	plate, err := platemap.New(rows, cols, plateName, plateID, samples)
	if err != nil {
		log.Fatalln(err)
	}

	if display == "table" {
		err = plate.WriteTable(STDOUT, '\t')
	} else {
		err = plate.RenderMatrix(STDOUT)
	}
	if err != nil {
		log.Fatalln(err)
	}
}
