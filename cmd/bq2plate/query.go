package main

import (
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
	"gopkg.in/guregu/null.v3"

	"github.com/plateworks/platemap"
)

// FetchSampleTable runs the query and adapts its rows into a sample table.
// SQL NULLs stay null, so merging the result preserves previously assigned
// wells, mirroring the sheet-loading behavior.
func FetchSampleTable(BQ *WrappedBigQuery, sql string) (platemap.SampleTable, error) {
	itr, err := BQ.Client.Query(sql).Read(BQ.Context)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", sql, err))
	}

	table := platemap.SampleTable{}
	for {
		row := map[string]bigquery.Value{}
		err := itr.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		// The result schema must satisfy the same contract as a sheet
		// header.
		if _, ok := row["well_index"]; !ok {
			return nil, fmt.Errorf("%w: query result must have %q and %q columns", platemap.ErrConfiguration, "well_index", "sample_id")
		}
		if _, ok := row["sample_id"]; !ok {
			return nil, fmt.Errorf("%w: query result must have %q and %q columns", platemap.ErrConfiguration, "well_index", "sample_id")
		}

		wellIndex, ok := row["well_index"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: well_index must be a STRING column, got %T", platemap.ErrConfiguration, row["well_index"])
		}

		table = append(table, platemap.SampleRow{
			WellIndex: wellIndex,
			SampleID:  nullFromValue(row["sample_id"]),
			PlateName: nullFromValue(row["plate_name"]),
			PlateID:   nullFromValue(row["plate_id"]),
		})
	}

	return table, nil
}

// nullFromValue converts a BigQuery cell to a nullable string. Absent
// columns and SQL NULLs both come through as nil.
func nullFromValue(v bigquery.Value) null.String {
	s, ok := v.(string)

	return null.NewString(s, ok)
}
