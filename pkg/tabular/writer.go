package tabular

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/errors"
)

// WriteMeasurementsFile writes the final curated table to path as CSV
// with a header row and no index column. The file is created only after
// the pipeline has fully succeeded, so a failed run leaves no partial
// output behind.
func WriteMeasurementsFile(path string, records dataset.Records) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	if err := WriteMeasurements(f, records); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return errors.WrapIO("write", path, err)
	}

	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

// WriteMeasurements writes records as CSV to w in dataset.Columns order.
func WriteMeasurements(w io.Writer, records dataset.Records) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(dataset.Columns); err != nil {
		return err
	}
	for _, m := range records {
		if err := cw.Write(m.Strings()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
