package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pranshuparmar/procargs/pkg/model"
)

func ToJSON(r model.Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// PrintBatchJSON writes results as one indented JSON array.
func PrintBatchJSON(w io.Writer, results []model.Result) error {
	if results == nil {
		results = []model.Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
