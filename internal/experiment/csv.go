package experiment

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteXorSetSearchCSV writes one row per soup: soup id, then the reaction
// index an XOR-set pair first appeared at, or -1 if it never did.
func WriteXorSetSearchCSV(w io.Writer, results []SoupResult) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"soup_id", "found_at_reaction"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{FormatSoupID(r.SoupID), strconv.Itoa(r.Value)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}

// WriteSyncEntropyCSV writes one row per soup: soup id, then one
// population-entropy value per poll index.
func WriteSyncEntropyCSV(w io.Writer, results []SoupSeries) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	maxPolls := 0
	for _, r := range results {
		if len(r.Values) > maxPolls {
			maxPolls = len(r.Values)
		}
	}
	header := make([]string, maxPolls+1)
	header[0] = "soup_id"
	for i := 0; i < maxPolls; i++ {
		header[i+1] = strconv.Itoa(i)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := make([]string, maxPolls+1)
		row[0] = FormatSoupID(r.SoupID)
		for i := 0; i < maxPolls; i++ {
			if i < len(r.Values) {
				row[i+1] = strconv.FormatFloat(float64(r.Values[i]), 'f', -1, 32)
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}
