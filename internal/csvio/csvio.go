// Package csvio reads and writes the flat-file forms of a network.
//
// Flight rows are "<weekday> <H:mm>,<source>,<destination>,<capacity>,<booked>"
// and location rows are "<name>,<lat>,<lon>,<demand>". Imports recover per
// row: a malformed or rejected row is counted and skipped, and only a
// failing reader aborts the import.
package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dharmasatrya/flightscheduler/internal/models"
)

const (
	flightFields   = 5
	locationFields = 4
)

type Result struct {
	Imported int
	Invalid  int
}

type FlightAdder interface {
	AddFlight(departure, source, destination, capacity string, booked int) (*models.Flight, error)
}

type LocationAdder interface {
	AddLocationText(name, lat, lon, demand string) (*models.Location, error)
}

func ImportFlights(r io.Reader, dst FlightAdder) (Result, error) {
	return importRows(r, flightFields, func(row []string) error {
		booked, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil {
			return models.ErrInvalidBooked
		}
		_, err = dst.AddFlight(row[0], row[1], row[2], row[3], booked)
		return err
	})
}

func ImportLocations(r io.Reader, dst LocationAdder) (Result, error) {
	return importRows(r, locationFields, func(row []string) error {
		_, err := dst.AddLocationText(row[0], row[1], row[2], row[3])
		return err
	})
}

func ImportFlightsFile(path string, dst FlightAdder) (Result, error) {
	return importFile(path, func(r io.Reader) (Result, error) { return ImportFlights(r, dst) })
}

func ImportLocationsFile(path string, dst LocationAdder) (Result, error) {
	return importFile(path, func(r io.Reader) (Result, error) { return ImportLocations(r, dst) })
}

func importFile(path string, load func(io.Reader) (Result, error)) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, &models.IOError{Op: "import", Path: path, Err: err}
	}
	defer f.Close()

	res, err := load(f)
	var ioErr *models.IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = path
	}
	return res, err
}

func importRows(r io.Reader, fields int, add func(row []string) error) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var res Result
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				res.Invalid++
				continue
			}
			return res, &models.IOError{Op: "import", Err: err}
		}

		if len(row) != fields {
			res.Invalid++
			continue
		}
		if err := add(row); err != nil {
			res.Invalid++
			continue
		}
		res.Imported++
	}
}

// ExportFlights writes flights in id order.
func ExportFlights(w io.Writer, flights []*models.Flight) error {
	sorted := slices.Clone(flights)
	slices.SortFunc(sorted, func(a, b *models.Flight) int { return a.ID - b.ID })

	rows := make([][]string, len(sorted))
	for i, f := range sorted {
		rows[i] = []string{
			f.Departure.FullString(),
			f.Source.Name,
			f.Destination.Name,
			strconv.Itoa(f.Capacity),
			strconv.Itoa(f.Booked),
		}
	}
	return writeRows(w, rows)
}

// ExportLocations writes locations in name order.
func ExportLocations(w io.Writer, locations []*models.Location) error {
	sorted := slices.Clone(locations)
	slices.SortFunc(sorted, func(a, b *models.Location) int { return strings.Compare(a.Name, b.Name) })

	rows := make([][]string, len(sorted))
	for i, l := range sorted {
		rows[i] = []string{l.Name, formatFloat(l.Lat), formatFloat(l.Lon), formatFloat(l.Demand)}
	}
	return writeRows(w, rows)
}

func ExportFlightsFile(path string, flights []*models.Flight) error {
	return exportFile(path, func(w io.Writer) error { return ExportFlights(w, flights) })
}

func ExportLocationsFile(path string, locations []*models.Location) error {
	return exportFile(path, func(w io.Writer) error { return ExportLocations(w, locations) })
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &models.IOError{Op: "export", Path: path, Err: err}
	}

	if err := write(f); err != nil {
		_ = f.Close()
		var ioErr *models.IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return err
	}
	if err := f.Close(); err != nil {
		return &models.IOError{Op: "export", Path: path, Err: err}
	}
	return nil
}

func writeRows(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return &models.IOError{Op: "export", Err: err}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
