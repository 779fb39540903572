// mkfixture generates a synthetic appointment export for tests and demos.
// Rows are drawn from a seeded generator so the same flags give the same file.
// Usage: go run ./cmd/mkfixture --out testdata/appointments-large.csv --rows 500 --seed 7
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gyeh/apptbill/internal/model"
	"github.com/gyeh/apptbill/internal/tablewrite"
)

var (
	firstNames = []string{"Alice", "Bob", "Carol", "Dan", "Erin", "Finn", "Gus", "Hana", "Ivy", "Jon", "Kai", "Lena"}
	lastNames  = []string{"Smith", "Jones", "White", "Brown", "Gray", "Black", "Green", "Blue", "Stone", "Reed"}
	providers  = []string{"Jane Doe", "Sam Lee", "Pat Kim", "Robin Q Hart"}
	statuses   = []string{"Occurred", "Occurred", "Occurred", "Cancelled", "No-Show", ""}
	diagnoses  = []string{"F41.1", "F32.0", "F90.0", ""}
	zones      = []string{"EST", "EDT", "PST", "UTC"}
	extraCols  = []string{"DOB", "Location", "Tags"}
)

func main() {
	out := flag.String("out", "testdata/appointments-large.csv", "output path (.csv or .xlsx)")
	rows := flag.Int("rows", 200, "number of appointments")
	seed := flag.Uint64("seed", 1, "generator seed")
	groupPct := flag.Int("group-pct", 20, "percent of appointments that are group sessions")
	badDatePct := flag.Int("bad-date-pct", 5, "percent of appointments with an unparseable date")
	flag.Parse()

	format, err := model.FormatFromPath(*out)
	if err != nil || format == model.FormatParquet {
		fmt.Fprintf(os.Stderr, "output must be .csv or .xlsx: %s\n", *out)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	types := appointmentTypes()

	header := []string{
		model.ColClientName, model.ColDate, model.ColAppointmentType, model.ColProvider,
		model.ColStatus, model.ColUniqueID, model.ColGroupAttendance, model.ColChartNote,
		model.ColDiagnosisCodes,
	}
	header = append(header, extraCols...)
	table := model.Table{Header: header}

	start := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	var groups, badDates, clients int
	nextID := 1000
	for i := 0; i < *rows; i++ {
		n := 1
		if rng.IntN(100) < *groupPct {
			n = 2 + rng.IntN(4)
			groups++
		}
		clients += n

		names := make([]string, n)
		ids := make([]string, n)
		attendance := make([]string, n)
		diag := make([]string, n)
		for j := range names {
			names[j] = firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))]
			nextID++
			ids[j] = strconv.Itoa(nextID)
			attendance[j] = pick(rng, []string{"yes", "yes", "no", ""})
			diag[j] = pick(rng, diagnoses)
		}

		when := start.Add(time.Duration(rng.IntN(14*24*4)) * 15 * time.Minute)
		date := when.Format("2006-01-02 15:04:05") + " " + pick(rng, zones)
		if rng.IntN(100) < *badDatePct {
			date = pick(rng, []string{"", "TBD", when.Format("01/02/2006")})
			badDates++
		}

		record := []string{
			strings.Join(names, ", "),
			date,
			pick(rng, types),
			pick(rng, providers),
			pick(rng, statuses),
			strings.Join(ids, ", "),
			"",
			pick(rng, []string{"Yes", "yes", "No", ""}),
			strings.Join(diag, ", "),
			when.AddDate(-10-rng.IntN(30), 0, 0).Format("2006-01-02"),
			"Telehealth",
			"",
		}
		if n > 1 {
			record[6] = strings.Join(attendance, ", ")
		}
		table.Rows = append(table.Rows, record)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	if err := tablewrite.WriteTable(f, format, table); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d appointments to %s\n", len(table.Rows), *out)
	fmt.Printf("  %-14s %d\n", "group", groups)
	fmt.Printf("  %-14s %d\n", "bad_date", badDates)
	fmt.Printf("  %-14s %d\n", "billing_rows", clients)
}

// appointmentTypes returns the billable type names in a stable order, plus a
// few spellings the transformer has to clean up.
func appointmentTypes() []string {
	types := make([]string, 0, len(model.CPTCodes)+3)
	for k := range model.CPTCodes {
		types = append(types, k)
	}
	sort.Strings(types)
	return append(types,
		"Individual Therapy Session 30 minutes",
		"Evaluation  Session",
		"Art Therapy Session",
	)
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}
