package cmd

import (
	"github.com/spf13/pflag"

	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

// filterFlags are the row filters shared by every view command and by the
// shell's apply command.
type filterFlags struct {
	start      string
	end        string
	department string
	name       string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.start, "start", "", "first enrollment day to include (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "last enrollment day to include (YYYY-MM-DD)")
	fs.StringVarP(&f.department, "department", "d", "", "exact department name")
	fs.StringVarP(&f.name, "name", "n", "", "case-insensitive substring of the person's name")
}

func (f *filterFlags) reset() {
	*f = filterFlags{}
}

func (f *filterFlags) criteria() (report.Criteria, error) {
	return report.ParseCriteria(f.start, f.end, f.department, f.name)
}

// filteredSnapshot opens a session on the workspace and applies the filter
// flags.
func filteredSnapshot(w *workspace, f *filterFlags) (*report.Snapshot, error) {
	c, err := f.criteria()
	if err != nil {
		return nil, err
	}

	s, err := w.newSession()
	if err != nil {
		return nil, err
	}
	if c.IsZero() {
		return s.Snapshot()
	}
	return s.ApplyFilter(c)
}
