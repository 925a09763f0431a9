package model

// Report is the pre-computed data structure an HTML test reporter emits
// (report.json). Everything in it is read-only input to the viewer.
type Report struct {
	Title        string     `json:"title"`
	StartTime    int64      `json:"startTime"` // unix millis
	DurationMS   float64    `json:"duration"`
	Files        []TestFile `json:"files"`
	ProjectNames []string   `json:"projectNames"`
	Stats        Stats      `json:"stats"`
}

type Stats struct {
	Total      int `json:"total"`
	Expected   int `json:"expected"`
	Unexpected int `json:"unexpected"`
	Flaky      int `json:"flaky"`
	Skipped    int `json:"skipped"`
}

type TestFile struct {
	FileID   string     `json:"fileId"`
	FileName string     `json:"fileName"`
	Tests    []TestCase `json:"tests"`
	Stats    Stats      `json:"stats"`
}

// FileByID returns the file with the given id, or nil.
func (r *Report) FileByID(id string) *TestFile {
	for i := range r.Files {
		if r.Files[i].FileID == id {
			return &r.Files[i]
		}
	}
	return nil
}

// TestByID scans all files for the test with the given id, or nil.
func (r *Report) TestByID(id string) *TestCase {
	for i := range r.Files {
		for j := range r.Files[i].Tests {
			if r.Files[i].Tests[j].TestID == id {
				return &r.Files[i].Tests[j]
			}
		}
	}
	return nil
}

// MultiProject reports whether the report tracks more than one project.
// The project badge on a test row is only shown when this is true.
func (r *Report) MultiProject() bool {
	return len(r.ProjectNames) > 1
}
