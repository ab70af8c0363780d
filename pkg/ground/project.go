package ground

// Project describes the engineering project a document belongs to.
type Project struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Client      string         `json:"client,omitempty"`
	Contractor  string         `json:"contractor,omitempty"`
	Location    *Location      `json:"location,omitempty"`
	Dates       *ProjectDates  `json:"dates,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Location is a named geographic location, optionally with lon/lat
// coordinates and the CRS they are expressed in.
type Location struct {
	Name        string      `json:"name"`
	Country     string      `json:"country,omitempty"`
	Coordinates *[2]float64 `json:"coordinates,omitempty"` // lon, lat
	CRS         string      `json:"crs,omitempty"`
}

// ProjectDates carries the project timeline as ISO 8601 strings.
type ProjectDates struct {
	Start          string `json:"start,omitempty"`
	End            string `json:"end,omitempty"`
	DataCollection string `json:"dataCollection,omitempty"`
}

// NewProject creates a project descriptor with the given identity.
func NewProject(id, name string) *Project {
	return &Project{ID: id, Name: name}
}
