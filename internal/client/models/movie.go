package models

// Movie is the detail object returned by /api/movies/{id}/.
//
// ReleaseDate and RunningTime are kept as the API's string representations
// ("2006-01-02" and "HH:MM:SS"); the client only displays them.
type Movie struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	ReleaseDate    string       `json:"release_date"`
	ProductionYear int          `json:"production_year"`
	Countries      []string     `json:"countries"`
	Genres         []string     `json:"genres"`
	RunningTime    string       `json:"running_time"`
	Synopsys       string       `json:"synopsys"`
	FilmRating     string       `json:"film_rating"`
	Credits        []Credit     `json:"credits"`
	Images         []MovieImage `json:"images"`
	Videos         []MovieVideo `json:"videos"`
}

// Credit links a person to a movie in a given job (director, actor, ...).
type Credit struct {
	Job      string `json:"job"`
	Name     string `json:"name"`
	RoleName string `json:"role_name"`
}

type MovieImage struct {
	ImageURL string `json:"image_url"`
	IsMain   bool   `json:"is_main"`
}

type MovieVideo struct {
	Title      string `json:"title"`
	Site       string `json:"site"`
	ExternalID string `json:"external_id"`
}
