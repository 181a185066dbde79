package espn

// Wire shapes for the subset of the site API this client consumes. Fields not
// listed here are ignored during decoding.

type teamsEnvelope struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team teamItem `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type teamItem struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

type rosterEnvelope struct {
	Athletes []struct {
		Position string        `json:"position"`
		Items    []athleteItem `json:"items"`
	} `json:"athletes"`
}

type athleteItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Position    struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	Status struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"status"`
	Active bool `json:"active"`
}

type scoreboardEnvelope struct {
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	Week struct {
		Number int `json:"number"`
	} `json:"week"`
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID     string `json:"id"`
	Status struct {
		Type struct {
			Completed bool `json:"completed"`
		} `json:"type"`
	} `json:"status"`
	Competitions []struct {
		Competitors []struct {
			HomeAway string   `json:"homeAway"`
			Team     teamItem `json:"team"`
		} `json:"competitors"`
	} `json:"competitions"`
}

type summaryEnvelope struct {
	BoxScore struct {
		Players []struct {
			Team       teamItem `json:"team"`
			Statistics []struct {
				Name     string   `json:"name"`
				Keys     []string `json:"keys"`
				Athletes []struct {
					Athlete struct {
						ID          string `json:"id"`
						DisplayName string `json:"displayName"`
					} `json:"athlete"`
					Stats []string `json:"stats"`
				} `json:"athletes"`
			} `json:"statistics"`
		} `json:"players"`
	} `json:"boxscore"`
}
