package cricketdata

type envelope[T any] struct {
	APIKey string `json:"apikey"`
	Data   T      `json:"data"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type statusOnly struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type matchItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MatchType    string   `json:"matchType"`
	Status       string   `json:"status"`
	Venue        string   `json:"venue"`
	DateTimeGMT  string   `json:"dateTimeGMT"`
	Teams        []string `json:"teams"`
	MatchStarted bool     `json:"matchStarted"`
	MatchEnded   bool     `json:"matchEnded"`
}

type squadTeam struct {
	TeamName string        `json:"teamName"`
	Players  []squadPlayer `json:"players"`
}

type squadPlayer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Playing bool   `json:"playing"`
}

type ballByBall struct {
	ID  string     `json:"id"`
	BBB []ballItem `json:"bbb"`
}

type playerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ballItem struct {
	N         int        `json:"n"`
	Inning    int        `json:"inning"`
	Over      int        `json:"over"`
	Ball      int        `json:"ball"`
	Batsman   playerRef  `json:"batsman"`
	Bowler    playerRef  `json:"bowler"`
	Runs      int        `json:"runs"`
	Extras    int        `json:"extras"`
	Penalty   string     `json:"penalty"`
	Dismissal string     `json:"dismissal"`
	Catcher   *playerRef `json:"catcher"`
	Thrower   *playerRef `json:"thrower"`
	DirectHit bool       `json:"directHit"`
}
