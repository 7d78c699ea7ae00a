package openlibrary

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	Subtitle            string   `json:"subtitle"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    int      `json:"first_publish_year"`
	Publisher           []string `json:"publisher"`
	Subject             []string `json:"subject"`
	ISBN                []string `json:"isbn"`
	CoverID             int      `json:"cover_i"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	Language            []string `json:"language"`
}

type work struct {
	Title       string    `json:"title"`
	Description textValue `json:"description"`
}

type bibRecord struct {
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	Authors       []named   `json:"authors"`
	Publishers    []named   `json:"publishers"`
	Subjects      []named   `json:"subjects"`
	PublishDate   string    `json:"publish_date"`
	NumberOfPages int       `json:"number_of_pages"`
	Notes         textValue `json:"notes"`
	Excerpts      []struct {
		Text string `json:"text"`
	} `json:"excerpts"`
	Cover struct {
		Small  string `json:"small"`
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"cover"`
}

type named struct {
	Name string `json:"name"`
}

// textValue decodes fields Open Library sends either as a bare string or
// as {"type": "/type/text", "value": "..."}.
type textValue struct {
	Value string
}

func (v *textValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &v.Value)
	}
	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	v.Value = typed.Value
	return nil
}

func (v textValue) String() string {
	return strings.TrimSpace(v.Value)
}

func parseSearch(body []byte) (*searchResponse, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func parseWork(body []byte) (*work, error) {
	var w work
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func parseBibRecords(body []byte) (map[string]bibRecord, error) {
	records := make(map[string]bibRecord)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

var publishDateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2006",
	"Jan 2006",
	"2006-01",
	"2006",
}

var yearPattern = regexp.MustCompile(`(?:^|\D)(\d{4})(?:\D|$)`)

// parsePublishDate accepts the free-form dates found in edition records.
// When no layout matches, the first four-digit year found is used.
func parsePublishDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range publishDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if m := yearPattern.FindStringSubmatch(s); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			return yearToDate(year)
		}
	}
	return nil
}
