package soniferous

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

type Client struct {
	BaseURL    string
	Username   string
	Password   string
	HttpClient *http.Client
}

// ID is a resource key. The server emits integer primary keys, other
// deployments emit strings; both decode to the same value.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("id %s is not an integer", n)
	}
	*id = ID(n.String())
	return nil
}

type Song struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	TrackNumber int    `json:"track_number"`
	Time        string `json:"time"` // MM:SS
	Album       string `json:"album"`
	Artist      string `json:"artist"`
	AlbumID     ID     `json:"album_id,omitempty"`
	ArtistID    ID     `json:"artist_id,omitempty"`
}

type Album struct {
	ID       ID     `json:"id"`
	Album    string `json:"album"`
	Artist   string `json:"artist"`
	ArtistID ID     `json:"artist_id,omitempty"`
}

type Artist struct {
	ID     ID     `json:"id"`
	Artist string `json:"artist"`
}

type songsResponse struct {
	Songs []Song `json:"songs"`
}

type albumsResponse struct {
	Albums []Album `json:"albums"`
}

type artistsResponse struct {
	Artists []Artist `json:"artists"`
}
