package soniferous

import (
	"context"
	"net/http"
)

func (c *Client) GetSongs(ctx context.Context) ([]Song, error) {
	var resp songsResponse
	if err := c.getJSON(ctx, c.endpoint("song")+"/", &resp); err != nil {
		return nil, err
	}
	return resp.Songs, nil
}

func (c *Client) GetSong(ctx context.Context, id ID) (Song, error) {
	var song Song
	if err := c.getJSON(ctx, c.endpoint("song", string(id)), &song); err != nil {
		return Song{}, err
	}
	return song, nil
}

func (c *Client) GetAlbums(ctx context.Context) ([]Album, error) {
	var resp albumsResponse
	if err := c.getJSON(ctx, c.endpoint("album")+"/", &resp); err != nil {
		return nil, err
	}
	return resp.Albums, nil
}

func (c *Client) GetAlbumSongs(ctx context.Context, id ID) ([]Song, error) {
	var resp songsResponse
	if err := c.getJSON(ctx, c.endpoint("album", string(id), "songs"), &resp); err != nil {
		return nil, err
	}
	return resp.Songs, nil
}

func (c *Client) GetArtists(ctx context.Context) ([]Artist, error) {
	var resp artistsResponse
	if err := c.getJSON(ctx, c.endpoint("artist")+"/", &resp); err != nil {
		return nil, err
	}
	return resp.Artists, nil
}

func (c *Client) GetArtistSongs(ctx context.Context, id ID) ([]Song, error) {
	var resp songsResponse
	if err := c.getJSON(ctx, c.endpoint("artist", string(id), "songs"), &resp); err != nil {
		return nil, err
	}
	return resp.Songs, nil
}

func (c *Client) GetArtistAlbums(ctx context.Context, id ID) ([]Album, error) {
	var resp albumsResponse
	if err := c.getJSON(ctx, c.endpoint("artist", string(id), "albums"), &resp); err != nil {
		return nil, err
	}
	return resp.Albums, nil
}

// SearchSongs returns songs whose title, album or artist contains query.
func (c *Client) SearchSongs(ctx context.Context, query string) ([]Song, error) {
	var resp songsResponse
	if err := c.getJSON(ctx, c.endpoint("search", query), &resp); err != nil {
		return nil, err
	}
	return resp.Songs, nil
}

// GetPlayURL returns the audio resource of a song.
func (c *Client) GetPlayURL(id ID) string {
	return c.endpoint("song", string(id), "audio")
}

// Ping checks that the server answers the song listing.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodHead, c.endpoint("song")+"/")
	if err != nil {
		return err
	}
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: req.Method, URL: req.URL.String(), Code: resp.StatusCode}
	}
	return nil
}
