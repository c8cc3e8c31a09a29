package kgapi

import (
	"context"
	"strconv"

	"rag-pipeline/internal/domain"
)

func (c *Client) SearchArtists(ctx context.Context, name string) ([]string, error) {
	return c.stringList(ctx, "/music/search_artist_entity_by_name", name)
}

func (c *Client) SearchSongs(ctx context.Context, name string) ([]string, error) {
	return c.stringList(ctx, "/music/search_song_entity_by_name", name)
}

func (c *Client) ArtistBirthPlace(ctx context.Context, artist string) (string, error) {
	return c.stringValue(ctx, "/music/get_artist_birth_place", artist)
}

func (c *Client) ArtistBirthDate(ctx context.Context, artist string) (string, error) {
	return c.stringValue(ctx, "/music/get_artist_birth_date", artist)
}

// ArtistLifespan decodes the source's [begin, end] pair. Either element may
// be null; a living artist has a null end.
func (c *Client) ArtistLifespan(ctx context.Context, artist string) (domain.Lifespan, error) {
	raw, err := c.query(ctx, "/music/get_lifespan", artist)
	if err != nil {
		return domain.Lifespan{}, err
	}
	var pair []*string
	if _, err := decodeResult(raw, &pair); err != nil {
		return domain.Lifespan{}, err
	}
	var span domain.Lifespan
	if len(pair) > 0 {
		span.Begin = pair[0]
	}
	if len(pair) > 1 {
		span.End = pair[1]
	}
	return span, nil
}

func (c *Client) ArtistWorks(ctx context.Context, artist string) ([]string, error) {
	return c.stringList(ctx, "/music/get_artist_all_works", artist)
}

func (c *Client) BandMembers(ctx context.Context, band string) ([]string, error) {
	return c.stringList(ctx, "/music/get_members", band)
}

func (c *Client) SongAuthor(ctx context.Context, song string) (string, error) {
	return c.stringValue(ctx, "/music/get_song_author", song)
}

func (c *Client) SongReleaseDate(ctx context.Context, song string) (string, error) {
	return c.stringValue(ctx, "/music/get_song_release_date", song)
}

func (c *Client) SongReleaseCountry(ctx context.Context, song string) (string, error) {
	return c.stringValue(ctx, "/music/get_song_release_country", song)
}

func (c *Client) GrammyCountByArtist(ctx context.Context, artist string) (*int, error) {
	return c.intValue(ctx, "/music/grammy_get_award_count_by_artist", artist)
}

func (c *Client) GrammyCountBySong(ctx context.Context, song string) (*int, error) {
	return c.intValue(ctx, "/music/grammy_get_award_count_by_song", song)
}

// GrammyYearsByArtist returns the ceremony years the artist won in. The
// source serves years as numbers or strings depending on the table.
func (c *Client) GrammyYearsByArtist(ctx context.Context, artist string) ([]int, error) {
	raw, err := c.query(ctx, "/music/grammy_get_award_date_by_artist", artist)
	if err != nil {
		return nil, err
	}
	var years []int
	if _, err := decodeResult(raw, &years); err == nil {
		return years, nil
	}
	var asStrings []string
	if _, err := decodeResult(raw, &asStrings); err != nil {
		return nil, err
	}
	for _, s := range asStrings {
		if y, err := strconv.Atoi(s); err == nil {
			years = append(years, y)
		}
	}
	return years, nil
}

func (c *Client) GrammyBestNewArtists(ctx context.Context, year string) ([]string, error) {
	return c.stringList(ctx, "/music/grammy_get_best_artist_by_year", year)
}

func (c *Client) GrammyBestSongs(ctx context.Context, year string) ([]string, error) {
	return c.stringList(ctx, "/music/grammy_get_best_song_by_year", year)
}

func (c *Client) GrammyBestAlbums(ctx context.Context, year string) ([]string, error) {
	return c.stringList(ctx, "/music/grammy_get_best_album_by_year", year)
}

func (c *Client) stringList(ctx context.Context, path string, value any) ([]string, error) {
	raw, err := c.query(ctx, path, value)
	if err != nil {
		return nil, err
	}
	var list []string
	if _, err := decodeResult(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) stringValue(ctx context.Context, path string, value any) (string, error) {
	raw, err := c.query(ctx, path, value)
	if err != nil {
		return "", err
	}
	var s string
	if _, err := decodeResult(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func (c *Client) intValue(ctx context.Context, path string, value any) (*int, error) {
	raw, err := c.query(ctx, path, value)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var n int
	if _, err := decodeResult(raw, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

var _ domain.MusicSource = (*Client)(nil)
