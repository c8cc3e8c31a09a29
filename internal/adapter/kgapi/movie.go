package kgapi

import (
	"context"

	"rag-pipeline/internal/domain"
)

// MoviesByName returns the movie records matching a title.
func (c *Client) MoviesByName(ctx context.Context, name string) ([]domain.MovieRecord, error) {
	raw, err := c.query(ctx, "/movie/get_movie_info", name)
	if err != nil {
		return nil, err
	}
	var movies []domain.MovieRecord
	if _, err := decodeResult(raw, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// PersonsByName returns the person records matching a name.
func (c *Client) PersonsByName(ctx context.Context, name string) ([]domain.PersonRecord, error) {
	raw, err := c.query(ctx, "/movie/get_person_info", name)
	if err != nil {
		return nil, err
	}
	var persons []domain.PersonRecord
	if _, err := decodeResult(raw, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

func (c *Client) MovieByID(ctx context.Context, id int) (*domain.MovieRecord, error) {
	raw, err := c.query(ctx, "/movie/get_movie_info_by_id", id)
	if err != nil {
		return nil, err
	}
	var movie domain.MovieRecord
	ok, err := decodeResult(raw, &movie)
	if err != nil || !ok {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) PersonByID(ctx context.Context, id int) (*domain.PersonRecord, error) {
	raw, err := c.query(ctx, "/movie/get_person_info_by_id", id)
	if err != nil {
		return nil, err
	}
	var person domain.PersonRecord
	ok, err := decodeResult(raw, &person)
	if err != nil || !ok {
		return nil, err
	}
	return &person, nil
}

// OscarAwardsByYear returns every nomination row of one ceremony year.
func (c *Client) OscarAwardsByYear(ctx context.Context, year string) ([]domain.OscarAward, error) {
	raw, err := c.query(ctx, "/movie/get_year_info", year)
	if err != nil {
		return nil, err
	}
	var info struct {
		OscarAwards []domain.OscarAward `json:"oscar_awards"`
	}
	if _, err := decodeResult(raw, &info); err != nil {
		return nil, err
	}
	return info.OscarAwards, nil
}

var _ domain.MovieSource = (*Client)(nil)
