package facts

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/dates"
)

// Grammy ceremony years covered by the reference data.
const (
	grammyFirstYear = "1958"
	grammyLastYear  = "2019"
)

// FormatMusic renders song, artist and band reports plus Grammy award
// summaries for years the query names.
func (f *Formatter) FormatMusic(ctx context.Context, qc domain.QueryContext, matched domain.MatchedEntities) string {
	query := strings.ToLower(qc.Query)
	queryDate := dates.QueryDate(qc.QueryTime)
	years := dates.Years(query)
	if strings.Contains(query, "last year") && queryDate != "" {
		if y, err := strconv.Atoi(queryDate[:4]); err == nil {
			years = []string{strconv.Itoa(y - 1)}
		}
	}

	var info strings.Builder
	for _, song := range matched.Songs {
		f.songReport(ctx, &info, song)
	}
	for _, artist := range matched.Artists {
		f.artistReport(ctx, &info, artist, queryDate, years)
	}
	for _, band := range matched.Bands {
		f.bandReport(ctx, &info, query, band)
	}
	f.grammyReport(ctx, &info, query, years)
	return info.String()
}

func (f *Formatter) songReport(ctx context.Context, info *strings.Builder, song string) {
	fmt.Fprintf(info, "#### Some Basic Information of the Song: %s\n", song)
	if author, err := f.music.SongAuthor(ctx, song); err != nil {
		f.warn("song_author_lookup_failed", err, "song", song)
	} else if author != "" {
		fmt.Fprintf(info, "- Author: %s\n", author)
	}
	if releaseDate, err := f.music.SongReleaseDate(ctx, song); err != nil {
		f.warn("song_release_date_lookup_failed", err, "song", song)
	} else if releaseDate != "" {
		fmt.Fprintf(info, "- Release Date: %s\n", releaseDate)
	}
	if country, err := f.music.SongReleaseCountry(ctx, song); err != nil {
		f.warn("song_release_country_lookup_failed", err, "song", song)
	} else if country != "" {
		fmt.Fprintf(info, "- Release Country: %s\n", country)
	}
	if count, err := f.music.GrammyCountBySong(ctx, song); err != nil {
		f.warn("grammy_count_lookup_failed", err, "song", song)
	} else if count != nil {
		fmt.Fprintf(info, "- Grammy Award Count: %d\n", *count)
	}
	info.WriteString("\n")
}

func (f *Formatter) artistReport(ctx context.Context, info *strings.Builder, artist, queryDate string, years []string) {
	fmt.Fprintf(info, "#### Some Basic Information of the Artist: %s\n", artist)
	if birthPlace, err := f.music.ArtistBirthPlace(ctx, artist); err != nil {
		f.warn("artist_birth_place_lookup_failed", err, "artist", artist)
	} else if birthPlace != "" {
		fmt.Fprintf(info, "- Birth Place: %s\n", birthPlace)
	}
	if birthDate, err := f.music.ArtistBirthDate(ctx, artist); err != nil {
		f.warn("artist_birth_date_lookup_failed", err, "artist", artist)
	} else if birthDate != "" {
		fmt.Fprintf(info, "- Birth Date: %s\n", birthDate)
	}
	if lifespan, err := f.music.ArtistLifespan(ctx, artist); err != nil {
		f.warn("artist_lifespan_lookup_failed", err, "artist", artist)
	} else if lifespan.End != nil {
		fmt.Fprintf(info, "- Life Span: %s to %s\n", orNone(lifespan.Begin), *lifespan.End)
	}

	f.artistWorksReport(ctx, info, artist, queryDate, years)

	count, err := f.music.GrammyCountByArtist(ctx, artist)
	if err != nil {
		f.warn("grammy_count_lookup_failed", err, "artist", artist)
		count = nil
	}
	if count != nil && *count > 0 {
		fmt.Fprintf(info, "- Grammy Award Count: %d\n", *count)
	}
	if awardYears, err := f.music.GrammyYearsByArtist(ctx, artist); err != nil {
		f.warn("grammy_years_lookup_failed", err, "artist", artist)
	} else if len(awardYears) > 0 {
		sort.Ints(awardYears)
		parts := make([]string, 0, len(awardYears))
		for _, y := range awardYears {
			parts = append(parts, strconv.Itoa(y))
		}
		fmt.Fprintf(info, "- Grammy Award Winning Years: %s\n", strings.Join(parts, ", "))
	}
	if count != nil && *count > 0 {
		info.WriteString("- Note: Nominations not take into account.\n")
	}
	info.WriteString("\n")
}

// artistWorksReport lists the artist's released works: the first work, then
// either the works of the year(s) the query names or the five most recent
// release dates.
func (f *Formatter) artistWorksReport(ctx context.Context, info *strings.Builder, artist, queryDate string, years []string) {
	works, err := f.music.ArtistWorks(ctx, artist)
	if err != nil {
		f.warn("artist_works_lookup_failed", err, "artist", artist)
		return
	}
	if len(works) == 0 {
		return
	}
	works = dedupeStrings(works)

	workDates := make(map[string][]string)
	var released []string
	for _, work := range works {
		releaseDate, err := f.music.SongReleaseDate(ctx, work)
		if err != nil {
			f.warn("song_release_date_lookup_failed", err, "song", work)
			continue
		}
		if releaseDate != "" && releaseDate < queryDate {
			workDates[releaseDate] = append(workDates[releaseDate], work)
			released = append(released, work)
		}
	}
	if len(workDates) == 0 {
		return
	}
	releaseDates := sortedKeysDesc(workDates)
	firstDate := releaseDates[len(releaseDates)-1]

	info.WriteString("- First Work:\n")
	fmt.Fprintf(info, "    - %s: %s\n", firstDate, strings.Join(workDates[firstDate], ", "))

	if len(years) == 1 {
		year := years[0]
		if year >= firstDate[:4] {
			var block strings.Builder
			count := 0
			for _, date := range releaseDates {
				if strings.HasPrefix(date, year) {
					for _, work := range workDates[date] {
						fmt.Fprintf(&block, "    - %s: %s\n", date, work)
						count++
					}
				}
			}
			if block.Len() > 0 {
				fmt.Fprintf(info, "- Some Works Released in %s:\n", year)
				info.WriteString(block.String())
				fmt.Fprintf(info, "- Total Works Released in %s: %d\n", year, count)
			} else {
				fmt.Fprintf(info, "- No Works Released in %s\n", year)
			}
		}
	}
	if len(years) == 2 {
		year1, year2 := dates.OrderYears(years[0], years[1])
		if year1 >= firstDate[:4] {
			var block strings.Builder
			count := 0
			for _, date := range releaseDates {
				if date[:4] >= year1 && date[:4] <= year2 {
					for _, work := range workDates[date] {
						fmt.Fprintf(&block, "    - %s: %s\n", date, work)
						count++
					}
				}
			}
			if block.Len() > 0 {
				fmt.Fprintf(info, "- Some Works Released from %s to %s:\n", year1, year2)
				info.WriteString(block.String())
				fmt.Fprintf(info, "- Total Works Released from %s to %s: %d\n", year1, year2, count)
			} else {
				fmt.Fprintf(info, "- No Works Released from %s to %s\n", year1, year2)
			}
		}
	} else {
		info.WriteString("- Some Recent Works(Sorted by release date):\n")
		for i, date := range releaseDates {
			if i >= 5 {
				break
			}
			for _, work := range workDates[date] {
				fmt.Fprintf(info, "    - %s: %s\n", date, work)
			}
		}
		if len(releaseDates) > 5 {
			info.WriteString("    - ...\n")
		}
		fmt.Fprintf(info, "- Total Works: %d\n", len(released))
	}
}

func (f *Formatter) bandReport(ctx context.Context, info *strings.Builder, query, band string) {
	members, err := f.music.BandMembers(ctx, band)
	if err != nil {
		f.warn("band_members_lookup_failed", err, "band", band)
	}
	if len(members) > 0 && !containsAny(query, "first", "founding", "original") {
		fmt.Fprintf(info, "#### Some Basic Information of the Band: %s\n", band)
		fmt.Fprintf(info, "- Current Members: %s\n", strings.Join(members, ", "))
		fmt.Fprintf(info, "- Num of Current Members: %d\n", len(members))
	}
	info.WriteString("\n")
}

// grammyReport summarizes the awards of a single named year, or a year range
// when the query is explicitly about the Grammys.
func (f *Formatter) grammyReport(ctx context.Context, info *strings.Builder, query string, years []string) {
	if len(years) == 1 {
		year := years[0]
		if year < grammyFirstYear || year > grammyLastYear {
			return
		}
		fmt.Fprintf(info, "#### Some information of Grammy Awards in %s:\n", year)
		if artists, err := f.music.GrammyBestNewArtists(ctx, year); err != nil {
			f.warn("grammy_best_artist_lookup_failed", err, "year", year)
		} else {
			for _, artist := range artists {
				fmt.Fprintf(info, "- Best New Artist: %s\n", artist)
				birthPlace, err := f.music.ArtistBirthPlace(ctx, artist)
				if err != nil {
					f.warn("artist_birth_place_lookup_failed", err, "artist", artist)
				}
				fmt.Fprintf(info, "    - Birth Place: %s\n", birthPlace)
				birthDate, err := f.music.ArtistBirthDate(ctx, artist)
				if err != nil {
					f.warn("artist_birth_date_lookup_failed", err, "artist", artist)
				}
				fmt.Fprintf(info, "    - Birth Date: %s\n", birthDate)
			}
		}
		if songs, err := f.music.GrammyBestSongs(ctx, year); err != nil {
			f.warn("grammy_best_song_lookup_failed", err, "year", year)
		} else {
			for _, song := range songs {
				fmt.Fprintf(info, "- Best Song: %s\n", song)
				releaseDate, err := f.music.SongReleaseDate(ctx, song)
				if err != nil {
					f.warn("song_release_date_lookup_failed", err, "song", song)
				}
				fmt.Fprintf(info, "    - Release Date: %s\n", releaseDate)
				country, err := f.music.SongReleaseCountry(ctx, song)
				if err != nil {
					f.warn("song_release_country_lookup_failed", err, "song", song)
				}
				fmt.Fprintf(info, "    - Release Country: %s\n", country)
			}
		}
		if albums, err := f.music.GrammyBestAlbums(ctx, year); err != nil {
			f.warn("grammy_best_album_lookup_failed", err, "year", year)
		} else {
			for _, album := range albums {
				fmt.Fprintf(info, "- Best Album: %s\n", album)
			}
		}
		return
	}

	if len(years) == 2 && strings.Contains(query, "gramm") {
		year1, year2 := dates.OrderYears(years[0], years[1])
		if year1 < grammyFirstYear || year2 > grammyLastYear {
			return
		}
		fmt.Fprintf(info, "#### Some information of Grammy Awards from %s to %s:\n", year1, year2)
		start, _ := strconv.Atoi(year1)
		end, _ := strconv.Atoi(year2)
		for y := start; y <= end; y++ {
			year := strconv.Itoa(y)
			if artists, err := f.music.GrammyBestNewArtists(ctx, year); err != nil {
				f.warn("grammy_best_artist_lookup_failed", err, "year", year)
			} else if artists != nil {
				fmt.Fprintf(info, "- %s: Best New Artist: %s\n", year, strings.Join(artists, ", "))
			}
			if songs, err := f.music.GrammyBestSongs(ctx, year); err != nil {
				f.warn("grammy_best_song_lookup_failed", err, "year", year)
			} else if songs != nil {
				fmt.Fprintf(info, "- %s: Best Song: %s\n", year, strings.Join(songs, ", "))
			}
			if albums, err := f.music.GrammyBestAlbums(ctx, year); err != nil {
				f.warn("grammy_best_album_lookup_failed", err, "year", year)
			} else if albums != nil {
				fmt.Fprintf(info, "- %s: Best Album: %s\n", year, strings.Join(albums, ", "))
			}
		}
		info.WriteString("\n")
	}
}
